package shell

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"text/template"

	"github.com/hbjs97/uvsync/internal/block"
)

// Family는 dialect가 속한 운영체제 계열이다.
type Family string

const (
	// FamilyPOSIX는 linux, darwin, *bsd 계열이다.
	FamilyPOSIX Family = "posix"
	// FamilyWindows는 windows 계열이다.
	FamilyWindows Family = "windows"
)

// Options는 hook 템플릿에 전달되는 값이다.
type Options struct {
	// Variable은 hook이 설정/해제하는 변수다 (예: UV_PROJECT_ENVIRONMENT).
	Variable string
	// PrefixVar는 활성 conda 환경의 루트 경로 변수다 (예: CONDA_PREFIX).
	PrefixVar string
	// NameVar는 활성 conda 환경 이름 변수다 (예: CONDA_DEFAULT_ENV).
	NameVar string
	// BaseName은 기본 환경 이름이다 (예: base).
	BaseName string
	// ExcludeBase가 true이면 기본 환경이 활성일 때 동기화하지 않는다.
	ExcludeBase bool
}

// DefaultOptions는 conda와 uv의 기본 변수 이름을 사용하는 Options를 반환한다.
func DefaultOptions() Options {
	return Options{
		Variable:  "UV_PROJECT_ENVIRONMENT",
		PrefixVar: "CONDA_PREFIX",
		NameVar:   "CONDA_DEFAULT_ENV",
		BaseName:  "base",
	}
}

// Dialect는 하나의 셸 dialect 정의다.
type Dialect struct {
	Name    string
	Family  Family
	Markers block.Markers

	rcPath func(Env) string
	tmpl   *template.Template
}

// templateData는 템플릿 실행 시 Options에 마커를 더한 값이다.
type templateData struct {
	Options
	Start string
	End   string
}

// Render는 마커 줄을 포함한 hook 블록을 생성한다.
func (d Dialect) Render(opts Options) (string, error) {
	var buf strings.Builder
	data := templateData{Options: opts, Start: d.Markers.Start, End: d.Markers.End}
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("shell.Render: %s: %w", d.Name, err)
	}
	return buf.String(), nil
}

// RCPath는 env 기준으로 이 dialect의 시작 파일 경로를 반환한다.
func (d Dialect) RCPath(env Env) string {
	return d.rcPath(env)
}

func markers(name string) block.Markers {
	return block.Markers{
		Start: fmt.Sprintf("# >>> uvsync initialize (%s) >>>", name),
		End:   fmt.Sprintf("# <<< uvsync initialize (%s) <<<", name),
	}
}

func newDialect(name string, family Family, rcPath func(Env) string, text string) Dialect {
	return Dialect{
		Name:    name,
		Family:  family,
		Markers: markers(name),
		rcPath:  rcPath,
		tmpl:    template.Must(template.New(name).Delims("{%", "%}").Parse(text)),
	}
}

var dialects = []Dialect{
	newDialect("bash", FamilyPOSIX, bashRC, bashTemplate),
	newDialect("zsh", FamilyPOSIX, zshRC, zshTemplate),
	newDialect("fish", FamilyPOSIX, fishRC, fishTemplate),
	newDialect("tcsh", FamilyPOSIX, tcshRC, tcshTemplate),
	newDialect("powershell", FamilyWindows, powershellRC, powershellTemplate),
}

// All은 지원하는 모든 dialect를 반환한다.
func All() []Dialect {
	out := make([]Dialect, len(dialects))
	copy(out, dialects)
	return out
}

// ForOS는 goos에서 설치 대상이 되는 dialect 목록을 반환한다.
// POSIX 계열은 4개, windows는 1개다.
func ForOS(goos string) []Dialect {
	family := FamilyPOSIX
	if goos == "windows" {
		family = FamilyWindows
	}
	var out []Dialect
	for _, d := range dialects {
		if d.Family == family {
			out = append(out, d)
		}
	}
	return out
}

// Current는 실행 중인 OS의 dialect 목록이다.
func Current() []Dialect {
	return ForOS(runtime.GOOS)
}

// Lookup은 이름으로 dialect를 찾는다.
func Lookup(name string) (Dialect, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "pwsh" {
		name = "powershell"
	}
	for _, d := range dialects {
		if d.Name == name {
			return d, true
		}
	}
	return Dialect{}, false
}

// Names는 지원하는 dialect 이름을 정렬해 반환한다.
func Names() []string {
	names := make([]string, 0, len(dialects))
	for _, d := range dialects {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// Select는 names 순서대로 dialect를 찾는다. 모르는 이름이 있으면 에러를 반환한다.
func Select(names []string) ([]Dialect, error) {
	out := make([]Dialect, 0, len(names))
	for _, n := range names {
		d, ok := Lookup(n)
		if !ok {
			return nil, fmt.Errorf("shell.Select: 지원하지 않는 셸: %s (지원: %s)", n, strings.Join(Names(), ", "))
		}
		out = append(out, d)
	}
	return out, nil
}
