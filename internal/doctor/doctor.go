package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/hbjs97/uvsync/internal/cmdexec"
	"github.com/hbjs97/uvsync/internal/setup"
	"github.com/hbjs97/uvsync/internal/shell"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckBinaries는 conda, uv 바이너리 존재 여부를 확인한다.
// hook 설치에는 필요 없으므로 없으면 경고만 한다.
func CheckBinaries(ctx context.Context, cmd cmdexec.Commander) []DiagResult {
	binaries := []struct {
		name    string
		args    []string
		install string
	}{
		{"conda", []string{"--version"}, "https://docs.conda.io/projects/miniconda/"},
		{"uv", []string{"--version"}, "https://docs.astral.sh/uv/getting-started/installation/"},
	}

	var results []DiagResult
	for _, b := range binaries {
		out, err := cmd.Run(ctx, b.name, b.args...)
		if err != nil {
			results = append(results, DiagResult{
				Name:    b.name,
				Status:  StatusWarn,
				Message: fmt.Sprintf("%s 없음", b.name),
				Fix:     fmt.Sprintf("설치: %s", b.install),
			})
		} else {
			results = append(results, DiagResult{
				Name:    b.name,
				Status:  StatusOK,
				Message: strings.TrimSpace(string(out)),
			})
		}
	}
	return results
}

// CheckCondaEnv는 현재 프로세스에 활성 conda 환경이 있는지 확인한다.
func CheckCondaEnv(getenv func(string) string, opts shell.Options) DiagResult {
	prefix := getenv(opts.PrefixVar)
	if prefix == "" {
		return DiagResult{
			Name:    "conda_env",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 없음 (활성 conda 환경 없음)", opts.PrefixVar),
			Fix:     "conda activate <env>",
		}
	}
	name := getenv(opts.NameVar)
	if opts.ExcludeBase && name == opts.BaseName {
		return DiagResult{
			Name:    "conda_env",
			Status:  StatusOK,
			Message: fmt.Sprintf("%s 환경 활성 (동기화 제외)", name),
		}
	}
	return DiagResult{
		Name:    "conda_env",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s 환경 활성 (%s)", name, prefix),
	}
}

// CheckVariable은 동기화 대상 변수가 활성 환경과 일치하는지 확인한다.
func CheckVariable(getenv func(string) string, opts shell.Options) DiagResult {
	prefix := getenv(opts.PrefixVar)
	value := getenv(opts.Variable)
	wantSync := prefix != "" && !(opts.ExcludeBase && getenv(opts.NameVar) == opts.BaseName)

	switch {
	case wantSync && value == prefix:
		return DiagResult{
			Name:    "variable",
			Status:  StatusOK,
			Message: fmt.Sprintf("%s=%s", opts.Variable, value),
		}
	case wantSync && value == "":
		return DiagResult{
			Name:    "variable",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 없음, 현재 셸에 hook이 로드되지 않음", opts.Variable),
			Fix:     "uvsync install 후 새 셸 시작",
		}
	case wantSync:
		return DiagResult{
			Name:    "variable",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s=%s가 %s와 다름", opts.Variable, value, opts.PrefixVar),
			Fix:     "새 셸을 시작하거나 프롬프트를 한 번 갱신",
		}
	case value != "":
		return DiagResult{
			Name:    "variable",
			Status:  StatusOK,
			Message: fmt.Sprintf("%s=%s (동기화 대상 환경 없음)", opts.Variable, value),
		}
	default:
		return DiagResult{
			Name:    "variable",
			Status:  StatusOK,
			Message: fmt.Sprintf("%s 없음 (동기화 대상 환경 없음)", opts.Variable),
		}
	}
}

// CheckHooks는 dialect별 hook 설치 상태를 진단 결과로 바꾼다.
func CheckHooks(reports []setup.Report) []DiagResult {
	results := make([]DiagResult, 0, len(reports))
	for _, r := range reports {
		name := fmt.Sprintf("hook_%s", r.Dialect)
		switch r.State {
		case setup.StateCurrent:
			results = append(results, DiagResult{
				Name:    name,
				Status:  StatusOK,
				Message: fmt.Sprintf("%s:%d 설치됨", r.Path, r.Line),
			})
		case setup.StateStale:
			results = append(results, DiagResult{
				Name:    name,
				Status:  StatusWarn,
				Message: fmt.Sprintf("%s 블록이 현재 설정과 다름 (%d개)", r.Path, r.Count),
				Fix:     "uvsync install",
			})
		case setup.StateAbsent, setup.StateMissingFile:
			results = append(results, DiagResult{
				Name:    name,
				Status:  StatusWarn,
				Message: fmt.Sprintf("%s에 hook 없음", r.Path),
				Fix:     "uvsync install",
			})
		case setup.StateMalformed:
			results = append(results, DiagResult{
				Name:    name,
				Status:  StatusFail,
				Message: fmt.Sprintf("%s: %v", r.Path, r.Err),
				Fix:     fmt.Sprintf("%s에서 종료 마커 없는 uvsync 블록을 직접 정리", r.Path),
			})
		default:
			results = append(results, DiagResult{
				Name:    name,
				Status:  StatusFail,
				Message: fmt.Sprintf("%s 읽기 실패: %v", r.Path, r.Err),
			})
		}
	}
	return results
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, getenv func(string) string, opts shell.Options, reports []setup.Report) []DiagResult {
	var results []DiagResult
	results = append(results, CheckBinaries(ctx, cmd)...)
	results = append(results, CheckCondaEnv(getenv, opts))
	results = append(results, CheckVariable(getenv, opts))
	results = append(results, CheckHooks(reports)...)
	return results
}

// HasFailure는 FAIL 상태가 하나라도 있으면 true다.
func HasFailure(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
