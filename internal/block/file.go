package block

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
)

const (
	defaultFileMode = 0644
	defaultDirMode  = 0755
	tempPattern     = ".uvsync-*"
	maxSymlinkHops  = 40
)

// document는 파일 내용을 줄 목록과 줄 끝 문자로 표현한다.
// 모든 줄바꿈이 CRLF일 때만 eol이 "\r\n"이고, LF와 섞인 파일은 각 줄의 "\r"을 그대로 둔다.
type document struct {
	lines []string
	eol   string
}

func parse(data []byte) document {
	s := string(data)
	if s == "" {
		return document{eol: "\n"}
	}
	lf := strings.Count(s, "\n")
	if crlf := strings.Count(s, "\r\n"); crlf > 0 && crlf == lf {
		s = strings.TrimSuffix(s, "\r\n")
		return document{lines: strings.Split(s, "\r\n"), eol: "\r\n"}
	}
	s = strings.TrimSuffix(s, "\n")
	return document{lines: strings.Split(s, "\n"), eol: "\n"}
}

func (d document) bytes() []byte {
	if len(d.lines) == 0 {
		return nil
	}
	return []byte(strings.Join(d.lines, d.eol) + d.eol)
}

// Found는 Inspect 결과다.
type Found struct {
	// Exists는 대상 파일이 존재하는지 여부다.
	Exists bool
	// Present는 블록이 하나 이상 있는지 여부다.
	Present bool
	// Text는 첫 번째 블록의 내용이다 (마커 줄 포함, "\n"으로 연결).
	Text string
	// Line은 첫 번째 블록 시작 줄 번호다 (1부터).
	Line int
	// Count는 파일에 있는 블록 수다.
	Count int
}

// Inject는 path에 마커로 구분된 block이 정확히 하나만 최신 내용으로 존재하도록 만든다.
// 기존 블록은 모두 제거되고 새 블록은 파일 끝에 붙는다. 블록 밖의 줄은 순서 그대로 유지된다.
func Inject(fsys afero.Fs, path string, m Markers, block string) error {
	blockLines, err := m.Lines(block)
	if err != nil {
		return &Error{Op: "Inject", Path: path, Err: err}
	}

	target, err := resolve(fsys, path)
	if err != nil {
		return wrap("Inject", path, err)
	}
	if err := ensureParent(fsys, target); err != nil {
		return wrap("Inject", path, err)
	}
	mode, err := ensureFile(fsys, target)
	if err != nil {
		return wrap("Inject", path, err)
	}

	data, err := afero.ReadFile(fsys, target)
	if err != nil {
		return wrap("Inject", path, err)
	}
	doc := parse(data)
	rest, _, err := Strip(doc.lines, m)
	if err != nil {
		return wrap("Inject", path, err)
	}
	doc.lines = Append(rest, blockLines)

	if err := writeAtomic(fsys, target, doc.bytes(), mode); err != nil {
		return wrap("Inject", path, err)
	}
	return nil
}

// Remove는 path에서 블록을 모두 제거한다. 파일이 없거나 블록이 없으면 아무것도 쓰지 않고 false를 반환한다.
func Remove(fsys afero.Fs, path string, m Markers) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, &Error{Op: "Remove", Path: path, Err: err}
	}
	target, err := resolve(fsys, path)
	if err != nil {
		return false, wrap("Remove", path, err)
	}
	info, err := fsys.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, wrap("Remove", path, err)
	}
	if info.IsDir() {
		return false, wrap("Remove", path, fmt.Errorf("%w: 디렉토리임", ErrInvalidPath))
	}

	data, err := afero.ReadFile(fsys, target)
	if err != nil {
		return false, wrap("Remove", path, err)
	}
	doc := parse(data)
	rest, removed, err := Strip(doc.lines, m)
	if err != nil {
		return false, wrap("Remove", path, err)
	}
	if removed == 0 {
		return false, nil
	}
	doc.lines = rest
	if err := writeAtomic(fsys, target, doc.bytes(), info.Mode().Perm()); err != nil {
		return false, wrap("Remove", path, err)
	}
	return true, nil
}

// Inspect는 파일을 수정하지 않고 블록 상태를 조회한다.
func Inspect(fsys afero.Fs, path string, m Markers) (Found, error) {
	if err := m.Validate(); err != nil {
		return Found{}, &Error{Op: "Inspect", Path: path, Err: err}
	}
	target, err := resolve(fsys, path)
	if err != nil {
		return Found{}, wrap("Inspect", path, err)
	}
	data, err := afero.ReadFile(fsys, target)
	if errors.Is(err, fs.ErrNotExist) {
		return Found{}, nil
	}
	if err != nil {
		return Found{}, wrap("Inspect", path, err)
	}

	doc := parse(data)
	found := Found{Exists: true}
	start, end, ok, err := Find(doc.lines, m)
	if err != nil {
		return found, wrap("Inspect", path, err)
	}
	if !ok {
		return found, nil
	}
	_, count, err := Strip(doc.lines, m)
	if err != nil {
		return found, wrap("Inspect", path, err)
	}
	found.Present = true
	text := make([]string, 0, end-start+1)
	for _, l := range doc.lines[start : end+1] {
		text = append(text, strings.TrimSuffix(l, "\r"))
	}
	found.Text = strings.Join(text, "\n")
	found.Line = start + 1
	found.Count = count
	return found, nil
}

// resolve는 path가 심볼릭 링크이면 링크를 끝까지 따라가 실제 파일 경로를 반환한다.
// 대상이 아직 없는 끊긴 링크도 그 대상 경로를 반환한다.
func resolve(fsys afero.Fs, path string) (string, error) {
	lstater, ok := fsys.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return path, nil
	}
	for hops := 0; hops < maxSymlinkHops; hops++ {
		info, lstatCalled, err := lstater.LstatIfPossible(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				return path, nil
			}
			return "", err
		}
		if !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}
		dest, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", fmt.Errorf("%w: 심볼릭 링크가 %d단계를 넘음", ErrInvalidPath, maxSymlinkHops)
}

// ensureParent는 상위 디렉토리를 재귀적으로 만든다.
// 존재하는 가장 가까운 조상이 디렉토리가 아니면 ErrInvalidPath를 반환한다.
func ensureParent(fsys afero.Fs, path string) error {
	dir := filepath.Dir(path)
	for p := dir; ; {
		info, err := fsys.Stat(p)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%w: %s는 디렉토리가 아님", ErrInvalidPath, p)
			}
			break
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
			return err
		}
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	return fsys.MkdirAll(dir, defaultDirMode)
}

// ensureFile은 파일이 없으면 빈 파일을 만들고, 유지할 권한 비트를 반환한다.
func ensureFile(fsys afero.Fs, path string) (fs.FileMode, error) {
	info, err := fsys.Stat(path)
	if err == nil {
		if info.IsDir() {
			return 0, fmt.Errorf("%w: 디렉토리임", ErrInvalidPath)
		}
		return info.Mode().Perm(), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return defaultFileMode, nil
}

// writeAtomic은 같은 디렉토리의 임시 파일에 쓴 뒤 rename으로 원본을 교체한다.
// 어느 단계에서 실패해도 원본은 그대로 남는다.
func writeAtomic(fsys afero.Fs, path string, data []byte, perm fs.FileMode) error {
	tmp, err := afero.TempFile(fsys, filepath.Dir(path), tempPattern)
	if err != nil {
		return fmt.Errorf("임시 파일 생성 실패: %w", err)
	}
	tmpPath := tmp.Name()
	defer fsys.Remove(tmpPath) // rename 성공 후에는 이미 없음

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("임시 파일 쓰기 실패: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("임시 파일 동기화 실패: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("임시 파일 닫기 실패: %w", err)
	}
	if err := fsys.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("권한 설정 실패: %w", err)
	}
	if err := fsys.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("파일 교체 실패: %w", err)
	}
	return nil
}

// wrap은 OS 에러를 패키지 sentinel error로 분류해 Error로 감싼다.
func wrap(op, path string, err error) error {
	switch {
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrInvalidPath),
		errors.Is(err, ErrMalformedBlock), errors.Is(err, ErrInvalidBlock):
	case errors.Is(err, fs.ErrPermission):
		err = fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.EISDIR):
		err = fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return &Error{Op: op, Path: path, Err: err}
}
