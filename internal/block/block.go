// Package block maintains a single marker-delimited block of lines inside a
// user-owned text file such as a shell profile. Content outside the block is
// preserved verbatim and every write is an atomic temp-file rename.
package block

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPermissionDenied는 대상 파일이나 디렉토리에 접근 권한이 없을 때 반환된다.
	ErrPermissionDenied = errors.New("권한 없음")
	// ErrInvalidPath는 상위 경로가 디렉토리가 아니거나 대상이 디렉토리일 때 반환된다.
	ErrInvalidPath = errors.New("잘못된 경로")
	// ErrMalformedBlock는 시작 마커 뒤에 종료 마커가 없을 때 반환된다.
	ErrMalformedBlock = errors.New("종료 마커 없는 블록")
	// ErrInvalidBlock는 삽입할 블록이 마커 규칙을 지키지 않을 때 반환된다.
	ErrInvalidBlock = errors.New("잘못된 블록")
)

// Error는 블록 작업 실패를 경로, 작업 이름과 함께 담는다.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("block.%s: %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Markers는 블록의 시작/종료 마커 쌍이다. 마커가 포함된 줄이 경계가 된다.
type Markers struct {
	Start string
	End   string
}

// Validate는 마커 쌍이 비어 있지 않고 서로 겹치지 않는지 확인한다.
func (m Markers) Validate() error {
	if m.Start == "" || m.End == "" {
		return fmt.Errorf("%w: 마커가 비어 있음", ErrInvalidBlock)
	}
	if strings.Contains(m.Start, m.End) || strings.Contains(m.End, m.Start) {
		return fmt.Errorf("%w: 시작/종료 마커가 겹침 (%q, %q)", ErrInvalidBlock, m.Start, m.End)
	}
	return nil
}

// Lines는 블록 텍스트를 줄 단위로 나누고 마커 위치를 검사한다.
// 첫 줄에 시작 마커, 마지막 줄에 종료 마커가 있어야 하고 내부 줄에는 마커가 없어야 한다.
func (m Markers) Lines(block string) ([]string, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	text := strings.TrimRight(block, "\r\n")
	if text == "" {
		return nil, fmt.Errorf("%w: 빈 블록", ErrInvalidBlock)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: 마커 줄이 부족함", ErrInvalidBlock)
	}
	if !strings.Contains(lines[0], m.Start) {
		return nil, fmt.Errorf("%w: 첫 줄에 시작 마커 없음", ErrInvalidBlock)
	}
	last := len(lines) - 1
	if !strings.Contains(lines[last], m.End) {
		return nil, fmt.Errorf("%w: 마지막 줄에 종료 마커 없음", ErrInvalidBlock)
	}
	for i := 1; i < last; i++ {
		if strings.Contains(lines[i], m.Start) || strings.Contains(lines[i], m.End) {
			return nil, fmt.Errorf("%w: %d번째 줄에 마커가 중복됨", ErrInvalidBlock, i+1)
		}
	}
	return lines, nil
}

// Strip은 시작 마커 줄부터 다음 종료 마커 줄까지를 모든 발생 위치에서 제거한다.
// 블록 바로 위의 빈 구분 줄 하나도 함께 제거한다. 반환값은 남은 줄과 제거된 블록 수다.
func Strip(lines []string, m Markers) ([]string, int, error) {
	out := make([]string, 0, len(lines))
	removed := 0
	for i := 0; i < len(lines); i++ {
		if !strings.Contains(lines[i], m.Start) {
			out = append(out, lines[i])
			continue
		}
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j], m.End) {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, removed, fmt.Errorf("%w: %d번째 줄의 %q", ErrMalformedBlock, i+1, m.Start)
		}
		// separator written by Append
		if n := len(out); n > 0 && strings.TrimSpace(out[n-1]) == "" {
			out = out[:n-1]
		}
		removed++
		i = end
	}
	return out, removed, nil
}

// Append는 빈 구분 줄 하나를 두고 블록을 끝에 붙인다. 남은 내용이 없으면 구분 줄은 생략한다.
func Append(lines, block []string) []string {
	out := make([]string, 0, len(lines)+len(block)+1)
	out = append(out, lines...)
	if len(out) > 0 {
		out = append(out, "")
	}
	return append(out, block...)
}

// Find는 첫 번째 블록의 줄 범위를 반환한다. 블록이 없으면 ok가 false다.
func Find(lines []string, m Markers) (start, end int, ok bool, err error) {
	for i, l := range lines {
		if !strings.Contains(l, m.Start) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j], m.End) {
				return i, j, true, nil
			}
		}
		return 0, 0, false, fmt.Errorf("%w: %d번째 줄의 %q", ErrMalformedBlock, i+1, m.Start)
	}
	return 0, 0, false, nil
}
