package setup

import (
	"errors"

	"github.com/hbjs97/uvsync/internal/config"
)

// ErrPartialFailure는 일부 dialect의 hook 설치/제거가 실패했을 때 반환된다.
var ErrPartialFailure = errors.New("일부 셸 처리 실패")

// Action은 dialect 하나에 대해 수행된 작업이다.
type Action string

const (
	ActionInstalled Action = "installed"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
	ActionRemoved   Action = "removed"
	ActionAbsent    Action = "absent"
	ActionFailed    Action = "failed"
)

// Result는 dialect 하나의 Install/Uninstall 결과다.
type Result struct {
	Dialect string
	Path    string
	Action  Action
	Err     error
}

// State는 시작 파일에 설치된 hook의 상태다.
type State string

const (
	// StateMissingFile은 시작 파일이 없는 상태다.
	StateMissingFile State = "missing-file"
	// StateAbsent는 파일은 있지만 블록이 없는 상태다.
	StateAbsent State = "absent"
	// StateCurrent는 블록이 하나 있고 현재 설정으로 만든 블록과 같은 상태다.
	StateCurrent State = "current"
	// StateStale은 블록이 있지만 내용이 다르거나 중복된 상태다.
	StateStale State = "stale"
	// StateMalformed는 종료 마커 없는 시작 마커가 있는 상태다.
	StateMalformed State = "malformed"
	// StateError는 파일을 읽지 못한 상태다.
	StateError State = "error"
)

// Report는 dialect 하나의 Status 결과다.
type Report struct {
	Dialect string
	Path    string
	State   State
	// Line은 첫 번째 블록의 시작 줄 번호다. 블록이 없으면 0이다.
	Line int
	// Count는 파일에 있는 블록 수다.
	Count int
	Err   error
}

// FormRunner는 TUI 폼 실행을 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunConfirm은 확인 프롬프트를 표시한다.
	RunConfirm(message string) (bool, error)

	// RunConfigForm은 설정 입력 폼을 실행한다. defaults 값을 초기값으로 표시한다.
	// available은 선택 가능한 dialect 이름 목록이다.
	RunConfigForm(defaults *config.Config, available []string) (*config.Config, error)
}
