package cli

import (
	"errors"
)

// ExitCode는 uvsync의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러 또는 잘못된 인자다.
	ExitGeneral ExitCode = 1
	// ExitPartialFailure는 일부 셸의 hook 처리 실패다.
	ExitPartialFailure ExitCode = 2
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 5
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrPartialFailure):
		return ExitPartialFailure
	default:
		return ExitGeneral
	}
}
