package cli

import (
	"github.com/hbjs97/uvsync/internal/block"
	"github.com/hbjs97/uvsync/internal/config"
	"github.com/hbjs97/uvsync/internal/setup"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrPartialFailure는 일부 셸의 hook 처리가 실패했을 때의 sentinel error다.
	ErrPartialFailure = setup.ErrPartialFailure
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrMalformedBlock는 시작 파일에 종료 마커 없는 블록이 있을 때의 sentinel error다.
	ErrMalformedBlock = block.ErrMalformedBlock
	// ErrPermissionDenied는 시작 파일에 쓸 권한이 없을 때의 sentinel error다.
	ErrPermissionDenied = block.ErrPermissionDenied
)
