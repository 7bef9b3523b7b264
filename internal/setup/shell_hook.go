package setup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/hbjs97/uvsync/internal/block"
	"github.com/hbjs97/uvsync/internal/shell"
)

// InstallShellHook은 rcPath에 dialect의 hook 블록을 설치한다.
// 기존 블록은 교체되고, 반환되는 Action은 설치 전 블록 상태로 결정된다.
func InstallShellHook(fsys afero.Fs, d shell.Dialect, rcPath string, opts shell.Options) (Action, error) {
	rendered, err := d.Render(opts)
	if err != nil {
		return ActionFailed, fmt.Errorf("setup.InstallShellHook: %w", err)
	}

	found, err := block.Inspect(fsys, rcPath, d.Markers)
	if err != nil {
		return ActionFailed, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	action := ActionInstalled
	if found.Present {
		action = ActionUpdated
		if found.Count == 1 && found.Text == normalize(rendered) {
			action = ActionUnchanged
		}
	}

	if err := block.Inject(fsys, rcPath, d.Markers, rendered); err != nil {
		return ActionFailed, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	return action, nil
}

// UninstallShellHook은 rcPath에서 dialect의 hook 블록을 제거한다.
func UninstallShellHook(fsys afero.Fs, d shell.Dialect, rcPath string) (Action, error) {
	removed, err := block.Remove(fsys, rcPath, d.Markers)
	if err != nil {
		return ActionFailed, fmt.Errorf("setup.UninstallShellHook: %w", err)
	}
	if !removed {
		return ActionAbsent, nil
	}
	return ActionRemoved, nil
}

// CheckShellHook은 rcPath에 설치된 hook을 현재 설정으로 만든 블록과 비교한다. 파일은 수정하지 않는다.
func CheckShellHook(fsys afero.Fs, d shell.Dialect, rcPath string, opts shell.Options) Report {
	report := Report{Dialect: d.Name, Path: rcPath}

	rendered, err := d.Render(opts)
	if err != nil {
		report.State = StateError
		report.Err = fmt.Errorf("setup.CheckShellHook: %w", err)
		return report
	}

	found, err := block.Inspect(fsys, rcPath, d.Markers)
	switch {
	case errors.Is(err, block.ErrMalformedBlock):
		report.State = StateMalformed
		report.Err = err
		return report
	case err != nil:
		report.State = StateError
		report.Err = err
		return report
	}

	report.Line = found.Line
	report.Count = found.Count
	switch {
	case !found.Exists:
		report.State = StateMissingFile
	case !found.Present:
		report.State = StateAbsent
	case found.Count == 1 && found.Text == normalize(rendered):
		report.State = StateCurrent
	default:
		report.State = StateStale
	}
	return report
}

// normalize는 렌더링된 블록을 Inspect가 돌려주는 형태("\n" 연결, 끝 줄바꿈 없음)로 맞춘다.
func normalize(rendered string) string {
	return strings.ReplaceAll(strings.TrimRight(rendered, "\r\n"), "\r\n", "\n")
}
