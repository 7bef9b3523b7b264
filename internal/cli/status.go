package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hbjs97/uvsync/internal/setup"
	"github.com/hbjs97/uvsync/internal/ui"
)

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "셸별 hook 설치 상태를 표시한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd.OutOrStdout())
		},
	}
}

func (a *App) runStatus(out io.Writer) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	inst, err := a.installer(cfg)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(out)
	tbl := ui.NewTable(out, "SHELL", "PATH", "STATE")
	for _, r := range inst.Status() {
		state := string(r.State)
		if r.Line > 0 {
			state = fmt.Sprintf("%s (line %d)", state, r.Line)
		}
		tbl.Row(r.Dialect, r.Path, p.Label(stateLevel(r.State), state))
	}
	if err := tbl.Flush(); err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}
	return nil
}

func stateLevel(s setup.State) ui.Level {
	switch s {
	case setup.StateCurrent:
		return ui.LevelOK
	case setup.StateMalformed, setup.StateError:
		return ui.LevelFail
	default:
		return ui.LevelWarn
	}
}
