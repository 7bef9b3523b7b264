package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hbjs97/uvsync/internal/setup"
	"github.com/hbjs97/uvsync/internal/ui"
)

func (a *App) newInstallCmd() *cobra.Command {
	var noBase bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "모든 셸 시작 파일에 hook을 설치한다",
		Long: `지원하는 모든 셸의 시작 파일에 uvsync 블록을 설치한다.
기존 블록은 교체되고, 블록 밖의 내용은 그대로 유지된다.
한 셸이 실패해도 나머지 셸은 계속 처리하며, 실패가 있으면 종료 코드 2를 반환한다.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInstall(cmd.OutOrStdout(), cmd.ErrOrStderr(), noBase)
		},
	}
	cmd.Flags().BoolVar(&noBase, "no-base", false, "base 환경이 활성일 때는 동기화하지 않는다")
	return cmd
}

func (a *App) runInstall(out, errOut io.Writer, noBase bool) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if noBase {
		cfg.ExcludeBase = true
	}
	inst, err := a.installer(cfg)
	if err != nil {
		return err
	}

	results := inst.Install()
	if err := printResults(out, errOut, results); err != nil {
		return fmt.Errorf("cli.install: %w", err)
	}
	return setup.Failed(results)
}

// printResults는 dialect별 결과를 표로 출력하고, 실패 원인은 errOut에 쓴다.
func printResults(out, errOut io.Writer, results []setup.Result) error {
	p := ui.NewPrinter(out)
	tbl := ui.NewTable(out, "SHELL", "PATH", "RESULT")
	for _, r := range results {
		tbl.Row(r.Dialect, r.Path, p.Label(actionLevel(r.Action), string(r.Action)))
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	ep := ui.NewPrinter(errOut)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "%s %s: %v\n", ep.Icon(ui.LevelFail), r.Dialect, r.Err)
		}
	}
	return nil
}

func actionLevel(a setup.Action) ui.Level {
	if a == setup.ActionFailed {
		return ui.LevelFail
	}
	return ui.LevelOK
}
