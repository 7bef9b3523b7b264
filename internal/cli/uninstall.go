package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hbjs97/uvsync/internal/setup"
)

// errNeedsConfirm은 확인 프롬프트를 띄울 수 없는 환경에서 --yes 없이 실행했을 때 반환된다.
var errNeedsConfirm = errors.New("비대화형 환경에서는 --yes가 필요합니다")

func (a *App) newUninstallCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "모든 셸 시작 파일에서 hook을 제거한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUninstall(cmd.OutOrStdout(), cmd.ErrOrStderr(), yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "확인 없이 제거")
	return cmd
}

func (a *App) runUninstall(out, errOut io.Writer, yes bool) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	inst, err := a.installer(cfg)
	if err != nil {
		return err
	}

	if !yes {
		if !a.Interactive() {
			return fmt.Errorf("cli.uninstall: %w", errNeedsConfirm)
		}
		names := make([]string, len(inst.Dialects))
		for i, d := range inst.Dialects {
			names[i] = d.Name
		}
		ok, err := a.Forms.RunConfirm(fmt.Sprintf("%d개 셸(%v)에서 uvsync hook을 제거할까요?", len(names), names))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "제거가 취소되었습니다.")
			return nil
		}
	}

	results := inst.Uninstall()
	if err := printResults(out, errOut, results); err != nil {
		return fmt.Errorf("cli.uninstall: %w", err)
	}
	return setup.Failed(results)
}
