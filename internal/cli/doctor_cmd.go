package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hbjs97/uvsync/internal/config"
	"github.com/hbjs97/uvsync/internal/doctor"
	"github.com/hbjs97/uvsync/internal/ui"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "환경 설정을 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *App) runDoctor(ctx context.Context, out io.Writer) error {
	p := ui.NewPrinter(out)

	cfg, err := a.loadConfig()
	if err != nil {
		printDiagResults(out, p, []doctor.DiagResult{{
			Name:    "config",
			Status:  doctor.StatusFail,
			Message: err.Error(),
			Fix:     "uvsync config init --force 또는 설정 파일 확인",
		}})
		cfg = config.Default()
	}

	inst, err := a.installer(cfg)
	if err != nil {
		return err
	}
	results := doctor.RunAll(ctx, a.Commander, a.Env.Getenv, cfg.Options(), inst.Status())
	printDiagResults(out, p, results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(out io.Writer, p *ui.Printer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(out, "  [%s] %s: %s\n", p.Icon(statusLevel(r.Status)), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(out, "      %s\n", p.Muted("Fix: "+r.Fix))
		}
	}
}

func statusLevel(s doctor.Status) ui.Level {
	switch s {
	case doctor.StatusWarn:
		return ui.LevelWarn
	case doctor.StatusFail:
		return ui.LevelFail
	default:
		return ui.LevelOK
	}
}
