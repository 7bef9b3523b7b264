package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/hbjs97/uvsync/internal/config"
	"github.com/hbjs97/uvsync/internal/shell"
)

func (a *App) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "설정 파일을 관리한다",
	}
	cmd.AddCommand(a.newConfigInitCmd(), a.newConfigShowCmd())
	return cmd
}

func (a *App) newConfigInitCmd() *cobra.Command {
	var force, useDefaults bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "설정 파일을 생성한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigInit(cmd.OutOrStdout(), force, useDefaults)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "기존 설정 파일을 덮어쓴다")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "입력 폼 없이 기본값으로 생성한다")
	return cmd
}

func (a *App) runConfigInit(out io.Writer, force, useDefaults bool) error {
	_, err := a.Fs.Stat(a.CfgPath)
	switch {
	case err == nil && !force:
		return fmt.Errorf("cli.config: 설정 파일이 이미 존재합니다: %s (--force로 덮어쓰기)", a.CfgPath)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("cli.config: %w", err)
	}

	cfg := config.Default()
	if !useDefaults && a.Interactive() {
		available := make([]string, 0)
		for _, d := range shell.ForOS(a.GOOS) {
			available = append(available, d.Name)
		}
		cfg, err = a.Forms.RunConfigForm(cfg, available)
		if err != nil {
			return err
		}
	}

	if err := config.Save(a.Fs, a.CfgPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "설정 파일이 생성되었습니다: %s\n", a.CfgPath)
	fmt.Fprintln(out, "uvsync install로 hook을 설치하세요.")
	return nil
}

func (a *App) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "기본값, 설정 파일, 환경변수를 병합한 최종 설정을 출력한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", a.CfgPath)
			if err := toml.NewEncoder(out).Encode(cfg); err != nil {
				return fmt.Errorf("cli.config: %w", err)
			}
			return nil
		},
	}
}
