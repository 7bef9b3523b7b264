package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hbjs97/uvsync/internal/shell"
)

func (a *App) newHookCmd() *cobra.Command {
	var (
		shellName string
		noBase    bool
	)
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "셸 하나의 hook 블록을 출력한다",
		Long: `시작 파일에 쓰이는 블록을 파일을 수정하지 않고 표준 출력에 쓴다.
예: eval "$(uvsync hook --shell bash)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHook(cmd.OutOrStdout(), shellName, noBase)
		},
	}
	cmd.Flags().StringVar(&shellName, "shell", "", "대상 셸 (기본값: $SHELL에서 감지)")
	cmd.Flags().BoolVar(&noBase, "no-base", false, "base 환경이 활성일 때는 동기화하지 않는다")
	return cmd
}

func (a *App) runHook(out io.Writer, shellName string, noBase bool) error {
	if shellName == "" {
		shellName = shell.Detect(a.Env)
		if shellName == "" {
			return fmt.Errorf("cli.hook: 셸을 감지하지 못했습니다. --shell을 지정하세요")
		}
	}
	d, ok := shell.Lookup(shellName)
	if !ok {
		return fmt.Errorf("cli.hook: 지원하지 않는 셸: %s", shellName)
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.Options()
	if noBase {
		opts.ExcludeBase = true
	}

	text, err := d.Render(opts)
	if err != nil {
		return fmt.Errorf("cli.hook: %w", err)
	}
	_, err = io.WriteString(out, text)
	return err
}
