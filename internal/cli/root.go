package cli

import (
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/hbjs97/uvsync/internal/cmdexec"
	"github.com/hbjs97/uvsync/internal/config"
	"github.com/hbjs97/uvsync/internal/logging"
	"github.com/hbjs97/uvsync/internal/setup"
	"github.com/hbjs97/uvsync/internal/shell"
)

// App은 CLI 명령이 공유하는 의존성이다. 비어 있는 필드는 실행 환경의 기본값을 쓴다.
type App struct {
	Commander cmdexec.Commander
	CfgPath   string
	Fs        afero.Fs
	Env       shell.Env
	GOOS      string
	Forms     setup.FormRunner
	// Interactive가 nil이면 stdin이 터미널인지로 판단한다.
	Interactive func() bool

	verbosity int
	logger    zerolog.Logger
}

// NewApp은 실제 파일시스템과 os/exec를 쓰는 App을 만든다.
func NewApp() *App {
	return &App{
		Commander: &cmdexec.RealCommander{},
		Fs:        afero.NewOsFs(),
		Env:       shell.DefaultEnv(),
		GOOS:      runtime.GOOS,
		Forms:     &setup.HuhFormRunner{},
	}
}

// NewRootCmd는 uvsync CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	a.defaults()

	cmd := &cobra.Command{
		Use:          "uvsync",
		Short:        "conda 환경을 UV_PROJECT_ENVIRONMENT에 동기화하는 셸 hook 관리자",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = logging.Setup(a.verbosity, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", a.CfgPath, "설정 파일 경로")
	cmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "상세 출력 (-vv, -vvv로 단계 증가)")

	cmd.AddCommand(
		a.newInstallCmd(),
		a.newUninstallCmd(),
		a.newStatusCmd(),
		a.newHookCmd(),
		a.newDoctorCmd(),
		a.newConfigCmd(),
	)
	return cmd
}

func (a *App) defaults() {
	if a.Commander == nil {
		a.Commander = &cmdexec.RealCommander{}
	}
	if a.CfgPath == "" {
		a.CfgPath = config.DefaultPath()
	}
	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}
	if a.Env.Getenv == nil {
		a.Env = shell.DefaultEnv()
	}
	if a.GOOS == "" {
		a.GOOS = runtime.GOOS
	}
	if a.Forms == nil {
		a.Forms = &setup.HuhFormRunner{}
	}
	if a.Interactive == nil {
		a.Interactive = func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		}
	}
	a.logger = zerolog.Nop()
}

// loadConfig는 설정을 읽는다.
func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.Fs, a.CfgPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("path", a.CfgPath).Msg("설정 로드")
	return cfg, nil
}

// installer는 cfg 기준으로 setup.Installer를 만든다.
func (a *App) installer(cfg *config.Config) (*setup.Installer, error) {
	dialects, err := cfg.SelectDialects(a.GOOS)
	if err != nil {
		return nil, err
	}
	return &setup.Installer{
		Fs:       a.Fs,
		Dialects: dialects,
		Options:  cfg.Options(),
		Env:      a.Env,
		Paths:    cfg.Paths,
		Logger:   logging.For(a.logger, "installer"),
	}, nil
}
