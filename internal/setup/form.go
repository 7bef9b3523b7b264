package setup

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"

	"github.com/hbjs97/uvsync/internal/config"
)

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
type HuhFormRunner struct{}

var _ FormRunner = (*HuhFormRunner)(nil)

var varNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RunConfirm은 확인 프롬프트를 표시한다.
func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("setup.RunConfirm: %w", err)
	}
	return confirm, nil
}

// RunConfigForm은 설정 입력 폼을 실행한다.
func (h *HuhFormRunner) RunConfigForm(defaults *config.Config, available []string) (*config.Config, error) {
	cfg := config.Default()
	if defaults != nil {
		*cfg = *defaults
	}

	varValidate := func(s string) error {
		if !varNameRegex.MatchString(s) {
			return fmt.Errorf("환경변수 이름 형식이 아닙니다")
		}
		return nil
	}

	selected := make(map[string]bool, len(cfg.Dialects))
	for _, d := range cfg.Dialects {
		selected[d] = true
	}
	options := make([]huh.Option[string], len(available))
	for i, name := range available {
		options[i] = huh.NewOption(name, name).Selected(len(cfg.Dialects) == 0 || selected[name])
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("hook을 설치할 셸").
				Options(options...).
				Value(&cfg.Dialects).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return fmt.Errorf("최소 1개 이상 선택해야 합니다")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("base 환경에서는 동기화하지 않을까요?").
				Value(&cfg.ExcludeBase),
		),
		huh.NewGroup(
			huh.NewInput().Title("동기화할 변수").Value(&cfg.Variable).Validate(varValidate),
			huh.NewInput().Title("conda 환경 경로 변수").Value(&cfg.PrefixVar).Validate(varValidate),
			huh.NewInput().Title("conda 환경 이름 변수").Value(&cfg.NameVar).Validate(varValidate),
			huh.NewInput().Title("base 환경 이름").Value(&cfg.BaseName).Validate(huh.ValidateNotEmpty()),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("setup.RunConfigForm: %w", err)
	}

	// 전부 선택했으면 OS 기본 목록을 따르도록 비워 둔다
	if len(cfg.Dialects) == len(available) {
		cfg.Dialects = nil
	}
	return cfg, nil
}
