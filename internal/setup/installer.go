package setup

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/hbjs97/uvsync/internal/shell"
)

// Installer는 dialect마다 hook 블록을 설치/제거/점검한다.
// 한 dialect가 실패해도 나머지 dialect는 계속 처리한다.
type Installer struct {
	Fs       afero.Fs
	Dialects []shell.Dialect
	Options  shell.Options
	Env      shell.Env
	// Paths는 dialect 이름별 시작 파일 경로 재정의다.
	Paths  map[string]string
	Logger zerolog.Logger
}

// Path는 dialect의 시작 파일 경로다. Paths에 값이 있으면 그 값을 쓴다.
func (i *Installer) Path(d shell.Dialect) string {
	if p := i.Paths[d.Name]; p != "" {
		return p
	}
	return d.RCPath(i.Env)
}

// Install은 모든 dialect의 시작 파일에 hook을 설치한다.
func (i *Installer) Install() []Result {
	results := make([]Result, 0, len(i.Dialects))
	for _, d := range i.Dialects {
		path := i.Path(d)
		log := i.Logger.With().Str("dialect", d.Name).Str("path", path).Logger()

		action, err := InstallShellHook(i.Fs, d, path, i.Options)
		if err != nil {
			log.Error().Err(err).Msg("hook 설치 실패")
		} else {
			log.Info().Str("action", string(action)).Msg("hook 설치")
		}
		results = append(results, Result{Dialect: d.Name, Path: path, Action: action, Err: err})
	}
	return results
}

// Uninstall은 모든 dialect의 시작 파일에서 hook을 제거한다.
func (i *Installer) Uninstall() []Result {
	results := make([]Result, 0, len(i.Dialects))
	for _, d := range i.Dialects {
		path := i.Path(d)
		log := i.Logger.With().Str("dialect", d.Name).Str("path", path).Logger()

		action, err := UninstallShellHook(i.Fs, d, path)
		if err != nil {
			log.Error().Err(err).Msg("hook 제거 실패")
		} else {
			log.Info().Str("action", string(action)).Msg("hook 제거")
		}
		results = append(results, Result{Dialect: d.Name, Path: path, Action: action, Err: err})
	}
	return results
}

// Status는 모든 dialect의 hook 상태를 조회한다.
func (i *Installer) Status() []Report {
	reports := make([]Report, 0, len(i.Dialects))
	for _, d := range i.Dialects {
		r := CheckShellHook(i.Fs, d, i.Path(d), i.Options)
		i.Logger.Debug().Str("dialect", d.Name).Str("path", r.Path).Str("state", string(r.State)).Msg("hook 상태")
		reports = append(reports, r)
	}
	return reports
}

// Failed는 실패한 결과를 하나의 에러로 묶는다. 실패가 없으면 nil이다.
// 반환된 에러는 ErrPartialFailure와 각 dialect의 원인 에러를 모두 감싼다.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s (%s): %w", r.Dialect, r.Path, r.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d/%d: %w", ErrPartialFailure, len(errs), len(results), errors.Join(errs...))
}
