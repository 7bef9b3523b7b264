// Package logging configures the zerolog logger used by uvsync commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level은 -v 횟수에 대응하는 로그 레벨이다. 0 warn, 1 info, 2 debug, 3 이상 trace.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New는 w에 사람이 읽는 형식으로 쓰는 logger를 만든다.
// w가 터미널이 아니면 색을 끈다.
func New(verbosity int, w io.Writer) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	logger := zerolog.New(console).Level(Level(verbosity)).With().Timestamp().Logger()
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Setup은 New로 만든 logger를 전역 logger로 설정하고 반환한다.
func Setup(verbosity int, w io.Writer) zerolog.Logger {
	logger := New(verbosity, w)
	log.Logger = logger
	logger.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
	return logger
}

// For는 component 필드가 붙은 하위 logger를 반환한다.
func For(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
