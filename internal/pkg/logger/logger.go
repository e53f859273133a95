package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Dev mode writes human readable console
// output; everything else writes JSON lines to stderr.
func New(mode, level string) zerolog.Logger {
	return newWithWriter(os.Stderr, mode, level)
}

func newWithWriter(w io.Writer, mode, level string) zerolog.Logger {
	out := w
	if mode == "dev" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}

// Nop returns a disabled logger for tests and tooling
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
