package logging

import (
	"io"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05.000"

// New returns a console logger on w. Only warnings and errors are written
// unless debug is set.
func New(w io.Writer, debug bool, withColors bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: !withColors}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
