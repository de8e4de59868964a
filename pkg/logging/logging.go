package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the logger handed to the emulator. Structured output emits
// raw JSON lines, otherwise a console writer formats for humans. A nil
// out falls back to stderr.
func New(out io.Writer, debug bool, structured bool) zerolog.Logger {
	var level zerolog.Level
	if debug {
		level = zerolog.DebugLevel
	} else {
		level = zerolog.InfoLevel
	}

	if out == nil {
		out = os.Stderr
	}

	var mainWriter io.Writer
	if structured {
		mainWriter = out
		zerolog.TimeFieldFormat = time.RFC1123Z
	} else {
		mainWriter = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC1123Z}
	}

	return zerolog.New(mainWriter).Level(level).With().Timestamp().Logger()
}
