package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger for the given service. Output is JSON on
// stdout unless pretty is set, in which case a human-readable console
// writer is used.
func New(service string, pretty bool) zerolog.Logger {
	var logger zerolog.Logger

	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.With().
		Timestamp().
		Str("service", service).
		Logger()
}
