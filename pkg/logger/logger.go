// Package logger configures the process-wide zerolog setup.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a structured logger for the given component. In development
// the output is human-readable; everywhere else it is JSON lines.
func New(component, env string) zerolog.Logger {
	var logger zerolog.Logger
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.With().Timestamp().Str("component", component).Logger()
}
