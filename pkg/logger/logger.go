package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger tagged with the service name.
// LOG_LEVEL overrides the default info level.
func New(service string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
