package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide structured logger. Development
// environments get a human-readable console writer; everything else emits
// newline-delimited JSON suitable for log aggregation.
func NewLogger(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	var writer = os.Stdout
	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}
	return zerolog.New(writer).With().Timestamp().Logger()
}
