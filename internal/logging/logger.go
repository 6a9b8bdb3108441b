// Package logging configures the zerolog logger used across stacklayout.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config contains logger configuration.
type Config struct {
	// Level sets the logging level (trace, debug, info, warn, error).
	Level string
	// Pretty enables human-readable console output.
	Pretty bool
	// Output sets the output writer (defaults to os.Stderr, so that stdout
	// carries only the layout report).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Pretty: true,
		Output: os.Stderr,
	}
}

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(name string) zerolog.Level {
	switch name {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new zerolog logger with the given configuration.
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
			NoColor:    true,
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// NewWithComponent creates a logger with a component field for structured logging.
func NewWithComponent(cfg Config, component string) zerolog.Logger {
	return New(cfg).With().Str("component", component).Logger()
}
