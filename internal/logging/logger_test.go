package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		logged  []string
		dropped []string
	}{
		{level: "trace", logged: []string{"trace message", "debug message", "info message"}},
		{level: "debug", logged: []string{"debug message", "info message"}, dropped: []string{"trace message"}},
		{level: "info", logged: []string{"info message", "warn message"}, dropped: []string{"debug message"}},
		{level: "warn", logged: []string{"warn message"}, dropped: []string{"info message"}},
		{level: "error", logged: []string{"error message"}, dropped: []string{"warn message"}},
		{level: "invalid", logged: []string{"info message"}, dropped: []string{"debug message"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Output: &buf})

			logger.Trace().Msg("trace message")
			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")
			logger.Warn().Msg("warn message")
			logger.Error().Msg("error message")

			output := buf.String()
			for _, msg := range tt.logged {
				if !strings.Contains(output, msg) {
					t.Errorf("Expected %q to be logged at %s level", msg, tt.level)
				}
			}
			for _, msg := range tt.dropped {
				if strings.Contains(output, msg) {
					t.Errorf("Expected %q to NOT be logged at %s level", msg, tt.level)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	levels := map[string]zerolog.Level{
		"trace": zerolog.TraceLevel,
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
	}

	for name, want := range levels {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "verify")

	logger.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, `"component":"verify"`) {
		t.Errorf("Expected component field in %q", output)
	}
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, Output: &buf})

	logger.Info().Str("record", "stacktrace_event").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") || !strings.Contains(output, "record=stacktrace_event") {
		t.Errorf("Unexpected pretty output %q", output)
	}
}

func TestNew_DefaultOutput(t *testing.T) {
	// Nil output should fall back to stderr without panicking.
	logger := New(Config{Level: "error"})
	logger.Debug().Msg("test message")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "warn" {
		t.Errorf("Expected default level 'warn', got '%s'", cfg.Level)
	}
	if !cfg.Pretty {
		t.Error("Expected default pretty to be true")
	}
}
