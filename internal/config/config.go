// Package config provides configuration loading for stacklayout.
//
// Configuration is layered: defaults, then the YAML file, then environment
// variables. Command-line flags are applied last by the CLI.
package config

import (
	"fmt"

	"github.com/coral-mesh/stacklayout/internal/constants"
	"github.com/coral-mesh/stacklayout/internal/layout"
)

// Config is the stacklayout configuration.
type Config struct {
	// ABI selects the target the report is computed for ("host", "amd64", ...).
	ABI string `yaml:"abi" env:"STACKLAYOUT_ABI"`

	// Record names the record to report. It is also the struct name looked up
	// in BTF.
	Record string `yaml:"record" env:"STACKLAYOUT_RECORD"`

	// Reference is the path of a text layout produced by the other build.
	Reference string `yaml:"reference,omitempty" env:"STACKLAYOUT_REFERENCE"`

	// Object is the path of the compiled BPF object carrying BTF.
	Object string `yaml:"object,omitempty" env:"STACKLAYOUT_OBJECT"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"STACKLAYOUT_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"STACKLAYOUT_LOG_PRETTY"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ABI:    constants.DefaultABI,
		Record: constants.DefaultRecord,
		Logging: LoggingConfig{
			Level:  "warn",
			Pretty: true,
		},
	}
}

// Validate checks that the configured names resolve.
func (c *Config) Validate() error {
	if _, err := layout.LookupABI(c.ABI); err != nil {
		return fmt.Errorf("invalid abi: %w", err)
	}
	if c.Record == "" {
		return fmt.Errorf("record cannot be empty")
	}
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	return nil
}
