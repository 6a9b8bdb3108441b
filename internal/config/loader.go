package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coral-mesh/stacklayout/internal/constants"
)

// ResolvePath returns the configuration file to read. An explicit path wins,
// then STACKLAYOUT_CONFIG, then stacklayout.yaml in the working directory.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if path := os.Getenv(constants.ConfigEnv); path != "" {
		return path
	}
	return constants.ConfigFile
}

// Load reads the configuration at path and applies environment overrides.
// A missing file yields the defaults. A file that was asked for explicitly
// must exist.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	//nolint:gosec // G304: Path is chosen by the operator.
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if cfg.ABI == "" {
		cfg.ABI = constants.DefaultABI
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
