// Package constants defines shared configuration constants.
package constants

const (
	// ConfigFile is the default configuration file name, looked up in the
	// working directory.
	ConfigFile = "stacklayout.yaml"

	// ConfigEnv overrides the configuration file path.
	ConfigEnv = "STACKLAYOUT_CONFIG"

	// DefaultABI is the ABI reports are computed for unless configured.
	DefaultABI = "host"

	// DefaultRecord is the record reported unless configured.
	DefaultRecord = "stacktrace_event"
)
