package cli

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coral-mesh/stacklayout/internal/config"
	"github.com/coral-mesh/stacklayout/internal/errors"
	"github.com/coral-mesh/stacklayout/internal/event"
	"github.com/coral-mesh/stacklayout/internal/layout"
	"github.com/coral-mesh/stacklayout/internal/logging"
)

// record is a boundary-crossing record known to the reporter.
type record struct {
	descriptor layout.Descriptor
	goType     reflect.Type
}

var records = map[string]record{
	event.RecordName: {
		descriptor: event.Descriptor,
		goType:     reflect.TypeOf(event.StacktraceEvent{}),
	},
}

func recordNames() []string {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	abi        string
	record     string
	logLevel   string
}

func (o *globalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	addGlobalFlags(flags, o)

	errors.Must(cmd.RegisterFlagCompletionFunc("abi", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return append([]string{"host"}, layout.ABINames()...), cobra.ShellCompDirectiveNoFileComp
	}), "register abi completion")
	errors.Must(cmd.RegisterFlagCompletionFunc("record", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return recordNames(), cobra.ShellCompDirectiveNoFileComp
	}), "register record completion")
}

func addGlobalFlags(flags *pflag.FlagSet, o *globalOptions) {
	flags.StringVar(&o.configPath, "config", "", "Config file (default $STACKLAYOUT_CONFIG or ./stacklayout.yaml)")
	flags.StringVar(&o.abi, "abi", "", "Target ABI: host, 386, amd64, arm64, bpfeb, bpfel")
	flags.StringVar(&o.record, "record", "", "Record to report")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

// session is the resolved state a command runs with.
type session struct {
	cfg    *config.Config
	abi    layout.ABI
	record record
	logger zerolog.Logger
}

// load applies the config layers, then any flags that were set explicitly.
func (o *globalOptions) load(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(config.ResolvePath(o.configPath), o.configPath != "")
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("abi") {
		cfg.ABI = o.abi
	}
	if flags.Changed("record") {
		cfg.Record = o.record
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	abi, err := layout.LookupABI(cfg.ABI)
	if err != nil {
		return nil, err
	}
	rec, ok := records[cfg.Record]
	if !ok {
		return nil, fmt.Errorf("unknown record %q (known: %v)", cfg.Record, recordNames())
	}

	logger := logging.NewWithComponent(logging.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
		Output: cmd.ErrOrStderr(),
	}, cmd.Name())

	logger.Debug().
		Str("abi", abi.Name).
		Int("max_align", abi.MaxAlign).
		Str("record", cfg.Record).
		Msg("Configuration loaded")

	return &session{cfg: cfg, abi: abi, record: rec, logger: logger}, nil
}
