package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/stacklayout/internal/layout"
)

const (
	sourceDescriptor = "descriptor"
	sourceGo         = "go"
)

func newReportCmd(opts *globalOptions) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the size and offset of every field",
		Long: `Print one line per field, in declaration order:

  <field>: size = <N>, offset = <N>

With --source descriptor (the default) the layout is computed from the record
descriptor for the selected ABI. With --source go it is read from the layout
the Go compiler chose for the Go mirror of the record, which is only defined for
the host ABI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, source)
		},
	}

	cmd.Flags().StringVar(&source, "source", sourceDescriptor, "Layout source: descriptor or go")

	return cmd
}

func runReport(cmd *cobra.Command, opts *globalOptions, source string) error {
	s, err := opts.load(cmd)
	if err != nil {
		return err
	}

	report, err := s.report(source)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("record", report.Record).
		Str("abi", report.ABI).
		Int("size", report.Size).
		Int("align", report.Align).
		Msg("Layout computed")

	return report.WriteText(cmd.OutOrStdout())
}

// report produces the layout of the configured record from source.
func (s *session) report(source string) (layout.Report, error) {
	name := s.record.descriptor.Name()

	switch source {
	case sourceDescriptor, "":
		return layout.Compute(s.record.descriptor, s.abi), nil

	case sourceGo:
		if s.abi != layout.Host() {
			return layout.Report{}, fmt.Errorf("--source go reports the host layout only, not %s", s.abi.Name)
		}
		report, err := layout.ReportOf(s.record.goType, name)
		if err != nil {
			return layout.Report{}, fmt.Errorf("read Go layout of %s: %w", name, err)
		}
		return report, nil

	default:
		return layout.Report{}, fmt.Errorf("unknown source %q (want %s or %s)", source, sourceDescriptor, sourceGo)
	}
}
