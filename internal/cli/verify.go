package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/stacklayout/internal/errors"
	"github.com/coral-mesh/stacklayout/internal/layout"
)

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	var (
		reference string
		source    string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare the layout against a reference produced by the other build",
		Long: `Compare the layout against a text reference in report format, typically the
output of bpf/get_size.c compiled with the producer's toolchain.

Exits non-zero and prints every differing field when the layouts disagree.

Examples:
  cc -Ibpf -o get_size bpf/get_size.c && ./get_size > stacktrace_event.layout
  stacklayout verify --abi amd64 --reference stacktrace_event.layout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("reference") {
				s.cfg.Reference = reference
			}
			if s.cfg.Reference == "" {
				return fmt.Errorf("--reference is required")
			}

			report, err := s.report(source)
			if err != nil {
				return err
			}
			want, err := readReference(s, s.cfg.Reference)
			if err != nil {
				return err
			}

			s.logger.Debug().
				Str("reference", s.cfg.Reference).
				Int("reference_fields", len(want)).
				Int("fields", len(report.Fields)).
				Msg("Comparing layouts")

			result := layout.Compare(want, report.Fields)
			subject := fmt.Sprintf("%s (%s) matches %s", report.Record, report.ABI, s.cfg.Reference)
			if result != nil {
				s.logger.Warn().Err(result).Str("reference", s.cfg.Reference).Msg("Layout mismatch")
				subject = fmt.Sprintf("%s (%s) vs %s", report.Record, report.ABI, s.cfg.Reference)
			}
			return renderResult(cmd.OutOrStdout(), subject, len(report.Fields), result)
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "Reference layout file in report format")
	cmd.Flags().StringVar(&source, "source", sourceDescriptor, "Layout source: descriptor or go")

	return cmd
}

func readReference(s *session, path string) ([]layout.FieldLayout, error) {
	//nolint:gosec // G304: Path is chosen by the operator.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference: %w", err)
	}
	defer errors.DeferClose(s.logger, f, "failed to close reference")

	fields, err := layout.ParseText(f)
	if err != nil {
		return nil, fmt.Errorf("parse reference %s: %w", path, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("reference %s lists no fields", path)
	}
	return fields, nil
}
