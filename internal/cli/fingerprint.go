package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFingerprintCmd(opts *globalOptions) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print a digest of the layout report",
		Long: `Print the xxh3 digest of the layout report as "<record> <abi> <digest>".

Two builds agree on the layout exactly when their report lines are identical,
so CI jobs can compare digests instead of full reports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			report, err := s.report(source)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %016x\n", report.Record, report.ABI, report.Fingerprint())
			return err
		},
	}

	cmd.Flags().StringVar(&source, "source", sourceDescriptor, "Layout source: descriptor or go")

	return cmd
}
