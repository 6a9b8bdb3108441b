package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coral-mesh/stacklayout/internal/constants"
	"github.com/coral-mesh/stacklayout/internal/layout"
	"github.com/coral-mesh/stacklayout/internal/layout/btflayout"
)

func newBTFCmd(opts *globalOptions) *cobra.Command {
	var (
		object     string
		structName string
	)

	cmd := &cobra.Command{
		Use:   "btf",
		Short: "Compare the layout against the BTF of the compiled BPF object",
		Long: `Compare the layout against the struct definition clang recorded in the BTF
of the compiled BPF object. This is the producer's own view of the record, so
no C reporter needs to be built. The record size is compared too.

The layout is computed for the bpfel ABI unless --abi is given.

Examples:
  stacklayout btf --object internal/probe/probe_bpfel.o
  stacklayout btf --object probe_bpfeb.o --abi bpfeb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("abi") && s.cfg.ABI == constants.DefaultABI {
				s.abi = layout.BPFEL
			}
			if cmd.Flags().Changed("object") {
				s.cfg.Object = object
			}
			if s.cfg.Object == "" {
				return fmt.Errorf("--object is required")
			}
			if structName == "" {
				structName = s.record.descriptor.Name()
			}

			spec, err := btflayout.Load(s.cfg.Object)
			if err != nil {
				return err
			}
			want, err := btflayout.StructReport(spec, structName, s.abi.Name)
			if err != nil {
				return fmt.Errorf("read %s from %s: %w", structName, s.cfg.Object, err)
			}

			got := layout.Compute(s.record.descriptor, s.abi)

			s.logger.Debug().
				Str("object", s.cfg.Object).
				Str("struct", structName).
				Int("btf_size", want.Size).
				Int("size", got.Size).
				Msg("Comparing against BTF")

			result := layout.CompareReports(want, got)
			subject := fmt.Sprintf("%s (%s) matches BTF struct %s in %s", got.Record, got.ABI, structName, s.cfg.Object)
			if result != nil {
				s.logger.Warn().Err(result).Str("object", s.cfg.Object).Msg("Layout mismatch")
				subject = fmt.Sprintf("%s (%s) vs BTF struct %s in %s", got.Record, got.ABI, structName, s.cfg.Object)
			}
			return renderResult(cmd.OutOrStdout(), subject, len(got.Fields), result)
		},
	}

	cmd.Flags().StringVar(&object, "object", "", "Compiled BPF ELF object carrying BTF")
	cmd.Flags().StringVar(&structName, "struct", "", "BTF struct name (default: the record name)")

	return cmd
}
