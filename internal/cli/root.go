// Package cli implements the stacklayout command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/coral-mesh/stacklayout/internal/layout"
	"github.com/coral-mesh/stacklayout/pkg/version"
)

// NewRootCmd builds the stacklayout command tree. Running it without a
// subcommand prints the layout report.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "stacklayout",
		Short: "Report and verify the memory layout of the stack-trace event record",
		Long: `Report the byte size and offset of every field of the record shared between
the BPF stack sampler and its user-space reader, and verify that both builds
agree on it.

The record crosses the kernel/user boundary as raw ring-buffer memory, so the
two sides must lay it out identically. The report format is the one printed by
bpf/get_size.c:

  <field>: size = <N>, offset = <N>

Examples:
  # Layout for the host ABI
  stacklayout

  # Layout as the BPF target sees it
  stacklayout report --abi bpfel

  # Compare against the C reporter's output
  stacklayout verify --reference stacktrace_event.layout

  # Compare against the BTF in the compiled BPF object
  stacklayout btf --object profile_bpfel.o`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, sourceDescriptor)
		},
	}

	opts.register(rootCmd)

	rootCmd.AddCommand(newReportCmd(opts))
	rootCmd.AddCommand(newVerifyCmd(opts))
	rootCmd.AddCommand(newBTFCmd(opts))
	rootCmd.AddCommand(newFingerprintCmd(opts))
	rootCmd.AddCommand(newABIsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("stacklayout version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s (%s)\n", version.GoVersion, version.Platform())
			host := layout.Host()
			cmd.Printf("Host ABI: %s (max align %d, %s)\n", host.Name, host.MaxAlign, host.ByteOrder)
		},
	}
}

func newABIsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abis",
		Short: "List the known target ABIs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			host := layout.Host()
			cmd.Printf("host (%s, max align %d, %s)\n", host.Name, host.MaxAlign, host.ByteOrder)
			for _, name := range layout.ABINames() {
				abi, _ := layout.LookupABI(name)
				cmd.Printf("%s (max align %d, %s)\n", abi.Name, abi.MaxAlign, abi.ByteOrder)
			}
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
