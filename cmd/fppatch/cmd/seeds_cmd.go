package cmd

import (
	"github.com/spf13/cobra"

	"fppatch/internal/seeds"
)

var (
	seedRoot    string
	seedTargets []string
)

// seedsCmd converts the CPU test-vector tables into fuzz corpus seeds.
var seedsCmd = &cobra.Command{
	Use:   "seeds [csv_file...]",
	Short: "Extract opcode seeds for the instruction and disassembler fuzzers",
	Long: `Reads test-vector CSV tables and writes, for each row holding an opcode
literal (0x followed by 1-8 hex digits), a 4-byte big-endian seed named
<table>-<row> into every target directory.

Without arguments the standard tables under --root are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := seeds.DefaultOptions(seedRoot)
		if len(args) > 0 {
			opts.Inputs = args
		}
		if len(seedTargets) > 0 {
			opts.Targets = seedTargets
		}

		n, err := seeds.Generate(cmd.Context(), opts, logger)
		if err != nil {
			return err
		}
		printReport(cmd, "wrote %d seeds", n)
		return nil
	},
}

func init() {
	seedsCmd.Flags().StringVar(&seedRoot, "root", ".", "source tree root holding cpu/ppc/test and seeds/")
	seedsCmd.Flags().StringSliceVar(&seedTargets, "target", nil, "seed output directory (repeatable, default: seeds/fuzz_ppc_insn and seeds/fuzz_ppc_disasm under --root)")
	rootCmd.AddCommand(seedsCmd)
}
