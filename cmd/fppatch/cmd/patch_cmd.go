package cmd

import (
	"github.com/spf13/cobra"

	"fppatch/internal/config"
	"fppatch/internal/core"
)

var (
	profileFile  string
	showDiff     bool
	requireClean bool
)

// patchCmd rewrites one source file in place.
var patchCmd = &cobra.Command{
	Use:   "patch [source_file]",
	Short: "Rewrite fpresult_update calls in single-precision handlers",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatch,
}

func runPatch(cmd *cobra.Command, args []string) error {
	opts := core.Options{
		Profiles:     config.NewFileProfileStore(profileFile),
		RequireClean: requireClean,
		Logger:       logger,
	}
	if showDiff {
		opts.Diff = cmd.OutOrStdout()
	}

	report, err := core.Patch(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	printReport(cmd, "replacements: %d", report.Changed)
	return nil
}

func addPatchFlags(c *cobra.Command) {
	c.Flags().StringVarP(&profileFile, "config", "c", "", "YAML rewrite profile (default: built-in single-precision profile)")
	c.Flags().BoolVar(&showDiff, "diff", false, "print the rewritten lines")
	c.Flags().BoolVar(&requireClean, "require-clean", false, "refuse to rewrite a file with uncommitted changes")
}

func init() {
	addPatchFlags(patchCmd)
	rootCmd.AddCommand(patchCmd)
}
