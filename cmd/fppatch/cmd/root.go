package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fppatch/internal/logging"
)

var (
	// Global flags
	verbose bool

	logger *zap.Logger

	reportStyle = lipgloss.NewStyle().Bold(true)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fppatch [source_file]",
	Short: "Mark single-precision results in generated FPU opcode handlers",
	Long: `fppatch scans a file of interpreter opcode handlers line by line, finds the
handlers that belong to the single-precision class and rewrites their
fpresult_update calls to pass the single-precision flag.

The file is overwritten in place. There is no undo; keep a copy or commit first.

Running fppatch with a file and no subcommand is the same as "fppatch patch".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runPatch(cmd, args)
	},
}

// printReport writes the human-readable result line to stdout.
func printReport(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), reportStyle.Render(fmt.Sprintf(format, a...)))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every detected function and rewritten line")
	addPatchFlags(rootCmd)
}
