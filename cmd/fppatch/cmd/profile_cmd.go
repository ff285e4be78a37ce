package cmd

import (
	"github.com/spf13/cobra"

	"fppatch/internal/config"
)

// profileCmd writes the built-in profile so it can be edited and passed back with --config.
var profileCmd = &cobra.Command{
	Use:   "profile [output_file]",
	Short: "Write the built-in rewrite profile as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			data, err := config.Default().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return config.NewFileProfileStore(args[0]).Save(config.Default())
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
