package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monorkin/gplus-log-compiler/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// Printing the version needs no settings
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
