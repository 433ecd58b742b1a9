package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/monorkin/gplus-log-compiler/internal/config"
	"github.com/monorkin/gplus-log-compiler/internal/globals"
)

var forceInit bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long:  `Commands for creating and inspecting the settings file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long:  `Print the settings after applying the settings file, environment variables and command line flags.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		globals.MustBeInitialized()

		data, err := yaml.Marshal(globals.Settings)
		if err != nil {
			return fmt.Errorf("failed to format settings: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Args:  cobra.NoArgs,
	// The settings file may not exist yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settingsPath
		if path == "" {
			path = config.DefaultSettingsPath()
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("settings file already exists: %s (use --force to overwrite)", path)
		}

		if err := config.DefaultSettings().SaveTo(path); err != nil {
			return fmt.Errorf("failed to write settings: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default settings to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing settings file")
}
