package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/monorkin/gplus-log-compiler/internal/compiler"
	"github.com/monorkin/gplus-log-compiler/internal/globals"
	"github.com/monorkin/gplus-log-compiler/internal/report"
)

// coreCmd represents the core command
var coreCmd = &cobra.Command{
	Use:     "core",
	Aliases: []string{"c", "cores"},
	Short:   "Inspect cores found in the update logs",
	Long:    `Commands for inspecting the merged core records without writing any report.`,
}

// coreListCmd represents the core list command
var coreListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all cores",
	Long:    `List every core found in the update logs with its serial number, MAC address, firmware versions and the date of the log the versions were taken from.`,
	Args:    cobra.NoArgs,
	RunE:    runCoreList,
}

func runCoreList(cmd *cobra.Command, args []string) error {
	globals.MustBeInitialized()
	globals.Logger.Debug("Compiling cores for listing")

	c, err := compiler.New(globals.Settings, globals.Logger)
	if err != nil {
		return err
	}

	result, err := c.Compile()
	if err != nil {
		return err
	}

	cores := result.Inventory.Cores()
	if len(cores) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cores found.")
		return nil
	}

	// Create tabwriter for aligned output
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "SERIAL\tMAC\tBLE\tDSP\tDSPBL\tLAST SEEN\tHARDENED")
	fmt.Fprintln(w, "------\t---\t---\t---\t-----\t---------\t--------")

	for _, core := range cores {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			core.Serial,
			core.MAC,
			core.BLE.String(),
			core.DSP,
			core.DSPBootloader,
			report.FormatDate(core.LastSeen, time.Local),
			core.Hardened,
		)
	}

	globals.Logger.Debug("Core list completed", "count", len(cores))

	return nil
}

func init() {
	// Add core command to root
	rootCmd.AddCommand(coreCmd)

	// Add list subcommand to core
	coreCmd.AddCommand(coreListCmd)
}
