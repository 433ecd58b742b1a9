package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monorkin/gplus-log-compiler/internal/compiler"
	"github.com/monorkin/gplus-log-compiler/internal/globals"
	"github.com/monorkin/gplus-log-compiler/internal/notify"
)

var (
	verbose       bool
	settingsPath  string
	shipmentRoot  string
	hardeningRoot string
	outputPath    string
	sendNotify    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gplus-log-compiler",
	Short: "Compile G+ core firmware tracking from hub update logs",
	Long: `Scans the Core-Hub shipment logs and the Hub-Hardening logs for hub update logs,
keeps the most recent record of every core and writes a CSV report of their BLE, DSP
and DSP bootloader firmware versions.

Run without arguments to read the default shipment log location and write
~/Documents/Gplus_Tracking.csv.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	RunE:              runCompile,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Path to a settings file (default is settings.yaml in the user config directory)")
	rootCmd.PersistentFlags().StringVar(&shipmentRoot, "shipment-root", "", "Directory holding the dated shipment log folders")
	rootCmd.PersistentFlags().StringVar(&hardeningRoot, "hardening-root", "", "Directory holding the dated hardening log folders (default is Hub-Hardening inside the shipment root)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Path of the CSV report")

	rootCmd.Flags().BoolVar(&sendNotify, "notify", false, "Show a desktop notification once the reports are written")
}

// initializeApp loads settings and applies command line overrides on top
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := globals.Initialize(verbose, settingsPath); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if shipmentRoot != "" {
		globals.Settings.ShipmentRoot = shipmentRoot
	}
	if hardeningRoot != "" {
		globals.Settings.HardeningRoot = hardeningRoot
	}
	if outputPath != "" {
		globals.Settings.OutputPath = outputPath
	}
	if sendNotify {
		globals.Settings.Notify = true
	}

	return globals.Settings.Validate()
}

func runCompile(cmd *cobra.Command, args []string) error {
	globals.MustBeInitialized()

	c, err := compiler.New(globals.Settings, globals.Logger)
	if err != nil {
		return err
	}

	result, reports, err := c.Run()
	if err != nil {
		return err
	}

	for _, report := range reports {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cores to %s\n", report.Cores, report.Path)
	}

	if globals.Settings.Notify {
		showNotification(result.Inventory.Len(), reports)
	}

	return nil
}

func showNotification(cores int, reports []compiler.Report) {
	notifier, err := notify.NewNotifier()
	if err != nil {
		globals.Logger.Warn("Desktop notifications unavailable", "error", err)
		return
	}
	defer notifier.Close()

	id, err := notifier.Send(notify.ReportsWritten(cores, reports))
	if err != nil {
		globals.Logger.Warn("Failed to show desktop notification", "error", err)
		return
	}

	globals.Logger.Debug("Desktop notification sent", "id", id)
}
