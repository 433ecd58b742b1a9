// Package compiler runs the discover, merge and report pipeline.
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/monorkin/gplus-log-compiler/internal/config"
	"github.com/monorkin/gplus-log-compiler/internal/merge"
	"github.com/monorkin/gplus-log-compiler/internal/report"
	"github.com/monorkin/gplus-log-compiler/internal/scan"
)

type Result struct {
	Logs      []scan.LogFile
	Inventory *merge.Inventory
	Stats     merge.Stats
}

// Report is a CSV file that was written and the number of cores in it.
type Report struct {
	Name  string
	Path  string
	Cores int
}

type Compiler struct {
	settings *config.Settings
	walker   *scan.Walker
	writer   *report.Writer
	logger   *slog.Logger
}

func New(settings *config.Settings, logger *slog.Logger) (*Compiler, error) {
	datePattern, err := regexp.Compile(settings.DatePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid date pattern: %w", err)
	}

	return &Compiler{
		settings: settings,
		walker:   scan.NewWalker(datePattern, settings.HubPrefix, settings.LogFileName, logger),
		writer:   report.NewWriter(),
		logger:   logger,
	}, nil
}

func (compiler *Compiler) log(level slog.Level, msg string, args ...any) {
	if compiler.logger != nil {
		compiler.logger.Log(context.Background(), level, msg, args...)
	}
}

// Compile discovers every update log and merges them one after another.
func (compiler *Compiler) Compile() (*Result, error) {
	shipmentRoot := compiler.settings.ResolvedShipmentRoot()
	hardeningRoot := compiler.settings.ResolvedHardeningRoot()

	compiler.log(slog.LevelDebug, "Discovering update logs", "shipment_root", shipmentRoot, "hardening_root", hardeningRoot)

	logs, err := compiler.walker.Discover(shipmentRoot, hardeningRoot)
	if err != nil {
		return nil, err
	}

	merger := merge.NewMerger(merge.NewInventory(), compiler.logger)
	for _, log := range logs {
		if err := merger.AddLog(log); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", log.Path, err)
		}
	}

	stats := merger.Stats()
	compiler.log(slog.LevelInfo, "Update logs merged",
		"logs_count", stats.Files,
		"cores_count", merger.Inventory().Len(),
		"updated", stats.Updated,
		"skipped_lines", stats.Skipped,
	)

	return &Result{
		Logs:      logs,
		Inventory: merger.Inventory(),
		Stats:     stats,
	}, nil
}

// WriteReports writes the tracking report and any supplementary reports
// with a configured path.
func (compiler *Compiler) WriteReports(result *Result) ([]Report, error) {
	cores := result.Inventory.Cores()

	for _, core := range cores {
		compiler.log(slog.LevelDebug, "Core",
			"sn", core.Serial,
			"mac", core.MAC,
			"date", report.FormatDate(core.LastSeen, compiler.writer.Location),
			"ble", core.BLE.String(),
			"dsp", core.DSP,
			"dspbl", core.DSPBootloader,
		)
	}

	reports := []Report{{Name: "tracking", Path: compiler.settings.ResolvedOutputPath(), Cores: len(cores)}}
	if err := compiler.writer.WriteFile(reports[0].Path, cores); err != nil {
		return nil, err
	}

	if path := compiler.settings.ResolvedNoHardeningOutputPath(); path != "" {
		notHardened := report.NotHardened(cores)
		if err := compiler.writer.WriteFile(path, notHardened); err != nil {
			return reports, err
		}
		reports = append(reports, Report{Name: "no hardening", Path: path, Cores: len(notHardened)})
	}

	if path := compiler.settings.ResolvedStaleBLEOutputPath(); path != "" {
		stale := report.StaleBLE(cores, compiler.settings.LatestBLEVersion)
		if err := compiler.writer.WriteFile(path, stale); err != nil {
			return reports, err
		}
		reports = append(reports, Report{Name: "stale BLE", Path: path, Cores: len(stale)})
	}

	for _, written := range reports {
		compiler.log(slog.LevelInfo, "Report written", "report", written.Name, "path", written.Path, "cores_count", written.Cores)
	}

	return reports, nil
}

// Run compiles and writes the reports.
func (compiler *Compiler) Run() (*Result, []Report, error) {
	result, err := compiler.Compile()
	if err != nil {
		return nil, nil, err
	}

	reports, err := compiler.WriteReports(result)
	if err != nil {
		return result, reports, err
	}

	return result, reports, nil
}
