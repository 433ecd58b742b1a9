package config

import (
	"os"
	"path/filepath"
)

const (
	SHIPMENT_ROOT_ENV  = "GPLUS_LOG_COMPILER_SHIPMENT_ROOT"
	HARDENING_ROOT_ENV = "GPLUS_LOG_COMPILER_HARDENING_ROOT"
	OUTPUT_PATH_ENV    = "GPLUS_LOG_COMPILER_OUTPUT"

	DEFAULT_SHIPMENT_ROOT = "~/Box Sync/Core-Hub Shipment Logs"
	HARDENING_DIR_NAME    = "Hub-Hardening"
	DEFAULT_OUTPUT_PATH   = "~/Documents/Gplus_Tracking.csv"
	DEFAULT_DATE_PATTERN  = `^\d{4}-`
	DEFAULT_HUB_PREFIX    = "minihub-"
	DEFAULT_LOG_FILE_NAME = "update-log.txt"
	DEFAULT_LATEST_BLE    = "1.0.5"
	DEFAULT_SETTINGS_NAME = "settings.yaml"
)

// ApplyEnv overrides locations with the values of the GPLUS_LOG_COMPILER_*
// environment variables that are set.
func (s *Settings) ApplyEnv() {
	if shipmentRoot := os.Getenv(SHIPMENT_ROOT_ENV); shipmentRoot != "" {
		s.ShipmentRoot = shipmentRoot
	}

	if hardeningRoot := os.Getenv(HARDENING_ROOT_ENV); hardeningRoot != "" {
		s.HardeningRoot = hardeningRoot
	}

	if outputPath := os.Getenv(OUTPUT_PATH_ENV); outputPath != "" {
		s.OutputPath = outputPath
	}
}

// ResolvedShipmentRoot returns the shipment log root with "~" expanded.
func (s *Settings) ResolvedShipmentRoot() string {
	return ExpandHome(s.ShipmentRoot)
}

// ResolvedHardeningRoot falls back to the Hub-Hardening folder inside the
// shipment root when no hardening root is configured.
func (s *Settings) ResolvedHardeningRoot() string {
	if s.HardeningRoot == "" {
		return filepath.Join(s.ResolvedShipmentRoot(), HARDENING_DIR_NAME)
	}

	return ExpandHome(s.HardeningRoot)
}

func (s *Settings) ResolvedOutputPath() string {
	return ExpandHome(s.OutputPath)
}

func (s *Settings) ResolvedNoHardeningOutputPath() string {
	return ExpandHome(s.NoHardeningOutputPath)
}

func (s *Settings) ResolvedStaleBLEOutputPath() string {
	return ExpandHome(s.StaleBLEOutputPath)
}
