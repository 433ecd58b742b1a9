package report

import (
	"golang.org/x/mod/semver"

	"github.com/monorkin/gplus-log-compiler/internal/models"
)

// NotHardened returns the cores no hardening log ever mentioned.
func NotHardened(cores []*models.Core) []*models.Core {
	var filtered []*models.Core

	for _, core := range cores {
		if !core.Hardened {
			filtered = append(filtered, core)
		}
	}

	return filtered
}

// StaleBLE returns the cores running a debug BLE build or a BLE version
// older than latest. Versions that don't parse are treated as stale.
func StaleBLE(cores []*models.Core, latest string) []*models.Core {
	var filtered []*models.Core

	for _, core := range cores {
		if isStaleBLE(core.BLE, latest) {
			filtered = append(filtered, core)
		}
	}

	return filtered
}

func isStaleBLE(firmware models.FirmwareBLE, latest string) bool {
	switch firmware.Kind {
	case models.BLEDebug:
		return true
	case models.BLEVersion:
		if latest == "" {
			return false
		}

		version := "v" + firmware.Value
		if !semver.IsValid(version) {
			return true
		}

		return semver.Compare(version, "v"+latest) < 0
	default:
		return true
	}
}
