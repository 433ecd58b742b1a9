package compiler

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monorkin/gplus-log-compiler/internal/config"
	"github.com/monorkin/gplus-log-compiler/internal/scan"
)

var (
	shipped  = time.Date(2019, time.January, 4, 17, 47, 0, 0, time.UTC)
	hardened = time.Date(2019, time.January, 16, 10, 0, 0, 0, time.UTC)
)

func writeHubLog(t *testing.T, path, content string, modTime time.Time) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func setupTree(t *testing.T) (*config.Settings, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "Core-Hub Shipment Logs")
	out := t.TempDir()

	writeHubLog(t, filepath.Join(root, "2019-1-4-17-47", "minihub-b827ebccfedb", "update-log.txt"),
		"SN1, aa, BLE v1.0.4, DSP v2.0, DSPBL v0.8\n"+
			"SN2, bb, BLE Apparel_Debug, DSP v2.1, DSPBL v0.9\n"+
			"SN3, cc\n",
		shipped)
	writeHubLog(t, filepath.Join(root, "2019-1-4-17-47", "minihub-b827ebccfedc", "update-log.txt"),
		"SN4, dd, BLE v1.0.5, DSP v2.1, DSPBL v0.9\n",
		shipped)
	writeHubLog(t, filepath.Join(root, config.HARDENING_DIR_NAME, "2019-1-16-10-00", "minihub-b827ebccfedb", "update-log.txt"),
		"SN1, aa, BLE v1.0.5, DSP v2.1, DSPBL v0.9\n",
		hardened)

	settings := config.DefaultSettings()
	settings.ShipmentRoot = root
	settings.OutputPath = filepath.Join(out, "Gplus_Tracking.csv")

	return settings, out
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	return records
}

func TestCompiler_Run(t *testing.T) {
	settings, _ := setupTree(t)

	compiler, err := New(settings, nil)
	require.NoError(t, err)
	compiler.writer.Location = time.UTC

	result, reports, err := compiler.Run()
	require.NoError(t, err)

	assert.Len(t, result.Logs, 3)
	assert.Equal(t, 3, result.Inventory.Len())
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.Equal(t, 1, result.Stats.Updated)

	require.Len(t, reports, 1)
	assert.Equal(t, settings.OutputPath, reports[0].Path)

	assert.Equal(t, [][]string{
		{"sn", "mac", "", "", "", "", "dsp", "dspbl", "ble", "date"},
		{"SN1", "aa", "", "", "", "", "2.1", "0.9", "1.0.5", "16/1/2019"},
		{"SN2", "bb", "", "", "", "", "2.1", "0.9", "Apparel_Debug", "4/1/2019"},
		{"SN4", "dd", "", "", "", "", "2.1", "0.9", "1.0.5", "4/1/2019"},
	}, readCSV(t, settings.OutputPath))
}

func TestCompiler_Run_SupplementaryReports(t *testing.T) {
	settings, out := setupTree(t)
	settings.NoHardeningOutputPath = filepath.Join(out, "gplus_no_dump.csv")
	settings.StaleBLEOutputPath = filepath.Join(out, "gplus_no_bleupdate.csv")

	compiler, err := New(settings, nil)
	require.NoError(t, err)

	_, reports, err := compiler.Run()
	require.NoError(t, err)
	require.Len(t, reports, 3)

	noDump := readCSV(t, settings.NoHardeningOutputPath)
	require.Len(t, noDump, 3)
	assert.Equal(t, "bb", noDump[1][1])
	assert.Equal(t, "dd", noDump[2][1])

	stale := readCSV(t, settings.StaleBLEOutputPath)
	require.Len(t, stale, 2)
	assert.Equal(t, "bb", stale[1][1])
}

func TestCompiler_Compile_MissingShipmentRoot(t *testing.T) {
	settings := config.DefaultSettings()
	settings.ShipmentRoot = filepath.Join(t.TempDir(), "missing")

	compiler, err := New(settings, nil)
	require.NoError(t, err)

	_, err = compiler.Compile()
	assert.ErrorIs(t, err, scan.ErrRootUnavailable)
}

func TestCompiler_Run_UnwritableOutput(t *testing.T) {
	settings, out := setupTree(t)

	blocker := filepath.Join(out, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	settings.OutputPath = filepath.Join(blocker, "Gplus_Tracking.csv")

	compiler, err := New(settings, nil)
	require.NoError(t, err)

	_, _, err = compiler.Run()
	assert.Error(t, err)
}

func TestNew_InvalidDatePattern(t *testing.T) {
	settings := config.DefaultSettings()
	settings.DatePattern = "(["

	_, err := New(settings, nil)
	assert.Error(t, err)
}
