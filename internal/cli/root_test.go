package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// Settings are loaded once per process, so the commands that need them share
// a single test.
func TestExecute(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	logPath := filepath.Join(root, "2019-1-4-17-47", "minihub-b827ebccfedb", "update-log.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, []byte(
		"SN123, AA:BB:CC:DD:EE:FF, BLE v1.0.5, DSP v2.1, DSPBL v0.9\n"+
			"SN124, 11:22:33:44:55:66, BLE Apparel_Debug, DSP v2.1, DSPBL v0.9\n",
	), 0o644))
	modTime := time.Date(2019, time.January, 4, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(logPath, modTime, modTime))

	reportPath := filepath.Join(t.TempDir(), "Gplus_Tracking.csv")

	t.Run("compile", func(t *testing.T) {
		out, err := execute(t, "--shipment-root", root, "--output", reportPath)
		require.NoError(t, err)

		assert.Contains(t, out, "Wrote 2 cores to "+reportPath)

		data, err := os.ReadFile(reportPath)
		require.NoError(t, err)
		assert.Equal(t,
			"sn,mac,,,,,dsp,dspbl,ble,date\r\n"+
				"SN123,AA:BB:CC:DD:EE:FF,,,,,2.1,0.9,1.0.5,4/1/2019\r\n"+
				"SN124,11:22:33:44:55:66,,,,,2.1,0.9,Apparel_Debug,4/1/2019\r\n",
			string(data),
		)
	})

	t.Run("core list", func(t *testing.T) {
		out, err := execute(t, "core", "list", "--shipment-root", root)
		require.NoError(t, err)

		assert.Contains(t, out, "SERIAL")
		assert.Contains(t, out, "AA:BB:CC:DD:EE:FF")
		assert.Contains(t, out, "Apparel_Debug")
	})

	t.Run("config show", func(t *testing.T) {
		out, err := execute(t, "config", "show", "--shipment-root", root)
		require.NoError(t, err)

		assert.Contains(t, out, "shipment_root: "+root)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		_, err := execute(t, "unexpected")
		assert.Error(t, err)
	})
}

func TestExecute_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Equal(t, "dev\n", out)
}

func TestExecute_ConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default settings to "+path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)

	forceInit = false
	settingsPath = ""
}
