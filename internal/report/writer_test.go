package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monorkin/gplus-log-compiler/internal/models"
)

func testCores() []*models.Core {
	return []*models.Core{
		{
			Serial:        "SN123",
			MAC:           "AA:BB:CC:DD:EE:FF",
			LastSeen:      time.Date(2019, time.January, 4, 17, 47, 0, 0, time.UTC),
			BLE:           models.NewBLEVersion("1.0.5"),
			DSP:           "2.1",
			DSPBootloader: "0.9",
		},
		{
			Serial:        "SN124",
			MAC:           "11:22:33:44:55:66",
			LastSeen:      time.Date(2019, time.December, 16, 9, 0, 0, 0, time.UTC),
			BLE:           models.NewBLEDebug("Apparel_Debug"),
			DSP:           "2.0",
			DSPBootloader: "0.8",
			Hardened:      true,
		},
	}
}

func TestWriter_Write(t *testing.T) {
	var out bytes.Buffer
	writer := &Writer{Location: time.UTC}

	require.NoError(t, writer.Write(&out, testCores()))

	want := "sn,mac,,,,,dsp,dspbl,ble,date\r\n" +
		"SN123,AA:BB:CC:DD:EE:FF,,,,,2.1,0.9,1.0.5,4/1/2019\r\n" +
		"SN124,11:22:33:44:55:66,,,,,2.0,0.8,Apparel_Debug,16/12/2019\r\n"
	assert.Equal(t, want, out.String())
}

func TestWriter_Write_RowCountAndOrder(t *testing.T) {
	var out bytes.Buffer
	writer := &Writer{Location: time.UTC}
	cores := testCores()

	require.NoError(t, writer.Write(&out, cores))

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, len(cores)+1)
	assert.Equal(t, Header, records[0])
	for i, core := range cores {
		assert.Equal(t, core.MAC, records[i+1][1])
	}
}

func TestWriter_Write_Empty(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, NewWriter().Write(&out, nil))
	assert.Equal(t, "sn,mac,,,,,dsp,dspbl,ble,date\r\n", out.String())
}

func TestWriter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Documents", "Gplus_Tracking.csv")
	writer := &Writer{Location: time.UTC}

	// Overwrites whatever was there before.
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("old,row\nold,row\nold,row\nold,row\nold,row\n"), 0o644))

	require.NoError(t, writer.WriteFile(path, testCores()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestWriter_WriteFile_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := NewWriter().WriteFile(filepath.Join(blocker, "report.csv"), testCores())
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	instant := time.Date(2019, time.January, 31, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "31/1/2019", FormatDate(instant, time.UTC))
	assert.Equal(t, "1/2/2019", FormatDate(instant, time.FixedZone("UTC+2", 2*60*60)))
}
