// Package report writes the merged core inventory as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/monorkin/gplus-log-compiler/internal/models"
)

// Header is the tracking spreadsheet's column layout. The blank columns are
// filled in by formulas downstream.
var Header = []string{"sn", "mac", "", "", "", "", "dsp", "dspbl", "ble", "date"}

type Writer struct {
	// Location the last seen date is rendered in.
	Location *time.Location
}

func NewWriter() *Writer {
	return &Writer{Location: time.Local}
}

// FormatDate renders t as D/M/YYYY without zero padding.
func FormatDate(t time.Time, location *time.Location) string {
	if location != nil {
		t = t.In(location)
	}

	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

func (writer *Writer) Row(core *models.Core) []string {
	return []string{
		core.Serial,
		core.MAC,
		"", "", "", "",
		core.DSP,
		core.DSPBootloader,
		core.BLE.String(),
		FormatDate(core.LastSeen, writer.Location),
	}
}

// Write emits the header followed by one row per core, in the given order.
func (writer *Writer) Write(out io.Writer, cores []*models.Core) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.UseCRLF = true

	if err := csvWriter.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, core := range cores {
		if err := csvWriter.Write(writer.Row(core)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", core.MAC, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	return nil
}

// WriteFile creates or truncates the report at path.
func (writer *Writer) WriteFile(path string, cores []*models.Core) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	if err := writer.Write(file, cores); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}

	return nil
}
