package merge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/monorkin/gplus-log-compiler/internal/models"
	"github.com/monorkin/gplus-log-compiler/internal/scan"
)

type Stats struct {
	Files    int
	Lines    int
	Inserted int
	Updated  int
	Kept     int
	Skipped  int
}

// Merger reads update logs one at a time into an Inventory.
type Merger struct {
	inventory *Inventory
	stats     Stats
	logger    *slog.Logger
}

func NewMerger(inventory *Inventory, logger *slog.Logger) *Merger {
	return &Merger{
		inventory: inventory,
		logger:    logger,
	}
}

func (merger *Merger) log(level slog.Level, msg string, args ...any) {
	if merger.logger != nil {
		merger.logger.Log(context.Background(), level, msg, args...)
	}
}

func (merger *Merger) Inventory() *Inventory {
	return merger.inventory
}

func (merger *Merger) Stats() Stats {
	return merger.stats
}

// AddLog merges every line of a log file. All of its entries share the
// file's modification time as their recency marker.
func (merger *Merger) AddLog(log scan.LogFile) error {
	info, err := os.Stat(log.Path)
	if err != nil {
		return fmt.Errorf("failed to stat log: %w", err)
	}

	file, err := os.Open(log.Path)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer file.Close()

	return merger.AddReader(file, log.Path, info.ModTime(), log.Source)
}

// AddReader merges lines read from r. Malformed lines, including lines
// longer than MAX_LINE_LENGTH, are logged and skipped; only read failures
// are returned.
func (merger *Merger) AddReader(r io.Reader, name string, lastSeen time.Time, source models.LogSource) error {
	reader := bufio.NewReader(r)
	lineNumber := 0

	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("failed to read %s: %w", name, readErr)
		}

		if line != "" {
			lineNumber++
			merger.addLine(line, lineNumber, name, lastSeen, source)
		}

		if readErr == io.EOF {
			break
		}
	}

	merger.stats.Files++

	return nil
}

func (merger *Merger) addLine(line string, lineNumber int, name string, lastSeen time.Time, source models.LogSource) {
	if strings.TrimSpace(line) == "" {
		return
	}

	merger.stats.Lines++

	entry, err := parseBoundedLine(line)
	if err != nil {
		merger.stats.Skipped++
		merger.log(slog.LevelWarn, "Skipping malformed log line", "path", name, "line", lineNumber, "error", err)
		return
	}

	outcome := merger.inventory.Merge(entry, lastSeen, source)
	switch outcome {
	case Inserted:
		merger.stats.Inserted++
	case Updated:
		merger.stats.Updated++
	case Kept:
		merger.stats.Kept++
	}

	merger.log(slog.LevelDebug, "Merged core", "mac", entry.MAC, "serial", entry.Serial, "outcome", outcome, "path", name)
}

func parseBoundedLine(line string) (Entry, error) {
	if len(line) > MAX_LINE_LENGTH {
		return Entry{}, fmt.Errorf("%w: %d bytes", ErrLineTooLong, len(line))
	}

	return ParseLine(line)
}
