// Package scan discovers hub update logs in the shipment and hardening trees.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/monorkin/gplus-log-compiler/internal/models"
)

var ErrRootUnavailable = errors.New("log root unavailable")

// LogFile is a hub's update log together with the tree it was found in.
type LogFile struct {
	Path   string
	Source models.LogSource
}

// Walker finds <root>/<date folder>/<hub folder>/<log file> paths.
type Walker struct {
	DatePattern *regexp.Regexp
	HubPrefix   string
	LogFileName string
	logger      *slog.Logger
}

func NewWalker(datePattern *regexp.Regexp, hubPrefix, logFileName string, logger *slog.Logger) *Walker {
	return &Walker{
		DatePattern: datePattern,
		HubPrefix:   hubPrefix,
		LogFileName: logFileName,
		logger:      logger,
	}
}

func (walker *Walker) log(level slog.Level, msg string, args ...any) {
	if walker.logger != nil {
		walker.logger.Log(context.Background(), level, msg, args...)
	}
}

// Discover walks the shipment root and then the hardening root. The shipment
// root is mandatory. A hardening root that doesn't exist only produces a
// warning; one that exists but can't be listed is an error.
func (walker *Walker) Discover(shipmentRoot, hardeningRoot string) ([]LogFile, error) {
	logs, err := walker.Logs(shipmentRoot, models.SourceShipment)
	if err != nil {
		return nil, err
	}

	if hardeningRoot == "" {
		return logs, nil
	}

	hardeningLogs, err := walker.Logs(hardeningRoot, models.SourceHardening)
	if errors.Is(err, os.ErrNotExist) {
		walker.log(slog.LevelWarn, "Skipping hardening logs", "root", hardeningRoot, "error", err)
		return logs, nil
	}
	if err != nil {
		return nil, err
	}

	return append(logs, hardeningLogs...), nil
}

// Logs lists the log files under a single root in directory name order.
// Hub folders without a log file are skipped.
func (walker *Walker) Logs(root string, source models.LogSource) ([]LogFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRootUnavailable, root, err)
	}

	var logs []LogFile
	for _, entry := range entries {
		if !walker.DatePattern.MatchString(entry.Name()) || !isDir(root, entry) {
			continue
		}

		datePath := filepath.Join(root, entry.Name())
		hubs, err := os.ReadDir(datePath)
		if err != nil {
			walker.log(slog.LevelWarn, "Failed to list date folder", "path", datePath, "error", err)
			continue
		}

		for _, hub := range hubs {
			if !strings.HasPrefix(hub.Name(), walker.HubPrefix) || !isDir(datePath, hub) {
				continue
			}

			logPath := filepath.Join(datePath, hub.Name(), walker.LogFileName)
			info, err := os.Stat(logPath)
			if errors.Is(err, os.ErrNotExist) {
				walker.log(slog.LevelDebug, "Hub folder has no update log", "path", logPath)
				continue
			}
			if err != nil {
				walker.log(slog.LevelWarn, "Skipping unreadable update log", "path", logPath, "error", err)
				continue
			}
			if !info.Mode().IsRegular() {
				walker.log(slog.LevelWarn, "Skipping update log that is not a regular file", "path", logPath)
				continue
			}

			logs = append(logs, LogFile{Path: logPath, Source: source})
		}
	}

	walker.log(slog.LevelDebug, "Log root scanned", "root", root, "source", source, "logs_count", len(logs))

	return logs, nil
}

// isDir follows symlinks, which os.DirEntry.IsDir does not.
func isDir(parent string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}

	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}
