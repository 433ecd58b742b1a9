package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	APP_DIR_NAME = "gplus-log-compiler"
)

func HomeDir() string {
	homeDir, err := os.UserHomeDir()
	// In case the home directory cannot be determined use the current working directory
	if err != nil {
		currentDir, err := os.Getwd()
		if err != nil {
			return "."
		}

		return currentDir
	}

	return homeDir
}

func ConfigDir() string {
	var baseDir string

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		baseDir = filepath.Join(xdgConfigHome, APP_DIR_NAME)
	} else {
		homeDir := HomeDir()

		localConfigPath := filepath.Join(homeDir, ".config")

		if _, err := os.Stat(localConfigPath); err == nil {
			baseDir = filepath.Join(localConfigPath, APP_DIR_NAME)
		} else {
			baseDir = filepath.Join(homeDir, fmt.Sprintf(".%s", APP_DIR_NAME))
		}
	}

	return baseDir
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return HomeDir()
	}

	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(HomeDir(), rest)
	}

	return path
}
