package globals

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/monorkin/gplus-log-compiler/internal/config"
)

var (
	// Global instances
	Settings *config.Settings
	Logger   *slog.Logger

	// Ensure initialization happens only once
	initOnce sync.Once
	initErr  error
)

// Initialize loads settings and sets up the logger exactly once.
// settingsPath may be empty to use the default location.
func Initialize(verbose bool, settingsPath string) error {
	initOnce.Do(func() {
		initErr = initialize(verbose, settingsPath)
	})
	return initErr
}

func initialize(verbose bool, settingsPath string) error {
	newSettings, settingsLoaded, err := loadSettings(settingsPath)
	if err != nil {
		return err
	}
	if settingsPath == "" {
		settingsPath = config.DefaultSettingsPath()
	}

	Settings = settingsLoaded
	Settings.ApplyEnv()

	level, err := config.ParseLogLevel(Settings.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	setupLogger(level)

	if newSettings {
		Logger.Debug("No settings file found, using defaults", "path", settingsPath)
	} else {
		Logger.Debug("Loaded existing settings", "path", settingsPath)
	}

	Logger.Debug("Global initialization completed", "verbose", verbose)

	return nil
}

// loadSettings reads an explicitly given settings file, which must exist, or
// falls back to the default location where a missing file means defaults.
func loadSettings(settingsPath string) (bool, *config.Settings, error) {
	if settingsPath == "" {
		return config.LoadOrInitializeSettingsFromDefaultLocation()
	}

	newSettings, settingsLoaded, err := config.LoadOrInitializeSettings(settingsPath)
	if err != nil {
		return false, nil, err
	}
	if newSettings {
		return false, nil, fmt.Errorf("settings file not found: %s", settingsPath)
	}

	return newSettings, settingsLoaded, nil
}

// setupLogger configures the global logger. Logs go to stderr so command
// output on stdout stays clean.
func setupLogger(level slog.Level) {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	// Set as default logger
	slog.SetDefault(Logger)
}

// MustBeInitialized panics if globals haven't been initialized
func MustBeInitialized() {
	if Settings == nil || Logger == nil {
		panic("globals not initialized - call globals.Initialize() first")
	}
}
