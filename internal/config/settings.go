package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	ShipmentRoot          string `yaml:"shipment_root"`
	HardeningRoot         string `yaml:"hardening_root,omitempty"`
	OutputPath            string `yaml:"output_path"`
	NoHardeningOutputPath string `yaml:"no_hardening_output_path,omitempty"`
	StaleBLEOutputPath    string `yaml:"stale_ble_output_path,omitempty"`
	LatestBLEVersion      string `yaml:"latest_ble_version"`
	DatePattern           string `yaml:"date_pattern"`
	HubPrefix             string `yaml:"hub_prefix"`
	LogFileName           string `yaml:"log_file_name"`
	LogLevel              string `yaml:"log_level,omitempty"`
	Notify                bool   `yaml:"notify"`
}

func DefaultSettings() *Settings {
	return &Settings{
		ShipmentRoot:     DEFAULT_SHIPMENT_ROOT,
		OutputPath:       DEFAULT_OUTPUT_PATH,
		LatestBLEVersion: DEFAULT_LATEST_BLE,
		DatePattern:      DEFAULT_DATE_PATTERN,
		HubPrefix:        DEFAULT_HUB_PREFIX,
		LogFileName:      DEFAULT_LOG_FILE_NAME,
	}
}

func DefaultSettingsPath() string {
	return filepath.Join(ConfigDir(), DEFAULT_SETTINGS_NAME)
}

func LoadOrInitializeSettingsFromDefaultLocation() (bool, *Settings, error) {
	return LoadOrInitializeSettings(DefaultSettingsPath())
}

// LoadOrInitializeSettings returns the defaults, flagged as new, when no
// settings file exists at path. A file that exists but can't be parsed is
// an error.
func LoadOrInitializeSettings(path string) (bool, *Settings, error) {
	settings, err := LoadSettings(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, DefaultSettings(), nil
	}
	if err != nil {
		return false, nil, err
	}

	return false, settings, nil
}

// LoadSettings reads a YAML settings file on top of the defaults.
// Environment variables referenced in the file are expanded.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	settings := DefaultSettings()
	if err := yaml.Unmarshal([]byte(expanded), settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	return settings, nil
}

func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (s *Settings) Validate() error {
	if s.ShipmentRoot == "" {
		return errors.New("shipment_root must be set")
	}

	if s.OutputPath == "" {
		return errors.New("output_path must be set")
	}

	if s.HubPrefix == "" {
		return errors.New("hub_prefix must be set")
	}

	if s.LogFileName == "" {
		return errors.New("log_file_name must be set")
	}

	if _, err := regexp.Compile(s.DatePattern); err != nil {
		return fmt.Errorf("invalid date_pattern %q: %w", s.DatePattern, err)
	}

	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}

	return nil
}
