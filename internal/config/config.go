package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the application config file inside the data directory.
const FileName = "config.yaml"

// AppConfig holds application-level options. Timer settings live in the
// settings store, not here.
type AppConfig struct {
	Store         string        `yaml:"store"`
	TickInterval  time.Duration `yaml:"tick_interval"`
	NotifyQueue   int           `yaml:"notify_queue"`
	LogLevel      string        `yaml:"log_level"`
	WatchSettings bool          `yaml:"watch_settings"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
	StartOnLaunch bool          `yaml:"start_on_launch"`
}

// Default returns the built-in application config.
func Default() AppConfig {
	return AppConfig{
		Store:         "prefs",
		TickInterval:  time.Second,
		NotifyQueue:   8,
		LogLevel:      "info",
		WatchSettings: true,
		WatchDebounce: 500 * time.Millisecond,
	}
}

// Load reads the YAML config at path. A missing file yields defaults.
func Load(path string) (AppConfig, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(rawData, &config); err != nil {
		return Default(), fmt.Errorf("parse config yaml: %w", err)
	}

	fillDefaults(&config)
	return config, nil
}

// Save writes config as YAML.
func Save(path string, config AppConfig) error {
	serialized, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (config AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(config.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// fillDefaults replaces empty or non-positive values left by the file.
func fillDefaults(config *AppConfig) {
	defaults := Default()
	if strings.TrimSpace(config.Store) == "" {
		config.Store = defaults.Store
	}
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	if config.NotifyQueue <= 0 {
		config.NotifyQueue = defaults.NotifyQueue
	}
	if strings.TrimSpace(config.LogLevel) == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.WatchDebounce <= 0 {
		config.WatchDebounce = defaults.WatchDebounce
	}
}
