// Package config handles configuration loading and validation for minutes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig   `yaml:"api"`
	TUI     TUIConfig   `yaml:"tui"`
	Watch   WatchConfig `yaml:"watch"`
	DataDir string      `yaml:"-"` // set by caller, not from config file
}

// APIConfig describes how to reach the tracker backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout bounds each request. Nil means the default; an explicit 0
	// disables the timeout.
	Timeout *time.Duration `yaml:"timeout"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme    string        `yaml:"theme"`
	ToastTTL time.Duration `yaml:"toast_ttl"`
}

// WatchConfig holds settings for `minutes watch`.
type WatchConfig struct {
	Pattern  string        `yaml:"pattern"`
	Debounce time.Duration `yaml:"debounce"`
}

const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultTimeout  = 30 * time.Second
	DefaultTheme    = "tokyo-night"
	DefaultToastTTL = 3 * time.Second
	DefaultPattern  = "**/*.txt"
	DefaultDebounce = 500 * time.Millisecond
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	timeout := DefaultTimeout
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: &timeout,
		},
		TUI: TUIConfig{
			Theme:    DefaultTheme,
			ToastTTL: DefaultToastTTL,
		},
		Watch: WatchConfig{
			Pattern:  DefaultPattern,
			Debounce: DefaultDebounce,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == nil {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ToastTTL == 0 {
		c.TUI.ToastTTL = defaults.TUI.ToastTTL
	}
	if c.Watch.Pattern == "" {
		c.Watch.Pattern = defaults.Watch.Pattern
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = defaults.Watch.Debounce
	}
}

// RequestTimeout returns the configured per-request timeout. Zero means no
// timeout.
func (c *Config) RequestTimeout() time.Duration {
	if c.API.Timeout == nil {
		return DefaultTimeout
	}
	return *c.API.Timeout
}

// LogFile returns the default log file location inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "minutes.log")
}
