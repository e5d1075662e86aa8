package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/minutes/internal/api"
	"github.com/colonyops/minutes/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	APIURL     string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Client talks to the tracker backend. It is created in the Before hook;
	// tests may set it directly.
	Client *api.Client
}

// client returns the configured backend client.
func (f *Flags) client() (*api.Client, error) {
	if f.Client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}
	return f.Client, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "minutes", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "minutes")
}

func (f *Flags) baseURL() string {
	if f.Client == nil {
		return ""
	}
	return f.Client.BaseURL()
}
