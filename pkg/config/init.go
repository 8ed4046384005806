package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// defaultFile is the config.json written on first run.
type defaultFile struct {
	Timeout       string  `json:"timeout"`
	DefaultTarget string  `json:"default_target"`
	LogLevel      string  `json:"log_level"`
	RateLimit     float64 `json:"rate_limit"`
}

// InitializeFolder creates dir with a default config.json and the
// collections and environments folders. It reports whether dir was created.
func InitializeFolder(dir string) (bool, error) {
	created := false
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create %s folder: %w", dir, err)
		}
		if err := createDefaultConfig(dir); err != nil {
			return false, err
		}
		created = true
	}

	// Ensure subdirectories exist (for folders created by hand)
	for _, sub := range []string{"collections", "environments"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return created, fmt.Errorf("failed to create %s folder: %w", sub, err)
		}
	}
	return created, nil
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig(dir string) error {
	data, err := json.MarshalIndent(defaultFile{
		Timeout:       "30s",
		DefaultTarget: "curl",
		LogLevel:      "info",
		RateLimit:     5,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
