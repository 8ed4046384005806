// Package config holds user settings and the on-disk workspace folder.
package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/blackcoderx/apistudio/pkg/codegen"
)

// FolderName is the workspace folder created in the working directory.
const FolderName = ".apistudio"

// Config represents the user's settings
type Config struct {
	DataDir       string
	Timeout       time.Duration
	DefaultTarget codegen.Target
	LogLevel      logrus.Level
	// RateLimit is the number of requests per second a collection run may send.
	RateLimit float64
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("data_dir", FolderName)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("default_target", string(codegen.TargetCurl))
	viper.SetDefault("log_level", "info")
	viper.SetDefault("rate_limit", 5.0)
}

// Load reads and validates the settings from viper.
func Load() (Config, error) {
	target, err := codegen.ParseTarget(viper.GetString("default_target"))
	if err != nil {
		return Config{}, fmt.Errorf("default_target: %w", err)
	}
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return Config{}, fmt.Errorf("log_level: %w", err)
	}
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be positive, got %q", viper.GetString("timeout"))
	}
	rateLimit := viper.GetFloat64("rate_limit")
	if rateLimit <= 0 {
		return Config{}, fmt.Errorf("rate_limit must be positive, got %v", rateLimit)
	}

	return Config{
		DataDir:       viper.GetString("data_dir"),
		Timeout:       timeout,
		DefaultTarget: target,
		LogLevel:      level,
		RateLimit:     rateLimit,
	}, nil
}
