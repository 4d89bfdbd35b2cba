// Package config provides configuration management for svgtsx.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SVGTSX"

// Config holds the configuration for the application
type Config struct {
	Log       LogConfig
	Telemetry TelemetryConfig
	Theme     ThemeConfig
	Dialog    DialogConfig
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// TelemetryConfig holds tracing settings
type TelemetryConfig struct {
	Enabled  bool
	Endpoint string
	Insecure bool
}

// ThemeConfig is the window color applied at startup
type ThemeConfig struct {
	R, G, B float64
}

// DialogConfig holds terminal picker settings
type DialogConfig struct {
	StartDir   string `mapstructure:"start_dir"`
	ShowHidden bool   `mapstructure:"show_hidden"`
}

// LoadDotEnv loads a .env file from the working directory into the process environment. It reports whether a file was
// found; variables already set in the environment win
func LoadDotEnv() (bool, error) {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to load .env: %w", err)
	}
	return true, nil
}

// Load reads configuration from defaults, an optional TOML file, and SVGTSX_-prefixed environment variables, in
// increasing order of precedence
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("theme.r", 47)
	v.SetDefault("theme.g", 47)
	v.SetDefault("theme.b", 47)
	v.SetDefault("dialog.start_dir", "")
	v.SetDefault("dialog.show_hidden", false)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv(envPrefix + "_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "svgtsx"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return c, nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format '%s', expected console or json", c.Log.Format)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry is enabled but no endpoint is configured (%s_TELEMETRY_ENDPOINT)", envPrefix)
	}
	return nil
}
