// Package config handles configuration management for notifyhub.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Registry  RegistryConfig  `mapstructure:"registry" yaml:"registry"`
	Scenarios ScenariosConfig `mapstructure:"scenarios" yaml:"scenarios"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}

// RegistryConfig holds settings applied to every notification registry.
type RegistryConfig struct {
	FailurePolicy string `mapstructure:"failure_policy" yaml:"failure_policy"` // abort or isolate
}

// ScenariosConfig selects which scenarios run by default.
type ScenariosConfig struct {
	Enabled []string `mapstructure:"enabled" yaml:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"` // Optional: rotate logs into this file
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// MetricsConfig holds instrumentation configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Load loads configuration from files and environment.
func Load(configPath string) (*Config, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// newViper builds a viper instance with defaults, environment bindings and
// the config file, if one is found.
func newViper(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Set config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default search paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.notifyhub")
		v.AddConfigPath("/etc/notifyhub")
	}

	// Environment variable prefix
	v.SetEnvPrefix("NOTIFYHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file (optional - not an error if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return v, nil
}

// decode unmarshals, post-processes and validates the current viper state.
func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	postProcess(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("registry.failure_policy", d.Registry.FailurePolicy)

	v.SetDefault("scenarios.enabled", d.Scenarios.Enabled)

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
}

// postProcess normalises user supplied values.
func postProcess(cfg *Config) {
	cfg.Registry.FailurePolicy = strings.ToLower(strings.TrimSpace(cfg.Registry.FailurePolicy))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	// NOTIFYHUB_SCENARIOS_ENABLED="blog,chat" arrives as a single element
	var enabled []string
	for _, entry := range cfg.Scenarios.Enabled {
		for _, name := range strings.FieldsFunc(entry, func(r rune) bool { return r == ',' || r == ' ' }) {
			enabled = append(enabled, strings.ToLower(name))
		}
	}
	cfg.Scenarios.Enabled = enabled

	if cfg.Logging.File != "" {
		if abs, err := filepath.Abs(cfg.Logging.File); err == nil {
			cfg.Logging.File = abs
		}
	}
}

// GetConfigDir returns the user config directory for notifyhub.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".notifyhub"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
