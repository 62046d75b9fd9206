package config

import (
	"fmt"
	"slices"

	"github.com/brianly1003/notifyhub/internal/registry"
	"github.com/rs/zerolog"
)

// Validate checks the configuration for errors.
func Validate(cfg *Config) error {
	if _, err := registry.ParsePolicy(cfg.Registry.FailurePolicy); err != nil {
		return fmt.Errorf("registry.failure_policy: %w", err)
	}
	if err := validateScenarios(&cfg.Scenarios); err != nil {
		return err
	}
	return validateLogging(&cfg.Logging)
}

func validateScenarios(cfg *ScenariosConfig) error {
	if len(cfg.Enabled) == 0 {
		return fmt.Errorf("scenarios.enabled must list at least one scenario")
	}
	seen := make(map[string]bool, len(cfg.Enabled))
	for _, name := range cfg.Enabled {
		if !slices.Contains(DefaultScenarios, name) {
			return fmt.Errorf("scenarios.enabled has unknown scenario: %s", name)
		}
		if seen[name] {
			return fmt.Errorf("scenarios.enabled lists %s more than once", name)
		}
		seen[name] = true
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("logging.level is invalid: %s", cfg.Level)
	}
	if cfg.Format != "console" && cfg.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}
	if cfg.File == "" {
		return nil
	}
	if cfg.MaxSizeMB < 1 {
		return fmt.Errorf("logging.max_size_mb must be at least 1")
	}
	if cfg.MaxBackups < 0 {
		return fmt.Errorf("logging.max_backups cannot be negative")
	}
	if cfg.MaxAgeDays < 0 {
		return fmt.Errorf("logging.max_age_days cannot be negative")
	}
	return nil
}
