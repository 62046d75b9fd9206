package config

// DefaultScenarios is the canonical list of scenarios, in the order they run.
var DefaultScenarios = []string{"blog", "chat", "stock", "traffic", "weather", "order"}

// Default returns the built-in configuration.
func Default() *Config {
	enabled := make([]string, len(DefaultScenarios))
	copy(enabled, DefaultScenarios)

	return &Config{
		Registry: RegistryConfig{
			FailurePolicy: "abort",
		},
		Scenarios: ScenariosConfig{
			Enabled: enabled,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
