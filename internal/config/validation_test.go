package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "defaults",
			mutate:  func(cfg *Config) {},
			wantErr: "",
		},
		{
			name:    "isolate policy",
			mutate:  func(cfg *Config) { cfg.Registry.FailurePolicy = "isolate" },
			wantErr: "",
		},
		{
			name:    "unknown policy",
			mutate:  func(cfg *Config) { cfg.Registry.FailurePolicy = "retry" },
			wantErr: "registry.failure_policy",
		},
		{
			name:    "no scenarios",
			mutate:  func(cfg *Config) { cfg.Scenarios.Enabled = nil },
			wantErr: "at least one scenario",
		},
		{
			name:    "unknown scenario",
			mutate:  func(cfg *Config) { cfg.Scenarios.Enabled = []string{"blog", "singleton"} },
			wantErr: "unknown scenario: singleton",
		},
		{
			name:    "duplicate scenario",
			mutate:  func(cfg *Config) { cfg.Scenarios.Enabled = []string{"blog", "blog"} },
			wantErr: "more than once",
		},
		{
			name:    "invalid level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "invalid format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name: "file with zero size",
			mutate: func(cfg *Config) {
				cfg.Logging.File = "/tmp/notifyhub.log"
				cfg.Logging.MaxSizeMB = 0
			},
			wantErr: "max_size_mb",
		},
		{
			name:    "zero size without file",
			mutate:  func(cfg *Config) { cfg.Logging.MaxSizeMB = 0 },
			wantErr: "",
		},
		{
			name: "negative backups",
			mutate: func(cfg *Config) {
				cfg.Logging.File = "/tmp/notifyhub.log"
				cfg.Logging.MaxBackups = -1
			},
			wantErr: "max_backups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Errorf("Validate() error = nil, want error containing %q", tt.wantErr)
				return
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
