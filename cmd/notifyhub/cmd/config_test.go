package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brianly1003/notifyhub/internal/config"
)

func TestGetConfigValue(t *testing.T) {
	cfg := config.Default()
	cfg.Scenarios.Enabled = []string{"stock", "weather"}

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "registry.failure_policy", want: "abort"},
		{key: "logging.level", want: "info"},
		{key: "logging.max_size_mb", want: "10"},
		{key: "metrics.enabled", want: "true"},
		{key: "scenarios.enabled", want: "stock,weather"},
		{key: "registry.unknown", wantErr: true},
		{key: "logging.level.extra", wantErr: true},
		{key: "server", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := getConfigValue(cfg, tt.key)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("getConfigValue(%q) = %v, want error", tt.key, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("getConfigValue(%q) error = %v", tt.key, err)
			}
			if s := fmt.Sprint(got); s != tt.want {
				t.Fatalf("getConfigValue(%q) = %q, want %q", tt.key, s, tt.want)
			}
		})
	}
}

func TestWriteDefaultConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig() error = %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := config.Default()
	if cfg.Registry.FailurePolicy != want.Registry.FailurePolicy {
		t.Errorf("FailurePolicy = %s, want %s", cfg.Registry.FailurePolicy, want.Registry.FailurePolicy)
	}
	if strings.Join(cfg.Scenarios.Enabled, ",") != strings.Join(want.Scenarios.Enabled, ",") {
		t.Errorf("Scenarios.Enabled = %v, want %v", cfg.Scenarios.Enabled, want.Scenarios.Enabled)
	}
	if cfg.Logging.MaxAgeDays != want.Logging.MaxAgeDays {
		t.Errorf("MaxAgeDays = %d, want %d", cfg.Logging.MaxAgeDays, want.Logging.MaxAgeDays)
	}
}

func TestPrintConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := printConfig(&buf, config.Default()); err != nil {
		t.Fatalf("printConfig() error = %v", err)
	}
	if !strings.Contains(buf.String(), "failure_policy: abort") {
		t.Fatalf("printConfig() output = %q", buf.String())
	}
}
