package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianly1003/notifyhub/internal/config"
	"github.com/brianly1003/notifyhub/internal/domain"
	"github.com/brianly1003/notifyhub/internal/registry"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func quietLogs(t *testing.T) {
	t.Helper()
	prev := log.Logger
	log.Logger = zerolog.Nop()
	t.Cleanup(func() { log.Logger = prev })
}

func TestNew(t *testing.T) {
	cfg := config.Default()

	app, err := New(cfg, "1.0.0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if app.Config() != cfg {
		t.Error("config not set correctly")
	}
	if app.version != "1.0.0" {
		t.Errorf("version = %s, want 1.0.0", app.version)
	}
	if app.SessionID() == "" {
		t.Error("sessionID should be generated")
	}
	if app.Recorder() == nil {
		t.Error("recorder should be created when metrics are enabled")
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil, "1.0.0"); err == nil {
		t.Error("New(nil) should fail")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Registry.FailurePolicy = "retry"

	if _, err := New(cfg, "1.0.0"); !errors.Is(err, domain.ErrUnknownPolicy) {
		t.Errorf("New() error = %v, want ErrUnknownPolicy", err)
	}
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = false

	app, err := New(cfg, "1.0.0")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if app.Recorder() != nil {
		t.Error("recorder should be nil when metrics are disabled")
	}
}

func TestNew_GeneratesUniqueSessionID(t *testing.T) {
	app1, _ := New(config.Default(), "1.0.0")
	app2, _ := New(config.Default(), "1.0.0")

	if app1.SessionID() == app2.SessionID() {
		t.Error("each app should have a unique session ID")
	}
}

func TestApp_FailurePolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Registry.FailurePolicy = "abort"

	tests := []struct {
		name string
		opts []Option
		want registry.Policy
	}{
		{name: "from config", want: registry.PolicyAbort},
		{name: "override", opts: []Option{WithFailurePolicy(registry.PolicyIsolate)}, want: registry.PolicyIsolate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := New(cfg, "1.0.0", tt.opts...)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			got, err := app.FailurePolicy()
			if err != nil {
				t.Fatalf("FailurePolicy() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FailurePolicy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApp_RunConfiguredScenarios(t *testing.T) {
	quietLogs(t)
	cfg := config.Default()
	cfg.Scenarios.Enabled = []string{"stock", "order"}

	var out bytes.Buffer
	app, _ := New(cfg, "1.0.0", WithOutput(&out))

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "=== stock ===") || !strings.Contains(got, "=== order ===") {
		t.Errorf("output missing configured scenarios: %q", got)
	}
	if strings.Contains(got, "=== blog ===") {
		t.Error("blog scenario should not run")
	}

	samples, err := app.Recorder().Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	var stockCycles float64
	for _, s := range samples {
		if s.Metric == "notifyhub_notification_cycles_total" && s.Registry == "stock" {
			stockCycles = s.Value
		}
	}
	if stockCycles != 4 {
		t.Errorf("stock cycles = %v, want 4", stockCycles)
	}
}

func TestApp_RunExplicitNamesOverrideConfig(t *testing.T) {
	quietLogs(t)
	var out bytes.Buffer
	app, _ := New(config.Default(), "1.0.0", WithOutput(&out))

	if err := app.Run(context.Background(), "chat"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Count(out.String(), "===") != 2 {
		t.Errorf("expected exactly one scenario header, got %q", out.String())
	}
}

func TestApp_RunUnknownScenario(t *testing.T) {
	quietLogs(t)
	app, _ := New(config.Default(), "1.0.0")

	if err := app.Run(context.Background(), "decorator"); !errors.Is(err, domain.ErrUnknownScenario) {
		t.Errorf("Run() error = %v, want ErrUnknownScenario", err)
	}
}

func TestApp_RunWithAudit(t *testing.T) {
	quietLogs(t)
	var audit bytes.Buffer
	cfg := config.Default()
	cfg.Scenarios.Enabled = []string{"traffic"}
	app, _ := New(cfg, "1.0.0", WithAudit(NewAuditLogger(&audit, false)))

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(audit.String(), "Road Cleared") {
		t.Errorf("audit log missing final condition: %q", audit.String())
	}
}

func TestApp_WatchRerunsOnReload(t *testing.T) {
	quietLogs(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("registry:\n  failure_policy: abort\nscenarios:\n  enabled: [blog]\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	w, err := config.Watch(path, registry.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	var out syncBuffer
	app, _ := New(w.Current(), "1.0.0", WithOutput(&out), WithFailurePolicy(registry.PolicyIsolate))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Watch(ctx, w) }()

	// Give Watch time to register before the file changes.
	deadline := time.Now().Add(5 * time.Second)
	for w.Updates().Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if err := os.WriteFile(path, []byte("registry:\n  failure_policy: abort\nscenarios:\n  enabled: [weather]\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	reloaded := func() bool {
		got := app.Config().Scenarios.Enabled
		return len(got) == 1 && got[0] == "weather" && strings.Contains(out.String(), "=== weather ===")
	}
	for !reloaded() && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	cancel()

	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
	if !strings.Contains(out.String(), "=== weather ===") {
		t.Error("weather scenario should run after reload")
	}
	if got := app.Config().Scenarios.Enabled; len(got) != 1 || got[0] != "weather" {
		t.Errorf("Config().Scenarios.Enabled = %v, want [weather]", got)
	}
	if got := app.Config().Registry.FailurePolicy; got != "abort" {
		t.Errorf("Config().Registry.FailurePolicy = %s, want abort from the file", got)
	}
	if policy, err := app.FailurePolicy(); err != nil || policy != registry.PolicyIsolate {
		t.Errorf("FailurePolicy() = %v, %v, want isolate override after reload", policy, err)
	}
}

func TestNewAuditLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAuditLogger(&buf, false)

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Error("debug entries should be filtered at info level")
	}
	if !strings.Contains(got, "shown") || !strings.Contains(got, "key=value") {
		t.Errorf("audit output = %q", got)
	}
}

func TestSetupLogging_WithFile(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "notifyhub.log")
	closer := SetupLogging(config.LoggingConfig{
		Level:      "warn",
		Format:     "json",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}, false)

	log.Info().Msg("filtered")
	log.Warn().Msg("kept")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(data), "filtered") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Errorf("log file = %q, want warn entry", data)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("GlobalLevel() = %v, want warn", zerolog.GlobalLevel())
	}
}

func TestSetupLogging_VerboseForcesDebug(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	_ = SetupLogging(config.LoggingConfig{Level: "error", Format: "json"}, true)

	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("GlobalLevel() = %v, want debug", zerolog.GlobalLevel())
	}
}
