// Package app wires configuration, logging and metrics to the scenario runner.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/brianly1003/notifyhub/internal/config"
	"github.com/brianly1003/notifyhub/internal/domain/ports"
	"github.com/brianly1003/notifyhub/internal/listeners"
	"github.com/brianly1003/notifyhub/internal/metrics"
	"github.com/brianly1003/notifyhub/internal/registry"
	"github.com/brianly1003/notifyhub/internal/scenario"
	"github.com/brianly1003/notifyhub/internal/sync"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const reloadBuffer = 16

// App runs scenarios with the dependencies derived from a Config.
type App struct {
	version   string
	sessionID string
	out       io.Writer
	audit     *slog.Logger
	policy    registry.Policy // overrides registry.failure_policy when set
	recorder  *metrics.Recorder

	mu  sync.RWMutex
	cfg *config.Config
}

// Option configures an App.
type Option func(*App)

// WithOutput sets where listener output is written. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// WithAudit attaches a LogListener backed by logger to every subject.
func WithAudit(logger *slog.Logger) Option {
	return func(a *App) {
		a.audit = logger
	}
}

// WithFailurePolicy makes every run use policy, whatever the current
// configuration says. The override survives config reloads.
func WithFailurePolicy(policy registry.Policy) Option {
	return func(a *App) {
		a.policy = policy
	}
}

// New creates a new App instance.
func New(cfg *config.Config, version string, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	a := &App{
		version:   version,
		sessionID: uuid.New().String(),
		out:       io.Discard,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	if cfg.Metrics.Enabled {
		a.recorder = metrics.NewRecorder()
	}
	return a, nil
}

// SessionID returns the identifier of this run.
func (a *App) SessionID() string {
	return a.sessionID
}

// Config returns the configuration currently in effect.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Recorder returns the metrics recorder, or nil when metrics are disabled.
func (a *App) Recorder() *metrics.Recorder {
	return a.recorder
}

// FailurePolicy returns the policy the next run will use.
func (a *App) FailurePolicy() (registry.Policy, error) {
	if a.policy != "" {
		return a.policy, nil
	}
	return registry.ParsePolicy(a.Config().Registry.FailurePolicy)
}

// Run runs the named scenarios, or the configured ones when names is empty.
func (a *App) Run(ctx context.Context, names ...string) error {
	cfg := a.Config()
	if len(names) == 0 {
		names = cfg.Scenarios.Enabled
	}

	policy, err := a.FailurePolicy()
	if err != nil {
		return err
	}

	var recorder ports.Recorder
	if a.recorder != nil {
		recorder = a.recorder
	}

	logger := log.With().Str("session", a.sessionID).Logger()
	runner := scenario.NewRunner(scenario.Env{
		Out:      a.out,
		Logger:   logger,
		Recorder: recorder,
		Policy:   policy,
		Audit:    a.audit,
	})

	logger.Info().
		Str("version", a.version).
		Str("failure_policy", string(policy)).
		Strs("scenarios", names).
		Bool("deadlock_detection", sync.DetectionEnabled()).
		Msg("running scenarios")

	if err := runner.Run(ctx, names...); err != nil {
		return err
	}

	a.logMetrics()
	return nil
}

// Watch runs the configured scenarios again every time w publishes a new
// configuration, until ctx is cancelled. Reloads are handed to this
// goroutine through a ChannelListener so the config watcher never blocks
// on a run.
func (a *App) Watch(ctx context.Context, w *config.Watcher) error {
	reloads := listeners.NewChannelListener[*config.Config](reloadBuffer)
	handle := w.Updates().Register(reloads)
	defer func() {
		w.Updates().Remove(handle)
		_ = reloads.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cfg, ok := <-reloads.Payloads():
			if !ok {
				return nil
			}
			cfg = latest(reloads.Payloads(), cfg)
			a.mu.Lock()
			a.cfg = cfg
			a.mu.Unlock()

			log.Info().Str("file", w.File()).Msg("configuration changed, re-running scenarios")
			if err := a.Run(ctx); err != nil {
				log.Error().Err(err).Msg("scenario run failed after reload")
			}
		}
	}
}

// latest drains whatever is already queued on ch and returns the newest value.
// An editor save often produces several write events in a row.
func latest(ch <-chan *config.Config, cfg *config.Config) *config.Config {
	for {
		select {
		case next, ok := <-ch:
			if !ok {
				return cfg
			}
			cfg = next
		default:
			return cfg
		}
	}
}

func (a *App) logMetrics() {
	if a.recorder == nil {
		return
	}
	samples, err := a.recorder.Snapshot()
	if err != nil {
		log.Warn().Err(err).Msg("failed to gather metrics")
		return
	}
	for _, s := range samples {
		log.Debug().
			Str("metric", s.Metric).
			Str("registry", s.Registry).
			Float64("value", s.Value).
			Msg("metric")
	}
}
