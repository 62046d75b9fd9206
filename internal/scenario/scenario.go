// Package scenario replays the observer demos on top of the notification
// core. Every scenario builds one subject, registers a few listeners, applies
// a series of mutations, removes one listener and applies a final mutation
// that the removed listener must not see.
package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/brianly1003/notifyhub/internal/domain"
	"github.com/brianly1003/notifyhub/internal/domain/ports"
	"github.com/brianly1003/notifyhub/internal/registry"
	"github.com/rs/zerolog"
)

// Env carries the dependencies a scenario needs.
type Env struct {
	// Out receives the listeners' output lines.
	Out io.Writer

	// Logger receives run progress and is handed to every registry the
	// scenario builds.
	Logger zerolog.Logger

	// Recorder receives registry instrumentation. Nil disables it.
	Recorder ports.Recorder

	// Policy is the failure policy of every registry.
	Policy registry.Policy

	// Audit, when set, is attached to every subject as an extra
	// LogListener.
	Audit *slog.Logger
}

// RegistryOptions returns the registry options derived from the env.
func (e Env) RegistryOptions() []registry.Option {
	return []registry.Option{
		registry.WithLogger(e.Logger),
		registry.WithRecorder(e.Recorder),
		registry.WithFailurePolicy(e.Policy),
	}
}

// Scenario is one runnable demo.
type Scenario struct {
	Name        string
	Description string
	Run         func(env Env) error
}

var catalog = map[string]Scenario{}

func register(s Scenario) {
	catalog[s.Name] = s
}

// Names returns the names of all scenarios in the order they are run by
// default.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return order(names[i]) < order(names[j])
	})
	return names
}

// Catalog returns every scenario in default order.
func Catalog() []Scenario {
	names := Names()
	result := make([]Scenario, 0, len(names))
	for _, name := range names {
		result = append(result, catalog[name])
	}
	return result
}

// Lookup returns the scenario called name.
func Lookup(name string) (Scenario, error) {
	s, ok := catalog[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", domain.ErrUnknownScenario, name)
	}
	return s, nil
}

var defaultOrder = []string{"blog", "chat", "stock", "traffic", "weather", "order"}

func order(name string) int {
	for i, n := range defaultOrder {
		if n == name {
			return i
		}
	}
	return len(defaultOrder)
}

// Runner runs scenarios one after another.
type Runner struct {
	env Env
}

// NewRunner creates a runner. A nil Out discards listener output.
func NewRunner(env Env) *Runner {
	if env.Out == nil {
		env.Out = io.Discard
	}
	if env.Policy == "" {
		env.Policy = registry.PolicyAbort
	}
	return &Runner{env: env}
}

// Run runs the named scenarios, or every scenario when names is empty.
// All names are resolved before anything runs. The first failing scenario
// stops the run.
func (r *Runner) Run(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		names = Names()
	}

	scenarios := make([]Scenario, 0, len(names))
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, s)
	}

	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		r.env.Logger.Debug().Str("scenario", s.Name).Msg("scenario started")
		fmt.Fprintf(r.env.Out, "=== %s ===\n", s.Name)

		if err := s.Run(r.env); err != nil {
			r.env.Logger.Error().Err(err).Str("scenario", s.Name).Msg("scenario failed")
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}

		fmt.Fprintln(r.env.Out)
		r.env.Logger.Info().
			Str("scenario", s.Name).
			Dur("elapsed", time.Since(start)).
			Msg("scenario completed")
	}
	return nil
}
