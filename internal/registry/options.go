package registry

import (
	"fmt"
	"strings"

	"github.com/brianly1003/notifyhub/internal/domain"
	"github.com/brianly1003/notifyhub/internal/domain/ports"
	"github.com/rs/zerolog"
)

// Policy decides what a notification cycle does when a listener fails.
type Policy string

const (
	// PolicyAbort stops the cycle at the first failing listener and returns its error.
	PolicyAbort Policy = "abort"

	// PolicyIsolate keeps notifying the remaining listeners and returns every
	// failure joined into one error.
	PolicyIsolate Policy = "isolate"
)

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyAbort, "":
		return PolicyAbort, nil
	case PolicyIsolate:
		return PolicyIsolate, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownPolicy, s)
	}
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	name     string
	logger   *zerolog.Logger
	recorder ports.Recorder
	policy   Policy
}

// WithName sets the name used in logs, metrics and ListenerError.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger overrides the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithRecorder attaches an instrumentation sink.
func WithRecorder(recorder ports.Recorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

// WithFailurePolicy selects how listener failures are handled.
func WithFailurePolicy(policy Policy) Option {
	return func(o *options) {
		o.policy = policy
	}
}
