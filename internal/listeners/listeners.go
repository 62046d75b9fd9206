// Package listeners provides the listener variants used by the notifyhub
// scenarios, plus a few generic adapters that can sit in any registry.
//
// Scenario listeners render each payload as one line on an io.Writer. A write
// failure is returned from Receive and surfaces through the registry as a
// *domain.ListenerError.
package listeners

import (
	"fmt"
	"io"

	"github.com/brianly1003/notifyhub/internal/domain/ports"
)

// Func adapts an ordinary function to ports.Listener.
type Func[T any] func(payload T) error

// Receive calls f(payload).
func (f Func[T]) Receive(payload T) error {
	return f(payload)
}

// Filtered forwards payloads to an inner listener only when they match a predicate.
type Filtered[T any] struct {
	inner ports.Listener[T]
	match func(T) bool
}

// NewFiltered wraps inner so that it only sees payloads for which match returns true.
// A nil match forwards everything.
func NewFiltered[T any](inner ports.Listener[T], match func(T) bool) *Filtered[T] {
	return &Filtered[T]{inner: inner, match: match}
}

// Receive forwards payload if it passes the filter.
func (f *Filtered[T]) Receive(payload T) error {
	if f.match != nil && !f.match(payload) {
		return nil // Silently skip payloads that don't match filter
	}
	return f.inner.Receive(payload)
}

func emit(out io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(out, format+"\n", args...); err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	return nil
}
