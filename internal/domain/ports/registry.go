// Package ports defines the contracts between registries and the code that
// plugs into them.
package ports

import "time"

// Listener receives every payload committed to a subject it is registered with.
type Listener[T any] interface {
	// Receive is called synchronously once per notification cycle.
	// A non-nil error is reported to the caller of the mutation that
	// started the cycle.
	Receive(payload T) error
}

// Subject defines the contract for a state holder that fans out changes.
type Subject[T any, H comparable] interface {
	// Register appends a listener and returns the handle used to remove it.
	Register(listener Listener[T]) H

	// Remove deletes the listener registered under handle.
	// Removing an unknown handle is a no-op.
	Remove(handle H)

	// SetState commits payload and notifies every registered listener.
	SetState(payload T) error

	// NotifyAll re-sends the current state to every registered listener.
	NotifyAll() error

	// State returns the last committed payload.
	State() T
}

// Recorder receives instrumentation from registries.
type Recorder interface {
	// ObserveCycle is called after each notification cycle.
	ObserveCycle(registry string, delivered int, elapsed time.Duration, err error)

	// ObserveMembership is called after the listener set changes.
	ObserveMembership(registry string, size int)
}

// NopRecorder discards all instrumentation.
type NopRecorder struct{}

func (NopRecorder) ObserveCycle(string, int, time.Duration, error) {}
func (NopRecorder) ObserveMembership(string, int)                  {}
