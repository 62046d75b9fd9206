// Package domain contains the payload types and errors shared by registries,
// listeners and scenarios.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	ErrListenerPanic    = errors.New("listener panicked during notification")
	ErrReentrantNotify  = errors.New("notification requested from inside a notification cycle")
	ErrListenerClosed   = errors.New("listener is closed")
	ErrListenerBackedUp = errors.New("listener buffer is full")
	ErrUnknownScenario  = errors.New("unknown scenario")
	ErrUnknownPolicy    = errors.New("unknown failure policy")
)

// ListenerError reports a listener that failed while receiving a payload.
// The registry state that triggered the cycle has already been committed
// when this error is returned.
type ListenerError struct {
	Registry string // Name of the registry running the cycle
	Handle   uint64 // Registration handle of the failing listener
	Err      error  // Underlying error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("registry %s: listener %d: %v", e.Registry, e.Handle, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

// NewListenerError creates a new ListenerError.
func NewListenerError(registry string, handle uint64, err error) *ListenerError {
	return &ListenerError{
		Registry: registry,
		Handle:   handle,
		Err:      err,
	}
}
