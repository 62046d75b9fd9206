// Package subjects provides the concrete observable subjects used by the
// scenarios. Each subject owns a registry.Registry for its payload type and
// exposes the domain operation that mutates and broadcasts its state.
package subjects

import (
	"github.com/brianly1003/notifyhub/internal/domain/ports"
	"github.com/brianly1003/notifyhub/internal/registry"
)

// observable is the registration surface every subject shares.
type observable[T any] struct {
	reg *registry.Registry[T]
}

func newObservable[T any](name string, opts ...registry.Option) observable[T] {
	opts = append([]registry.Option{registry.WithName(name)}, opts...)
	return observable[T]{reg: registry.New[T](opts...)}
}

// Register adds listener to the subject.
func (o observable[T]) Register(listener ports.Listener[T]) registry.Handle {
	return o.reg.Register(listener)
}

// Remove removes the registration identified by handle.
func (o observable[T]) Remove(handle registry.Handle) {
	o.reg.Remove(handle)
}

// RemoveListener removes every registration of listener.
func (o observable[T]) RemoveListener(listener ports.Listener[T]) int {
	return o.reg.RemoveListener(listener)
}

// Listeners returns the number of registered listeners.
func (o observable[T]) Listeners() int {
	return o.reg.Len()
}

// Registry exposes the underlying registry.
func (o observable[T]) Registry() *registry.Registry[T] {
	return o.reg
}
