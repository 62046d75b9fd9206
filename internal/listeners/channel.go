package listeners

import (
	"sync"

	"github.com/brianly1003/notifyhub/internal/domain"
)

// ChannelListener hands payloads to a buffered channel so that a consumer
// goroutine can process them outside the notification cycle.
type ChannelListener[T any] struct {
	mu     sync.Mutex
	send   chan T
	done   chan struct{}
	closed bool
}

// NewChannelListener creates a new channel-based listener.
func NewChannelListener[T any](bufferSize int) *ChannelListener[T] {
	return &ChannelListener[T]{
		send: make(chan T, bufferSize),
		done: make(chan struct{}),
	}
}

// Receive queues payload without blocking the notification cycle.
func (l *ChannelListener[T]) Receive(payload T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return domain.ErrListenerClosed
	}

	select {
	case l.send <- payload:
		return nil
	default:
		// Channel full, consumer is too slow
		return domain.ErrListenerBackedUp
	}
}

// Close closes the listener. Queued payloads stay readable.
func (l *ChannelListener[T]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	close(l.done)
	close(l.send)
	return nil
}

// Done returns a channel that's closed when the listener is closed.
func (l *ChannelListener[T]) Done() <-chan struct{} {
	return l.done
}

// Payloads returns the channel to receive payloads from.
func (l *ChannelListener[T]) Payloads() <-chan T {
	return l.send
}
