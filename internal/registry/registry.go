// Package registry implements the synchronous subject/listener notification core.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/brianly1003/notifyhub/internal/domain"
	"github.com/brianly1003/notifyhub/internal/domain/ports"
	"github.com/brianly1003/notifyhub/internal/sync"
	"github.com/google/uuid"
	"github.com/petermattis/goid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"
)

// Handle identifies one registration. Handles are issued in increasing order
// and never reused, so two registrations of the same listener value are
// distinct entries. The zero Handle is never issued.
type Handle uint64

// String returns the decimal form of the handle.
func (h Handle) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

type entry[T any] struct {
	handle   Handle
	listener ports.Listener[T]
}

// pendingOp is a membership change requested by a listener while its
// registry was notifying. It is applied when that cycle ends.
type pendingOp[T any] struct {
	kind     opKind
	handle   Handle
	listener ports.Listener[T]
}

type opKind int

const (
	opRegister opKind = iota
	opRemove
	opRemoveListener
)

// Registry holds a piece of state and the ordered set of listeners that are
// notified, synchronously and in registration order, each time it changes.
//
// A single lock serialises membership changes and whole notification cycles,
// so a cycle always delivers to a consistent snapshot of the listeners.
// Membership changes made by a listener from inside a cycle are deferred to
// the end of that cycle. Starting a new cycle from inside a listener returns
// domain.ErrReentrantNotify.
type Registry[T any] struct {
	id       string
	name     string
	logger   zerolog.Logger
	recorder ports.Recorder
	policy   Policy

	mu        sync.Mutex
	listeners *btree.Map[uint64, ports.Listener[T]]
	state     T
	seq       uint64
	pending   []pendingOp[T]

	// owner is the goroutine id running the current cycle, 0 when idle.
	owner atomic.Int64
}

var _ ports.Subject[string, Handle] = (*Registry[string])(nil)

// New creates an empty Registry holding the zero value of T.
func New[T any](opts ...Option) *Registry[T] {
	o := options{
		recorder: ports.NopRecorder{},
		policy:   PolicyAbort,
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	if o.name == "" {
		o.name = "registry-" + id[:8]
	}

	logger := log.Logger
	if o.logger != nil {
		logger = *o.logger
	}

	return &Registry[T]{
		id:        id,
		name:      o.name,
		logger:    logger.With().Str("registry", o.name).Logger(),
		recorder:  o.recorder,
		policy:    o.policy,
		listeners: btree.NewMap[uint64, ports.Listener[T]](0),
	}
}

// ID returns the unique identifier of this registry instance.
func (r *Registry[T]) ID() string {
	return r.id
}

// Name returns the registry name.
func (r *Registry[T]) Name() string {
	return r.name
}

// Policy returns the failure policy in effect.
func (r *Registry[T]) Policy() Policy {
	return r.policy
}

// Register appends listener to the end of the notification order.
// Registering the same listener twice yields two handles and two deliveries
// per cycle.
func (r *Registry[T]) Register(listener ports.Listener[T]) Handle {
	if r.inCycle() {
		r.seq++
		h := Handle(r.seq)
		r.pending = append(r.pending, pendingOp[T]{kind: opRegister, handle: h, listener: listener})
		r.logger.Debug().Stringer("handle", h).Msg("registration deferred until cycle ends")
		return h
	}

	r.mu.Lock()
	r.seq++
	h := Handle(r.seq)
	r.listeners.Set(uint64(h), listener)
	size := r.listeners.Len()
	r.recorder.ObserveMembership(r.name, size)
	r.mu.Unlock()

	r.logger.Debug().Stringer("handle", h).Int("listeners", size).Msg("listener registered")
	return h
}

// Remove deletes the listener registered under handle. Unknown or already
// removed handles are ignored.
func (r *Registry[T]) Remove(handle Handle) {
	if r.inCycle() {
		r.pending = append(r.pending, pendingOp[T]{kind: opRemove, handle: handle})
		r.logger.Debug().Stringer("handle", handle).Msg("removal deferred until cycle ends")
		return
	}

	r.mu.Lock()
	if _, removed := r.listeners.Delete(uint64(handle)); !removed {
		r.mu.Unlock()
		return
	}
	size := r.listeners.Len()
	r.recorder.ObserveMembership(r.name, size)
	r.mu.Unlock()

	r.logger.Debug().Stringer("handle", handle).Int("listeners", size).Msg("listener removed")
}

// RemoveListener deletes every registration whose listener is the very same
// instance as listener and returns how many were removed. Identity is only
// defined for pointer and channel listeners; any other kind matches nothing
// and must be removed by handle.
//
// Called from inside a cycle the removal is deferred and 0 is returned.
func (r *Registry[T]) RemoveListener(listener ports.Listener[T]) int {
	if r.inCycle() {
		r.pending = append(r.pending, pendingOp[T]{kind: opRemoveListener, listener: listener})
		return 0
	}

	r.mu.Lock()
	n := r.removeListenerLocked(listener)
	size := r.listeners.Len()
	if n > 0 {
		r.recorder.ObserveMembership(r.name, size)
	}
	r.mu.Unlock()

	if n > 0 {
		r.logger.Debug().Int("removed", n).Int("listeners", size).Msg("listener instance removed")
	}
	return n
}

// SetState commits payload as the current state and notifies every
// registered listener with it before returning.
//
// Under PolicyAbort the first failing listener stops the cycle and its
// *domain.ListenerError is returned; the state remains committed.
func (r *Registry[T]) SetState(payload T) error {
	return r.SetStateWith(payload, nil)
}

// SetStateWith is SetState with a hook. onCommit runs under the registry
// lock right after payload is committed and before any listener is called,
// so whatever it records is ordered exactly like the notifications. It is
// not called when the state is not committed, e.g. on ErrReentrantNotify.
// onCommit must not call back into the registry.
func (r *Registry[T]) SetStateWith(payload T, onCommit func()) error {
	if r.inCycle() {
		return domain.ErrReentrantNotify
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = payload
	if onCommit != nil {
		onCommit()
	}
	return r.cycle(payload)
}

// NotifyAll re-sends the current state to every registered listener.
func (r *Registry[T]) NotifyAll() error {
	if r.inCycle() {
		return domain.ErrReentrantNotify
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cycle(r.state)
}

// State returns the last committed payload.
func (r *Registry[T]) State() T {
	var state T
	r.read(func() { state = r.state })
	return state
}

// Len returns the number of registered listeners. Changes deferred by a
// running cycle are not counted until the cycle ends.
func (r *Registry[T]) Len() int {
	var n int
	r.read(func() { n = r.listeners.Len() })
	return n
}

// Handles returns the registered handles in notification order.
func (r *Registry[T]) Handles() []Handle {
	var handles []Handle
	r.read(func() {
		handles = make([]Handle, 0, r.listeners.Len())
		r.listeners.Scan(func(key uint64, _ ports.Listener[T]) bool {
			handles = append(handles, Handle(key))
			return true
		})
	})
	return handles
}

// cycle delivers payload to a snapshot of the listeners. Callers hold r.mu.
func (r *Registry[T]) cycle(payload T) (err error) {
	snapshot := r.snapshot()
	start := time.Now()
	delivered := 0

	r.owner.Store(goid.Get())
	defer func() {
		r.owner.Store(0)
		r.applyPending()
		r.recorder.ObserveCycle(r.name, delivered, time.Since(start), err)
	}()

	var failures []error
	for _, e := range snapshot {
		if lerr := r.deliver(e, payload); lerr != nil {
			r.logger.Warn().
				Stringer("handle", e.handle).
				Err(lerr.Err).
				Msg("listener failed")
			if r.policy != PolicyIsolate {
				return lerr
			}
			failures = append(failures, lerr)
			continue
		}
		delivered++
	}

	r.logger.Trace().Int("delivered", delivered).Msg("notification cycle complete")
	return errors.Join(failures...)
}

func (r *Registry[T]) deliver(e entry[T], payload T) (lerr *domain.ListenerError) {
	defer func() {
		if rec := recover(); rec != nil {
			lerr = domain.NewListenerError(r.name, uint64(e.handle), fmt.Errorf("%w: %v", domain.ErrListenerPanic, rec))
		}
	}()

	if err := e.listener.Receive(payload); err != nil {
		return domain.NewListenerError(r.name, uint64(e.handle), err)
	}
	return nil
}

func (r *Registry[T]) snapshot() []entry[T] {
	entries := make([]entry[T], 0, r.listeners.Len())
	r.listeners.Scan(func(key uint64, listener ports.Listener[T]) bool {
		entries = append(entries, entry[T]{handle: Handle(key), listener: listener})
		return true
	})
	return entries
}

// applyPending replays membership changes queued during a cycle, in the
// order they were requested. Callers hold r.mu.
func (r *Registry[T]) applyPending() {
	if len(r.pending) == 0 {
		return
	}
	ops := r.pending
	r.pending = nil

	for _, op := range ops {
		switch op.kind {
		case opRegister:
			r.listeners.Set(uint64(op.handle), op.listener)
		case opRemove:
			r.listeners.Delete(uint64(op.handle))
		case opRemoveListener:
			r.removeListenerLocked(op.listener)
		}
	}

	size := r.listeners.Len()
	r.recorder.ObserveMembership(r.name, size)
	r.logger.Debug().Int("applied", len(ops)).Int("listeners", size).Msg("deferred membership changes applied")
}

func (r *Registry[T]) removeListenerLocked(listener ports.Listener[T]) int {
	var matches []uint64
	r.listeners.Scan(func(key uint64, l ports.Listener[T]) bool {
		if sameInstance(l, listener) {
			matches = append(matches, key)
		}
		return true
	})
	for _, key := range matches {
		r.listeners.Delete(key)
	}
	return len(matches)
}

// inCycle reports whether the calling goroutine is the one currently
// notifying. Only that goroutine can observe its own id in owner, and it
// already holds r.mu.
func (r *Registry[T]) inCycle() bool {
	owner := r.owner.Load()
	return owner != 0 && owner == goid.Get()
}

func (r *Registry[T]) read(fn func()) {
	if r.inCycle() {
		fn()
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

func sameInstance[T any](a, b ports.Listener[T]) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Pointer, reflect.Chan:
		return a == b
	default:
		return false
	}
}
