// Package testutil provides shared test utilities and mocks for notifyhub tests.
package testutil

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianly1003/notifyhub/internal/domain/ports"
)

// MockListener implements ports.Listener for testing.
type MockListener[T any] struct {
	id          string
	payloads    []T
	mu          sync.Mutex
	receiveErr  error
	receiveFunc func(T) error
	journal     *Journal
}

// NewMockListener creates a new mock listener.
func NewMockListener[T any](id string) *MockListener[T] {
	return &MockListener[T]{
		id:       id,
		payloads: make([]T, 0),
	}
}

// ID returns the listener ID.
func (m *MockListener[T]) ID() string {
	return m.id
}

// Receive records the payload, writes to the journal if one is attached and
// returns any configured error. A custom receive func runs after recording.
func (m *MockListener[T]) Receive(payload T) error {
	m.mu.Lock()
	m.payloads = append(m.payloads, payload)
	fn := m.receiveFunc
	err := m.receiveErr
	journal := m.journal
	m.mu.Unlock()

	if journal != nil {
		journal.Record(m.id)
	}
	if fn != nil {
		return fn(payload)
	}
	return err
}

// Payloads returns all received payloads.
func (m *MockListener[T]) Payloads() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]T, len(m.payloads))
	copy(result, m.payloads)
	return result
}

// Count returns the number of received payloads.
func (m *MockListener[T]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

// Last returns the most recent payload.
func (m *MockListener[T]) Last() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if len(m.payloads) == 0 {
		return zero, false
	}
	return m.payloads[len(m.payloads)-1], true
}

// SetReceiveError configures an error to return on Receive.
func (m *MockListener[T]) SetReceiveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receiveErr = err
}

// SetReceiveFunc sets a custom function for Receive behavior.
func (m *MockListener[T]) SetReceiveFunc(fn func(T) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receiveFunc = fn
}

// AttachJournal records every delivery to this listener in j.
func (m *MockListener[T]) AttachJournal(j *Journal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journal = j
}

// Ensure MockListener implements ports.Listener.
var _ ports.Listener[int] = (*MockListener[int])(nil)

// Journal records the order in which listeners were called across a registry.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Record appends id.
func (j *Journal) Record(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, id)
}

// Entries returns the recorded ids in call order.
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	result := make([]string, len(j.entries))
	copy(result, j.entries)
	return result
}

// Reset clears the journal.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
}

// RecordingRecorder implements ports.Recorder and keeps the last observations.
type RecordingRecorder struct {
	mu          sync.Mutex
	Cycles      int
	Failures    int
	Delivered   int
	Memberships []int
}

// ObserveCycle records a cycle.
func (r *RecordingRecorder) ObserveCycle(_ string, delivered int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cycles++
	r.Delivered += delivered
	if err != nil {
		r.Failures++
	}
}

// ObserveMembership records a membership size.
func (r *RecordingRecorder) ObserveMembership(_ string, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Memberships = append(r.Memberships, size)
}

var _ ports.Recorder = (*RecordingRecorder)(nil)

// AssertEqual is a simple equality assertion helper.
func AssertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// AssertNoError asserts that an error is nil.
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", msg, err)
	}
}

// AssertContains checks if a string contains a substring.
func AssertContains(t *testing.T, s, substr, msg string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s: string %q does not contain %q", msg, s, substr)
	}
}

// AssertNotContains checks that a string does not contain a substring.
func AssertNotContains(t *testing.T, s, substr, msg string) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Errorf("%s: string %q unexpectedly contains %q", msg, s, substr)
	}
}
