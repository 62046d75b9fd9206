//go:build !deadlock

// Package sync holds the lock types used by notifyhub registries.
// Release builds alias the standard library; build with -tags deadlock
// to route every registry lock through go-deadlock instead.
package sync

import "sync"

// Mutex guards registry membership and notification cycles.
type Mutex = sync.Mutex

// RWMutex guards listener-local state that is read more often than written.
type RWMutex = sync.RWMutex

// DetectionEnabled reports whether lock-order and timeout detection is active.
func DetectionEnabled() bool { return false }
