//go:build deadlock

// Package sync holds the lock types used by notifyhub registries.
// This variant wraps go-deadlock so that a listener blocking a
// notification cycle, or a lock-order inversion between two registries,
// is reported instead of hanging silently.
package sync

import (
	"os"
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Mutex guards registry membership and notification cycles.
type Mutex = deadlock.Mutex

// RWMutex guards listener-local state that is read more often than written.
type RWMutex = deadlock.RWMutex

// DetectionEnabled reports whether lock-order and timeout detection is active.
func DetectionEnabled() bool { return !deadlock.Opts.Disable }

func init() {
	// A notification cycle holds the registry lock for the duration of every
	// Receive call, so the timeout has to cover the slowest listener.
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
	deadlock.Opts.PrintAllCurrentGoroutines = true

	if os.Getenv("NOTIFYHUB_NO_DEADLOCK_DETECT") != "" {
		deadlock.Opts.Disable = true
		return
	}

	println("[DEADLOCK DETECTION ENABLED] registry locks use go-deadlock")
}
