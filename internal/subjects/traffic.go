package subjects

import (
	"fmt"

	"github.com/brianly1003/notifyhub/internal/registry"
)

// TrafficData holds the current traffic condition.
type TrafficData struct {
	observable[string]
}

// NewTrafficData creates traffic data with no condition.
func NewTrafficData(opts ...registry.Option) *TrafficData {
	return &TrafficData{observable: newObservable[string]("traffic", opts...)}
}

// SetCondition records condition and notifies every listener.
func (t *TrafficData) SetCondition(condition string) error {
	if err := t.reg.SetState(condition); err != nil {
		return fmt.Errorf("set condition %q: %w", condition, err)
	}
	return nil
}

// NotifyAll re-sends the current condition.
func (t *TrafficData) NotifyAll() error {
	return t.reg.NotifyAll()
}

// Condition returns the current condition.
func (t *TrafficData) Condition() string {
	return t.reg.State()
}
