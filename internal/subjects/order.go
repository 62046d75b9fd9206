package subjects

import (
	"fmt"

	"github.com/brianly1003/notifyhub/internal/registry"
)

// OrderSystem notifies customers when an order status changes.
type OrderSystem struct {
	observable[string]
}

// NewOrderSystem creates an order system with no status.
func NewOrderSystem(opts ...registry.Option) *OrderSystem {
	return &OrderSystem{observable: newObservable[string]("order", opts...)}
}

// UpdateStatus sets the order status and notifies every customer.
func (o *OrderSystem) UpdateStatus(status string) error {
	if err := o.reg.SetState(status); err != nil {
		return fmt.Errorf("update status %q: %w", status, err)
	}
	return nil
}

// Status returns the current order status.
func (o *OrderSystem) Status() string {
	return o.reg.State()
}
