package listeners

import "io"

// Customer is told about every status change of their order.
type Customer struct {
	name string
	out  io.Writer
}

// NewCustomer creates a customer named name.
func NewCustomer(name string, out io.Writer) *Customer {
	return &Customer{name: name, out: out}
}

// Name returns the customer name.
func (c *Customer) Name() string { return c.name }

// Receive tells the customer the new status.
func (c *Customer) Receive(status string) error {
	return emit(c.out, "Customer %s: Your order status is '%s'", c.name, status)
}
