package listeners

import (
	"io"
	"sync"
)

// CurrentPriceDisplay shows the latest stock price.
type CurrentPriceDisplay struct {
	out io.Writer

	mu    sync.Mutex
	price float64
}

// NewCurrentPriceDisplay creates a price display.
func NewCurrentPriceDisplay(out io.Writer) *CurrentPriceDisplay {
	return &CurrentPriceDisplay{out: out}
}

// Receive records and displays price.
func (d *CurrentPriceDisplay) Receive(price float64) error {
	d.mu.Lock()
	d.price = price
	d.mu.Unlock()
	return emit(d.out, "Current price: $%.2f", price)
}

// Price returns the last displayed price.
func (d *CurrentPriceDisplay) Price() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.price
}

// PercentageChangeDisplay shows the change relative to the previous price.
// The first price only sets the baseline.
type PercentageChangeDisplay struct {
	out io.Writer

	mu        sync.Mutex
	lastPrice float64
	hasLast   bool
	changes   []float64
}

// NewPercentageChangeDisplay creates a percentage change display.
func NewPercentageChangeDisplay(out io.Writer) *PercentageChangeDisplay {
	return &PercentageChangeDisplay{out: out}
}

// Receive computes the change from the previous price and displays it.
func (d *PercentageChangeDisplay) Receive(price float64) error {
	d.mu.Lock()
	if !d.hasLast {
		d.lastPrice, d.hasLast = price, true
		d.mu.Unlock()
		return emit(d.out, "Percentage change: baseline set at $%.2f", price)
	}

	if d.lastPrice == 0 {
		d.lastPrice = price
		d.mu.Unlock()
		return emit(d.out, "Percentage change: n/a (previous price was $0.00)")
	}

	change := (price - d.lastPrice) / d.lastPrice * 100
	d.lastPrice = price
	d.changes = append(d.changes, change)
	d.mu.Unlock()

	return emit(d.out, "Percentage change: %.2f%%", change)
}

// Changes returns every reported change in order. The baseline is not included.
func (d *PercentageChangeDisplay) Changes() []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]float64, len(d.changes))
	copy(result, d.changes)
	return result
}

// LastChange returns the most recent change, false before a second price arrives.
func (d *PercentageChangeDisplay) LastChange() (float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.changes) == 0 {
		return 0, false
	}
	return d.changes[len(d.changes)-1], true
}
