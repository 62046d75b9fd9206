package subjects

import (
	"fmt"

	"github.com/brianly1003/notifyhub/internal/registry"
)

// StockData tracks a single stock price.
type StockData struct {
	observable[float64]
}

// NewStockData creates stock data with a zero price.
func NewStockData(opts ...registry.Option) *StockData {
	return &StockData{observable: newObservable[float64]("stock", opts...)}
}

// SetPrice updates the price and notifies every display.
func (s *StockData) SetPrice(price float64) error {
	if err := s.reg.SetState(price); err != nil {
		return fmt.Errorf("set price %.2f: %w", price, err)
	}
	return nil
}

// Price returns the last price set.
func (s *StockData) Price() float64 {
	return s.reg.State()
}
