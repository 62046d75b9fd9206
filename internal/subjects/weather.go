package subjects

import (
	"fmt"

	"github.com/brianly1003/notifyhub/internal/domain"
	"github.com/brianly1003/notifyhub/internal/registry"
)

// WeatherData is the weather station's measurement source.
type WeatherData struct {
	observable[domain.Measurement]
}

// NewWeatherData creates a weather station with zero measurements.
func NewWeatherData(opts ...registry.Option) *WeatherData {
	return &WeatherData{observable: newObservable[domain.Measurement]("weather", opts...)}
}

// SetMeasurements records a new reading and pushes it to every display.
func (w *WeatherData) SetMeasurements(temperature, humidity, pressure float64) error {
	m := domain.Measurement{Temperature: temperature, Humidity: humidity, Pressure: pressure}
	if err := w.reg.SetState(m); err != nil {
		return fmt.Errorf("set measurements: %w", err)
	}
	return nil
}

// Measurements returns the latest reading.
func (w *WeatherData) Measurements() domain.Measurement {
	return w.reg.State()
}
