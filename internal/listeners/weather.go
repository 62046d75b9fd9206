package listeners

import (
	"io"
	"sync"

	"github.com/brianly1003/notifyhub/internal/domain"
)

// CurrentConditionsDisplay shows the latest temperature and humidity.
type CurrentConditionsDisplay struct {
	out io.Writer

	mu          sync.Mutex
	temperature float64
	humidity    float64
}

// NewCurrentConditionsDisplay creates a current conditions display.
func NewCurrentConditionsDisplay(out io.Writer) *CurrentConditionsDisplay {
	return &CurrentConditionsDisplay{out: out}
}

// Receive records and displays m.
func (d *CurrentConditionsDisplay) Receive(m domain.Measurement) error {
	d.mu.Lock()
	d.temperature, d.humidity = m.Temperature, m.Humidity
	d.mu.Unlock()
	return emit(d.out, "Current conditions: %.2fF degrees and %.2f%% humidity", m.Temperature, m.Humidity)
}

// StatisticsDisplay keeps running temperature statistics.
// Min and max start from the first reading.
type StatisticsDisplay struct {
	out io.Writer

	mu       sync.Mutex
	max      float64
	min      float64
	sum      float64
	readings int
}

// NewStatisticsDisplay creates a statistics display.
func NewStatisticsDisplay(out io.Writer) *StatisticsDisplay {
	return &StatisticsDisplay{out: out}
}

// Receive folds m into the statistics and displays them.
func (d *StatisticsDisplay) Receive(m domain.Measurement) error {
	d.mu.Lock()
	t := m.Temperature
	if d.readings == 0 {
		d.max, d.min = t, t
	} else {
		d.max = max(d.max, t)
		d.min = min(d.min, t)
	}
	d.sum += t
	d.readings++
	avg, hi, lo := d.sum/float64(d.readings), d.max, d.min
	d.mu.Unlock()

	return emit(d.out, "Avg/Max/Min temperature = %.2f/%.2f/%.2f", avg, hi, lo)
}

// Stats returns the running average, maximum, minimum and reading count.
// All values are zero before the first reading.
func (d *StatisticsDisplay) Stats() (avg, hi, lo float64, readings int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.readings == 0 {
		return 0, 0, 0, 0
	}
	return d.sum / float64(d.readings), d.max, d.min, d.readings
}

// Forecast is the outlook derived from the pressure trend.
type Forecast string

const (
	ForecastUnknown   Forecast = "Gathering pressure readings"
	ForecastImproving Forecast = "Improving weather on the way!"
	ForecastSame      Forecast = "More of the same"
	ForecastWorsening Forecast = "Watch out for cooler, rainy weather"
)

// ForecastDisplay predicts the weather from the change in barometric pressure.
type ForecastDisplay struct {
	out io.Writer

	mu       sync.Mutex
	pressure float64
	hasLast  bool
	forecast Forecast
}

// NewForecastDisplay creates a forecast display.
func NewForecastDisplay(out io.Writer) *ForecastDisplay {
	return &ForecastDisplay{out: out, forecast: ForecastUnknown}
}

// Receive updates the forecast from m.Pressure and displays it.
func (d *ForecastDisplay) Receive(m domain.Measurement) error {
	d.mu.Lock()
	switch {
	case !d.hasLast:
		d.forecast = ForecastUnknown
	case m.Pressure > d.pressure:
		d.forecast = ForecastImproving
	case m.Pressure == d.pressure:
		d.forecast = ForecastSame
	default:
		d.forecast = ForecastWorsening
	}
	d.pressure, d.hasLast = m.Pressure, true
	forecast := d.forecast
	d.mu.Unlock()

	return emit(d.out, "Forecast: %s", forecast)
}

// Forecast returns the current forecast.
func (d *ForecastDisplay) Forecast() Forecast {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.forecast
}
