package listeners

import (
	"bytes"
	"testing"

	"github.com/brianly1003/notifyhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsDisplay_FirstReadingSetsMinAndMax(t *testing.T) {
	var out bytes.Buffer
	d := NewStatisticsDisplay(&out)

	require.NoError(t, d.Receive(domain.Measurement{Temperature: 80, Humidity: 65, Pressure: 30.4}))

	avg, hi, lo, n := d.Stats()
	assert.Equal(t, 80.0, hi)
	assert.Equal(t, 80.0, lo)
	assert.Equal(t, 80.0, avg)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Avg/Max/Min temperature = 80.00/80.00/80.00\n", out.String())
}

func TestStatisticsDisplay_RunningAverage(t *testing.T) {
	var out bytes.Buffer
	d := NewStatisticsDisplay(&out)

	for _, temp := range []float64{80, 82, 78} {
		require.NoError(t, d.Receive(domain.Measurement{Temperature: temp}))
	}

	avg, hi, lo, n := d.Stats()
	assert.InDelta(t, 80.0, avg, 1e-9)
	assert.Equal(t, 82.0, hi)
	assert.Equal(t, 78.0, lo)
	assert.Equal(t, 3, n)
}

func TestStatisticsDisplay_NegativeTemperatures(t *testing.T) {
	d := NewStatisticsDisplay(&bytes.Buffer{})

	require.NoError(t, d.Receive(domain.Measurement{Temperature: -5}))
	require.NoError(t, d.Receive(domain.Measurement{Temperature: -12}))

	_, hi, lo, _ := d.Stats()
	assert.Equal(t, -5.0, hi)
	assert.Equal(t, -12.0, lo)
}

func TestStatisticsDisplay_EmptyStats(t *testing.T) {
	d := NewStatisticsDisplay(&bytes.Buffer{})

	avg, hi, lo, n := d.Stats()
	assert.Zero(t, avg)
	assert.Zero(t, hi)
	assert.Zero(t, lo)
	assert.Zero(t, n)
}

func TestCurrentConditionsDisplay(t *testing.T) {
	var out bytes.Buffer
	d := NewCurrentConditionsDisplay(&out)

	require.NoError(t, d.Receive(domain.Measurement{Temperature: 80, Humidity: 65, Pressure: 30.4}))

	assert.Equal(t, "Current conditions: 80.00F degrees and 65.00% humidity\n", out.String())
}

func TestForecastDisplay_PressureTrend(t *testing.T) {
	d := NewForecastDisplay(&bytes.Buffer{})

	tests := []struct {
		pressure float64
		want     Forecast
	}{
		{30.4, ForecastUnknown},
		{29.2, ForecastWorsening},
		{29.2, ForecastSame},
		{29.8, ForecastImproving},
	}

	for _, tt := range tests {
		require.NoError(t, d.Receive(domain.Measurement{Pressure: tt.pressure}))
		assert.Equal(t, tt.want, d.Forecast(), "pressure %.1f", tt.pressure)
	}
}
