// Package metrics exposes registry instrumentation through Prometheus collectors.
package metrics

import (
	"sort"
	"time"

	"github.com/brianly1003/notifyhub/internal/domain/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "notifyhub"

// Recorder implements ports.Recorder on a private Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	cycles    *prometheus.CounterVec
	failures  *prometheus.CounterVec
	delivered *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	listeners *prometheus.GaugeVec
}

var _ ports.Recorder = (*Recorder)(nil)

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_cycles_total",
			Help:      "Notification cycles run per registry.",
		}, []string{"registry"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Notification cycles that returned a listener error.",
		}, []string{"registry"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Payloads successfully delivered to listeners.",
		}, []string{"registry"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_cycle_seconds",
			Help:      "Wall time of one notification cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"registry"}),
		listeners: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "listeners",
			Help:      "Currently registered listeners.",
		}, []string{"registry"}),
	}

	r.registry.MustRegister(r.cycles, r.failures, r.delivered, r.duration, r.listeners)
	return r
}

// ObserveCycle records one notification cycle.
func (r *Recorder) ObserveCycle(registry string, delivered int, elapsed time.Duration, err error) {
	r.cycles.WithLabelValues(registry).Inc()
	r.delivered.WithLabelValues(registry).Add(float64(delivered))
	r.duration.WithLabelValues(registry).Observe(elapsed.Seconds())
	if err != nil {
		r.failures.WithLabelValues(registry).Inc()
	}
}

// ObserveMembership records the current listener count.
func (r *Recorder) ObserveMembership(registry string, size int) {
	r.listeners.WithLabelValues(registry).Set(float64(size))
}

// Gatherer returns the underlying registry for exposition.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Sample is one counter or gauge value for a registry.
type Sample struct {
	Metric   string
	Registry string
	Value    float64
}

// Snapshot returns the counter and gauge values, sorted by metric then registry.
// Histograms are reported by their sample count.
func (r *Recorder) Snapshot() ([]Sample, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var registry string
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "registry" {
					registry = lp.GetValue()
				}
			}

			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			}

			samples = append(samples, Sample{Metric: mf.GetName(), Registry: registry, Value: value})
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Metric != samples[j].Metric {
			return samples[i].Metric < samples[j].Metric
		}
		return samples[i].Registry < samples[j].Registry
	})
	return samples, nil
}
