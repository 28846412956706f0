package directory

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes recorded by Metrics.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDiscarded = "discarded"
)

var latencyBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics holds the Prometheus collectors describing directory fetches.
type Metrics struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A collector
// that is already registered is reused, so several clients may share reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userdir",
			Subsystem: "directory",
			Name:      "fetches_total",
			Help:      "Directory page fetches by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "userdir",
			Subsystem: "directory",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of directory page fetches",
			Buckets:   latencyBuckets,
		}),
	}
	if reg == nil {
		return m
	}

	if err := reg.Register(m.fetches); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				m.fetches = existing
			}
		}
	}
	if err := reg.Register(m.duration); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(prometheus.Histogram); ok {
				m.duration = existing
			}
		}
	}
	return m
}

// Observe records one completed request.
func (m *Metrics) Observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// Discarded records a response that arrived for a superseded request.
func (m *Metrics) Discarded() {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(OutcomeDiscarded).Inc()
}
