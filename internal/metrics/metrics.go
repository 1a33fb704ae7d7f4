// Package metrics exposes Prometheus counters for the link lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolve outcomes.
const (
	OutcomeRedirected = "redirected"
	OutcomeNotFound   = "not_found"
	OutcomeExpired    = "expired"
	OutcomeError      = "error"
)

// Anomaly kinds.
const (
	AnomalyDuplicateKey        = "duplicate_key"
	AnomalyAllocationExhausted = "allocation_exhausted"
)

// Metrics groups the service counters.
type Metrics struct {
	Shortened prometheus.Counter
	Resolved  *prometheus.CounterVec
	Swept     prometheus.Counter
	Anomalies *prometheus.CounterVec
}

// New registers the service counters with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Shortened: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortlinks_shortened_total",
			Help: "Number of short links created.",
		}),
		Resolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shortlinks_resolved_total",
			Help: "Number of resolve requests by outcome.",
		}, []string{"outcome"}),
		Swept: factory.NewCounter(prometheus.CounterOpts{
			Name: "shortlinks_swept_total",
			Help: "Number of expired records physically removed.",
		}),
		Anomalies: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shortlinks_anomalies_total",
			Help: "Allocation faults that should never happen in a healthy deployment.",
		}, []string{"kind"}),
	}
}

// NewNop returns counters registered nowhere, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
