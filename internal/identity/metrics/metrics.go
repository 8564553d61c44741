package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for identity resolution.
type Metrics struct {
	// End-to-end latency by query kind: email, phone, reference, ambiguous
	ResolutionLatency *prometheus.HistogramVec

	// Per-source read latency
	AdapterLatency *prometheus.HistogramVec

	// Per-source read failures by normalized category
	AdapterFailures *prometheus.CounterVec

	AmbiguousResolutions *prometheus.CounterVec
	CustomersResolved    *prometheus.CounterVec
}

// New registers identity metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ResolutionLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "custid_resolution_duration_seconds",
			Help:    "Duration of identity resolution calls including source fan-out",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"query"}),

		AdapterLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "custid_adapter_duration_seconds",
			Help:    "Duration of source system reads by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}),

		AdapterFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "custid_adapter_failures_total",
			Help: "Total failed source system reads by source and category",
		}, []string{"source", "category"}),

		AmbiguousResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "custid_ambiguous_resolutions_total",
			Help: "Total resolutions whose fragments were classified ambiguous",
		}, []string{"query"}),

		CustomersResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "custid_customers_resolved_total",
			Help: "Total canonical customers returned by query kind",
		}, []string{"query"}),
	}
}

// ObserveResolution records the duration of a facade call.
func (m *Metrics) ObserveResolution(query string, d time.Duration) {
	if m != nil {
		m.ResolutionLatency.WithLabelValues(query).Observe(d.Seconds())
	}
}

// ObserveAdapter records the duration of one source read.
func (m *Metrics) ObserveAdapter(source string, d time.Duration) {
	if m != nil {
		m.AdapterLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementAdapterFailure(source, category string) {
	if m != nil {
		m.AdapterFailures.WithLabelValues(source, category).Inc()
	}
}

func (m *Metrics) IncrementAmbiguous(query string) {
	if m != nil {
		m.AmbiguousResolutions.WithLabelValues(query).Inc()
	}
}

func (m *Metrics) AddCustomersResolved(query string, n int) {
	if m != nil && n > 0 {
		m.CustomersResolved.WithLabelValues(query).Add(float64(n))
	}
}
