package ops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the tracker does with each event.
type Metrics struct {
	Forwarded           prometheus.Counter
	Sampled             prometheus.Counter
	BreakerDropped      prometheus.Counter
	ForwardFailures     prometheus.Counter
	CircuitBreakerState prometheus.Gauge
}

// NewMetrics registers tracker metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Forwarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "custid_audit_ops_forwarded_total",
			Help: "Total operational audit events forwarded to the sink",
		}),
		Sampled: factory.NewCounter(prometheus.CounterOpts{
			Name: "custid_audit_ops_sampled_total",
			Help: "Total operational audit events dropped by sampling",
		}),
		BreakerDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "custid_audit_ops_circuit_breaker_dropped_total",
			Help: "Total operational audit events dropped while the circuit breaker was open",
		}),
		ForwardFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "custid_audit_ops_forward_failures_total",
			Help: "Total operational audit events the sink rejected",
		}),
		CircuitBreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "custid_audit_ops_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open)",
		}),
	}
}

func (m *Metrics) incForwarded() {
	if m != nil {
		m.Forwarded.Inc()
	}
}

func (m *Metrics) incSampled() {
	if m != nil {
		m.Sampled.Inc()
	}
}

func (m *Metrics) incBreakerDropped() {
	if m != nil {
		m.BreakerDropped.Inc()
	}
}

func (m *Metrics) incForwardFailures() {
	if m != nil {
		m.ForwardFailures.Inc()
	}
}

func (m *Metrics) setBreakerState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}
