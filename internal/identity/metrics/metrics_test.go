package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementAdapterFailure("support", "timeout")
	m.IncrementAdapterFailure("support", "timeout")
	m.IncrementAmbiguous("email")
	m.AddCustomersResolved("phone", 3)
	m.AddCustomersResolved("phone", 0)
	m.ObserveResolution("email", 10*time.Millisecond)
	m.ObserveAdapter("storefront", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AdapterFailures.WithLabelValues("support", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AmbiguousResolutions.WithLabelValues("email")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CustomersResolved.WithLabelValues("phone")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ResolutionLatency))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveResolution("email", time.Second)
		m.ObserveAdapter("bookings", time.Second)
		m.IncrementAdapterFailure("bookings", "internal")
		m.IncrementAmbiguous("phone")
		m.AddCustomersResolved("phone", 1)
	})
}
