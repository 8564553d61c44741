package ops

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "custid/pkg/platform/audit"
	"custid/pkg/platform/audit/store/memory"
)

type flakySink struct {
	err   error
	calls int
}

func (s *flakySink) Append(context.Context, audit.Event) error {
	s.calls++
	return s.err
}

func opsEvent() audit.Event {
	return audit.Event{Category: audit.CategoryOperations, Action: string(audit.EventIdentityResolved)}
}

func TestTrackerForwards(t *testing.T) {
	store := memory.NewInMemoryStore()
	m := NewMetrics(prometheus.NewRegistry())
	tracker := NewTracker(store, WithMetrics(m))

	require.NoError(t, tracker.Append(context.Background(), opsEvent()))
	assert.Equal(t, 1, store.Count())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Forwarded))
}

func TestTrackerSamplesOperationsOnly(t *testing.T) {
	store := memory.NewInMemoryStore()
	m := NewMetrics(prometheus.NewRegistry())
	tracker := NewTracker(store, WithSampler(NewSampler(0)), WithMetrics(m))

	require.NoError(t, tracker.Append(context.Background(), opsEvent()))
	assert.Equal(t, 0, store.Count())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sampled))

	require.NoError(t, tracker.Append(context.Background(), audit.Event{Category: audit.CategoryCompliance}))
	assert.Equal(t, 1, store.Count(), "compliance events are never sampled")
}

func TestTrackerOpensCircuit(t *testing.T) {
	sink := &flakySink{err: errors.New("broker down")}
	breaker := NewCircuitBreaker(2, time.Minute)
	m := NewMetrics(prometheus.NewRegistry())
	tracker := NewTracker(sink, WithCircuitBreaker(breaker), WithMetrics(m))
	ctx := context.Background()

	assert.Error(t, tracker.Append(ctx, opsEvent()))
	assert.Error(t, tracker.Append(ctx, opsEvent()))
	assert.True(t, breaker.IsOpen())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CircuitBreakerState))

	assert.ErrorIs(t, tracker.Append(ctx, opsEvent()), ErrCircuitOpen)
	assert.Equal(t, 2, sink.calls, "open circuit does not reach the sink")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerDropped))
}

func TestCircuitBreakerHalfOpen(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.True(t, cb.Allow())
	cb.RecordFailure()
	assert.False(t, cb.Allow())

	now = now.Add(time.Minute)
	assert.True(t, cb.Allow(), "probe allowed after cooldown")
	cb.RecordFailure()
	assert.False(t, cb.Allow(), "failed probe reopens")

	now = now.Add(time.Minute)
	assert.True(t, cb.Allow())
	cb.RecordSuccess()
	assert.False(t, cb.IsOpen())
	assert.True(t, cb.Allow())
}

func TestSamplerRates(t *testing.T) {
	s := NewSampler(2)
	assert.True(t, s.Keep("anything"))

	s.SetRate("noisy", -1)
	assert.False(t, s.Keep("noisy"))
	assert.True(t, s.Keep("other"))
}
