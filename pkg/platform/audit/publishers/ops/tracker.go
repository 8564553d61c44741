// Package ops forwards operational audit events with sampling and a circuit breaker, so a
// slow or failing audit sink never degrades identity lookups.
package ops

import (
	"context"
	"errors"

	audit "custid/pkg/platform/audit"
)

// ErrCircuitOpen is returned while the breaker is shedding events.
var ErrCircuitOpen = errors.New("audit sink circuit open")

// Sink receives forwarded events.
type Sink interface {
	Append(ctx context.Context, event audit.Event) error
}

// Tracker is itself a Sink, so it can sit between a publisher and the real sink.
type Tracker struct {
	sink    Sink
	sampler *Sampler
	breaker *CircuitBreaker
	metrics *Metrics
}

type Option func(*Tracker)

func WithSampler(s *Sampler) Option {
	return func(t *Tracker) {
		t.sampler = s
	}
}

func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(t *Tracker) {
		t.breaker = cb
	}
}

func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

// NewTracker wraps sink. Without options every event is kept and a default breaker is used.
func NewTracker(sink Sink, opts ...Option) *Tracker {
	t := &Tracker{
		sink:    sink,
		sampler: NewSampler(1),
		breaker: NewCircuitBreaker(0, 0),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Append forwards the event unless it is sampled out or the breaker is open. Sampled-out
// events are not an error.
func (t *Tracker) Append(ctx context.Context, event audit.Event) error {
	if event.Category == audit.CategoryOperations && !t.sampler.Keep(event.Action) {
		t.metrics.incSampled()
		return nil
	}
	if !t.breaker.Allow() {
		t.metrics.incBreakerDropped()
		return ErrCircuitOpen
	}

	if err := t.sink.Append(ctx, event); err != nil {
		t.breaker.RecordFailure()
		t.metrics.incForwardFailures()
		t.metrics.setBreakerState(t.breaker.IsOpen())
		return err
	}
	t.breaker.RecordSuccess()
	t.metrics.incForwarded()
	t.metrics.setBreakerState(false)
	return nil
}
