package ops

import (
	"sync"
	"time"
)

// CircuitBreaker stops forwarding audit events to a sink that keeps failing. After threshold
// consecutive failures it opens for cooldown, then lets the next event through as a probe.
type CircuitBreaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	now       func() time.Time

	failures  int
	openUntil time.Time
}

// NewCircuitBreaker creates a breaker. Non-positive arguments fall back to 5 failures and a
// one minute cooldown.
func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &CircuitBreaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// Allow reports whether an event may be forwarded.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.openUntil.IsZero() {
		return true
	}
	if cb.now().Before(cb.openUntil) {
		return false
	}
	// Half-open: one probe, and a failure reopens immediately.
	cb.openUntil = time.Time{}
	cb.failures = cb.threshold - 1
	return true
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.openUntil = time.Time{}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	if cb.failures >= cb.threshold {
		cb.openUntil = cb.now().Add(cb.cooldown)
	}
}

// IsOpen reports whether events are currently being dropped.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return !cb.openUntil.IsZero() && cb.now().Before(cb.openUntil)
}
