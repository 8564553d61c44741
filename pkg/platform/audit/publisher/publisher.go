// Package publisher emits audit events to a sink, synchronously or through a bounded
// asynchronous buffer.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	audit "custid/pkg/platform/audit"
)

// Sink persists or forwards audit events.
type Sink interface {
	Append(ctx context.Context, event audit.Event) error
}

// Publisher captures audit events. In async mode Emit never blocks: events that do not fit
// the buffer are dropped and logged.
type Publisher struct {
	sink   Sink
	logger *slog.Logger

	buffer chan audit.Event
	wg     sync.WaitGroup
	once   sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous delivery through a buffer of the given size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan audit.Event, size)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher. Close must be called to drain an async buffer.
func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit stamps the event and hands it to the sink.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if p.buffer == nil {
		return p.sink.Append(ctx, event)
	}
	select {
	case p.buffer <- event:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"tenant_id", event.TenantID.String(),
		)
	}
	return nil
}

// Close stops accepting async events and waits for the buffer to drain.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.buffer != nil {
			close(p.buffer)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.buffer {
		// Detached from the request: the caller has already returned.
		if err := p.sink.Append(context.Background(), event); err != nil {
			p.logger.Warn("audit sink append failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
}
