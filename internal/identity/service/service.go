// Package service is the resolution facade: it fans a query out to every relevant source,
// waits for all of them, and turns the fragments into annotated canonical customers.
//
// Calls are stateless and fail closed. If any source read fails, is cancelled or times out,
// the call returns an error and no partial result.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"custid/internal/identity/annotate"
	"custid/internal/identity/metrics"
	"custid/internal/identity/models"
	"custid/internal/identity/sources"
	audit "custid/pkg/platform/audit"
)

const (
	defaultTimeout        = 5 * time.Second
	defaultScanWindow     = 500
	defaultMaxAmbiguous   = 100
	defaultAmbiguousLimit = 50
)

// AuditPublisher receives an access record after each successful call.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service resolves canonical customers across source systems.
type Service struct {
	registry *sources.Registry
	sampler  sources.Sampler
	caps     models.CapabilitySet

	timeout          time.Duration
	scanWindow       int
	maxAmbiguous     int
	defaultAmbiguous int

	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithCapabilities replaces the built-in source capabilities used for annotation.
func WithCapabilities(caps models.CapabilitySet) Option {
	return func(s *Service) {
		s.caps = caps
	}
}

// WithSampler sets the source sampled by ListAmbiguous.
func WithSampler(sampler sources.Sampler) Option {
	return func(s *Service) {
		s.sampler = sampler
	}
}

// WithTimeout bounds every call, layered on the caller's own deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithScanWindow sets how many recent records ListAmbiguous samples.
func WithScanWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.scanWindow = n
		}
	}
}

// WithMaxAmbiguous caps the number of entries ListAmbiguous returns.
func WithMaxAmbiguous(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAmbiguous = n
		}
	}
}

// WithDefaultAmbiguous sets the ListAmbiguous limit used when the caller gives none.
func WithDefaultAmbiguous(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultAmbiguous = n
		}
	}
}

// New constructs a Service over the registered adapters.
func New(registry *sources.Registry, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, errors.New("adapter registry is required")
	}
	s := &Service{
		registry:         registry,
		caps:             annotate.DefaultCapabilities(),
		timeout:          defaultTimeout,
		scanWindow:       defaultScanWindow,
		maxAmbiguous:     defaultMaxAmbiguous,
		defaultAmbiguous: defaultAmbiguousLimit,
		logger:           slog.New(slog.DiscardHandler),
		tracer:           otel.Tracer("custid/identity/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
