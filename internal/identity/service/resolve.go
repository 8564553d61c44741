package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"custid/internal/identity/aggregate"
	"custid/internal/identity/ambiguity"
	"custid/internal/identity/annotate"
	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	"custid/internal/identity/sources"
	dErrors "custid/pkg/domain-errors"
	"custid/pkg/requestcontext"
)

const (
	queryEmail     = "email"
	queryPhone     = "phone"
	queryReference = "reference"
	queryAmbiguous = "ambiguous"
)

// GetByEmail resolves the customers holding email. Sources without an email field are not
// queried. An email that normalizes to blank yields an empty resolution.
func (s *Service) GetByEmail(ctx context.Context, scope models.TenantScope, email string) (*models.Resolution, error) {
	return s.resolve(ctx, scope, queryEmail, models.Filter{Email: normalize.Email(email)}, s.registry.EmailCapable())
}

// GetByPhone resolves the customers holding phone across every source.
func (s *Service) GetByPhone(ctx context.Context, scope models.TenantScope, phone string) (*models.Resolution, error) {
	return s.resolve(ctx, scope, queryPhone, models.Filter{Phone: normalize.Phone(phone)}, s.registry.All())
}

func (s *Service) resolve(ctx context.Context, scope models.TenantScope, query string, filter models.Filter, adapters []sources.Adapter) (*models.Resolution, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "identity.resolve")
	defer span.End()
	span.SetAttributes(
		attribute.String("query", query),
		attribute.Int("adapter_count", len(adapters)),
	)

	if err := scope.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid scope")
		return nil, err
	}
	span.SetAttributes(attribute.String("tenant_id", scope.String()))

	if filter.IsEmpty() {
		s.logger.DebugContext(ctx, "identifier normalized to blank, nothing to resolve",
			"tenant_id", scope.String(),
			"query", query,
		)
		return &models.Resolution{Customers: []*models.CanonicalCustomer{}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fragments, err := s.fanOut(ctx, scope, filter, adapters)
	if err != nil {
		return nil, s.failed(ctx, span, scope, query, err)
	}

	customers := annotate.Apply(aggregate.Groups(fragments), s.caps)
	detected := ambiguity.Detect(fragments)
	result := &models.Resolution{
		Customers:   customers,
		IsAmbiguous: detected.IsAmbiguous,
		Reason:      detected.Reason,
	}

	span.SetAttributes(
		attribute.Int("fragment_count", len(fragments)),
		attribute.Int("customer_count", len(customers)),
		attribute.Bool("ambiguous", detected.IsAmbiguous),
	)
	s.metrics.ObserveResolution(query, time.Since(start))
	s.metrics.AddCustomersResolved(query, len(customers))
	if detected.IsAmbiguous {
		s.metrics.IncrementAmbiguous(query)
	}
	s.logger.InfoContext(ctx, "identity resolved",
		"tenant_id", scope.String(),
		"query", query,
		"request_id", requestcontext.RequestID(ctx),
		"fragments", len(fragments),
		"customers", len(customers),
		"ambiguous", detected.IsAmbiguous,
	)
	s.emitResolved(ctx, scope, query, result)
	return result, nil
}

// ResolveFromOrderReference returns the customer holding reference in the first source, in
// reference priority order, that has it. A reference reused by two sources resolves to the
// higher priority one. It returns nil when no source holds the reference.
func (s *Service) ResolveFromOrderReference(ctx context.Context, scope models.TenantScope, reference string) (*models.CanonicalCustomer, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "identity.resolve_reference")
	defer span.End()

	if err := scope.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid scope")
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	for _, adapter := range s.registry.All() {
		if err := ctx.Err(); err != nil {
			return nil, s.failed(ctx, span, scope, queryReference, mapError(ctx, err))
		}

		fragment, err := s.readReference(ctx, scope, adapter, reference)
		if err != nil {
			return nil, s.failed(ctx, span, scope, queryReference, mapError(ctx, err))
		}
		if fragment == nil {
			continue
		}

		customer := annotate.Apply(aggregate.Groups([]models.RawIdentityFragment{*fragment}), s.caps)[0]
		span.SetAttributes(attribute.String("source", string(adapter.System())))
		s.metrics.ObserveResolution(queryReference, time.Since(start))
		s.metrics.AddCustomersResolved(queryReference, 1)
		s.logger.InfoContext(ctx, "reference resolved",
			"tenant_id", scope.String(),
			"source", adapter.System(),
			"canonical_id", customer.CanonicalID,
			"request_id", requestcontext.RequestID(ctx),
		)
		s.emitReferenceResolved(ctx, scope, customer)
		return customer, nil
	}

	s.metrics.ObserveResolution(queryReference, time.Since(start))
	return nil, nil
}

func (s *Service) readReference(ctx context.Context, scope models.TenantScope, adapter sources.Adapter, reference string) (*models.RawIdentityFragment, error) {
	ctx, span := s.tracer.Start(ctx, "identity.adapter.resolve_reference")
	defer span.End()
	span.SetAttributes(attribute.String("source", string(adapter.System())))

	start := time.Now()
	fragment, err := adapter.ResolveByReference(ctx, scope, reference)
	s.metrics.ObserveAdapter(string(adapter.System()), time.Since(start))
	if err != nil {
		err = sources.Classify(adapter.System(), "resolve by reference", err)
		s.metrics.IncrementAdapterFailure(string(adapter.System()), string(sources.GetCategory(err)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "source read failed")
		return nil, err
	}
	return fragment, nil
}

// ListAmbiguous samples the most recent records of one source and reports identifiers that
// map to more than one value of the other identifier. It is bounded by the scan window and is
// not an exhaustive audit: conflicts outside the window are not reported.
func (s *Service) ListAmbiguous(ctx context.Context, scope models.TenantScope, limit int) ([]models.AmbiguousEntry, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "identity.list_ambiguous")
	defer span.End()

	if err := scope.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid scope")
		return nil, err
	}
	if s.sampler == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "ambiguity scan is not configured")
	}
	limit = s.ambiguousLimit(limit)
	span.SetAttributes(
		attribute.Int("scan_window", s.scanWindow),
		attribute.Int("limit", limit),
		attribute.String("source", string(s.sampler.System())),
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sampled, err := s.sampler.Sample(ctx, scope, s.scanWindow)
	if err != nil {
		err = sources.Classify(s.sampler.System(), "sample", err)
		s.metrics.IncrementAdapterFailure(string(s.sampler.System()), string(sources.GetCategory(err)))
		return nil, s.failed(ctx, span, scope, queryAmbiguous, mapError(ctx, err))
	}

	entries := ambiguity.Scan(sampled, limit)
	if entries == nil {
		entries = []models.AmbiguousEntry{}
	}
	s.metrics.ObserveResolution(queryAmbiguous, time.Since(start))
	s.logger.InfoContext(ctx, "ambiguity scan completed",
		"tenant_id", scope.String(),
		"sampled", len(sampled),
		"entries", len(entries),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitAmbiguityScanned(ctx, scope, entries)
	return entries, nil
}

func (s *Service) ambiguousLimit(limit int) int {
	if limit <= 0 {
		limit = s.defaultAmbiguous
	}
	return min(limit, s.maxAmbiguous)
}
