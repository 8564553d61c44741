package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"custid/internal/identity/models"
	"custid/internal/identity/sources"
	dErrors "custid/pkg/domain-errors"
	"custid/pkg/requestcontext"
)

// fanOut reads every adapter concurrently and returns their fragments in adapter order. It is
// a join barrier: nothing is returned until every read has finished, and the first failure
// cancels the others and fails the whole call.
func (s *Service) fanOut(ctx context.Context, scope models.TenantScope, filter models.Filter, adapters []sources.Adapter) ([]models.RawIdentityFragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, mapError(ctx, err)
	}

	results := make([][]models.RawIdentityFragment, len(adapters))
	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range adapters {
		g.Go(func() error {
			fragments, err := s.extract(gctx, scope, filter, adapter)
			if err != nil {
				return err
			}
			results[i] = fragments
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, mapError(ctx, err)
	}

	var fragments []models.RawIdentityFragment
	for _, r := range results {
		fragments = append(fragments, r...)
	}
	return fragments, nil
}

func (s *Service) extract(ctx context.Context, scope models.TenantScope, filter models.Filter, adapter sources.Adapter) ([]models.RawIdentityFragment, error) {
	source := string(adapter.System())
	ctx, span := s.tracer.Start(ctx, "identity.adapter.extract")
	defer span.End()
	span.SetAttributes(attribute.String("source", source))

	start := time.Now()
	fragments, err := adapter.ExtractByFilter(ctx, scope, filter)
	s.metrics.ObserveAdapter(source, time.Since(start))
	if err != nil {
		err = sources.Classify(adapter.System(), "extract by filter", err)
		s.metrics.IncrementAdapterFailure(source, string(sources.GetCategory(err)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "source read failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("fragment_count", len(fragments)))
	return fragments, nil
}

// mapError turns a source failure into a coded error. ctx is the call's own context, not the
// fan-out group's, so a sibling failure is not mistaken for caller cancellation.
func mapError(ctx context.Context, err error) error {
	var de *dErrors.Error
	if dErrors.AsError(err, &de) {
		return err
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "source reads did not complete in time")
	case errors.Is(ctx.Err(), context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeCancelled, "resolution cancelled by caller")
	}
	return dErrors.Wrap(err, dErrors.CodeAdapterFailure, "source read failed")
}

func (s *Service) failed(ctx context.Context, span trace.Span, scope models.TenantScope, query string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	s.logger.WarnContext(ctx, "identity resolution failed",
		"tenant_id", scope.String(),
		"query", query,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	return err
}
