package service

import (
	"context"

	"custid/internal/identity/models"
	audit "custid/pkg/platform/audit"
	"custid/pkg/requestcontext"
)

// Audit is best effort: a failed emit is logged and never fails the call.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.Category = audit.AuditEvent(event.Action).Category()
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"tenant_id", event.TenantID.String(),
			"error", err,
		)
	}
}

func (s *Service) emitResolved(ctx context.Context, scope models.TenantScope, query string, r *models.Resolution) {
	ids := make([]string, len(r.Customers))
	for i, c := range r.Customers {
		ids[i] = c.CanonicalID
	}
	s.emit(ctx, audit.Event{
		TenantID:     scope.Tenant(),
		Action:       string(audit.EventIdentityResolved),
		Query:        query,
		ResultCount:  len(r.Customers),
		CanonicalIDs: ids,
		Ambiguous:    r.IsAmbiguous,
	})
}

func (s *Service) emitReferenceResolved(ctx context.Context, scope models.TenantScope, c *models.CanonicalCustomer) {
	s.emit(ctx, audit.Event{
		TenantID:     scope.Tenant(),
		Action:       string(audit.EventIdentityReferenceResolved),
		Query:        queryReference,
		ResultCount:  1,
		CanonicalIDs: []string{c.CanonicalID},
	})
}

func (s *Service) emitAmbiguityScanned(ctx context.Context, scope models.TenantScope, entries []models.AmbiguousEntry) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.CanonicalID
	}
	s.emit(ctx, audit.Event{
		TenantID:     scope.Tenant(),
		Action:       string(audit.EventIdentityAmbiguityScanned),
		Query:        queryAmbiguous,
		ResultCount:  len(entries),
		CanonicalIDs: ids,
	})
}
