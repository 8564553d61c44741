package support

import (
	"context"
	"errors"
	"strings"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	"custid/internal/identity/sources"
	"custid/pkg/platform/sentinel"
)

// Adapter reads identity fragments from support tickets.
type Adapter struct {
	reader Reader
}

// NewAdapter wraps a support ticket reader.
func NewAdapter(reader Reader) *Adapter {
	return &Adapter{reader: reader}
}

func (a *Adapter) System() models.SourceSystem {
	return models.SourceSupport
}

// SupportsEmail is always false: tickets have no email field.
func (a *Adapter) SupportsEmail() bool {
	return false
}

// ExtractByFilter matches on phone only. An email-only filter yields nothing.
func (a *Adapter) ExtractByFilter(ctx context.Context, scope models.TenantScope, filter models.Filter) ([]models.RawIdentityFragment, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	variants := normalize.PhoneVariants(filter.Phone)
	if len(variants) == 0 {
		return nil, nil
	}

	tickets, err := a.reader.FindByPhone(ctx, scope, variants)
	if err != nil {
		return nil, sources.Classify(a.System(), "find by phone", err)
	}

	seen := make(map[string]struct{}, len(tickets))
	out := make([]models.RawIdentityFragment, 0, len(tickets))
	for _, t := range tickets {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t.Fragment())
	}
	return out, nil
}

func (a *Adapter) ResolveByReference(ctx context.Context, scope models.TenantScope, reference string) (*models.RawIdentityFragment, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	ticket, err := a.reader.FindByReference(ctx, scope, reference)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, sources.Classify(a.System(), "find by reference", err)
	}
	f := ticket.Fragment()
	return &f, nil
}
