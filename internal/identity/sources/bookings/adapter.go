package bookings

import (
	"context"
	"errors"
	"strings"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	"custid/internal/identity/sources"
	"custid/pkg/platform/sentinel"
)

// Adapter reads identity fragments from bookings.
type Adapter struct {
	reader Reader
}

// NewAdapter wraps a bookings reader.
func NewAdapter(reader Reader) *Adapter {
	return &Adapter{reader: reader}
}

func (a *Adapter) System() models.SourceSystem {
	return models.SourceBookings
}

func (a *Adapter) SupportsEmail() bool {
	return true
}

func (a *Adapter) ExtractByFilter(ctx context.Context, scope models.TenantScope, filter models.Filter) ([]models.RawIdentityFragment, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return nil, nil
	}

	var found []Booking
	if email := strings.TrimSpace(filter.Email); email != "" {
		byEmail, err := a.reader.FindByEmail(ctx, scope, email)
		if err != nil {
			return nil, sources.Classify(a.System(), "find by email", err)
		}
		found = append(found, byEmail...)
	}
	if variants := normalize.PhoneVariants(filter.Phone); len(variants) > 0 {
		byPhone, err := a.reader.FindByPhone(ctx, scope, variants)
		if err != nil {
			return nil, sources.Classify(a.System(), "find by phone", err)
		}
		found = append(found, byPhone...)
	}

	seen := make(map[string]struct{}, len(found))
	var out []models.RawIdentityFragment
	for _, b := range found {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b.Fragment())
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
	booking, err := a.reader.FindByReference(ctx, scope, reference)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, sources.Classify(a.System(), "find by reference", err)
	}
	f := booking.Fragment()
	return &f, nil
}
