package storefront

import (
	"context"
	"errors"
	"strings"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	"custid/internal/identity/sources"
	"custid/pkg/platform/sentinel"
)

// Adapter reads identity fragments from storefront orders.
type Adapter struct {
	reader Reader
}

// NewAdapter wraps a storefront reader.
func NewAdapter(reader Reader) *Adapter {
	return &Adapter{reader: reader}
}

func (a *Adapter) System() models.SourceSystem {
	return models.SourceStorefront
}

func (a *Adapter) SupportsEmail() bool {
	return true
}

// ExtractByFilter returns the union of email and phone matches, one fragment per order.
func (a *Adapter) ExtractByFilter(ctx context.Context, scope models.TenantScope, filter models.Filter) ([]models.RawIdentityFragment, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return nil, nil
	}

	var orders []Order
	if email := strings.TrimSpace(filter.Email); email != "" {
		found, err := a.reader.FindByEmail(ctx, scope, email)
		if err != nil {
			return nil, sources.Classify(a.System(), "find by email", err)
		}
		orders = append(orders, found...)
	}
	if variants := normalize.PhoneVariants(filter.Phone); len(variants) > 0 {
		found, err := a.reader.FindByPhone(ctx, scope, variants)
		if err != nil {
			return nil, sources.Classify(a.System(), "find by phone", err)
		}
		orders = append(orders, found...)
	}
	return fragments(orders), nil
}

func (a *Adapter) ResolveByReference(ctx context.Context, scope models.TenantScope, reference string) (*models.RawIdentityFragment, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	order, err := a.reader.FindByReference(ctx, scope, reference)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, sources.Classify(a.System(), "find by reference", err)
	}
	f := order.Fragment()
	return &f, nil
}

// Sample returns fragments for the window most recent orders. It backs the bounded
// ambiguity scan and never reads beyond the window.
func (a *Adapter) Sample(ctx context.Context, scope models.TenantScope, window int) ([]models.RawIdentityFragment, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if window <= 0 {
		return nil, nil
	}
	orders, err := a.reader.ListRecent(ctx, scope, window)
	if err != nil {
		return nil, sources.Classify(a.System(), "list recent", err)
	}
	return fragments(orders), nil
}

func fragments(orders []Order) []models.RawIdentityFragment {
	if len(orders) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(orders))
	out := make([]models.RawIdentityFragment, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.ID]; ok {
			continue
		}
		seen[o.ID] = struct{}{}
		out = append(out, o.Fragment())
	}
	return out
}
