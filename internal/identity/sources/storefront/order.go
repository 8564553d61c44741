// Package storefront adapts the storefront order system (source A) to the identity engine.
// Orders carry the customer's email, phone and name, keyed by an order reference code.
package storefront

import (
	"context"
	"time"

	"custid/internal/identity/models"
)

// Order is the minimal view of a storefront order the engine reads.
type Order struct {
	ID            string
	Reference     string
	CustomerEmail string
	CustomerPhone string
	CustomerName  string
	PlacedAt      time.Time
}

// Fragment converts the order to a raw identity fragment.
func (o Order) Fragment() models.RawIdentityFragment {
	return models.RawIdentityFragment{
		Email:          o.CustomerEmail,
		Phone:          o.CustomerPhone,
		Name:           o.CustomerName,
		SourceSystem:   models.SourceStorefront,
		SourceRecordID: o.ID,
	}
}

// Reader is the storefront's tenant-scoped read interface.
type Reader interface {
	FindByEmail(ctx context.Context, scope models.TenantScope, email string) ([]Order, error)
	// FindByPhone matches orders whose compacted phone equals any of the given spellings.
	FindByPhone(ctx context.Context, scope models.TenantScope, phones []string) ([]Order, error)
	// FindByReference returns sentinel.ErrNotFound when no order holds the reference.
	FindByReference(ctx context.Context, scope models.TenantScope, reference string) (*Order, error)
	// ListRecent returns at most limit orders, newest first.
	ListRecent(ctx context.Context, scope models.TenantScope, limit int) ([]Order, error)
}
