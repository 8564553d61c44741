// Package support adapts the support desk (source C) to the identity engine. Tickets only
// carry the requester's phone, so this source can never be searched by email.
package support

import (
	"context"

	"custid/internal/identity/models"
)

// Ticket is the minimal view of a support ticket the engine reads.
type Ticket struct {
	ID            string
	Reference     string
	Phone         string
	RequesterName string
}

// Fragment converts the ticket to a raw identity fragment.
func (t Ticket) Fragment() models.RawIdentityFragment {
	return models.RawIdentityFragment{
		Phone:          t.Phone,
		Name:           t.RequesterName,
		SourceSystem:   models.SourceSupport,
		SourceRecordID: t.ID,
	}
}

// Reader is the support desk's tenant-scoped read interface.
type Reader interface {
	FindByPhone(ctx context.Context, scope models.TenantScope, phones []string) ([]Ticket, error)
	// FindByReference returns sentinel.ErrNotFound when no ticket holds the reference.
	FindByReference(ctx context.Context, scope models.TenantScope, reference string) (*Ticket, error)
}
