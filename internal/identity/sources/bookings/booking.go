// Package bookings adapts the bookings system (source B) to the identity engine.
// Bookings carry the guest's email, phone and name, keyed by a booking reference code.
package bookings

import (
	"context"

	"custid/internal/identity/models"
)

// Booking is the minimal view of a booking the engine reads.
type Booking struct {
	ID        string
	Reference string
	Email     string
	Phone     string
	GuestName string
}

// Fragment converts the booking to a raw identity fragment.
func (b Booking) Fragment() models.RawIdentityFragment {
	return models.RawIdentityFragment{
		Email:          b.Email,
		Phone:          b.Phone,
		Name:           b.GuestName,
		SourceSystem:   models.SourceBookings,
		SourceRecordID: b.ID,
	}
}

// Reader is the bookings system's tenant-scoped read interface.
type Reader interface {
	FindByEmail(ctx context.Context, scope models.TenantScope, email string) ([]Booking, error)
	FindByPhone(ctx context.Context, scope models.TenantScope, phones []string) ([]Booking, error)
	// FindByReference returns sentinel.ErrNotFound when no booking holds the reference.
	FindByReference(ctx context.Context, scope models.TenantScope, reference string) (*Booking, error)
}
