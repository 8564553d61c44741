package bookings

import (
	"context"
	"strings"
	"sync"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	id "custid/pkg/domain"
	"custid/pkg/platform/sentinel"
)

// InMemory is a tenant-partitioned bookings reader for tests and local runs.
type InMemory struct {
	mu       sync.RWMutex
	bookings map[id.TenantID][]Booking
}

// NewInMemory creates an empty in-memory bookings reader.
func NewInMemory() *InMemory {
	return &InMemory{bookings: make(map[id.TenantID][]Booking)}
}

// Add seeds bookings for a tenant.
func (s *InMemory) Add(scope models.TenantScope, bookings ...Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[scope.Tenant()] = append(s.bookings[scope.Tenant()], bookings...)
}

func (s *InMemory) FindByEmail(_ context.Context, scope models.TenantScope, email string) ([]Booking, error) {
	email = strings.TrimSpace(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Booking
	for _, b := range s.bookings[scope.Tenant()] {
		if strings.EqualFold(strings.TrimSpace(b.Email), email) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *InMemory) FindByPhone(_ context.Context, scope models.TenantScope, phones []string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Booking
	for _, b := range s.bookings[scope.Tenant()] {
		stored := normalize.Compact(b.Phone)
		for _, p := range phones {
			if stored != "" && stored == p {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (s *InMemory) FindByReference(_ context.Context, scope models.TenantScope, reference string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings[scope.Tenant()] {
		if b.Reference == reference {
			found := b
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
