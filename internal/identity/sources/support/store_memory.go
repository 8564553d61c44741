package support

import (
	"context"
	"sync"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	id "custid/pkg/domain"
	"custid/pkg/platform/sentinel"
)

// InMemory is a tenant-partitioned ticket reader for tests and local runs.
type InMemory struct {
	mu      sync.RWMutex
	tickets map[id.TenantID][]Ticket
}

// NewInMemory creates an empty in-memory ticket reader.
func NewInMemory() *InMemory {
	return &InMemory{tickets: make(map[id.TenantID][]Ticket)}
}

// Add seeds tickets for a tenant.
func (s *InMemory) Add(scope models.TenantScope, tickets ...Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[scope.Tenant()] = append(s.tickets[scope.Tenant()], tickets...)
}

func (s *InMemory) FindByPhone(_ context.Context, scope models.TenantScope, phones []string) ([]Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Ticket
	for _, t := range s.tickets[scope.Tenant()] {
		stored := normalize.Compact(t.Phone)
		for _, p := range phones {
			if stored != "" && stored == p {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (s *InMemory) FindByReference(_ context.Context, scope models.TenantScope, reference string) (*Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tickets[scope.Tenant()] {
		if t.Reference == reference {
			found := t
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
