package storefront

import (
	"context"
	"sort"
	"strings"
	"sync"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	id "custid/pkg/domain"
	"custid/pkg/platform/sentinel"
)

// InMemory is a tenant-partitioned storefront reader for tests and local runs.
type InMemory struct {
	mu     sync.RWMutex
	orders map[id.TenantID][]Order
}

// NewInMemory creates an empty in-memory storefront.
func NewInMemory() *InMemory {
	return &InMemory{orders: make(map[id.TenantID][]Order)}
}

// Add seeds orders for a tenant.
func (s *InMemory) Add(scope models.TenantScope, orders ...Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[scope.Tenant()] = append(s.orders[scope.Tenant()], orders...)
}

func (s *InMemory) FindByEmail(_ context.Context, scope models.TenantScope, email string) ([]Order, error) {
	email = strings.TrimSpace(email)
	return s.filter(scope, func(o Order) bool {
		return strings.EqualFold(strings.TrimSpace(o.CustomerEmail), email)
	}), nil
}

func (s *InMemory) FindByPhone(_ context.Context, scope models.TenantScope, phones []string) ([]Order, error) {
	return s.filter(scope, func(o Order) bool {
		stored := normalize.Compact(o.CustomerPhone)
		if stored == "" {
			return false
		}
		for _, p := range phones {
			if stored == p {
				return true
			}
		}
		return false
	}), nil
}

func (s *InMemory) FindByReference(_ context.Context, scope models.TenantScope, reference string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders[scope.Tenant()] {
		if o.Reference == reference {
			found := o
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListRecent(_ context.Context, scope models.TenantScope, limit int) ([]Order, error) {
	s.mu.RLock()
	orders := make([]Order, len(s.orders[scope.Tenant()]))
	copy(orders, s.orders[scope.Tenant()])
	s.mu.RUnlock()

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].PlacedAt.After(orders[j].PlacedAt)
	})
	if limit >= 0 && limit < len(orders) {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *InMemory) filter(scope models.TenantScope, match func(Order) bool) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.orders[scope.Tenant()] {
		if match(o) {
			out = append(out, o)
		}
	}
	return out
}
