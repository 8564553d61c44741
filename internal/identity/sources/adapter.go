// Package sources defines the read-only port every source system adapter implements, and
// the ordered registry the resolution service fans out over.
package sources

import (
	"context"
	"fmt"
	"sort"

	"custid/internal/identity/models"
)

// Adapter extracts raw identity fragments from one source system. Every method is
// tenant-scoped and read-only; adapters return raw values and leave normalization to the
// aggregator.
type Adapter interface {
	// System identifies the source this adapter reads.
	System() models.SourceSystem

	// SupportsEmail reports whether the source has an email field to match against.
	SupportsEmail() bool

	// ExtractByFilter returns fragments matching the filter. An empty filter returns no
	// fragments, never a full scan. A source without an email field returns no fragments
	// for an email-only filter.
	ExtractByFilter(ctx context.Context, scope models.TenantScope, filter models.Filter) ([]models.RawIdentityFragment, error)

	// ResolveByReference returns the fragment of the record holding the reference code,
	// or nil when the source has no such record.
	ResolveByReference(ctx context.Context, scope models.TenantScope, reference string) (*models.RawIdentityFragment, error)
}

// Sampler returns a bounded window of a source's most recent records. It backs the
// best-effort ambiguity scan and is deliberately not exhaustive.
type Sampler interface {
	System() models.SourceSystem
	Sample(ctx context.Context, scope models.TenantScope, window int) ([]models.RawIdentityFragment, error)
}

// Registry holds adapters ordered by reference priority.
type Registry struct {
	adapters []Adapter
}

// NewRegistry registers the given adapters. Duplicate systems are rejected.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds an adapter, keeping reference priority order.
func (r *Registry) Register(a Adapter) error {
	if a == nil {
		return fmt.Errorf("adapter is required")
	}
	for _, existing := range r.adapters {
		if existing.System() == a.System() {
			return fmt.Errorf("adapter for %s already registered", a.System())
		}
	}
	r.adapters = append(r.adapters, a)
	sort.SliceStable(r.adapters, func(i, j int) bool {
		return r.adapters[i].System().Rank() < r.adapters[j].System().Rank()
	})
	return nil
}

// All returns every adapter in reference priority order.
func (r *Registry) All() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// EmailCapable returns the adapters whose source has an email field.
func (r *Registry) EmailCapable() []Adapter {
	var out []Adapter
	for _, a := range r.adapters {
		if a.SupportsEmail() {
			out = append(out, a)
		}
	}
	return out
}

// Get returns the adapter for sys.
func (r *Registry) Get(sys models.SourceSystem) (Adapter, bool) {
	for _, a := range r.adapters {
		if a.System() == sys {
			return a, true
		}
	}
	return nil, false
}
