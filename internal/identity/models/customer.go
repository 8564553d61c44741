package models

import "sort"

// CanonicalCustomer is the computed, unified view of a customer for one resolution call.
// It is never stored.
//
// Invariants:
//   - CanonicalID is derived from the bucket's identity (email, else phone, else source fallback)
//   - SourceSystems and OriginalReferences only grow while a bucket is being built
type CanonicalCustomer struct {
	CanonicalID        string                    `json:"canonical_id"`
	Email              string                    `json:"email,omitempty"`
	Phone              string                    `json:"phone,omitempty"`
	Name               string                    `json:"name,omitempty"`
	SourceSystems      []SourceSystem            `json:"source_systems"`
	OriginalReferences map[SourceSystem][]string `json:"original_references"`
	Fragmentation      FragmentationStatus       `json:"fragmentation"`
	Privacy            PrivacyLimitations        `json:"privacy"`
}

// HasSystem reports whether the customer was observed in sys.
func (c *CanonicalCustomer) HasSystem(sys SourceSystem) bool {
	for _, s := range c.SourceSystems {
		if s == sys {
			return true
		}
	}
	return false
}

// AmbiguousEntry is one finding of the bounded ambiguity scan.
type AmbiguousEntry struct {
	CanonicalID        string             `json:"canonical_id"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	SourceSystems      []SourceSystem     `json:"source_systems"`
	Reason             string             `json:"reason"`
	FragmentationLevel FragmentationLevel `json:"fragmentation_level"`
}

// SortSystems orders systems by reference priority.
func SortSystems(systems []SourceSystem) {
	sort.SliceStable(systems, func(i, j int) bool {
		return systems[i].Rank() < systems[j].Rank()
	})
}
