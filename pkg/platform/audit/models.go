package audit

import (
	"time"

	id "custid/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks can route and
// retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers bulk access across a tenant's customers. It is never sampled.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine lookups useful for debugging and usage visibility.
	// These can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted after a successful resolution. It records who asked what and which
// canonical customers were returned. It never carries raw emails or phone numbers.
type Event struct {
	Category     EventCategory `json:"category"`
	Timestamp    time.Time     `json:"timestamp"`
	TenantID     id.TenantID   `json:"tenant_id"`
	Action       string        `json:"action"`
	Query        string        `json:"query"`
	RequestID    string        `json:"request_id,omitempty"`
	ResultCount  int           `json:"result_count"`
	CanonicalIDs []string      `json:"canonical_ids,omitempty"`
	Ambiguous    bool          `json:"ambiguous,omitempty"`
}

type AuditEvent string

const (
	EventIdentityResolved          AuditEvent = "identity_resolved"
	EventIdentityReferenceResolved AuditEvent = "identity_reference_resolved"
	EventIdentityAmbiguityScanned  AuditEvent = "identity_ambiguity_scanned"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventIdentityResolved:          CategoryOperations,
	EventIdentityReferenceResolved: CategoryOperations,
	EventIdentityAmbiguityScanned:  CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
