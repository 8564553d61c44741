package models

// SourceSystem identifies one of the independently owned subsystems that hold customer
// contact fragments. The set is closed; adding a system means adding an adapter.
type SourceSystem string

const (
	// SourceStorefront is source A: storefront orders (email, phone, order reference).
	SourceStorefront SourceSystem = "storefront"
	// SourceBookings is source B: bookings (email, phone, booking reference).
	SourceBookings SourceSystem = "bookings"
	// SourceSupport is source C: support tickets (phone only, ticket reference).
	SourceSupport SourceSystem = "support"
)

// ReferencePriority is the fixed order in which reference codes are resolved across systems.
// The first system holding the code wins, so a code reused by two systems resolves to the
// earlier one. This ordering is deliberate and does not make the winner "correct".
var ReferencePriority = []SourceSystem{SourceStorefront, SourceBookings, SourceSupport}

func (s SourceSystem) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known systems.
func (s SourceSystem) IsValid() bool {
	switch s {
	case SourceStorefront, SourceBookings, SourceSupport:
		return true
	}
	return false
}

// Rank returns the system's position in ReferencePriority, used to order sets of systems
// deterministically. Unknown systems sort last.
func (s SourceSystem) Rank() int {
	for i, sys := range ReferencePriority {
		if sys == s {
			return i
		}
	}
	return len(ReferencePriority)
}

// IdentifierType names a kind of contact identifier a source can expose.
type IdentifierType string

const (
	IdentifierEmail IdentifierType = "email"
	IdentifierPhone IdentifierType = "phone"
)
