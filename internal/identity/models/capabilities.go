package models

// SourceCapabilities is what is known about a source system beyond its records: which
// identifiers it can be searched by and what it supports for privacy requests.
type SourceCapabilities struct {
	Identifiers   []IdentifierType
	ExportFormat  *PortabilityFormat
	RetentionDays *int
	Erasable      bool
	Consent       ConsentStatus
}

// Supports reports whether the source exposes the identifier type.
func (c SourceCapabilities) Supports(t IdentifierType) bool {
	for _, it := range c.Identifiers {
		if it == t {
			return true
		}
	}
	return false
}

// CapabilitySet maps each source to its capabilities.
type CapabilitySet map[SourceSystem]SourceCapabilities

// For returns the capabilities of sys. Unknown systems report no identifiers, no export,
// not erasable and unknown consent, which makes them unlinkable and blocks erasure.
func (cs CapabilitySet) For(sys SourceSystem) SourceCapabilities {
	if c, ok := cs[sys]; ok {
		return c
	}
	return SourceCapabilities{Consent: ConsentUnknown}
}
