// Package annotate grades how fragmented a canonical view is and what privacy requests it
// can support, given what is known about each source system.
package annotate

import (
	"fmt"

	"custid/internal/identity/aggregate"
	"custid/internal/identity/models"
)

// Annotate computes the fragmentation and privacy blocks for one aggregated group.
func Annotate(g aggregate.Group, caps models.CapabilitySet) (models.FragmentationStatus, models.PrivacyLimitations) {
	systems := g.Customer.SourceSystems
	key := keyType(g.Customer)

	var linked, unlinkable []models.SourceSystem
	for _, sys := range systems {
		if key != "" && !caps.For(sys).Supports(key) {
			unlinkable = append(unlinkable, sys)
			continue
		}
		linked = append(linked, sys)
	}

	return fragmentation(g, systems, linked, unlinkable, key), privacy(systems, unlinkable, key, caps)
}

// Apply annotates every group in place and returns the customers.
func Apply(groups []aggregate.Group, caps models.CapabilitySet) []*models.CanonicalCustomer {
	out := make([]*models.CanonicalCustomer, len(groups))
	for i, g := range groups {
		g.Customer.Fragmentation, g.Customer.Privacy = Annotate(g, caps)
		out[i] = g.Customer
	}
	return out
}

// keyType is the identifier type the bucket was keyed by; empty for fallback buckets.
func keyType(c *models.CanonicalCustomer) models.IdentifierType {
	switch {
	case c.Email != "":
		return models.IdentifierEmail
	case c.Phone != "":
		return models.IdentifierPhone
	}
	return ""
}

func fragmentation(g aggregate.Group, systems, linked, unlinkable []models.SourceSystem, key models.IdentifierType) models.FragmentationStatus {
	emails, phones := len(g.Emails()), len(g.Phones())
	conflicting := max(emails, phones)

	status := models.FragmentationStatus{
		IsFragmented:      len(systems) > 1 || len(unlinkable) > 0,
		Reasons:           []string{},
		LinkedSystems:     nonNil(linked),
		UnlinkableSystems: nonNil(unlinkable),
		MergeBlockers:     []string{},
	}

	if len(systems) > 1 {
		status.Reasons = append(status.Reasons, fmt.Sprintf("spans %d source systems", len(systems)))
	}
	for _, sys := range unlinkable {
		status.Reasons = append(status.Reasons, fmt.Sprintf("%s cannot be linked by %s", sys, key))
		status.MergeBlockers = append(status.MergeBlockers, fmt.Sprintf("%s has no %s to corroborate the link", sys, key))
	}
	if emails > 1 {
		status.Reasons = append(status.Reasons, fmt.Sprintf("%d distinct emails", emails))
		status.MergeBlockers = append(status.MergeBlockers, "conflicting emails across records")
	}
	if phones > 1 {
		status.Reasons = append(status.Reasons, fmt.Sprintf("%d distinct phones", phones))
		status.MergeBlockers = append(status.MergeBlockers, "conflicting phones across records")
	}

	switch {
	case len(systems) <= 1:
		status.Level = models.FragmentationNone
	case conflicting > 2:
		status.Level = models.FragmentationHigh
	case conflicting == 2 || len(unlinkable) > 0:
		status.Level = models.FragmentationMedium
	default:
		status.Level = models.FragmentationLow
	}
	status.CanMerge = len(status.MergeBlockers) == 0
	return status
}

func privacy(systems, unlinkable []models.SourceSystem, key models.IdentifierType, caps models.CapabilitySet) models.PrivacyLimitations {
	p := models.PrivacyLimitations{
		ErasureBlockers:     []string{},
		CrossSystemLinkable: len(systems) > 1 && len(unlinkable) == 0,
		ConsentStatus:       models.ConsentUnknown,
	}

	for _, sys := range unlinkable {
		p.ErasureBlockers = append(p.ErasureBlockers, fmt.Sprintf("%s: no %s to correlate records for deletion", sys, key))
	}

	portable := len(systems) > 0
	var format *models.PortabilityFormat
	for i, sys := range systems {
		c := caps.For(sys)
		if !c.Erasable {
			p.ErasureBlockers = append(p.ErasureBlockers, fmt.Sprintf("%s: erasure not supported", sys))
		}
		if c.RetentionDays != nil && (p.RetentionDays == nil || *c.RetentionDays > *p.RetentionDays) {
			days := *c.RetentionDays
			p.RetentionDays = &days
		}
		if i == 0 || c.Consent.Strength() < p.ConsentStatus.Strength() {
			p.ConsentStatus = consentOrUnknown(c.Consent)
		}

		switch {
		case c.ExportFormat == nil:
			portable = false
		case format == nil:
			f := *c.ExportFormat
			format = &f
		case *format != *c.ExportFormat:
			f := models.PortabilityJSON
			format = &f
		}
	}

	p.CanFullyErase = len(p.ErasureBlockers) == 0
	if portable {
		p.RightToPortability = true
		p.PortabilityFormat = format
	}
	return p
}

func consentOrUnknown(c models.ConsentStatus) models.ConsentStatus {
	switch c {
	case models.ConsentImplicit, models.ConsentExplicit:
		return c
	}
	return models.ConsentUnknown
}

func nonNil(systems []models.SourceSystem) []models.SourceSystem {
	if systems == nil {
		return []models.SourceSystem{}
	}
	return systems
}
