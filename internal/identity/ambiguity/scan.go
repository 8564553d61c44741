package ambiguity

import (
	"sort"

	"custid/internal/identity/canonical"
	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
)

// Scan groups a sample of fragments by email and by phone and reports every identifier that
// maps to more than one value of the other. Results are ordered HIGH first, then by canonical
// ID, and truncated to limit when limit is positive.
//
// Scan sees only the fragments it is given. Callers pass a bounded sample, so an empty result
// does not mean the tenant's data is free of conflicts.
func Scan(fragments []models.RawIdentityFragment, limit int) []models.AmbiguousEntry {
	byEmail := newIndex()
	byPhone := newIndex()
	for _, f := range fragments {
		email := normalize.Email(f.Email)
		phone := normalize.Phone(f.Phone)
		if email != "" {
			byEmail.add(email, phone, f.SourceSystem)
		}
		if phone != "" {
			byPhone.add(phone, email, f.SourceSystem)
		}
	}

	var out []models.AmbiguousEntry
	for _, email := range byEmail.order {
		g := byEmail.groups[email]
		if len(g.counterparts) > 1 {
			out = append(out, entry(canonical.ID(email), email, "", ReasonPhonesShareEmail, g))
		}
	}
	for _, phone := range byPhone.order {
		g := byPhone.groups[phone]
		if len(g.counterparts) > 1 {
			out = append(out, entry(canonical.ID(phone), "", phone, ReasonEmailsSharePhone, g))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].FragmentationLevel.Severity(), out[j].FragmentationLevel.Severity()
		if li != lj {
			return li > lj
		}
		return out[i].CanonicalID < out[j].CanonicalID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type group struct {
	counterparts map[string]struct{}
	systems      []models.SourceSystem
}

type index struct {
	groups map[string]*group
	order  []string
}

func newIndex() *index {
	return &index{groups: make(map[string]*group)}
}

func (ix *index) add(key, counterpart string, sys models.SourceSystem) {
	g, ok := ix.groups[key]
	if !ok {
		g = &group{counterparts: make(map[string]struct{})}
		ix.groups[key] = g
		ix.order = append(ix.order, key)
	}
	if counterpart != "" {
		g.counterparts[counterpart] = struct{}{}
	}
	for _, s := range g.systems {
		if s == sys {
			return
		}
	}
	g.systems = append(g.systems, sys)
}

func entry(id, email, phone, reason string, g *group) models.AmbiguousEntry {
	level := models.FragmentationMedium
	if len(g.counterparts) > 2 {
		level = models.FragmentationHigh
	}
	systems := append([]models.SourceSystem(nil), g.systems...)
	models.SortSystems(systems)
	return models.AmbiguousEntry{
		CanonicalID:        id,
		Email:              email,
		Phone:              phone,
		SourceSystems:      systems,
		Reason:             reason,
		FragmentationLevel: level,
	}
}
