// Package aggregate folds raw identity fragments into canonical customer views.
//
// Bucketing is a pure function of the fragment set: the same fragments in any order produce
// the same buckets with the same members. Linking happens in three passes:
//
//  1. fragments with an email bucket by their email identity
//  2. phone-only fragments join the one email bucket already holding their phone, or
//     bucket by phone identity when no single email bucket holds it
//  3. fragments with neither identifier bucket by their source fallback identity
//
// Distinct emails are never merged into one bucket.
package aggregate

import (
	"strings"

	"custid/internal/identity/canonical"
	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	pstrings "custid/pkg/platform/strings"
)

// Group is one canonical customer and the fragments folded into it.
type Group struct {
	Customer  *models.CanonicalCustomer
	Fragments []models.RawIdentityFragment
}

// Emails returns the distinct normalized emails of the group's fragments.
func (g Group) Emails() []string {
	var out []string
	for _, f := range g.Fragments {
		out = pstrings.AppendUnique(out, normalize.Email(f.Email))
	}
	return out
}

// Phones returns the distinct normalized phones of the group's fragments.
func (g Group) Phones() []string {
	var out []string
	for _, f := range g.Fragments {
		out = pstrings.AppendUnique(out, normalize.Phone(f.Phone))
	}
	return out
}

// Aggregate returns the canonical customers for a fragment set.
func Aggregate(fragments []models.RawIdentityFragment) []*models.CanonicalCustomer {
	groups := Groups(fragments)
	out := make([]*models.CanonicalCustomer, len(groups))
	for i, g := range groups {
		out[i] = g.Customer
	}
	return out
}

// Groups buckets fragments and keeps each bucket's members for downstream annotation.
func Groups(fragments []models.RawIdentityFragment) []Group {
	b := newBuilder()

	var phoneOnly, anonymous []models.RawIdentityFragment
	for _, f := range fragments {
		switch {
		case normalize.Email(f.Email) != "":
			b.fold(canonical.ForEmail(f.Email), f)
		case normalize.Phone(f.Phone) != "":
			phoneOnly = append(phoneOnly, f)
		default:
			anonymous = append(anonymous, f)
		}
	}
	emailBuckets := len(b.order)

	for _, f := range phoneOnly {
		phone := normalize.Phone(f.Phone)
		if key, ok := b.soleEmailBucketWithPhone(phone, emailBuckets); ok {
			b.fold(key, f)
			continue
		}
		b.fold(canonical.ID(phone), f)
	}

	for _, f := range anonymous {
		b.fold(canonical.ForFragment(f), f)
	}

	out := make([]Group, 0, len(b.order))
	for _, key := range b.order {
		g := b.groups[key]
		models.SortSystems(g.Customer.SourceSystems)
		out = append(out, *g)
	}
	return out
}

type builder struct {
	groups map[string]*Group
	phones map[string]map[string]struct{}
	order  []string
}

func newBuilder() *builder {
	return &builder{
		groups: make(map[string]*Group),
		phones: make(map[string]map[string]struct{}),
	}
}

// soleEmailBucketWithPhone finds the single email bucket holding phone. Only the first
// emailBuckets entries of order are email buckets; phone buckets are never candidates.
func (b *builder) soleEmailBucketWithPhone(phone string, emailBuckets int) (string, bool) {
	var match string
	for _, key := range b.order[:emailBuckets] {
		if _, ok := b.phones[key][phone]; !ok {
			continue
		}
		if match != "" {
			return "", false
		}
		match = key
	}
	return match, match != ""
}

func (b *builder) fold(key string, f models.RawIdentityFragment) {
	g, ok := b.groups[key]
	if !ok {
		g = &Group{Customer: &models.CanonicalCustomer{
			CanonicalID:        key,
			Email:              normalize.Email(f.Email),
			OriginalReferences: make(map[models.SourceSystem][]string),
		}}
		b.groups[key] = g
		b.phones[key] = make(map[string]struct{})
		b.order = append(b.order, key)
	}
	g.Fragments = append(g.Fragments, f)

	c := g.Customer
	phone := normalize.Phone(f.Phone)
	if phone != "" {
		b.phones[key][phone] = struct{}{}
		if c.Phone == "" {
			c.Phone = phone
		}
	}
	if c.Name == "" {
		c.Name = strings.TrimSpace(f.Name)
	}
	if f.SourceSystem != "" && !c.HasSystem(f.SourceSystem) {
		c.SourceSystems = append(c.SourceSystems, f.SourceSystem)
	}
	if f.SourceSystem != "" {
		c.OriginalReferences[f.SourceSystem] = pstrings.AppendUnique(c.OriginalReferences[f.SourceSystem], f.SourceRecordID)
	}
}
