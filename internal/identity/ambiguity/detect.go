// Package ambiguity classifies fragment sets whose identifiers conflict. It never merges,
// drops or ranks fragments.
package ambiguity

import (
	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
)

// Reasons reported by Detect and Scan.
const (
	ReasonEmailsSharePhone = "multiple emails share one phone"
	ReasonPhonesShareEmail = "multiple phones share one email"
	ReasonNameVariation    = "name variation for same contact info"
)

// Result is the outcome of Detect. Reason is empty when IsAmbiguous is false.
type Result struct {
	IsAmbiguous bool
	Reason      string
}

// Detect classifies a fragment set, first matching rule wins:
//
//	more than one email, exactly one phone    multiple emails share one phone
//	more than one phone, exactly one email    multiple phones share one email
//	more than one name, one email or phone    name variation for same contact info
//
// A set with fewer than two fragments, or whose fragments share no email or phone value, is
// never ambiguous.
func Detect(fragments []models.RawIdentityFragment) Result {
	if len(fragments) < 2 || !overlapping(fragments) {
		return Result{}
	}

	emails := distinct(fragments, func(f models.RawIdentityFragment) string { return normalize.Email(f.Email) })
	phones := distinct(fragments, func(f models.RawIdentityFragment) string { return normalize.Phone(f.Phone) })
	names := distinct(fragments, func(f models.RawIdentityFragment) string { return normalize.Name(f.Name) })

	switch {
	case emails > 1 && phones == 1:
		return Result{IsAmbiguous: true, Reason: ReasonEmailsSharePhone}
	case phones > 1 && emails == 1:
		return Result{IsAmbiguous: true, Reason: ReasonPhonesShareEmail}
	case names > 1 && (emails == 1 || phones == 1):
		return Result{IsAmbiguous: true, Reason: ReasonNameVariation}
	}
	return Result{}
}

// overlapping reports whether any normalized email or phone appears on two or more fragments.
func overlapping(fragments []models.RawIdentityFragment) bool {
	emails := make(map[string]int)
	phones := make(map[string]int)
	for _, f := range fragments {
		if e := normalize.Email(f.Email); e != "" {
			emails[e]++
			if emails[e] > 1 {
				return true
			}
		}
		if p := normalize.Phone(f.Phone); p != "" {
			phones[p]++
			if phones[p] > 1 {
				return true
			}
		}
	}
	return false
}

func distinct(fragments []models.RawIdentityFragment, key func(models.RawIdentityFragment) string) int {
	seen := make(map[string]struct{})
	for _, f := range fragments {
		if k := key(f); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}
