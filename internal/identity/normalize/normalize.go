// Package normalize converts raw contact identifiers into comparable forms.
//
// All functions are pure and idempotent: normalizing an already-normalized value returns it
// unchanged. Inputs that cannot be normalized degrade to a best-effort value and never error.
package normalize

import (
	"strings"
)

// Phone numbering plan. Only one plan is supported.
const (
	CountryCode = "234"
	TrunkPrefix = "0"

	subscriberDigits = 10
	minIntlDigits    = 8
	maxIntlDigits    = 15
)

// mobilePrefixes are the leading two digits of local mobile subscriber numbers.
var mobilePrefixes = []string{"70", "80", "81", "90", "91"}

// Email lowercases and trims. Blank input yields "". Sub-addressing and dots are kept:
// stripping them would merge addresses that may belong to different people.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone canonicalizes a phone number to +<country><subscriber> using a fixed set of rules,
// applied to the input with whitespace and punctuation removed:
//
//	+<8-15 digits>                    kept as is
//	234<10 digits>                    +234<10 digits>
//	0<10 digits>                      +234<10 digits>
//	<10 digits with mobile prefix>    +234<10 digits>
//
// Anything else is returned trimmed but otherwise unmodified. This is best effort, not
// validation: a number from another numbering plan without a leading + is not rewritten.
func Phone(s string) string {
	trimmed := strings.TrimSpace(s)
	compact := strip(trimmed)
	if compact == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(compact, "+"); ok {
		if isDigits(rest) && len(rest) >= minIntlDigits && len(rest) <= maxIntlDigits {
			return compact
		}
		return trimmed
	}
	if !isDigits(compact) {
		return trimmed
	}

	switch {
	case len(compact) == len(CountryCode)+subscriberDigits && strings.HasPrefix(compact, CountryCode):
		return "+" + compact
	case len(compact) == len(TrunkPrefix)+subscriberDigits && strings.HasPrefix(compact, TrunkPrefix):
		return "+" + CountryCode + compact[len(TrunkPrefix):]
	case len(compact) == subscriberDigits && hasMobilePrefix(compact):
		return "+" + CountryCode + compact
	}
	return trimmed
}

// PhoneVariants returns the compact spellings a source may have stored for the same number:
// the canonical form, the form without +, the trunk-prefixed local form, the bare subscriber
// number and the compacted input. Sources without normalized storage compare their compacted phone against all of them.
func PhoneVariants(s string) []string {
	canonical := Phone(s)
	if canonical == "" {
		return nil
	}

	variants := []string{canonical}
	add := func(v string) {
		for _, existing := range variants {
			if existing == v {
				return
			}
		}
		variants = append(variants, v)
	}

	if local, ok := strings.CutPrefix(canonical, "+"+CountryCode); ok && len(local) == subscriberDigits {
		add(CountryCode + local)
		add(TrunkPrefix + local)
		// Bare subscriber numbers only canonicalize with a mobile prefix.
		if hasMobilePrefix(local) {
			add(local)
		}
	}
	add(Compact(s))
	return variants
}

// Name lowercases, trims and collapses internal whitespace. It is used only to compare
// names; displayed names keep their original spelling.
func Name(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Compact removes whitespace and phone punctuation. Sources compare stored phones in this form.
func Compact(s string) string {
	return strip(strings.TrimSpace(s))
}

func strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '-', '.', '(', ')', '/':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasMobilePrefix(s string) bool {
	for _, p := range mobilePrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
