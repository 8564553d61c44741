// Package strings provides string slice utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each value and keeps the first occurrence of each non-blank one.
// It returns nil when nothing survives.
func DedupeAndTrim(values []string) []string {
	var out []string
	for _, v := range values {
		out = AppendUnique(out, v)
	}
	return out
}

// AppendUnique appends v to values unless it is blank or already present.
// Existing elements are never removed or reordered.
func AppendUnique(values []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return values
	}
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
