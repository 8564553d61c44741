package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseTenantID checks that parsing never panics and that accepted IDs round-trip.
func FuzzParseTenantID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseTenantID(input)
		if err == nil {
			if id.IsNil() {
				t.Error("nil tenant ID accepted")
			}
			roundTrip, err2 := ParseTenantID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
		}
		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}
