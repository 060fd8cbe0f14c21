//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParsePolicyID checks parsing never panics and accepted IDs round-trip.
func FuzzParsePolicyID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParsePolicyID(input)
		if err == nil {
			roundTrip, err2 := ParsePolicyID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
			if id.IsNil() {
				t.Error("nil ID accepted")
			}
		}
		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParsePolicyNumber checks accepted numbers always satisfy the canonical format.
func FuzzParsePolicyNumber(f *testing.F) {
	f.Add("POL-000001")
	f.Add("POL-")
	f.Add("POL-99999999")

	f.Fuzz(func(t *testing.T, input string) {
		n, err := ParsePolicyNumber(input)
		if err == nil && !n.IsValid() {
			t.Errorf("accepted non-canonical number %q", input)
		}
	})
}
