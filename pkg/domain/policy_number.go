package domain

import (
	"fmt"
	"regexp"

	dErrors "insurecar/pkg/domain-errors"
)

// PolicyNumber is the canonical external identifier of a policy: "POL-" followed by
// six digits.
type PolicyNumber string

// MaxPolicySerial is the largest serial that fits the six-digit format.
const MaxPolicySerial = 999999

var policyNumberPattern = regexp.MustCompile(`^POL-[0-9]{6}$`)

// FormatPolicyNumber renders a serial as a policy number. Serials outside
// [0, MaxPolicySerial] are reduced modulo 10^6 so the format always holds.
func FormatPolicyNumber(serial int) PolicyNumber {
	serial %= MaxPolicySerial + 1
	if serial < 0 {
		serial += MaxPolicySerial + 1
	}
	return PolicyNumber(fmt.Sprintf("POL-%06d", serial))
}

// ParsePolicyNumber validates external input against the policy number format.
func ParsePolicyNumber(s string) (PolicyNumber, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "policy number is required")
	}
	if !policyNumberPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "policy number must match POL-XXXXXX")
	}
	return PolicyNumber(s), nil
}

// IsValid reports whether the number matches the canonical format.
func (n PolicyNumber) IsValid() bool {
	return policyNumberPattern.MatchString(string(n))
}

func (n PolicyNumber) String() string {
	return string(n)
}
