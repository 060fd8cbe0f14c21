package models

import (
	"strings"

	dErrors "insurecar/pkg/domain-errors"
)

// PolicyStatus is the payment/termination state of a policy. The zero value is
// UNPAID so freshly built policies start unpaid.
//
// UNPAID, PARTIALLY_PAID and PAID are derived from the payment set by
// Policy.RecomputeStatus. CANCELLED is terminal and only set by cancellation.
type PolicyStatus int

const (
	PolicyStatusUnpaid PolicyStatus = iota
	PolicyStatusPartiallyPaid
	PolicyStatusPaid
	PolicyStatusCancelled
)

var policyStatusNames = map[PolicyStatus]string{
	PolicyStatusUnpaid:        "UNPAID",
	PolicyStatusPartiallyPaid: "PARTIALLY_PAID",
	PolicyStatusPaid:          "PAID",
	PolicyStatusCancelled:     "CANCELLED",
}

func (s PolicyStatus) String() string {
	if name, ok := policyStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are allowed.
func (s PolicyStatus) IsTerminal() bool {
	return s == PolicyStatusCancelled
}

// ParsePolicyStatus accepts the canonical names case-insensitively.
func ParsePolicyStatus(s string) (PolicyStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range policyStatusNames {
		if name == upper {
			return status, nil
		}
	}
	return PolicyStatusUnpaid, dErrors.New(dErrors.CodeInvalidInput, "invalid policy status: "+s)
}

func (s PolicyStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PolicyStatus) UnmarshalText(b []byte) error {
	parsed, err := ParsePolicyStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// PaymentStatus tracks a payment through processing. The zero value is pending.
type PaymentStatus int

const (
	PaymentStatusPending PaymentStatus = iota
	PaymentStatusCompleted
	PaymentStatusFailed
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentStatusPending:   "pending",
	PaymentStatusCompleted: "completed",
	PaymentStatusFailed:    "failed",
}

func (s PaymentStatus) String() string {
	if name, ok := paymentStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParsePaymentStatus accepts "completed", "pending" and "failed" in any case.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for status, name := range paymentStatusNames {
		if name == lower {
			return status, nil
		}
	}
	return PaymentStatusPending, dErrors.New(dErrors.CodeInvalidInput, "invalid payment status: "+s)
}

func (s PaymentStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PaymentStatus) UnmarshalText(b []byte) error {
	parsed, err := ParsePaymentStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// PaymentMethod is how a payment was tendered.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

var validPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodCash:     true,
	PaymentMethodCard:     true,
	PaymentMethodTransfer: true,
}

// ParsePaymentMethod normalizes and validates a method tag from external input.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "payment method is required")
	}
	if !m.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid payment method: "+s)
	}
	return m, nil
}

func (m PaymentMethod) IsValid() bool {
	return validPaymentMethods[m]
}

func (m PaymentMethod) String() string {
	return string(m)
}
