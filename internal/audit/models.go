package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action names a policy lifecycle event.
type Action string

const (
	ActionPolicyCreated    Action = "policy_created"
	ActionPaymentCompleted Action = "payment_completed"
	ActionPaymentFailed    Action = "payment_failed"
	ActionPolicyCancelled  Action = "policy_cancelled"
	ActionPolicyRenewed    Action = "policy_renewed"
)

// Event is emitted by the policy service after a state change commits. It stays
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp    time.Time       `json:"timestamp"`
	Action       Action          `json:"action"`
	PolicyID     string          `json:"policy_id"`
	PolicyNumber string          `json:"policy_number,omitempty"`
	CustomerID   string          `json:"customer_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status,omitempty"`
	RequestID    string          `json:"request_id,omitempty"`
}
