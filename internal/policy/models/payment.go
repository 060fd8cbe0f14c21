package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "insurecar/pkg/domain"
)

// Payment is money tendered against a policy. Policy is a non-owning reference
// resolved by whoever loaded the payment; PolicyID is always set.
type Payment struct {
	ID          id.PaymentID    `json:"id"`
	PolicyID    id.PolicyID     `json:"policy_id"`
	Policy      *Policy         `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// MarkFailed records a rejected payment.
func (p *Payment) MarkFailed() {
	p.Status = PaymentStatusFailed
}

// MarkCompleted records an accepted payment on the given date.
func (p *Payment) MarkCompleted(paidAt time.Time) {
	p.Status = PaymentStatusCompleted
	p.PaymentDate = paidAt
}

func (p *Payment) Stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
