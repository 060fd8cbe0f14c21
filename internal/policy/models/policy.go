package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "insurecar/pkg/domain"
)

// Policy is a time-bounded contract between a customer, a vehicle and a coverage.
//
// Invariants:
//   - Status starts UNPAID and, until cancelled, is a pure function of Payments
//     (see RecomputeStatus)
//   - CANCELLED is terminal; RecomputeStatus never leaves it
//   - Payments only grow; processed payments are appended, never removed
//   - Customer, Vehicle and Coverage are non-owning references. The *ID fields are
//     authoritative for persistence; the pointers are resolved by the loader.
type Policy struct {
	ID         id.PolicyID     `json:"id"`
	Number     id.PolicyNumber `json:"policy_number"`
	CustomerID id.CustomerID   `json:"customer_id"`
	VehicleID  id.VehicleID    `json:"vehicle_id"`
	CoverageID id.CoverageID   `json:"coverage_id"`
	Customer   *Customer       `json:"-"`
	Vehicle    *Vehicle        `json:"-"`
	Coverage   *Coverage       `json:"-"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Premium    decimal.Decimal `json:"premium"`
	Payments   []*Payment      `json:"payments"`
	Status     PolicyStatus    `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TotalPaid sums the amounts of completed payments.
func (p *Policy) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, payment := range p.Payments {
		if payment != nil && payment.IsCompleted() {
			total = total.Add(payment.Amount)
		}
	}
	return total
}

// RemainingAmount is the premium minus completed payments, floored at zero.
func (p *Policy) RemainingAmount() decimal.Decimal {
	remaining := p.Premium.Sub(p.TotalPaid())
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RecomputeStatus derives the payment status from the current payment set. It keeps
// no memory of the previous status, so calling it repeatedly without new payments
// is a no-op. A cancelled policy is left untouched.
func (p *Policy) RecomputeStatus() {
	if p.Status.IsTerminal() {
		return
	}
	p.Status = statusForPayments(p.Payments, p.TotalPaid(), p.Premium)
}

func statusForPayments(payments []*Payment, totalPaid, premium decimal.Decimal) PolicyStatus {
	switch {
	case len(payments) == 0 || totalPaid.IsZero():
		return PolicyStatusUnpaid
	case totalPaid.LessThan(premium):
		return PolicyStatusPartiallyPaid
	default:
		return PolicyStatusPaid
	}
}

// AttachPayment appends payment to the policy unless it is already present and
// points the payment back at the policy.
func (p *Policy) AttachPayment(payment *Payment) {
	if payment == nil {
		return
	}
	payment.Policy = p
	payment.PolicyID = p.ID
	for _, existing := range p.Payments {
		if existing == nil {
			continue
		}
		if existing == payment || (!existing.ID.IsNil() && existing.ID == payment.ID) {
			return
		}
	}
	p.Payments = append(p.Payments, payment)
}

// IsActive reports whether today falls within [StartDate, EndDate] and the policy
// is not cancelled.
func (p *Policy) IsActive(now time.Time) bool {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return false
	}
	today := Today(now)
	return !DateOf(p.StartDate).After(today) &&
		!DateOf(p.EndDate).Before(today) &&
		p.Status != PolicyStatusCancelled
}

// IsExpired reports whether EndDate is strictly before today, regardless of status.
func (p *Policy) IsExpired(now time.Time) bool {
	return !p.EndDate.IsZero() && DateOf(p.EndDate).Before(Today(now))
}

const secondsPerDay = 24 * 60 * 60

// DurationInDays counts whole days from StartDate to EndDate; 0 if either is unset.
func (p *Policy) DurationInDays() int {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return 0
	}
	return int((DateOf(p.EndDate).Unix() - DateOf(p.StartDate).Unix()) / secondsPerDay)
}

// IsEligibleForCreation is the strict boolean form of policy validation: every
// reference eligible, StartDate strictly before EndDate and a positive premium.
// Unlike rules.ValidatePolicy it does not reject start dates in the past.
func (p *Policy) IsEligibleForCreation(now time.Time) bool {
	return p.Customer != nil && p.Customer.IsEligibleForInsurance(now) &&
		p.Vehicle != nil && p.Vehicle.IsEligibleForInsurance() &&
		p.Coverage != nil && p.Coverage.IsEligible() &&
		!p.StartDate.IsZero() && !p.EndDate.IsZero() &&
		DateOf(p.StartDate).Before(DateOf(p.EndDate)) &&
		p.Premium.IsPositive()
}

// Cancel moves the policy to the terminal CANCELLED state.
func (p *Policy) Cancel(now time.Time) {
	p.Status = PolicyStatusCancelled
	p.UpdatedAt = now
}

// Stamp sets CreatedAt on first save and UpdatedAt on every save.
func (p *Policy) Stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// Resolve attaches loaded references and keeps the ID fields in sync.
func (p *Policy) Resolve(customer *Customer, vehicle *Vehicle, coverage *Coverage) {
	p.Customer = customer
	p.Vehicle = vehicle
	p.Coverage = coverage
	if customer != nil {
		p.CustomerID = customer.ID
	}
	if vehicle != nil {
		p.VehicleID = vehicle.ID
	}
	if coverage != nil {
		p.CoverageID = coverage.ID
	}
}
