// Package lifecycle applies payments, cancellations and renewals to policies.
//
// The engine mutates the models it is given and performs no I/O. Callers are
// expected to hold the per-policy transaction boundary while it runs.
package lifecycle

import (
	"time"

	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
)

var (
	ErrPolicyRequired   = dErrors.New(dErrors.CodeBadRequest, "policy is required")
	ErrRenewalEndAbsent = dErrors.New(dErrors.CodeBadRequest, "new end date is required")
	ErrRenewalEndPast   = dErrors.New(dErrors.CodeBadRequest, "new end date cannot be in the past")
	ErrPolicyNotActive  = dErrors.New(dErrors.CodeInvalidState, "only active policies can be renewed")
)

// Engine runs the policy lifecycle against an injected clock and number source.
type Engine struct {
	now     func() time.Time
	numbers NumberSource
}

type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithNumberSource overrides the default random policy-number source.
func WithNumberSource(src NumberSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.numbers = src
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		now:     time.Now,
		numbers: NewRandomNumbers(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now exposes the engine clock so callers stamp records consistently.
func (e *Engine) Now() time.Time {
	return e.now()
}

// ProcessPayment settles payment against its policy.
//
// A nil payment or one without a policy is ignored. A non-positive amount or one
// above the policy's remaining amount marks the payment failed. Otherwise the
// payment is completed, attached to the policy and the policy status recomputed.
func (e *Engine) ProcessPayment(payment *models.Payment) bool {
	if payment == nil || payment.Policy == nil {
		return false
	}
	policy := payment.Policy

	if !payment.Amount.IsPositive() || payment.Amount.GreaterThan(policy.RemainingAmount()) {
		payment.MarkFailed()
		return false
	}

	now := e.now()
	payment.MarkCompleted(now)
	policy.AttachPayment(payment)
	policy.RecomputeStatus()
	policy.UpdatedAt = now
	return true
}

// CancelPolicy cancels an active policy. Inactive policies (expired, not started,
// already cancelled) are left untouched.
func (e *Engine) CancelPolicy(policy *models.Policy) bool {
	now := e.now()
	if policy == nil || !policy.IsActive(now) {
		return false
	}
	policy.Cancel(now)
	return true
}

// RenewPolicy builds the follow-on term for an active policy. The renewal starts the
// day after the current term ends and runs to newEnd with the same parties and
// premium. The source policy is not modified.
func (e *Engine) RenewPolicy(policy *models.Policy, newEnd time.Time) (*models.Policy, error) {
	if policy == nil {
		return nil, ErrPolicyRequired
	}
	if newEnd.IsZero() {
		return nil, ErrRenewalEndAbsent
	}
	now := e.now()
	if models.DateOf(newEnd).Before(models.Today(now)) {
		return nil, ErrRenewalEndPast
	}
	if !policy.IsActive(now) {
		return nil, ErrPolicyNotActive
	}

	renewal := &models.Policy{
		ID:         id.NewPolicyID(),
		Number:     e.numbers.Next(),
		CustomerID: policy.CustomerID,
		VehicleID:  policy.VehicleID,
		CoverageID: policy.CoverageID,
		Customer:   policy.Customer,
		Vehicle:    policy.Vehicle,
		Coverage:   policy.Coverage,
		StartDate:  models.DateOf(policy.EndDate).AddDate(0, 0, 1),
		EndDate:    newEnd,
		Premium:    policy.Premium,
		Status:     models.PolicyStatusUnpaid,
	}
	renewal.Stamp(now)
	return renewal, nil
}

// AssignNumber gives a freshly created policy its number from the engine's source.
func (e *Engine) AssignNumber(policy *models.Policy) {
	policy.Number = e.numbers.Next()
}
