package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"insurecar/internal/audit"
	"insurecar/internal/policy/lifecycle"
	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
)

// SubmitPayment records a payment against a policy. The payment is stored whether
// or not it is accepted; a rejected payment is returned alongside a CodeValidation
// error so callers can show its failed status.
func (s *Service) SubmitPayment(ctx context.Context, policyID id.PolicyID, amount decimal.Decimal, method models.PaymentMethod) (*models.Payment, error) {
	ctx, span := tracer.Start(ctx, "policy.SubmitPayment")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("submit_payment", time.Since(start)) }()

	if method != "" && !method.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported payment method: "+method.String())
	}

	var (
		payment  *models.Payment
		policy   *models.Policy
		accepted bool
	)
	err := s.tx.RunInTx(ctx, policyID, func(ctx context.Context) error {
		var err error
		policy, err = s.loadPolicy(ctx, policyID, true)
		if err != nil {
			return err
		}
		if policy.Status.IsTerminal() {
			return dErrors.New(dErrors.CodeInvalidState, "policy is cancelled")
		}

		payment = &models.Payment{
			ID:       id.NewPaymentID(),
			PolicyID: policy.ID,
			Policy:   policy,
			Amount:   amount,
			Method:   method,
		}
		accepted = s.engine.ProcessPayment(payment)
		payment.Stamp(s.engine.Now())
		if err := s.payments.Save(ctx, payment); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save payment")
		}
		if !accepted {
			return nil
		}
		if err := s.policies.Save(ctx, policy); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save policy")
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("accepted", accepted),
		attribute.String("policy_status", policy.Status.String()),
	)
	s.metrics.ObservePayment(accepted, amount.InexactFloat64())
	if !accepted {
		s.logAudit(ctx, audit.ActionPaymentFailed, policy, audit.Event{Amount: amount})
		return payment, dErrors.New(dErrors.CodeValidation, rejectionReason(amount))
	}
	s.logAudit(ctx, audit.ActionPaymentCompleted, policy, audit.Event{Amount: amount})
	return payment, nil
}

func rejectionReason(amount decimal.Decimal) string {
	if !amount.IsPositive() {
		return "payment amount must be greater than 0"
	}
	return "payment amount exceeds the remaining balance"
}

// CancelPolicy cancels an active policy.
func (s *Service) CancelPolicy(ctx context.Context, policyID id.PolicyID) (*models.Policy, error) {
	ctx, span := tracer.Start(ctx, "policy.CancelPolicy")
	defer span.End()

	var policy *models.Policy
	err := s.tx.RunInTx(ctx, policyID, func(ctx context.Context) error {
		var err error
		policy, err = s.loadPolicy(ctx, policyID, true)
		if err != nil {
			return err
		}
		if !s.engine.CancelPolicy(policy) {
			return dErrors.New(dErrors.CodeInvalidState, "only active policies can be cancelled")
		}
		if err := s.policies.Save(ctx, policy); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save policy")
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logAudit(ctx, audit.ActionPolicyCancelled, policy, audit.Event{Amount: policy.RemainingAmount()})
	s.metrics.IncrementCancelled()
	return policy, nil
}

// RenewPolicy creates the follow-on term of an active policy ending at newEnd.
// The source policy is left as it is.
func (s *Service) RenewPolicy(ctx context.Context, policyID id.PolicyID, newEnd time.Time) (*models.Policy, error) {
	ctx, span := tracer.Start(ctx, "policy.RenewPolicy")
	defer span.End()

	var (
		renewal  *models.Policy
		reserved id.PolicyNumber
	)
	err := s.tx.RunInTx(ctx, policyID, func(ctx context.Context) error {
		policy, err := s.loadPolicy(ctx, policyID, true)
		if err != nil {
			return err
		}
		renewal, err = s.engine.RenewPolicy(policy, newEnd)
		if err != nil {
			return renewalError(err)
		}
		if err := s.assignNumber(ctx, renewal); err != nil {
			return err
		}
		reserved = renewal.Number
		if err := s.policies.Save(ctx, renewal); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save renewal")
		}
		return nil
	})
	if err != nil {
		// The renewal never committed, so its number is free again.
		if reserved != "" {
			s.releaseNumber(ctx, reserved)
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("renewal_number", renewal.Number.String()))
	s.logAudit(ctx, audit.ActionPolicyRenewed, renewal, audit.Event{Amount: renewal.Premium})
	s.metrics.IncrementRenewed()
	return renewal, nil
}

// renewalError turns engine rejections into request-level errors.
func renewalError(err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrPolicyNotActive):
		return dErrors.New(dErrors.CodeInvalidState, err.Error())
	case errors.Is(err, lifecycle.ErrRenewalEndAbsent), errors.Is(err, lifecycle.ErrRenewalEndPast):
		return dErrors.New(dErrors.CodeValidation, err.Error())
	default:
		return err
	}
}
