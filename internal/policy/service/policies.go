package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"insurecar/internal/audit"
	"insurecar/internal/policy/models"
	"insurecar/internal/policy/rules"
	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
	"insurecar/pkg/platform/sentinel"
	txcontext "insurecar/pkg/platform/tx"
)

// QuoteRequest prices a prospective policy without creating it.
type QuoteRequest struct {
	CustomerID id.CustomerID
	VehicleID  id.VehicleID
	CoverageID id.CoverageID
	Months     int
}

type Quote struct {
	Months    int
	Breakdown rules.PremiumBreakdown
}

// CreatePolicyRequest describes a new policy. A nil Premium is priced from the
// parties and the term length; a supplied one is validated as given.
type CreatePolicyRequest struct {
	CustomerID id.CustomerID
	VehicleID  id.VehicleID
	CoverageID id.CoverageID
	StartDate  time.Time
	EndDate    time.Time
	Premium    *decimal.Decimal
}

// PolicySummary is a policy with its derived figures as of the service clock.
type PolicySummary struct {
	Policy       *models.Policy
	TotalPaid    decimal.Decimal
	Remaining    decimal.Decimal
	Active       bool
	Expired      bool
	DurationDays int
}

// parties is the set of entities a policy references.
type parties struct {
	customer *models.Customer
	vehicle  *models.Vehicle
	coverage *models.Coverage
}

// gatherParties loads customer, vehicle and coverage concurrently. The first
// failure cancels the remaining lookups.
func (s *Service) gatherParties(ctx context.Context, customerID id.CustomerID, vehicleID id.VehicleID, coverageID id.CoverageID) (*parties, error) {
	var p parties
	g, gctx := errgroup.WithContext(ctx)
	if txcontext.InTx(ctx) {
		// One transaction is one connection; its queries cannot interleave.
		g.SetLimit(1)
	}
	g.Go(func() error {
		c, err := s.customers.FindByID(gctx, customerID)
		if err != nil {
			return lookupError(err, "customer")
		}
		p.customer = c
		return nil
	})
	g.Go(func() error {
		v, err := s.vehicles.FindByID(gctx, vehicleID)
		if err != nil {
			return lookupError(err, "vehicle")
		}
		p.vehicle = v
		return nil
	})
	g.Go(func() error {
		c, err := s.coverages.FindByID(gctx, coverageID)
		if err != nil {
			return lookupError(err, "coverage")
		}
		p.coverage = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := s.resolveOwner(ctx, p.vehicle, p.customer); err != nil {
		return nil, err
	}
	return &p, nil
}

// Quote prices a term for the given parties and explains the factors applied.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	ctx, span := tracer.Start(ctx, "policy.Quote")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("quote", time.Since(start)) }()

	if req.Months <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "months must be greater than 0")
	}
	p, err := s.gatherParties(ctx, req.CustomerID, req.VehicleID, req.CoverageID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	breakdown := rules.PricePremium(p.customer, p.vehicle, p.coverage, req.Months, s.engine.Now())
	s.metrics.ObserveQuote(breakdown.Premium.InexactFloat64())
	span.SetAttributes(attribute.String("premium", breakdown.Premium.StringFixed(2)))
	return &Quote{Months: req.Months, Breakdown: breakdown}, nil
}

// CreatePolicy validates and persists a new UNPAID policy with a unique number.
// Validation failures are reported together as a single CodeValidation error.
func (s *Service) CreatePolicy(ctx context.Context, req CreatePolicyRequest) (*models.Policy, error) {
	ctx, span := tracer.Start(ctx, "policy.CreatePolicy")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("create_policy", time.Since(start)) }()

	p, err := s.gatherParties(ctx, req.CustomerID, req.VehicleID, req.CoverageID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := s.engine.Now()
	policy := &models.Policy{
		ID:        id.NewPolicyID(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    models.PolicyStatusUnpaid,
	}
	policy.Resolve(p.customer, p.vehicle, p.coverage)
	switch {
	case req.Premium != nil:
		policy.Premium = *req.Premium
	case !req.StartDate.IsZero() && !req.EndDate.IsZero():
		months := rules.TermMonths(req.StartDate, req.EndDate)
		policy.Premium = rules.CalculatePremium(p.customer, p.vehicle, p.coverage, months, now)
	}

	if violations := rules.ValidatePolicy(policy, now); len(violations) > 0 {
		span.SetStatus(codes.Error, "validation failed")
		return nil, dErrors.New(dErrors.CodeValidation, strings.Join(violations, "; "))
	}

	if err := s.assignNumber(ctx, policy); err != nil {
		span.RecordError(err)
		return nil, err
	}
	policy.Stamp(now)
	if err := s.policies.Save(ctx, policy); err != nil {
		s.releaseNumber(ctx, policy.Number)
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "policy number already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save policy")
	}

	span.SetAttributes(attribute.String("policy_number", policy.Number.String()))
	s.logAudit(ctx, audit.ActionPolicyCreated, policy, audit.Event{Amount: policy.Premium})
	s.metrics.IncrementPoliciesCreated(p.coverage.Name)
	return policy, nil
}

// assignNumber draws numbers until one is both reserved in the registry and free
// in the policy store.
func (s *Service) assignNumber(ctx context.Context, policy *models.Policy) error {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		if attempt > 0 || policy.Number == "" {
			s.engine.AssignNumber(policy)
		}
		if s.numbers != nil {
			ok, err := s.numbers.Reserve(ctx, policy.Number)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reserve policy number")
			}
			if !ok {
				continue
			}
		}
		_, err := s.policies.FindByNumber(ctx, policy.Number)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check policy number")
		}
	}
	return dErrors.New(dErrors.CodeConflict, "could not allocate a unique policy number")
}

// releaseNumber frees a reservation whose policy was never stored.
func (s *Service) releaseNumber(ctx context.Context, number id.PolicyNumber) {
	if s.numbers == nil {
		return
	}
	if err := s.numbers.Release(context.WithoutCancel(ctx), number); err != nil {
		s.logger.WarnContext(ctx, "failed to release policy number",
			"policy_number", number.String(),
			"error", err,
		)
	}
}

// GetPolicy loads a policy with its parties and payments resolved.
func (s *Service) GetPolicy(ctx context.Context, policyID id.PolicyID) (*models.Policy, error) {
	return s.loadPolicy(ctx, policyID, false)
}

func (s *Service) GetPolicyByNumber(ctx context.Context, number id.PolicyNumber) (*models.Policy, error) {
	policy, err := s.policies.FindByNumber(ctx, number)
	if err != nil {
		return nil, lookupError(err, "policy")
	}
	if err := s.hydrate(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// ListPoliciesByCustomer returns the customer's policies without payments.
func (s *Service) ListPoliciesByCustomer(ctx context.Context, customerID id.CustomerID) ([]*models.Policy, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, lookupError(err, "customer")
	}
	policies, err := s.policies.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}
	return policies, nil
}

func (s *Service) PolicySummary(ctx context.Context, policyID id.PolicyID) (*PolicySummary, error) {
	policy, err := s.loadPolicy(ctx, policyID, false)
	if err != nil {
		return nil, err
	}
	now := s.engine.Now()
	return &PolicySummary{
		Policy:       policy,
		TotalPaid:    policy.TotalPaid(),
		Remaining:    policy.RemainingAmount(),
		Active:       policy.IsActive(now),
		Expired:      policy.IsExpired(now),
		DurationDays: policy.DurationInDays(),
	}, nil
}

// loadPolicy fetches a policy and resolves parties and payments. forUpdate locks
// the row when running inside a database transaction.
func (s *Service) loadPolicy(ctx context.Context, policyID id.PolicyID, forUpdate bool) (*models.Policy, error) {
	find := s.policies.FindByID
	if forUpdate {
		find = s.policies.FindByIDForUpdate
	}
	policy, err := find(ctx, policyID)
	if err != nil {
		return nil, lookupError(err, "policy")
	}
	if err := s.hydrate(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *Service) hydrate(ctx context.Context, policy *models.Policy) error {
	p, err := s.gatherParties(ctx, policy.CustomerID, policy.VehicleID, policy.CoverageID)
	if err != nil {
		return err
	}
	policy.Resolve(p.customer, p.vehicle, p.coverage)

	payments, err := s.payments.ListByPolicy(ctx, policy.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load payments")
	}
	for _, payment := range payments {
		policy.AttachPayment(payment)
	}
	return nil
}
