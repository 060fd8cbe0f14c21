package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"insurecar/internal/audit"
	"insurecar/internal/policy/lifecycle"
	"insurecar/internal/policy/metrics"
	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
	"insurecar/pkg/platform/sentinel"
	"insurecar/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PolicyStore,PaymentStore,NumberRegistry,AuditPublisher

type CustomerStore interface {
	Save(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, customerID id.CustomerID) (*models.Customer, error)
}

type VehicleStore interface {
	Save(ctx context.Context, vehicle *models.Vehicle) error
	FindByID(ctx context.Context, vehicleID id.VehicleID) (*models.Vehicle, error)
}

type CoverageStore interface {
	Save(ctx context.Context, coverage *models.Coverage) error
	FindByID(ctx context.Context, coverageID id.CoverageID) (*models.Coverage, error)
	List(ctx context.Context) ([]*models.Coverage, error)
}

type PolicyStore interface {
	Save(ctx context.Context, policy *models.Policy) error
	FindByID(ctx context.Context, policyID id.PolicyID) (*models.Policy, error)
	FindByIDForUpdate(ctx context.Context, policyID id.PolicyID) (*models.Policy, error)
	FindByNumber(ctx context.Context, number id.PolicyNumber) (*models.Policy, error)
	ListByCustomer(ctx context.Context, customerID id.CustomerID) ([]*models.Policy, error)
}

type PaymentStore interface {
	Save(ctx context.Context, payment *models.Payment) error
	ListByPolicy(ctx context.Context, policyID id.PolicyID) ([]*models.Payment, error)
}

// NumberRegistry reserves policy numbers across the fleet of service instances.
type NumberRegistry interface {
	Reserve(ctx context.Context, number id.PolicyNumber) (bool, error)
	Release(ctx context.Context, number id.PolicyNumber) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Stores groups the persistence dependencies of the service.
type Stores struct {
	Customers CustomerStore
	Vehicles  VehicleStore
	Coverages CoverageStore
	Policies  PolicyStore
	Payments  PaymentStore
}

// maxNumberAttempts bounds retries when a drawn policy number is already taken.
const maxNumberAttempts = 10

var tracer trace.Tracer = otel.Tracer("insurecar/internal/policy/service")

// Service orchestrates customers, vehicles, coverages and the policy lifecycle.
// Mutations of an existing policy run inside PolicyTx so concurrent payments,
// cancellations and renewals of one policy are serialized.
type Service struct {
	customers      CustomerStore
	vehicles       VehicleStore
	coverages      CoverageStore
	policies       PolicyStore
	payments       PaymentStore
	tx             PolicyTx
	numbers        NumberRegistry
	engine         *lifecycle.Engine
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEngine sets the lifecycle engine, and with it the clock and number source.
func WithEngine(engine *lifecycle.Engine) Option {
	return func(s *Service) {
		s.engine = engine
	}
}

// WithTx sets the per-policy transaction boundary. Defaults to in-process locking.
func WithTx(tx PolicyTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

// WithNumberRegistry enables cross-instance policy number reservation.
func WithNumberRegistry(registry NumberRegistry) Option {
	return func(s *Service) {
		s.numbers = registry
	}
}

func New(stores Stores, opts ...Option) *Service {
	s := &Service{
		customers: stores.Customers,
		vehicles:  stores.Vehicles,
		coverages: stores.Coverages,
		policies:  stores.Policies,
		payments:  stores.Payments,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.engine == nil {
		s.engine = lifecycle.New()
	}
	if s.tx == nil {
		s.tx = NewShardedTx(0)
	}
	return s
}

// lookupError maps a store error to a domain error naming the missing entity.
func lookupError(err error, entity string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, entity+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+entity)
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, policy *models.Policy, event audit.Event) {
	requestID := requestcontext.RequestID(ctx)
	event.Action = action
	event.Timestamp = s.engine.Now()
	event.RequestID = requestID
	if policy != nil {
		event.PolicyID = policy.ID.String()
		event.PolicyNumber = policy.Number.String()
		event.CustomerID = policy.CustomerID.String()
		if event.Status == "" {
			event.Status = policy.Status.String()
		}
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action),
			"event", string(action),
			"log_type", "audit",
			"policy_id", event.PolicyID,
			"policy_number", event.PolicyNumber,
			"status", event.Status,
			"request_id", requestID,
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to publish audit event",
			"error", err,
			"action", string(action),
			"request_id", requestID,
		)
	}
}
