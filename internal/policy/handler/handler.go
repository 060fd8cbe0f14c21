// Package handler exposes the policy service over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"insurecar/internal/platform/metrics"
	"insurecar/internal/platform/middleware"
	"insurecar/internal/policy/models"
	"insurecar/internal/policy/service"
	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
	"insurecar/pkg/platform/httputil"
	"insurecar/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the policy operations served over HTTP.
type Service interface {
	RegisterCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	GetCustomer(ctx context.Context, customerID id.CustomerID) (*models.Customer, error)
	RegisterVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID id.VehicleID) (*models.Vehicle, error)
	CreateCoverage(ctx context.Context, coverage *models.Coverage) (*models.Coverage, error)
	GetCoverage(ctx context.Context, coverageID id.CoverageID) (*models.Coverage, error)
	ListCoverages(ctx context.Context) ([]*models.Coverage, error)
	DeactivateCoverage(ctx context.Context, coverageID id.CoverageID) (*models.Coverage, error)
	Quote(ctx context.Context, req service.QuoteRequest) (*service.Quote, error)
	CreatePolicy(ctx context.Context, req service.CreatePolicyRequest) (*models.Policy, error)
	PolicySummary(ctx context.Context, policyID id.PolicyID) (*service.PolicySummary, error)
	GetPolicyByNumber(ctx context.Context, number id.PolicyNumber) (*models.Policy, error)
	ListPoliciesByCustomer(ctx context.Context, customerID id.CustomerID) ([]*models.Policy, error)
	SubmitPayment(ctx context.Context, policyID id.PolicyID, amount decimal.Decimal, method models.PaymentMethod) (*models.Payment, error)
	CancelPolicy(ctx context.Context, policyID id.PolicyID) (*models.Policy, error)
	RenewPolicy(ctx context.Context, policyID id.PolicyID, newEnd time.Time) (*models.Policy, error)
}

// Handler wires policy endpoints to the policy service.
type Handler struct {
	service      Service
	logger       *slog.Logger
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New constructs a policy handler. A nil jwtValidator leaves the routes open.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the policy routes on the router.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.Logger(h.logger))
	api.Use(middleware.Timeout(30 * time.Second))
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.LatencyMiddleware(h.metrics))
	api.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	api.Post("/customers", h.HandleRegisterCustomer)
	api.Get("/customers/{id}", h.HandleGetCustomer)
	api.Get("/customers/{id}/policies", h.HandleListCustomerPolicies)
	api.Post("/vehicles", h.HandleRegisterVehicle)
	api.Get("/vehicles/{id}", h.HandleGetVehicle)
	api.Post("/coverages", h.HandleCreateCoverage)
	api.Get("/coverages", h.HandleListCoverages)
	api.Get("/coverages/{id}", h.HandleGetCoverage)
	api.Post("/coverages/{id}/deactivate", h.HandleDeactivateCoverage)
	api.Post("/quotes", h.HandleQuote)
	api.Post("/policies", h.HandleCreatePolicy)
	api.Get("/policies/{id}", h.HandleGetPolicy)
	api.Get("/policies/by-number/{number}", h.HandleGetPolicyByNumber)
	api.Post("/policies/{id}/payments", h.HandleSubmitPayment)
	api.Post("/policies/{id}/cancel", h.HandleCancelPolicy)
	api.Post("/policies/{id}/renew", h.HandleRenewPolicy)

	r.Mount("/", api)
}

// fail logs and writes err. Client errors log at warn, the rest at error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error, attrs ...any) {
	ctx := r.Context()
	attrs = append(attrs,
		"request_id", requestcontext.RequestID(ctx),
		"subject", requestcontext.Subject(ctx),
		"error", err,
	)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

func (h *Handler) HandleRegisterCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RegisterCustomerRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	customer, err := h.service.RegisterCustomer(ctx, req.ToModel())
	if err != nil {
		h.fail(w, r, "failed to register customer", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCustomer(customer))
}

func (h *Handler) HandleGetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := id.ParseCustomerID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	customer, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.fail(w, r, "failed to load customer", err, "customer_id", customerID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCustomer(customer))
}

func (h *Handler) HandleListCustomerPolicies(w http.ResponseWriter, r *http.Request) {
	customerID, err := id.ParseCustomerID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	policies, err := h.service.ListPoliciesByCustomer(r.Context(), customerID)
	if err != nil {
		h.fail(w, r, "failed to list policies", err, "customer_id", customerID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"policies": FromPolicies(policies)})
}

func (h *Handler) HandleRegisterVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RegisterVehicleRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	vehicle, err := h.service.RegisterVehicle(ctx, req.ToModel())
	if err != nil {
		h.fail(w, r, "failed to register vehicle", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromVehicle(vehicle))
}

func (h *Handler) HandleGetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := id.ParseVehicleID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	vehicle, err := h.service.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		h.fail(w, r, "failed to load vehicle", err, "vehicle_id", vehicleID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromVehicle(vehicle))
}

func (h *Handler) HandleCreateCoverage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateCoverageRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	coverage, err := h.service.CreateCoverage(ctx, req.ToModel())
	if err != nil {
		h.fail(w, r, "failed to create coverage", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCoverage(coverage))
}

func (h *Handler) HandleListCoverages(w http.ResponseWriter, r *http.Request) {
	coverages, err := h.service.ListCoverages(r.Context())
	if err != nil {
		h.fail(w, r, "failed to list coverages", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"coverages": FromCoverages(coverages)})
}

func (h *Handler) HandleGetCoverage(w http.ResponseWriter, r *http.Request) {
	coverageID, err := id.ParseCoverageID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	coverage, err := h.service.GetCoverage(r.Context(), coverageID)
	if err != nil {
		h.fail(w, r, "failed to load coverage", err, "coverage_id", coverageID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCoverage(coverage))
}

func (h *Handler) HandleDeactivateCoverage(w http.ResponseWriter, r *http.Request) {
	coverageID, err := id.ParseCoverageID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	coverage, err := h.service.DeactivateCoverage(r.Context(), coverageID)
	if err != nil {
		h.fail(w, r, "failed to deactivate coverage", err, "coverage_id", coverageID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCoverage(coverage))
}

func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[QuoteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	quote, err := h.service.Quote(ctx, req.ToService())
	if err != nil {
		h.fail(w, r, "failed to quote", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromQuote(quote))
}

func (h *Handler) HandleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	req, ok := httputil.DecodeAndPrepare[CreatePolicyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	policy, err := h.service.CreatePolicy(ctx, req.ToService())
	if err != nil {
		h.fail(w, r, "failed to create policy", err)
		return
	}
	h.logger.InfoContext(ctx, "policy created",
		"request_id", requestcontext.RequestID(ctx),
		"policy_number", policy.Number.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromPolicy(policy))
}

func (h *Handler) HandleGetPolicy(w http.ResponseWriter, r *http.Request) {
	policyID, err := id.ParsePolicyID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summary, err := h.service.PolicySummary(r.Context(), policyID)
	if err != nil {
		h.fail(w, r, "failed to load policy", err, "policy_id", policyID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSummary(summary))
}

func (h *Handler) HandleGetPolicyByNumber(w http.ResponseWriter, r *http.Request) {
	number, err := id.ParsePolicyNumber(pathParam(r, "number"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	policy, err := h.service.GetPolicyByNumber(r.Context(), number)
	if err != nil {
		h.fail(w, r, "failed to load policy", err, "policy_number", number.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPolicy(policy))
}

// HandleSubmitPayment records a payment. A rejected payment is still returned, with
// its failed status, next to the error.
func (h *Handler) HandleSubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID, err := id.ParsePolicyID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitPaymentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	payment, err := h.service.SubmitPayment(ctx, policyID, req.Amount, req.parsedMethod)
	if err != nil && payment != nil {
		h.logger.WarnContext(ctx, "payment rejected",
			"request_id", requestcontext.RequestID(ctx),
			"policy_id", policyID.String(),
			"amount", req.Amount.StringFixed(2),
			"error", err,
		)
		resp := PaymentRejectedResponse{Payment: FromPayment(payment)}
		resp.Error = string(dErrors.CodeOf(err))
		var de *dErrors.Error
		if errors.As(err, &de) {
			resp.Description = de.Message
		}
		httputil.WriteJSON(w, httputil.StatusFor(dErrors.CodeOf(err)), resp)
		return
	}
	if err != nil {
		h.fail(w, r, "failed to submit payment", err, "policy_id", policyID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromPayment(payment))
}

func (h *Handler) HandleCancelPolicy(w http.ResponseWriter, r *http.Request) {
	policyID, err := id.ParsePolicyID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	policy, err := h.service.CancelPolicy(r.Context(), policyID)
	if err != nil {
		h.fail(w, r, "failed to cancel policy", err, "policy_id", policyID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPolicy(policy))
}

func (h *Handler) HandleRenewPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID, err := id.ParsePolicyID(pathParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RenewPolicyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	renewal, err := h.service.RenewPolicy(ctx, policyID, req.parsedEnd)
	if err != nil {
		h.fail(w, r, "failed to renew policy", err, "policy_id", policyID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromPolicy(renewal))
}
