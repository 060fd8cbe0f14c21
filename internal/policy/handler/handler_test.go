package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"insurecar/internal/platform/middleware"
	"insurecar/internal/policy/handler/mocks"
	"insurecar/internal/policy/models"
	"insurecar/internal/policy/rules"
	"insurecar/internal/policy/service"
	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
	"insurecar/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger, nil, nil).Register(s.router)
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), method, path, body))
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	return testutil.DecodeJSON(s.T(), w)
}

func samplePolicy() *models.Policy {
	return &models.Policy{
		ID:         id.NewPolicyID(),
		Number:     "POL-000042",
		CustomerID: id.NewCustomerID(),
		VehicleID:  id.NewVehicleID(),
		CoverageID: id.NewCoverageID(),
		StartDate:  time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2027, time.October, 17, 0, 0, 0, 0, time.UTC),
		Premium:    decimal.NewFromInt(1000),
		Status:     models.PolicyStatusUnpaid,
	}
}

func (s *HandlerSuite) TestRegisterCustomer() {
	s.Run("created", func() {
		s.service.EXPECT().RegisterCustomer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *models.Customer) (*models.Customer, error) {
				s.Equal("Juan", c.FirstName)
				s.Equal(time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC), c.DateOfBirth)
				c.ID = id.NewCustomerID()
				return c, nil
			})

		w := s.do(http.MethodPost, "/customers",
			`{"first_name":" Juan ","last_name":"Perez","email":"juan@example.com","date_of_birth":"1990-05-15"}`)
		s.Equal(http.StatusCreated, w.Code)
		body := s.decode(w)
		s.Equal("Juan Perez", body["full_name"])
		s.Equal("1990-05-15", body["date_of_birth"])
	})

	s.Run("missing email", func() {
		w := s.do(http.MethodPost, "/customers",
			`{"first_name":"Juan","last_name":"Perez","date_of_birth":"1990-05-15"}`)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("malformed date", func() {
		w := s.do(http.MethodPost, "/customers",
			`{"first_name":"Juan","last_name":"Perez","email":"j@x.io","date_of_birth":"15/05/1990"}`)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}

func (s *HandlerSuite) TestGetCustomer() {
	s.Run("invalid id", func() {
		w := s.do(http.MethodGet, "/customers/not-a-uuid", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("not found", func() {
		s.service.EXPECT().GetCustomer(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "customer not found"))
		w := s.do(http.MethodGet, "/customers/"+id.NewCustomerID().String(), "")
		testutil.AssertStatusAndError(s.T(), w, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestCoverages() {
	s.Run("create defaults to active", func() {
		s.service.EXPECT().CreateCoverage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *models.Coverage) (*models.Coverage, error) {
				s.True(c.Active)
				s.True(decimal.RequireFromString("500.5").Equal(c.BasePremium))
				return c, nil
			})
		w := s.do(http.MethodPost, "/coverages", `{"name":"Basic","base_premium":"500.50"}`)
		s.Equal(http.StatusCreated, w.Code)
		s.Equal("500.50", s.decode(w)["base_premium"])
	})

	s.Run("premium above cap", func() {
		w := s.do(http.MethodPost, "/coverages", `{"name":"Gold","base_premium":"100000.01"}`)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("list", func() {
		s.service.EXPECT().ListCoverages(gomock.Any()).Return([]*models.Coverage{
			{ID: id.NewCoverageID(), Name: "Basic", BasePremium: decimal.NewFromInt(500), Active: true},
		}, nil)
		w := s.do(http.MethodGet, "/coverages", "")
		s.Equal(http.StatusOK, w.Code)
		s.Len(s.decode(w)["coverages"], 1)
	})
}

func (s *HandlerSuite) TestQuote() {
	customerID, vehicleID, coverageID := id.NewCustomerID(), id.NewVehicleID(), id.NewCoverageID()
	s.service.EXPECT().Quote(gomock.Any(), service.QuoteRequest{
		CustomerID: customerID, VehicleID: vehicleID, CoverageID: coverageID, Months: 12,
	}).Return(&service.Quote{Months: 12, Breakdown: rules.PremiumBreakdown{
		Base:           decimal.NewFromInt(500),
		AgeFactor:      decimal.NewFromInt(1),
		VehicleFactor:  decimal.RequireFromString("1.2"),
		DurationFactor: decimal.RequireFromString("0.9"),
		Premium:        decimal.NewFromInt(540),
	}}, nil)

	w := s.do(http.MethodPost, "/quotes", `{"customer_id":"`+customerID.String()+`","vehicle_id":"`+vehicleID.String()+
		`","coverage_id":"`+coverageID.String()+`","months":12}`)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("540.00", body["premium"])
	s.Equal("0.9", body["duration_factor"])
}

func (s *HandlerSuite) TestCreatePolicy() {
	body := func(premium string) string {
		return `{"customer_id":"` + id.NewCustomerID().String() +
			`","vehicle_id":"` + id.NewVehicleID().String() +
			`","coverage_id":"` + id.NewCoverageID().String() +
			`","start_date":"2026-10-17","end_date":"2027-10-17"` + premium + `}`
	}

	s.Run("created without premium", func() {
		s.service.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req service.CreatePolicyRequest) (*models.Policy, error) {
				s.Nil(req.Premium)
				s.Equal(2027, req.EndDate.Year())
				return samplePolicy(), nil
			})
		w := s.do(http.MethodPost, "/policies", body(""))
		s.Equal(http.StatusCreated, w.Code)
		resp := s.decode(w)
		s.Equal("POL-000042", resp["policy_number"])
		s.Equal("UNPAID", resp["status"])
	})

	s.Run("violations are unprocessable", func() {
		s.service.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "coverage is not active; start date cannot be in the past"))
		w := s.do(http.MethodPost, "/policies", body(`,"premium":"900"`))
		s.Equal(http.StatusUnprocessableEntity, w.Code)
		s.Contains(s.decode(w)["error_description"], "coverage is not active")
	})

	s.Run("explicit zero premium reaches the service", func() {
		s.service.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req service.CreatePolicyRequest) (*models.Policy, error) {
				s.Require().NotNil(req.Premium)
				s.True(req.Premium.IsZero())
				return nil, dErrors.New(dErrors.CodeValidation, rules.MsgPremiumNotPositive)
			})
		w := s.do(http.MethodPost, "/policies", body(`,"premium":0`))
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("premium with fractional cents", func() {
		w := s.do(http.MethodPost, "/policies", body(`,"premium":"10.005"`))
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("internal errors hide details", func() {
		s.service.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInternal, "pq: connection refused"))
		w := s.do(http.MethodPost, "/policies", body(""))
		s.Equal(http.StatusInternalServerError, w.Code)
		s.NotContains(w.Body.String(), "pq:")
	})
}

func (s *HandlerSuite) TestGetPolicy() {
	policy := samplePolicy()
	s.service.EXPECT().PolicySummary(gomock.Any(), policy.ID).Return(&service.PolicySummary{
		Policy:       policy,
		TotalPaid:    decimal.Zero,
		Remaining:    decimal.NewFromInt(1000),
		Active:       true,
		DurationDays: 365,
	}, nil)

	w := s.do(http.MethodGet, "/policies/"+policy.ID.String(), "")
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("1000.00", body["remaining"])
	s.Equal(true, body["active"])
	s.Equal(false, body["expired"])
	s.Equal(365.0, body["duration_days"])
}

func (s *HandlerSuite) TestGetPolicyByNumber() {
	s.Run("malformed number", func() {
		w := s.do(http.MethodGet, "/policies/by-number/POL-12", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("found", func() {
		s.service.EXPECT().GetPolicyByNumber(gomock.Any(), id.PolicyNumber("POL-000042")).Return(samplePolicy(), nil)
		w := s.do(http.MethodGet, "/policies/by-number/POL-000042", "")
		s.Equal(http.StatusOK, w.Code)
	})
}

func (s *HandlerSuite) TestSubmitPayment() {
	policyID := id.NewPolicyID()
	path := "/policies/" + policyID.String() + "/payments"

	s.Run("accepted", func() {
		s.service.EXPECT().SubmitPayment(gomock.Any(), policyID, gomock.Any(), models.PaymentMethodCard).
			DoAndReturn(func(_ context.Context, _ id.PolicyID, amount decimal.Decimal, method models.PaymentMethod) (*models.Payment, error) {
				s.True(decimal.NewFromInt(500).Equal(amount))
				return &models.Payment{
					ID: id.NewPaymentID(), PolicyID: policyID, Amount: amount, Method: method,
					Status: models.PaymentStatusCompleted, PaymentDate: time.Now(),
				}, nil
			})
		w := s.do(http.MethodPost, path, `{"amount":"500","method":"CARD"}`)
		s.Equal(http.StatusCreated, w.Code)
		s.Equal("completed", s.decode(w)["status"])
	})

	s.Run("rejected payment is returned", func() {
		s.service.EXPECT().SubmitPayment(gomock.Any(), policyID, gomock.Any(), models.PaymentMethodCash).
			Return(&models.Payment{
				ID: id.NewPaymentID(), PolicyID: policyID, Amount: decimal.NewFromInt(2000),
				Method: models.PaymentMethodCash, Status: models.PaymentStatusFailed,
			}, dErrors.New(dErrors.CodeValidation, "payment amount exceeds the remaining balance"))
		w := s.do(http.MethodPost, path, `{"amount":2000,"method":"cash"}`)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
		body := s.decode(w)
		s.Equal("validation_error", body["error"])
		payment := body["payment"].(map[string]any)
		s.Equal("failed", payment["status"])
	})

	s.Run("unknown method", func() {
		w := s.do(http.MethodPost, path, `{"amount":"10","method":"cheque"}`)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}

func (s *HandlerSuite) TestCancelPolicy() {
	policyID := id.NewPolicyID()
	s.service.EXPECT().CancelPolicy(gomock.Any(), policyID).
		Return(nil, dErrors.New(dErrors.CodeInvalidState, "only active policies can be cancelled"))

	w := s.do(http.MethodPost, "/policies/"+policyID.String()+"/cancel", "")
	testutil.AssertStatusAndError(s.T(), w, http.StatusConflict, "invalid_state")
}

func (s *HandlerSuite) TestRenewPolicy() {
	policyID := id.NewPolicyID()
	renewal := samplePolicy()
	s.service.EXPECT().RenewPolicy(gomock.Any(), policyID, time.Date(2028, time.October, 17, 0, 0, 0, 0, time.UTC)).
		Return(renewal, nil)

	w := s.do(http.MethodPost, "/policies/"+policyID.String()+"/renew", `{"end_date":"2028-10-17"}`)
	s.Equal(http.StatusCreated, w.Code)
	s.Equal(renewal.ID.String(), s.decode(w)["id"])
}

func (s *HandlerSuite) TestRequestIDEchoed() {
	s.service.EXPECT().ListCoverages(gomock.Any()).Return(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/coverages", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-7")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal("req-7", w.Header().Get(middleware.RequestIDHeader))
}

func (s *HandlerSuite) TestRequiresBearerTokenWhenConfigured() {
	validator := middleware.NewHMACValidator("test-key", "insurecar")
	router := chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, validator).Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coverages", nil))
	s.Equal(http.StatusUnauthorized, w.Code)

	token, err := validator.Issue("agent-7", time.Minute)
	s.Require().NoError(err)
	s.service.EXPECT().ListCoverages(gomock.Any()).Return(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/coverages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
}
