package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"insurecar/internal/policy/models"
	"insurecar/internal/policy/service"
	"insurecar/pkg/platform/httputil"
)

const dateLayout = time.DateOnly

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type CustomerResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	DateOfBirth string    `json:"date_of_birth"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	ZipCode     string    `json:"zip_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromCustomer(c *models.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID.String(),
		FullName:    c.FullName(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		DateOfBirth: c.DateOfBirth.Format(dateLayout),
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		ZipCode:     c.ZipCode,
		CreatedAt:   c.CreatedAt,
	}
}

type VehicleResponse struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	VIN          string    `json:"vin"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         string    `json:"year"`
	LicensePlate string    `json:"license_plate,omitempty"`
	Color        string    `json:"color,omitempty"`
	OwnerID      string    `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromVehicle(v *models.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID.String(),
		Description:  v.FullDescription(),
		VIN:          v.VIN,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		LicensePlate: v.LicensePlate,
		Color:        v.Color,
		OwnerID:      v.OwnerID.String(),
		CreatedAt:    v.CreatedAt,
	}
}

type CoverageResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BasePremium string `json:"base_premium"`
	Active      bool   `json:"active"`
}

func FromCoverage(c *models.Coverage) *CoverageResponse {
	return &CoverageResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		BasePremium: money(c.BasePremium),
		Active:      c.Active,
	}
}

func FromCoverages(list []*models.Coverage) []*CoverageResponse {
	out := make([]*CoverageResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromCoverage(c))
	}
	return out
}

type QuoteResponse struct {
	Months         int    `json:"months"`
	BasePremium    string `json:"base_premium"`
	AgeFactor      string `json:"age_factor"`
	VehicleFactor  string `json:"vehicle_factor"`
	DurationFactor string `json:"duration_factor"`
	Premium        string `json:"premium"`
}

func FromQuote(q *service.Quote) *QuoteResponse {
	return &QuoteResponse{
		Months:         q.Months,
		BasePremium:    money(q.Breakdown.Base),
		AgeFactor:      q.Breakdown.AgeFactor.String(),
		VehicleFactor:  q.Breakdown.VehicleFactor.String(),
		DurationFactor: q.Breakdown.DurationFactor.String(),
		Premium:        money(q.Breakdown.Premium),
	}
}

type PaymentResponse struct {
	ID          string     `json:"id"`
	PolicyID    string     `json:"policy_id"`
	Amount      string     `json:"amount"`
	Method      string     `json:"method,omitempty"`
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

func FromPayment(p *models.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:       p.ID.String(),
		PolicyID: p.PolicyID.String(),
		Amount:   money(p.Amount),
		Method:   p.Method.String(),
		Status:   p.Status.String(),
	}
	if !p.PaymentDate.IsZero() {
		date := p.PaymentDate
		resp.PaymentDate = &date
	}
	return resp
}

// PaymentRejectedResponse reports a payment that was stored as failed.
type PaymentRejectedResponse struct {
	httputil.ErrorResponse
	Payment *PaymentResponse `json:"payment"`
}

type PolicyResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"policy_number"`
	CustomerID   string             `json:"customer_id"`
	VehicleID    string             `json:"vehicle_id"`
	CoverageID   string             `json:"coverage_id"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	Premium      string             `json:"premium"`
	Status       string             `json:"status"`
	Payments     []*PaymentResponse `json:"payments,omitempty"`
	TotalPaid    *string            `json:"total_paid,omitempty"`
	Remaining    *string            `json:"remaining,omitempty"`
	Active       *bool              `json:"active,omitempty"`
	Expired      *bool              `json:"expired,omitempty"`
	DurationDays *int               `json:"duration_days,omitempty"`
}

func FromPolicy(p *models.Policy) *PolicyResponse {
	resp := &PolicyResponse{
		ID:         p.ID.String(),
		Number:     p.Number.String(),
		CustomerID: p.CustomerID.String(),
		VehicleID:  p.VehicleID.String(),
		CoverageID: p.CoverageID.String(),
		StartDate:  p.StartDate.Format(dateLayout),
		EndDate:    p.EndDate.Format(dateLayout),
		Premium:    money(p.Premium),
		Status:     p.Status.String(),
	}
	for _, payment := range p.Payments {
		resp.Payments = append(resp.Payments, FromPayment(payment))
	}
	return resp
}

func FromPolicies(list []*models.Policy) []*PolicyResponse {
	out := make([]*PolicyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPolicy(p))
	}
	return out
}

// FromSummary renders a policy with its derived figures.
func FromSummary(s *service.PolicySummary) *PolicyResponse {
	resp := FromPolicy(s.Policy)
	totalPaid, remaining := money(s.TotalPaid), money(s.Remaining)
	active, expired, days := s.Active, s.Expired, s.DurationDays
	resp.TotalPaid = &totalPaid
	resp.Remaining = &remaining
	resp.Active = &active
	resp.Expired = &expired
	resp.DurationDays = &days
	return resp
}
