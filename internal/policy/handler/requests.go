package handler

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"insurecar/internal/policy/models"
	"insurecar/internal/policy/service"
	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
)

// MaxPremium bounds every premium and payment accepted by the API.
var MaxPremium = decimal.RequireFromString("100000.00")

// maxTermMonths bounds quote terms.
const maxTermMonths = 120

func requiredString(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	if len(value) > maxLen {
		return "", dErrors.New(dErrors.CodeValidation, field+" is too long")
	}
	return value, nil
}

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, field+" must be a YYYY-MM-DD date")
	}
	return t, nil
}

func checkAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, field+" cannot be negative")
	}
	if amount.GreaterThan(MaxPremium) {
		return dErrors.New(dErrors.CodeValidation, field+" cannot exceed "+MaxPremium.StringFixed(2))
	}
	if !amount.Equal(amount.Round(2)) {
		return dErrors.New(dErrors.CodeValidation, field+" cannot have more than two decimal places")
	}
	return nil
}

// RegisterCustomerRequest is the body of POST /customers.
type RegisterCustomerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`

	parsedDateOfBirth time.Time
}

func (r *RegisterCustomerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var err error
	if r.FirstName, err = requiredString("first_name", r.FirstName, 100); err != nil {
		return err
	}
	if r.LastName, err = requiredString("last_name", r.LastName, 100); err != nil {
		return err
	}
	if r.Email, err = requiredString("email", r.Email, 254); err != nil {
		return err
	}
	if !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "email is invalid")
	}
	if r.parsedDateOfBirth, err = parseDate("date_of_birth", r.DateOfBirth); err != nil {
		return err
	}
	return nil
}

func (r *RegisterCustomerRequest) ToModel() *models.Customer {
	return &models.Customer{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       strings.TrimSpace(r.Phone),
		DateOfBirth: r.parsedDateOfBirth,
		Address:     strings.TrimSpace(r.Address),
		City:        strings.TrimSpace(r.City),
		State:       strings.TrimSpace(r.State),
		ZipCode:     strings.TrimSpace(r.ZipCode),
	}
}

// RegisterVehicleRequest is the body of POST /vehicles.
type RegisterVehicleRequest struct {
	VIN          string `json:"vin"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	LicensePlate string `json:"license_plate"`
	Color        string `json:"color"`
	OwnerID      string `json:"owner_id"`

	parsedOwnerID id.CustomerID
}

func (r *RegisterVehicleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var err error
	if r.VIN, err = requiredString("vin", r.VIN, 17); err != nil {
		return err
	}
	if r.Make, err = requiredString("make", r.Make, 50); err != nil {
		return err
	}
	if r.Model, err = requiredString("model", r.Model, 50); err != nil {
		return err
	}
	if r.Year, err = requiredString("year", r.Year, 4); err != nil {
		return err
	}
	if r.parsedOwnerID, err = id.ParseCustomerID(strings.TrimSpace(r.OwnerID)); err != nil {
		return err
	}
	return nil
}

func (r *RegisterVehicleRequest) ToModel() *models.Vehicle {
	return &models.Vehicle{
		VIN:          r.VIN,
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		LicensePlate: strings.TrimSpace(r.LicensePlate),
		Color:        strings.TrimSpace(r.Color),
		OwnerID:      r.parsedOwnerID,
	}
}

// CreateCoverageRequest is the body of POST /coverages. Active defaults to true.
type CreateCoverageRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePremium decimal.Decimal `json:"base_premium"`
	Active      *bool           `json:"active"`
}

func (r *CreateCoverageRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var err error
	if r.Name, err = requiredString("name", r.Name, 100); err != nil {
		return err
	}
	return checkAmount("base_premium", r.BasePremium)
}

func (r *CreateCoverageRequest) ToModel() *models.Coverage {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &models.Coverage{
		Name:        r.Name,
		Description: strings.TrimSpace(r.Description),
		BasePremium: r.BasePremium,
		Active:      active,
	}
}

// partyIDs are the references shared by quote and policy requests.
type partyIDs struct {
	CustomerID string `json:"customer_id"`
	VehicleID  string `json:"vehicle_id"`
	CoverageID string `json:"coverage_id"`

	customerID id.CustomerID
	vehicleID  id.VehicleID
	coverageID id.CoverageID
}

func (p *partyIDs) parse() error {
	var err error
	if p.customerID, err = id.ParseCustomerID(strings.TrimSpace(p.CustomerID)); err != nil {
		return err
	}
	if p.vehicleID, err = id.ParseVehicleID(strings.TrimSpace(p.VehicleID)); err != nil {
		return err
	}
	if p.coverageID, err = id.ParseCoverageID(strings.TrimSpace(p.CoverageID)); err != nil {
		return err
	}
	return nil
}

// QuoteRequest is the body of POST /quotes.
type QuoteRequest struct {
	partyIDs
	Months int `json:"months"`
}

func (r *QuoteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Months <= 0 || r.Months > maxTermMonths {
		return dErrors.New(dErrors.CodeValidation, "months must be between 1 and 120")
	}
	return r.parse()
}

func (r *QuoteRequest) ToService() service.QuoteRequest {
	return service.QuoteRequest{
		CustomerID: r.customerID,
		VehicleID:  r.vehicleID,
		CoverageID: r.coverageID,
		Months:     r.Months,
	}
}

// CreatePolicyRequest is the body of POST /policies. A missing premium is priced.
type CreatePolicyRequest struct {
	partyIDs
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Premium   *decimal.Decimal `json:"premium"`

	parsedStart time.Time
	parsedEnd   time.Time
}

func (r *CreatePolicyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := r.parse(); err != nil {
		return err
	}
	var err error
	if r.parsedStart, err = parseDate("start_date", r.StartDate); err != nil {
		return err
	}
	if r.parsedEnd, err = parseDate("end_date", r.EndDate); err != nil {
		return err
	}
	if r.Premium != nil {
		if err := checkAmount("premium", *r.Premium); err != nil {
			return err
		}
	}
	return nil
}

func (r *CreatePolicyRequest) ToService() service.CreatePolicyRequest {
	req := service.CreatePolicyRequest{
		CustomerID: r.customerID,
		VehicleID:  r.vehicleID,
		CoverageID: r.coverageID,
		StartDate:  r.parsedStart,
		EndDate:    r.parsedEnd,
		Premium:    r.Premium,
	}
	return req
}

// SubmitPaymentRequest is the body of POST /policies/{id}/payments. Non-positive
// amounts pass through so the rejected payment is recorded.
type SubmitPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`

	parsedMethod models.PaymentMethod
}

func (r *SubmitPaymentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Amount.GreaterThan(MaxPremium) {
		return dErrors.New(dErrors.CodeValidation, "amount cannot exceed "+MaxPremium.StringFixed(2))
	}
	if !r.Amount.Equal(r.Amount.Round(2)) {
		return dErrors.New(dErrors.CodeValidation, "amount cannot have more than two decimal places")
	}
	method, err := models.ParsePaymentMethod(strings.TrimSpace(r.Method))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "method must be one of cash, card, transfer")
	}
	r.parsedMethod = method
	return nil
}

// RenewPolicyRequest is the body of POST /policies/{id}/renew.
type RenewPolicyRequest struct {
	EndDate string `json:"end_date"`

	parsedEnd time.Time
}

func (r *RenewPolicyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var err error
	r.parsedEnd, err = parseDate("end_date", r.EndDate)
	return err
}
