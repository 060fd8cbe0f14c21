package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"insurecar/internal/policy/models"
	"insurecar/internal/policy/rules"
	id "insurecar/pkg/domain"
)

// scenario is the YAML input shared by the quote and validate commands.
type scenario struct {
	Customer struct {
		FirstName   string `yaml:"first_name"`
		LastName    string `yaml:"last_name"`
		Email       string `yaml:"email"`
		DateOfBirth string `yaml:"date_of_birth"`
	} `yaml:"customer"`
	Vehicle struct {
		VIN   string `yaml:"vin"`
		Make  string `yaml:"make"`
		Model string `yaml:"model"`
		Year  string `yaml:"year"`
		Color string `yaml:"color"`
	} `yaml:"vehicle"`
	Coverage struct {
		Name        string `yaml:"name"`
		BasePremium string `yaml:"base_premium"`
		Active      *bool  `yaml:"active"`
	} `yaml:"coverage"`
	Policy struct {
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
		Premium   string `yaml:"premium"`
	} `yaml:"policy"`
	Months int `yaml:"months"`
}

// parties are the models built from a scenario.
type parties struct {
	customer *models.Customer
	vehicle  *models.Vehicle
	coverage *models.Coverage
}

func loadScenario(path string) (*scenario, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return decodeScenario(r)
}

func decodeScenario(r io.Reader) (*scenario, error) {
	var s scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}

func optionalDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD, got %q", field, value)
	}
	return t, nil
}

func optionalAmount(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func (s *scenario) parties() (*parties, error) {
	dob, err := optionalDate("customer.date_of_birth", s.Customer.DateOfBirth)
	if err != nil {
		return nil, err
	}
	base, err := optionalAmount("coverage.base_premium", s.Coverage.BasePremium)
	if err != nil {
		return nil, err
	}
	active := true
	if s.Coverage.Active != nil {
		active = *s.Coverage.Active
	}

	customer := &models.Customer{
		ID:          id.NewCustomerID(),
		FirstName:   s.Customer.FirstName,
		LastName:    s.Customer.LastName,
		Email:       s.Customer.Email,
		DateOfBirth: dob,
	}
	vehicle := &models.Vehicle{
		ID:      id.NewVehicleID(),
		VIN:     s.Vehicle.VIN,
		Make:    s.Vehicle.Make,
		Model:   s.Vehicle.Model,
		Year:    s.Vehicle.Year,
		Color:   s.Vehicle.Color,
		OwnerID: customer.ID,
		Owner:   customer,
	}
	coverage := &models.Coverage{
		ID:          id.NewCoverageID(),
		Name:        s.Coverage.Name,
		BasePremium: base,
		Active:      active,
	}
	return &parties{customer: customer, vehicle: vehicle, coverage: coverage}, nil
}

// months is the explicit term length, or the whole months between the policy
// dates when none is given.
func (s *scenario) months() (int, error) {
	if s.Months > 0 {
		return s.Months, nil
	}
	start, err := optionalDate("policy.start_date", s.Policy.StartDate)
	if err != nil {
		return 0, err
	}
	end, err := optionalDate("policy.end_date", s.Policy.EndDate)
	if err != nil {
		return 0, err
	}
	if start.IsZero() || end.IsZero() {
		return 0, fmt.Errorf("months or policy.start_date and policy.end_date are required")
	}
	return rules.TermMonths(start, end), nil
}

// policy builds the policy under validation. An omitted premium is priced.
func (s *scenario) policy(p *parties, now time.Time) (*models.Policy, error) {
	start, err := optionalDate("policy.start_date", s.Policy.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := optionalDate("policy.end_date", s.Policy.EndDate)
	if err != nil {
		return nil, err
	}
	premium, err := optionalAmount("policy.premium", s.Policy.Premium)
	if err != nil {
		return nil, err
	}

	policy := &models.Policy{
		ID:        id.NewPolicyID(),
		StartDate: start,
		EndDate:   end,
		Premium:   premium,
		Status:    models.PolicyStatusUnpaid,
	}
	policy.Resolve(p.customer, p.vehicle, p.coverage)
	if strings.TrimSpace(s.Policy.Premium) == "" && !start.IsZero() && !end.IsZero() {
		policy.Premium = rules.CalculatePremium(p.customer, p.vehicle, p.coverage, rules.TermMonths(start, end), now)
	}
	return policy, nil
}
