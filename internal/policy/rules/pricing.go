// Package rules holds the pricing and validation rules for policies.
//
// Everything here is pure domain logic: no I/O, no clock reads, no side effects.
// Callers pass "now" explicitly so results are reproducible.
package rules

import (
	"time"

	"github.com/shopspring/decimal"

	"insurecar/internal/policy/models"
)

// Age bands and vehicle-age thresholds for the premium factors.
const (
	YoungDriverAge   = 25
	JuniorDriverAge  = 30
	SeniorDriverAge  = 65
	OldVehicleAge    = 10
	AgingVehicleAge  = 5
	AnnualTermMonths = 12
	premiumPrecision = 2
)

var (
	factorNone         = decimal.NewFromInt(1)
	factorYoungDriver  = decimal.RequireFromString("1.5")
	factorJuniorDriver = decimal.RequireFromString("1.3")
	factorSeniorDriver = decimal.RequireFromString("1.2")
	factorOldVehicle   = decimal.RequireFromString("1.4")
	factorAgingVehicle = decimal.RequireFromString("1.2")
	factorAnnualTerm   = decimal.RequireFromString("0.9")
	half               = decimal.RequireFromString("0.5")
	centsPerUnit       = decimal.NewFromInt(100)
)

// PremiumBreakdown explains how a premium was reached. Premium is the product of
// the base and all factors, rounded to cents.
type PremiumBreakdown struct {
	Base           decimal.Decimal `json:"base"`
	AgeFactor      decimal.Decimal `json:"age_factor"`
	VehicleFactor  decimal.Decimal `json:"vehicle_factor"`
	DurationFactor decimal.Decimal `json:"duration_factor"`
	Premium        decimal.Decimal `json:"premium"`
}

// CalculatePremium prices a policy term. It returns zero when any party is missing
// or months is not positive; invalid input is priced at zero rather than rejected.
func CalculatePremium(customer *models.Customer, vehicle *models.Vehicle, coverage *models.Coverage, months int, now time.Time) decimal.Decimal {
	return PricePremium(customer, vehicle, coverage, months, now).Premium
}

// PricePremium is CalculatePremium with the factor breakdown.
// Factors apply in a fixed order: driver age, vehicle age, term length.
func PricePremium(customer *models.Customer, vehicle *models.Vehicle, coverage *models.Coverage, months int, now time.Time) PremiumBreakdown {
	if customer == nil || vehicle == nil || coverage == nil || months <= 0 {
		return PremiumBreakdown{
			Base:           decimal.Zero,
			AgeFactor:      factorNone,
			VehicleFactor:  factorNone,
			DurationFactor: factorNone,
			Premium:        decimal.Zero,
		}
	}

	b := PremiumBreakdown{
		Base:           coverage.BasePremium,
		AgeFactor:      driverAgeFactor(customer.Age(now)),
		VehicleFactor:  vehicleAgeFactor(vehicle.Age(now)),
		DurationFactor: termFactor(months),
	}
	b.Premium = roundHalfUpCents(b.Base.Mul(b.AgeFactor).Mul(b.VehicleFactor).Mul(b.DurationFactor))
	return b
}

func driverAgeFactor(age int) decimal.Decimal {
	switch {
	case age < YoungDriverAge:
		return factorYoungDriver
	case age < JuniorDriverAge:
		return factorJuniorDriver
	case age > SeniorDriverAge:
		return factorSeniorDriver
	default:
		return factorNone
	}
}

func vehicleAgeFactor(age int) decimal.Decimal {
	switch {
	case age > OldVehicleAge:
		return factorOldVehicle
	case age > AgingVehicleAge:
		return factorAgingVehicle
	default:
		return factorNone
	}
}

func termFactor(months int) decimal.Decimal {
	if months >= AnnualTermMonths {
		return factorAnnualTerm
	}
	return factorNone
}

// roundHalfUpCents rounds to cents with ties toward positive infinity:
// floor(v*100 + 0.5) / 100.
func roundHalfUpCents(v decimal.Decimal) decimal.Decimal {
	return v.Mul(centsPerUnit).Add(half).Floor().Div(centsPerUnit).Round(premiumPrecision)
}

// TermMonths counts whole calendar months from start to end, with a minimum of one
// so that short terms are priced as a single month.
func TermMonths(start, end time.Time) int {
	s, e := models.DateOf(start), models.DateOf(end)
	months := (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
	if e.Day() < s.Day() {
		months--
	}
	return max(months, 1)
}
