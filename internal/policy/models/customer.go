package models

import (
	"strings"
	"time"

	id "insurecar/pkg/domain"
)

// AdultAge is the minimum age for holding a policy.
const AdultAge = 18

// Customer is a policy holder.
//
// Invariants:
//   - DateOfBirth, when set, lies in the past
//   - Age is derived on demand from DateOfBirth and the supplied clock
type Customer struct {
	ID          id.CustomerID `json:"id"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	DateOfBirth time.Time     `json:"date_of_birth"`
	Address     string        `json:"address"`
	City        string        `json:"city"`
	State       string        `json:"state"`
	ZipCode     string        `json:"zip_code"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Age returns whole years between DateOfBirth and now, or 0 when the date of birth
// is unknown.
func (c *Customer) Age(now time.Time) int {
	if c.DateOfBirth.IsZero() {
		return 0
	}
	return wholeYearsBetween(DateOf(c.DateOfBirth), Today(now))
}

func (c *Customer) IsAdult(now time.Time) bool {
	return c.Age(now) >= AdultAge
}

// FullName joins first and last name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsEligibleForInsurance requires an adult with a first name, last name and email.
func (c *Customer) IsEligibleForInsurance(now time.Time) bool {
	return c.IsAdult(now) &&
		!isBlank(c.FirstName) &&
		!isBlank(c.LastName) &&
		!isBlank(c.Email)
}

// Stamp sets CreatedAt on first save and UpdatedAt on every save.
func (c *Customer) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
