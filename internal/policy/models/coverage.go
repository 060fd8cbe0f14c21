package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "insurecar/pkg/domain"
)

// Coverage is an insurance product offered to customers.
type Coverage struct {
	ID          id.CoverageID   `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePremium decimal.Decimal `json:"base_premium"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsEligible reports whether new policies may use this coverage.
func (c *Coverage) IsEligible() bool {
	return c.Active
}

// Deactivate withdraws the coverage from new policies. Existing policies keep it.
func (c *Coverage) Deactivate(now time.Time) {
	c.Active = false
	c.UpdatedAt = now
}

func (c *Coverage) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
