package rules

import (
	"time"

	"insurecar/internal/policy/models"
)

// Violation messages returned by ValidatePolicy.
const (
	MsgPolicyRequired     = "policy is required"
	MsgCustomerRequired   = "customer is required"
	MsgCustomerIneligible = "customer is not eligible for insurance"
	MsgVehicleRequired    = "vehicle is required"
	MsgVehicleIneligible  = "vehicle is not eligible for insurance"
	MsgCoverageRequired   = "coverage is required"
	MsgCoverageInactive   = "coverage is not active"
	MsgStartDateRequired  = "start date is required"
	MsgEndDateRequired    = "end date is required"
	MsgStartAfterEnd      = "start date cannot be after end date"
	MsgStartInPast        = "start date cannot be in the past"
	MsgPremiumNotPositive = "premium must be greater than 0"
)

// ValidatePolicy lists every reason the policy cannot be created. An empty result
// means the policy is valid. Checks never short-circuit each other except for a
// nil policy, which yields exactly [MsgPolicyRequired].
func ValidatePolicy(policy *models.Policy, now time.Time) []string {
	if policy == nil {
		return []string{MsgPolicyRequired}
	}

	violations := []string{}

	switch {
	case policy.Customer == nil:
		violations = append(violations, MsgCustomerRequired)
	case !policy.Customer.IsEligibleForInsurance(now):
		violations = append(violations, MsgCustomerIneligible)
	}

	switch {
	case policy.Vehicle == nil:
		violations = append(violations, MsgVehicleRequired)
	case !policy.Vehicle.IsEligibleForInsurance():
		violations = append(violations, MsgVehicleIneligible)
	}

	switch {
	case policy.Coverage == nil:
		violations = append(violations, MsgCoverageRequired)
	case !policy.Coverage.IsEligible():
		violations = append(violations, MsgCoverageInactive)
	}

	hasStart := !policy.StartDate.IsZero()
	hasEnd := !policy.EndDate.IsZero()
	if !hasStart {
		violations = append(violations, MsgStartDateRequired)
	}
	if !hasEnd {
		violations = append(violations, MsgEndDateRequired)
	}
	if hasStart && hasEnd {
		start := models.DateOf(policy.StartDate)
		if start.After(models.DateOf(policy.EndDate)) {
			violations = append(violations, MsgStartAfterEnd)
		}
		if start.Before(models.Today(now)) {
			violations = append(violations, MsgStartInPast)
		}
	}

	if !policy.Premium.IsPositive() {
		violations = append(violations, MsgPremiumNotPositive)
	}

	return violations
}
