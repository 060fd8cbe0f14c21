package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	id "insurecar/pkg/domain"
)

type PolicySuite struct {
	suite.Suite
	policy *Policy
}

func TestPolicySuite(t *testing.T) {
	suite.Run(t, new(PolicySuite))
}

func (s *PolicySuite) SetupTest() {
	owner := &Customer{
		ID:          id.NewCustomerID(),
		FirstName:   "Juan",
		LastName:    "Perez",
		Email:       "juan.perez@example.com",
		DateOfBirth: time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC),
	}
	s.policy = &Policy{
		ID:       id.NewPolicyID(),
		Number:   "POL-123456",
		Customer: owner,
		Vehicle: &Vehicle{
			VIN: "1HGBH41JXMN109186", Make: "Honda", Model: "Civic", Year: "2020", Owner: owner,
		},
		Coverage:  &Coverage{Name: "Basic", BasePremium: decimal.NewFromInt(500), Active: true},
		StartDate: DateOf(fixedNow),
		EndDate:   DateOf(fixedNow).AddDate(1, 0, 0),
		Premium:   decimal.NewFromInt(1000),
	}
}

func (s *PolicySuite) payment(amount string, status PaymentStatus) *Payment {
	return &Payment{
		ID:     id.NewPaymentID(),
		Amount: decimal.RequireFromString(amount),
		Status: status,
	}
}

func (s *PolicySuite) TestDefaultStatusIsUnpaid() {
	s.Equal(PolicyStatusUnpaid, (&Policy{}).Status)
}

func (s *PolicySuite) TestRecomputeStatus() {
	s.Run("no payments is unpaid", func() {
		s.policy.Payments = nil
		s.policy.RecomputeStatus()
		s.Equal(PolicyStatusUnpaid, s.policy.Status)
	})

	s.Run("only pending and failed payments is unpaid", func() {
		s.policy.Payments = []*Payment{
			s.payment("500", PaymentStatusPending),
			s.payment("300", PaymentStatusFailed),
		}
		s.policy.RecomputeStatus()
		s.Equal(PolicyStatusUnpaid, s.policy.Status)
	})

	s.Run("partial completed payment", func() {
		s.policy.Payments = []*Payment{s.payment("500", PaymentStatusCompleted)}
		s.policy.RecomputeStatus()
		s.Equal(PolicyStatusPartiallyPaid, s.policy.Status)
	})

	s.Run("exact payment is paid", func() {
		s.policy.Payments = []*Payment{
			s.payment("500", PaymentStatusCompleted),
			s.payment("500", PaymentStatusCompleted),
		}
		s.policy.RecomputeStatus()
		s.Equal(PolicyStatusPaid, s.policy.Status)
	})

	s.Run("overpayment is paid", func() {
		s.policy.Payments = []*Payment{s.payment("1200", PaymentStatusCompleted)}
		s.policy.RecomputeStatus()
		s.Equal(PolicyStatusPaid, s.policy.Status)
		s.True(s.policy.RemainingAmount().IsZero())
	})

	s.Run("idempotent without new payments", func() {
		s.policy.Payments = []*Payment{s.payment("250", PaymentStatusCompleted)}
		s.policy.RecomputeStatus()
		first := s.policy.Status
		s.policy.RecomputeStatus()
		s.Equal(first, s.policy.Status)
	})

	s.Run("status falls back when payments change", func() {
		s.policy.Status = PolicyStatusPaid
		s.policy.Payments = []*Payment{s.payment("250", PaymentStatusFailed)}
		s.policy.RecomputeStatus()
		s.Equal(PolicyStatusUnpaid, s.policy.Status)
	})

	s.Run("cancelled policy is never re-derived", func() {
		s.policy.Status = PolicyStatusCancelled
		s.policy.Payments = []*Payment{s.payment("1000", PaymentStatusCompleted)}
		s.policy.RecomputeStatus()
		s.Equal(PolicyStatusCancelled, s.policy.Status)
	})
}

func (s *PolicySuite) TestRemainingAmount() {
	s.Run("no payments owes the full premium", func() {
		s.policy.Payments = nil
		s.True(decimal.NewFromInt(1000).Equal(s.policy.RemainingAmount()))
	})

	s.Run("completed payments reduce the balance", func() {
		s.policy.Payments = []*Payment{s.payment("500.00", PaymentStatusCompleted)}
		s.Equal("500", s.policy.RemainingAmount().String())
	})

	s.Run("failed payments are ignored", func() {
		s.policy.Payments = []*Payment{s.payment("500", PaymentStatusFailed)}
		s.Equal("1000", s.policy.RemainingAmount().String())
	})

	s.Run("never negative", func() {
		s.policy.Payments = []*Payment{s.payment("1200", PaymentStatusCompleted)}
		s.True(s.policy.RemainingAmount().IsZero())
	})

	s.Run("zero premium owes nothing", func() {
		s.policy.Premium = decimal.Zero
		s.policy.Payments = nil
		s.True(s.policy.RemainingAmount().IsZero())
	})
}

func (s *PolicySuite) TestAttachPayment() {
	p := s.payment("100", PaymentStatusCompleted)
	s.policy.AttachPayment(p)
	s.policy.AttachPayment(p)

	s.Len(s.policy.Payments, 1)
	s.Same(s.policy, p.Policy)
	s.Equal(s.policy.ID, p.PolicyID)

	s.policy.AttachPayment(nil)
	s.Len(s.policy.Payments, 1)
}

func (s *PolicySuite) TestDurationInDays() {
	s.Equal(365, s.policy.DurationInDays())

	s.policy.StartDate = time.Time{}
	s.Equal(0, s.policy.DurationInDays())

	s.SetupTest()
	s.policy.EndDate = time.Time{}
	s.Equal(0, s.policy.DurationInDays())

	s.policy.StartDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	s.policy.EndDate = time.Date(2400, time.January, 1, 0, 0, 0, 0, time.UTC)
	s.Equal(136600, s.policy.DurationInDays())
}

func (s *PolicySuite) TestIsActive() {
	s.Run("running policy", func() {
		s.True(s.policy.IsActive(fixedNow))
	})

	s.Run("future start", func() {
		s.policy.StartDate = DateOf(fixedNow).AddDate(0, 0, 1)
		s.False(s.policy.IsActive(fixedNow))
	})

	s.Run("ends today is still active", func() {
		s.policy.StartDate = DateOf(fixedNow).AddDate(0, -1, 0)
		s.policy.EndDate = DateOf(fixedNow)
		s.True(s.policy.IsActive(fixedNow))
	})

	s.Run("ended yesterday", func() {
		s.policy.EndDate = DateOf(fixedNow).AddDate(0, 0, -1)
		s.False(s.policy.IsActive(fixedNow))
	})

	s.Run("cancelled", func() {
		s.SetupTest()
		s.policy.Status = PolicyStatusCancelled
		s.False(s.policy.IsActive(fixedNow))
	})

	s.Run("missing dates", func() {
		s.SetupTest()
		s.policy.StartDate = time.Time{}
		s.False(s.policy.IsActive(fixedNow))
	})
}

func (s *PolicySuite) TestIsExpired() {
	s.False(s.policy.IsExpired(fixedNow))

	s.policy.EndDate = DateOf(fixedNow).AddDate(0, 0, -1)
	s.True(s.policy.IsExpired(fixedNow))

	s.policy.Status = PolicyStatusCancelled
	s.True(s.policy.IsExpired(fixedNow), "expiry ignores status")

	s.policy.EndDate = time.Time{}
	s.False(s.policy.IsExpired(fixedNow))
}

func (s *PolicySuite) TestIsEligibleForCreation() {
	s.True(s.policy.IsEligibleForCreation(fixedNow))

	cases := map[string]func(p *Policy){
		"no customer":        func(p *Policy) { p.Customer = nil },
		"minor customer":     func(p *Policy) { p.Customer = &Customer{FirstName: "A", LastName: "B", Email: "c"} },
		"no vehicle":         func(p *Policy) { p.Vehicle = nil },
		"ineligible vehicle": func(p *Policy) { p.Vehicle = &Vehicle{} },
		"no coverage":        func(p *Policy) { p.Coverage = nil },
		"inactive coverage":  func(p *Policy) { p.Coverage = &Coverage{Active: false} },
		"inverted dates":     func(p *Policy) { p.StartDate, p.EndDate = p.EndDate, p.StartDate },
		"same day":           func(p *Policy) { p.EndDate = p.StartDate },
		"zero premium":       func(p *Policy) { p.Premium = decimal.Zero },
	}
	for name, mutate := range cases {
		s.Run(name, func() {
			s.SetupTest()
			mutate(s.policy)
			s.False(s.policy.IsEligibleForCreation(fixedNow))
		})
	}
}

func (s *PolicySuite) TestCancel() {
	s.policy.Cancel(fixedNow)
	s.Equal(PolicyStatusCancelled, s.policy.Status)
	s.Equal(fixedNow, s.policy.UpdatedAt)
}

func (s *PolicySuite) TestResolve() {
	customer := &Customer{ID: id.NewCustomerID()}
	vehicle := &Vehicle{ID: id.NewVehicleID()}
	coverage := &Coverage{ID: id.NewCoverageID()}

	p := &Policy{}
	p.Resolve(customer, vehicle, coverage)

	s.Equal(customer.ID, p.CustomerID)
	s.Equal(vehicle.ID, p.VehicleID)
	s.Equal(coverage.ID, p.CoverageID)
	s.Same(coverage, p.Coverage)
}
