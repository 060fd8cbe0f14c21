// Package memory provides in-memory policy stores for tests and single-process
// deployments. Every store copies on the way in and on the way out, so callers
// never share mutable state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	"insurecar/pkg/platform/sentinel"
)

type CustomerStore struct {
	mu        sync.RWMutex
	customers map[id.CustomerID]models.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{customers: make(map[id.CustomerID]models.Customer)}
}

func (s *CustomerStore) Save(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = *customer
	return nil
}

func (s *CustomerStore) FindByID(_ context.Context, customerID id.CustomerID) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[customerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

type VehicleStore struct {
	mu       sync.RWMutex
	vehicles map[id.VehicleID]models.Vehicle
}

func NewVehicleStore() *VehicleStore {
	return &VehicleStore{vehicles: make(map[id.VehicleID]models.Vehicle)}
}

// Save stores the vehicle without its resolved owner; OwnerID is kept.
func (s *VehicleStore) Save(_ context.Context, vehicle *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *vehicle
	v.Owner = nil
	s.vehicles[v.ID] = v
	return nil
}

func (s *VehicleStore) FindByID(_ context.Context, vehicleID id.VehicleID) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vehicles[vehicleID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
}

type CoverageStore struct {
	mu        sync.RWMutex
	coverages map[id.CoverageID]models.Coverage
}

func NewCoverageStore() *CoverageStore {
	return &CoverageStore{coverages: make(map[id.CoverageID]models.Coverage)}
}

func (s *CoverageStore) Save(_ context.Context, coverage *models.Coverage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coverages[coverage.ID] = *coverage
	return nil
}

func (s *CoverageStore) FindByID(_ context.Context, coverageID id.CoverageID) (*models.Coverage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.coverages[coverageID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

// List returns coverages ordered by name.
func (s *CoverageStore) List(_ context.Context) ([]*models.Coverage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Coverage, 0, len(s.coverages))
	for _, c := range s.coverages {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type PolicyStore struct {
	mu       sync.RWMutex
	policies map[id.PolicyID]models.Policy
	byNumber map[id.PolicyNumber]id.PolicyID
}

func NewPolicyStore() *PolicyStore {
	return &PolicyStore{
		policies: make(map[id.PolicyID]models.Policy),
		byNumber: make(map[id.PolicyNumber]id.PolicyID),
	}
}

// Save inserts or updates a policy. References and payments are not stored; the
// loader resolves them. A number already held by another policy is a conflict.
func (s *PolicyStore) Save(_ context.Context, policy *models.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.byNumber[policy.Number]; ok && owner != policy.ID {
		return sentinel.ErrConflict
	}
	if prev, ok := s.policies[policy.ID]; ok && prev.Number != policy.Number {
		delete(s.byNumber, prev.Number)
	}
	p := *policy
	p.Customer, p.Vehicle, p.Coverage, p.Payments = nil, nil, nil, nil
	s.policies[p.ID] = p
	s.byNumber[p.Number] = p.ID
	return nil
}

func (s *PolicyStore) FindByID(_ context.Context, policyID id.PolicyID) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[policyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

// FindByIDForUpdate is FindByID; row locking is the in-memory transaction's job.
func (s *PolicyStore) FindByIDForUpdate(ctx context.Context, policyID id.PolicyID) (*models.Policy, error) {
	return s.FindByID(ctx, policyID)
}

func (s *PolicyStore) FindByNumber(_ context.Context, number id.PolicyNumber) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policyID, ok := s.byNumber[number]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	p := s.policies[policyID]
	return &p, nil
}

// ListByCustomer returns the customer's policies ordered by start date.
func (s *PolicyStore) ListByCustomer(_ context.Context, customerID id.CustomerID) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Policy{}
	for _, p := range s.policies {
		if p.CustomerID == customerID {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

type PaymentStore struct {
	mu       sync.RWMutex
	payments map[id.PolicyID][]models.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{payments: make(map[id.PolicyID][]models.Payment)}
}

// Save appends a payment to its policy's history, or replaces it when the ID is
// already present.
func (s *PaymentStore) Save(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *payment
	p.Policy = nil
	history := s.payments[p.PolicyID]
	for i := range history {
		if history[i].ID == p.ID {
			history[i] = p
			return nil
		}
	}
	s.payments[p.PolicyID] = append(history, p)
	return nil
}

// ListByPolicy returns payments in the order they were saved.
func (s *PaymentStore) ListByPolicy(_ context.Context, policyID id.PolicyID) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.payments[policyID]
	out := make([]*models.Payment, 0, len(history))
	for i := range history {
		p := history[i]
		out = append(out, &p)
	}
	return out, nil
}
