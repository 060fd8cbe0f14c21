package service

import (
	"context"
	"errors"

	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
	"insurecar/pkg/platform/sentinel"
)

// RegisterCustomer stores a new customer. A missing ID is minted.
func (s *Service) RegisterCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "customer is required")
	}
	now := s.engine.Now()
	if customer.DateOfBirth.After(now) {
		return nil, dErrors.New(dErrors.CodeValidation, "date of birth cannot be in the future")
	}
	if customer.ID.IsNil() {
		customer.ID = id.NewCustomerID()
	}
	customer.Stamp(now)
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save customer")
	}
	s.logger.InfoContext(ctx, "customer registered", "customer_id", customer.ID.String())
	return customer, nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID id.CustomerID) (*models.Customer, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, lookupError(err, "customer")
	}
	return customer, nil
}

// RegisterVehicle stores a new vehicle. The owner must be a registered customer.
func (s *Service) RegisterVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if vehicle == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "vehicle is required")
	}
	owner, err := s.customers.FindByID(ctx, vehicle.OwnerID)
	if err != nil {
		return nil, lookupError(err, "owner")
	}
	if vehicle.ID.IsNil() {
		vehicle.ID = id.NewVehicleID()
	}
	vehicle.Owner = owner
	vehicle.Stamp(s.engine.Now())
	if err := s.vehicles.Save(ctx, vehicle); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save vehicle")
	}
	s.logger.InfoContext(ctx, "vehicle registered",
		"vehicle_id", vehicle.ID.String(),
		"owner_id", owner.ID.String(),
	)
	return vehicle, nil
}

// GetVehicle loads a vehicle with its owner resolved when the owner still exists.
func (s *Service) GetVehicle(ctx context.Context, vehicleID id.VehicleID) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, lookupError(err, "vehicle")
	}
	if err := s.resolveOwner(ctx, vehicle, nil); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// resolveOwner attaches the vehicle's owner, reusing known when it is the owner.
func (s *Service) resolveOwner(ctx context.Context, vehicle *models.Vehicle, known *models.Customer) error {
	if vehicle.OwnerID.IsNil() {
		return nil
	}
	if known != nil && known.ID == vehicle.OwnerID {
		vehicle.Owner = known
		return nil
	}
	owner, err := s.customers.FindByID(ctx, vehicle.OwnerID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return lookupError(err, "owner")
	}
	vehicle.Owner = owner
	return nil
}

// CreateCoverage stores a new coverage. Coverages start active unless the caller
// says otherwise.
func (s *Service) CreateCoverage(ctx context.Context, coverage *models.Coverage) (*models.Coverage, error) {
	if coverage == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "coverage is required")
	}
	if coverage.BasePremium.IsNegative() {
		return nil, dErrors.New(dErrors.CodeValidation, "base premium cannot be negative")
	}
	if coverage.ID.IsNil() {
		coverage.ID = id.NewCoverageID()
	}
	coverage.Stamp(s.engine.Now())
	if err := s.coverages.Save(ctx, coverage); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save coverage")
	}
	s.logger.InfoContext(ctx, "coverage created",
		"coverage_id", coverage.ID.String(),
		"name", coverage.Name,
	)
	return coverage, nil
}

func (s *Service) GetCoverage(ctx context.Context, coverageID id.CoverageID) (*models.Coverage, error) {
	coverage, err := s.coverages.FindByID(ctx, coverageID)
	if err != nil {
		return nil, lookupError(err, "coverage")
	}
	return coverage, nil
}

func (s *Service) ListCoverages(ctx context.Context) ([]*models.Coverage, error) {
	coverages, err := s.coverages.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list coverages")
	}
	return coverages, nil
}

// DeactivateCoverage withdraws a coverage from sale. Existing policies keep it.
func (s *Service) DeactivateCoverage(ctx context.Context, coverageID id.CoverageID) (*models.Coverage, error) {
	coverage, err := s.coverages.FindByID(ctx, coverageID)
	if err != nil {
		return nil, lookupError(err, "coverage")
	}
	if !coverage.Active {
		return coverage, nil
	}
	coverage.Deactivate(s.engine.Now())
	if err := s.coverages.Save(ctx, coverage); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save coverage")
	}
	s.logger.InfoContext(ctx, "coverage deactivated", "coverage_id", coverage.ID.String())
	return coverage, nil
}
