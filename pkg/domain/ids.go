// Package domain holds the typed identifiers shared across the policy modules.
//
// IDs are distinct types over uuid.UUID so a CustomerID can never be passed where a
// PolicyID is expected. Construct them via the Parse* functions at trust boundaries
// and via New* when minting.
package domain

import (
	"github.com/google/uuid"

	dErrors "insurecar/pkg/domain-errors"
)

type (
	CustomerID uuid.UUID
	VehicleID  uuid.UUID
	CoverageID uuid.UUID
	PolicyID   uuid.UUID
	PaymentID  uuid.UUID
)

func NewCustomerID() CustomerID { return CustomerID(uuid.New()) }
func NewVehicleID() VehicleID   { return VehicleID(uuid.New()) }
func NewCoverageID() CoverageID { return CoverageID(uuid.New()) }
func NewPolicyID() PolicyID     { return PolicyID(uuid.New()) }
func NewPaymentID() PaymentID   { return PaymentID(uuid.New()) }

// parseUUID rejects empty, malformed and nil UUIDs with CodeInvalidInput.
func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return u, nil
}

func ParseCustomerID(s string) (CustomerID, error) {
	u, err := parseUUID("customer id", s)
	return CustomerID(u), err
}

func ParseVehicleID(s string) (VehicleID, error) {
	u, err := parseUUID("vehicle id", s)
	return VehicleID(u), err
}

func ParseCoverageID(s string) (CoverageID, error) {
	u, err := parseUUID("coverage id", s)
	return CoverageID(u), err
}

func ParsePolicyID(s string) (PolicyID, error) {
	u, err := parseUUID("policy id", s)
	return PolicyID(u), err
}

func ParsePaymentID(s string) (PaymentID, error) {
	u, err := parseUUID("payment id", s)
	return PaymentID(u), err
}

func (id CustomerID) String() string { return uuid.UUID(id).String() }
func (id VehicleID) String() string  { return uuid.UUID(id).String() }
func (id CoverageID) String() string { return uuid.UUID(id).String() }
func (id PolicyID) String() string   { return uuid.UUID(id).String() }
func (id PaymentID) String() string  { return uuid.UUID(id).String() }

func (id CustomerID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id VehicleID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id CoverageID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PolicyID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id PaymentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// Text marshalling keeps the JSON form a plain UUID string.

func (id CustomerID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id VehicleID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id CoverageID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id PolicyID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id PaymentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *CustomerID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *VehicleID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CoverageID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PolicyID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PaymentID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
