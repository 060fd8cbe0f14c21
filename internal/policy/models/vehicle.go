package models

import (
	"fmt"
	"strconv"
	"time"

	id "insurecar/pkg/domain"
)

// NewVehicleMaxAge is the largest age, in years, still considered a new vehicle.
const NewVehicleMaxAge = 2

// Vehicle is an insurable car. Year is kept as the four-digit text it was
// registered with; Age parses it lazily.
type Vehicle struct {
	ID           id.VehicleID  `json:"id"`
	VIN          string        `json:"vin"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	Year         string        `json:"year"`
	LicensePlate string        `json:"license_plate"`
	Color        string        `json:"color"`
	OwnerID      id.CustomerID `json:"owner_id"`
	Owner        *Customer     `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Age is the current year minus the model year; 0 when Year does not parse.
func (v *Vehicle) Age(now time.Time) int {
	year, err := strconv.Atoi(v.Year)
	if err != nil {
		return 0
	}
	return now.Year() - year
}

func (v *Vehicle) IsNew(now time.Time) bool {
	return v.Age(now) <= NewVehicleMaxAge
}

// FullDescription renders "year make model (color)".
func (v *Vehicle) FullDescription() string {
	return fmt.Sprintf("%s %s %s (%s)", v.Year, v.Make, v.Model, v.Color)
}

// HasOwner reports whether an owner reference is present, either resolved or by ID.
func (v *Vehicle) HasOwner() bool {
	return v.Owner != nil || !v.OwnerID.IsNil()
}

// IsEligibleForInsurance requires identifying data and an owner.
func (v *Vehicle) IsEligibleForInsurance() bool {
	return !isBlank(v.VIN) &&
		!isBlank(v.Make) &&
		!isBlank(v.Model) &&
		!isBlank(v.Year) &&
		v.HasOwner()
}

func (v *Vehicle) Stamp(now time.Time) {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
}
