package models

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	id "insurecar/pkg/domain"
)

func newTestVehicle() *Vehicle {
	return &Vehicle{
		VIN:     "1HGBH41JXMN109186",
		Make:    "Toyota",
		Model:   "Camry",
		Year:    "2018",
		Color:   "Silver",
		OwnerID: id.NewCustomerID(),
	}
}

func TestVehicleAge(t *testing.T) {
	v := newTestVehicle()
	assert.Equal(t, 8, v.Age(fixedNow))

	v.Year = strconv.Itoa(fixedNow.Year())
	assert.Equal(t, 0, v.Age(fixedNow))

	v.Year = "invalid"
	assert.Equal(t, 0, v.Age(fixedNow))

	v.Year = ""
	assert.Equal(t, 0, v.Age(fixedNow))
}

func TestVehicleIsNew(t *testing.T) {
	v := newTestVehicle()
	v.Year = strconv.Itoa(fixedNow.Year())
	assert.True(t, v.IsNew(fixedNow))

	v.Year = strconv.Itoa(fixedNow.Year() - 2)
	assert.True(t, v.IsNew(fixedNow), "exactly two years old is still new")

	v.Year = "2015"
	assert.False(t, v.IsNew(fixedNow))
}

func TestVehicleFullDescription(t *testing.T) {
	v := newTestVehicle()
	assert.Equal(t, "2018 Toyota Camry (Silver)", v.FullDescription())

	v.Color = ""
	assert.Equal(t, "2018 Toyota Camry ()", v.FullDescription())
}

func TestVehicleIsEligibleForInsurance(t *testing.T) {
	assert.True(t, newTestVehicle().IsEligibleForInsurance())

	resolvedOwner := newTestVehicle()
	resolvedOwner.OwnerID = id.CustomerID{}
	resolvedOwner.Owner = &Customer{ID: id.NewCustomerID()}
	assert.True(t, resolvedOwner.IsEligibleForInsurance())

	cases := map[string]func(v *Vehicle){
		"no vin":    func(v *Vehicle) { v.VIN = "" },
		"blank vin": func(v *Vehicle) { v.VIN = "  " },
		"no make":   func(v *Vehicle) { v.Make = "" },
		"no model":  func(v *Vehicle) { v.Model = "" },
		"no year":   func(v *Vehicle) { v.Year = "" },
		"no owner":  func(v *Vehicle) { v.OwnerID = id.CustomerID{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := newTestVehicle()
			mutate(v)
			assert.False(t, v.IsEligibleForInsurance())
		})
	}
}
