package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStoreLookup(t *testing.T) {
	store := NewProfileStore([]VehicleProfile{
		{ID: "veh1", DisplayName: "Vehicle 1", BatteryKWh: 50},
		{ID: "veh2", DisplayName: "Vehicle 2", BatteryKWh: 60},
	})

	p, ok := store.Lookup("veh2")
	require.True(t, ok)
	assert.Equal(t, 60.0, p.BatteryKWh)

	fallback, ok := store.Lookup("ghost")
	assert.False(t, ok)
	assert.Equal(t, "ghost", fallback.ID)
	assert.Equal(t, DefaultProfile.DisplayName, fallback.DisplayName)
	assert.Equal(t, DefaultProfile.BatteryKWh, fallback.BatteryKWh)
}

func TestProfileStorePreservesOrder(t *testing.T) {
	store := NewProfileStore([]VehicleProfile{
		{ID: "z", BatteryKWh: 1},
		{ID: "a", BatteryKWh: 1},
		{ID: "m", BatteryKWh: 1},
	})
	assert.Equal(t, []string{"z", "a", "m"}, store.IDs())
}

func TestVehicleProfileValidate(t *testing.T) {
	assert.NoError(t, VehicleProfile{ID: "veh1", BatteryKWh: 50}.Validate())
	assert.Error(t, VehicleProfile{BatteryKWh: 50}.Validate())
	assert.Error(t, VehicleProfile{ID: "veh1"}.Validate())
	assert.Error(t, VehicleProfile{ID: "veh1", BatteryKWh: -2}.Validate())
}

func TestDomainValid(t *testing.T) {
	assert.True(t, DomainBattery.Valid())
	assert.True(t, DomainMotor.Valid())
	assert.True(t, DomainFault.Valid())
	assert.False(t, Domain("gearbox").Valid())
}

func TestTripDurationHours(t *testing.T) {
	tr := Trip{StartTime: "08:40", EndTime: "11:10"}
	assert.InDelta(t, 2.5, tr.DurationHours(), 1e-9)

	malformed := Trip{StartTime: "late", EndTime: "11:10"}
	assert.Zero(t, malformed.DurationHours())
}

func TestTempRangeString(t *testing.T) {
	r := TempRange{Min: 20.15, Max: 36.4}
	assert.Equal(t, "20.1 - 36.4", r.String())
}

func TestMaxAcrossSystems(t *testing.T) {
	temps := TripTemps{
		Motor:        TempRange{Max: 40},
		MCU:          TempRange{Max: 38},
		Battery:      TempRange{Max: 45},
		DCDC:         TempRange{Max: 40},
		HydraulicOil: TempRange{Max: 35},
	}
	assert.Equal(t, 45.0, temps.MaxAcrossSystems())
}
