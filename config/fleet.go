package config

import (
	"fmt"

	"github.com/electrak/fleetpulse/core/model"
)

// FleetConfig declares the vehicles the service knows about.
type FleetConfig struct {
	Vehicles []model.VehicleProfile `json:"vehicles"`
}

// SetDefaults seeds a small demo fleet when no vehicles are configured.
func (c *FleetConfig) SetDefaults() {
	if len(c.Vehicles) == 0 {
		c.Vehicles = []model.VehicleProfile{
			{ID: "veh1", DisplayName: "Vehicle 1", BatteryKWh: 50},
			{ID: "veh2", DisplayName: "Vehicle 2", BatteryKWh: 60},
			{ID: "veh3", DisplayName: "Vehicle 3", BatteryKWh: 70},
		}
	}
}

// Validate checks every declared vehicle profile.
func (c *FleetConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Vehicles))
	for i := range c.Vehicles {
		v := &c.Vehicles[i]
		if err := v.Validate(); err != nil {
			return fmt.Errorf("fleet: vehicle %d: %w", i, err)
		}
		if _, dup := seen[v.ID]; dup {
			return fmt.Errorf("fleet: duplicate vehicle id %q", v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	return nil
}
