package model

import "fmt"

// VehicleProfile describes the static reference data for one vehicle:
// a display name and the nominal battery capacity used for energy math.
type VehicleProfile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	BatteryKWh  float64 `json:"battery_kwh"`
}

// Validate checks that the profile is usable for report generation.
func (p VehicleProfile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("vehicle id is required")
	}
	if p.BatteryKWh <= 0 {
		return fmt.Errorf("vehicle %s: battery capacity must be positive", p.ID)
	}
	return nil
}

// DefaultProfile is returned for unknown vehicle ids so that report and
// telemetry generation never fail on malformed input.
var DefaultProfile = VehicleProfile{
	ID:          "unknown",
	DisplayName: "Unknown Vehicle",
	BatteryKWh:  50,
}

// ProfileStore is a read-only vehicle id to profile lookup. It is immutable
// after construction and safe for concurrent use.
type ProfileStore struct {
	profiles map[string]VehicleProfile
	order    []string
}

// NewProfileStore builds a store from the given profiles, preserving order.
func NewProfileStore(profiles []VehicleProfile) *ProfileStore {
	s := &ProfileStore{profiles: make(map[string]VehicleProfile, len(profiles))}
	for _, p := range profiles {
		if _, ok := s.profiles[p.ID]; ok {
			continue
		}
		s.profiles[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

// Lookup returns the profile for id, or DefaultProfile when id is unknown.
// The second return reports whether the id was configured.
func (s *ProfileStore) Lookup(id string) (VehicleProfile, bool) {
	if p, ok := s.profiles[id]; ok {
		return p, true
	}
	p := DefaultProfile
	p.ID = id
	return p, false
}

// List returns all configured profiles in insertion order.
func (s *ProfileStore) List() []VehicleProfile {
	out := make([]VehicleProfile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.profiles[id])
	}
	return out
}

// IDs returns the configured vehicle ids in insertion order.
func (s *ProfileStore) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
