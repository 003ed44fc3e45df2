package model

import "fmt"

// TempRange is a [min, max] temperature pair in degrees Celsius.
type TempRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// String renders the pair the way the report tables display it.
func (r TempRange) String() string {
	return fmt.Sprintf("%.1f - %.1f", r.Min, r.Max)
}

// TripTemps holds the per-system temperature ranges recorded for a trip.
// Offsets from the motor baseline keep the relative ordering
// battery >= motor = dcdc >= mcu >= hydraulic oil.
type TripTemps struct {
	Motor        TempRange `json:"motor"`
	MCU          TempRange `json:"mcu"`
	Battery      TempRange `json:"battery"`
	DCDC         TempRange `json:"dcdc"`
	HydraulicOil TempRange `json:"hydraulic_oil"`
}

// MaxAcrossSystems returns the hottest max reading of all five systems.
func (t TripTemps) MaxAcrossSystems() float64 {
	max := t.Motor.Max
	for _, r := range []TempRange{t.MCU, t.Battery, t.DCDC, t.HydraulicOil} {
		if r.Max > max {
			max = r.Max
		}
	}
	return max
}

// Trip is one synthesized operating interval for a vehicle on a date.
// Trips are immutable once generated and are never persisted.
type Trip struct {
	TripID    int    `json:"trip_id"`
	VehicleID string `json:"vehicle_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM, 24-hour
	EndTime   string `json:"end_time"`   // HH:MM, start < end <= 22:00

	AvgKW   float64 `json:"avg_kw"`
	RatedKW float64 `json:"rated_kw"`
	PeakKW  float64 `json:"peak_kw"`

	StartSoC int `json:"start_soc"` // percent, [20,100]
	EndSoC   int `json:"end_soc"`   // percent, EndSoC <= StartSoC, floored at 20

	DistanceKM  float64 `json:"distance_km"`
	IdleMinutes int     `json:"idle_minutes"` // gap since previous trip, 0 for the first

	Temps TripTemps `json:"temps"`

	EnergyKWh       float64 `json:"energy_kwh"`
	EfficiencyScore int     `json:"efficiency_score"` // [0,100]
}

// DurationHours returns EndTime-StartTime in hours, 0 on malformed times.
func (t Trip) DurationHours() float64 {
	sh, sm, ok1 := parseHHMM(t.StartTime)
	eh, em, ok2 := parseHHMM(t.EndTime)
	if !ok1 || !ok2 {
		return 0
	}
	return float64(eh-sh) + float64(em-sm)/60
}

func parseHHMM(s string) (h, m int, ok bool) {
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, false
	}
	return h, m, true
}
