package report

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/electrak/fleetpulse/core/model"
)

// Summary is the fleet-level rollup shown above the report tables.
type Summary struct {
	TotalTrips       int     `json:"total_trips"`
	TotalKWh         float64 `json:"total_kwh"`
	TotalDistanceKM  float64 `json:"total_distance_km"`
	TotalHours       float64 `json:"total_hours"`
	AvgEfficiency    float64 `json:"avg_efficiency_kwh_per_km"`
	FleetUtilization float64 `json:"fleet_utilization_pct"`
}

// VehicleTotals is the per-vehicle comparison card.
type VehicleTotals struct {
	VehicleID      string  `json:"vehicle_id"`
	DisplayName    string  `json:"display_name"`
	Trips          int     `json:"trips"`
	TotalKWh       float64 `json:"total_kwh"`
	TotalDistance  float64 `json:"total_distance_km"`
	TotalHours     float64 `json:"total_hours"`
	AvgKWhPerTrip  float64 `json:"avg_kwh_per_trip"`
	AvgEfficiency  float64 `json:"avg_efficiency_kwh_per_km"`
	Utilization    float64 `json:"utilization_pct"`
	MaxMotorTemp   float64 `json:"max_motor_temp"`
	MaxBatteryTemp float64 `json:"max_battery_temp"`
}

// Summarize computes the fleet rollup for trips spread over numDates dates
// and numVehicles vehicles. Utilization is bounded to [0,100] and is 0 when
// no hours were recorded.
func Summarize(trips []model.Trip, numDates, numVehicles int) Summary {
	var s Summary
	for _, t := range trips {
		s.TotalTrips++
		s.TotalKWh += t.EnergyKWh
		s.TotalDistanceKM += t.DistanceKM
		s.TotalHours += t.DurationHours()
	}
	if s.TotalDistanceKM > 0 {
		s.AvgEfficiency = s.TotalKWh / s.TotalDistanceKM
	}
	if s.TotalHours > 0 && numDates > 0 && numVehicles > 0 {
		s.FleetUtilization = s.TotalHours / (24 * float64(numDates) * float64(numVehicles)) * 100
		s.FleetUtilization = math.Min(100, math.Max(0, s.FleetUtilization))
	}
	return s
}

// TotalsByVehicle computes the per-vehicle comparison rollup over numDates.
func TotalsByVehicle(profile model.VehicleProfile, trips []model.Trip, numDates int) VehicleTotals {
	v := VehicleTotals{VehicleID: profile.ID, DisplayName: profile.DisplayName}
	for _, t := range trips {
		v.Trips++
		v.TotalKWh += t.EnergyKWh
		v.TotalDistance += t.DistanceKM
		v.TotalHours += t.DurationHours()
		v.MaxMotorTemp = math.Max(v.MaxMotorTemp, t.Temps.Motor.Max)
		v.MaxBatteryTemp = math.Max(v.MaxBatteryTemp, t.Temps.Battery.Max)
	}
	if v.Trips > 0 {
		v.AvgKWhPerTrip = v.TotalKWh / float64(v.Trips)
	}
	if v.TotalDistance > 0 {
		v.AvgEfficiency = v.TotalKWh / v.TotalDistance
	}
	if numDates > 0 {
		v.Utilization = math.Min(100, v.TotalHours/(24*float64(numDates))*100)
	}
	return v
}

// SoCBucket is one slice of the state-of-charge usage chart.
type SoCBucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SoCUsage partitions trips by end state of charge: Low (<25), Medium
// (25-50), High (>=50). Empty buckets are omitted from the output.
func SoCUsage(trips []model.Trip) []SoCBucket {
	var low, med, high int
	for _, t := range trips {
		switch {
		case t.EndSoC < 25:
			low++
		case t.EndSoC < 50:
			med++
		default:
			high++
		}
	}
	var out []SoCBucket
	for _, b := range []SoCBucket{
		{Name: "Low (<25%)", Count: low},
		{Name: "Medium (25-50%)", Count: med},
		{Name: "High (>50%)", Count: high},
	} {
		if b.Count > 0 {
			out = append(out, b)
		}
	}
	return out
}

// DatePoint is one entry of the per-date kWh time series.
type DatePoint struct {
	Date string  `json:"date"`
	KWh  float64 `json:"kwh"`
}

// TimeSeries sums energy per date, emitting a point for every date in the
// range so charts keep a continuous axis.
func TimeSeries(trips []model.Trip, dates []string) []DatePoint {
	byDate := make(map[string]float64, len(dates))
	for _, t := range trips {
		byDate[t.Date] += t.EnergyKWh
	}
	out := make([]DatePoint, len(dates))
	for i, d := range dates {
		out[i] = DatePoint{Date: d, KWh: byDate[d]}
	}
	return out
}

// TempPoint is one entry of the per-date temperature trend.
type TempPoint struct {
	Date        string  `json:"date"`
	MotorTemp   float64 `json:"motor_temp"`
	BatteryTemp float64 `json:"battery_temp"`
}

// TempTrend averages the motor and battery max readings per date.
func TempTrend(trips []model.Trip, dates []string) []TempPoint {
	motor := make(map[string][]float64)
	battery := make(map[string][]float64)
	for _, t := range trips {
		motor[t.Date] = append(motor[t.Date], t.Temps.Motor.Max)
		battery[t.Date] = append(battery[t.Date], t.Temps.Battery.Max)
	}
	out := make([]TempPoint, len(dates))
	for i, d := range dates {
		p := TempPoint{Date: d}
		if v := motor[d]; len(v) > 0 {
			p.MotorTemp = stat.Mean(v, nil)
		}
		if v := battery[d]; len(v) > 0 {
			p.BatteryTemp = stat.Mean(v, nil)
		}
		out[i] = p
	}
	return out
}

// Alert names a per-trip condition worth flagging in the report table.
type Alert string

const (
	AlertLowSoC   Alert = "low_soc"    // end SoC below 25%
	AlertHighTemp Alert = "high_temp"  // any system max above 75 C
	AlertHighPeak Alert = "high_peak"  // peak above 120% of rated
	AlertLongIdle Alert = "long_idle"  // more than an hour idle before start
)

// TripAlerts returns the alert flags raised by one trip.
func TripAlerts(t model.Trip) []Alert {
	var out []Alert
	if t.EndSoC < 25 {
		out = append(out, AlertLowSoC)
	}
	if t.Temps.MaxAcrossSystems() > 75 {
		out = append(out, AlertHighTemp)
	}
	if t.RatedKW > 0 && t.PeakKW/t.RatedKW > 1.2 {
		out = append(out, AlertHighPeak)
	}
	if t.IdleMinutes > 60 {
		out = append(out, AlertLongIdle)
	}
	return out
}
