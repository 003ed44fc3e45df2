package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/electrak/fleetpulse/core/model"
)

// SortDirection toggles between ascending and descending table order.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Toggled returns the direction produced by clicking column key when the
// table is currently sorted by current in dir: repeated clicks of the same
// column flip the direction, a new column resets to ascending.
func Toggled(current, key string, dir SortDirection) SortDirection {
	if current == key && dir == Ascending {
		return Descending
	}
	return Ascending
}

// SortTrips orders trips by the named column. Numeric-typed columns compare
// as floats, temperature columns compare on the max of the pair, everything
// else compares lexicographically. The input is not modified.
func SortTrips(trips []model.Trip, key string, dir SortDirection) []model.Trip {
	out := make([]model.Trip, len(trips))
	copy(out, trips)
	sort.SliceStable(out, func(i, j int) bool {
		less := tripLess(out[i], out[j], key)
		if dir == Descending {
			return tripLess(out[j], out[i], key)
		}
		return less
	})
	return out
}

func tripLess(a, b model.Trip, key string) bool {
	if strings.HasSuffix(key, "Temp") {
		return tempMax(a, key) < tempMax(b, key)
	}
	av, aNum := numericColumn(a, key)
	bv, bNum := numericColumn(b, key)
	if aNum && bNum {
		return av < bv
	}
	return textColumn(a, key) < textColumn(b, key)
}

func tempMax(t model.Trip, key string) float64 {
	switch strings.TrimSuffix(key, "Temp") {
	case "motor":
		return t.Temps.Motor.Max
	case "mcu":
		return t.Temps.MCU.Max
	case "battery":
		return t.Temps.Battery.Max
	case "dcdc":
		return t.Temps.DCDC.Max
	case "hydraulicOil":
		return t.Temps.HydraulicOil.Max
	}
	return 0
}

func numericColumn(t model.Trip, key string) (float64, bool) {
	switch key {
	case "tripId":
		return float64(t.TripID), true
	case "totalHours":
		return t.DurationHours(), true
	case "avgKw":
		return t.AvgKW, true
	case "ratedKw":
		return t.RatedKW, true
	case "peakKw":
		return t.PeakKW, true
	case "startSoc":
		return float64(t.StartSoC), true
	case "endSoc":
		return float64(t.EndSoC), true
	case "kwhConsumed":
		return t.EnergyKWh, true
	case "avgKwh":
		if h := t.DurationHours(); h > 0 {
			return t.EnergyKWh / h, true
		}
		return 0, true
	case "efficiencyScore":
		return float64(t.EfficiencyScore), true
	case "idleTime":
		return float64(t.IdleMinutes), true
	}
	// Free-form columns still sort numerically when they parse as numbers.
	if v, err := strconv.ParseFloat(textColumn(t, key), 64); err == nil {
		return v, true
	}
	return 0, false
}

func textColumn(t model.Trip, key string) string {
	switch key {
	case "date":
		return t.Date
	case "startTime":
		return t.StartTime
	case "endTime":
		return t.EndTime
	case "vehicle":
		return t.VehicleID
	}
	return ""
}
