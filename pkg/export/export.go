// Package export writes trip reports as CSV or JSON for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/electrak/fleetpulse/core/model"
)

// Columns lists every exportable column in output order.
var Columns = []string{
	"vehicle",
	"tripId",
	"date",
	"startTime",
	"endTime",
	"totalHours",
	"avgKw",
	"ratedKw",
	"peakKw",
	"startSoc",
	"endSoc",
	"kwhConsumed",
	"avgKwh",
	"motorTemp",
	"mcuTemp",
	"batteryTemp",
	"dcdcTemp",
	"hydraulicOilTemp",
	"efficiencyScore",
}

// Row pairs a trip with the vehicle display name shown in the export.
type Row struct {
	VehicleName string
	Trip        model.Trip
}

// WriteJSON writes the rows to w in JSON format.
func WriteJSON(w io.Writer, rows []Row) error {
	trips := make([]model.Trip, len(rows))
	for i, r := range rows {
		trips[i] = r.Trip
	}
	enc := json.NewEncoder(w)
	return enc.Encode(trips)
}

// WriteCSV writes the selected columns of each row to w. The header row is
// the humanized column names. Unknown selections are ignored; an empty
// selection exports every column.
func WriteCSV(w io.Writer, rows []Row, selected []string) error {
	cols := filterColumns(selected)
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = Humanize(c)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = cellValue(r, c)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Humanize turns a camelCase column key into its display name:
// "hydraulicOilTemp" becomes "Hydraulic Oil Temp".
func Humanize(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func filterColumns(selected []string) []string {
	if len(selected) == 0 {
		return Columns
	}
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}
	var out []string
	for _, c := range Columns {
		if want[c] {
			out = append(out, c)
		}
	}
	return out
}

func cellValue(r Row, col string) string {
	t := r.Trip
	switch col {
	case "vehicle":
		return r.VehicleName
	case "tripId":
		return strconv.Itoa(t.TripID)
	case "date":
		return t.Date
	case "startTime":
		return t.StartTime
	case "endTime":
		return t.EndTime
	case "totalHours":
		return fmt.Sprintf("%.2f", t.DurationHours())
	case "avgKw":
		return fmt.Sprintf("%.1f", t.AvgKW)
	case "ratedKw":
		return fmt.Sprintf("%.0f", t.RatedKW)
	case "peakKw":
		return fmt.Sprintf("%.1f", t.PeakKW)
	case "startSoc":
		return strconv.Itoa(t.StartSoC)
	case "endSoc":
		return strconv.Itoa(t.EndSoC)
	case "kwhConsumed":
		return fmt.Sprintf("%.2f", t.EnergyKWh)
	case "avgKwh":
		if h := t.DurationHours(); h > 0 {
			return fmt.Sprintf("%.2f", t.EnergyKWh/h)
		}
		return "0.00"
	case "motorTemp":
		return t.Temps.Motor.String()
	case "mcuTemp":
		return t.Temps.MCU.String()
	case "batteryTemp":
		return t.Temps.Battery.String()
	case "dcdcTemp":
		return t.Temps.DCDC.String()
	case "hydraulicOilTemp":
		return t.Temps.HydraulicOil.String()
	case "efficiencyScore":
		return strconv.Itoa(t.EfficiencyScore)
	}
	return ""
}
