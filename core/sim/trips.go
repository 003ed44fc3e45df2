package sim

import (
	"fmt"
	"math"

	"github.com/electrak/fleetpulse/core/model"
	"github.com/electrak/fleetpulse/core/report"
)

// Trip generation constants. Trips start between 08:00 and 12:00, last one
// to four hours and never run past the 22:00 cutoff.
const (
	dayCutoffHour   = 22.0
	earliestStart   = 8.0
	startWindowHrs  = 4.0
	minDurationHrs  = 1.0
	durationSpread  = 3.0
	maxTripsPerDate = 5
)

// GenerateTrips synthesizes the ordered trip list for one vehicle on one
// calendar date. Output is fully determined by (vehicle id, date): the seeded
// sequence drives every draw, so repeated calls are byte-identical.
//
// A date can legitimately yield fewer trips than initially chosen, or none at
// all, when the cutoff pushes a candidate past 22:00.
func GenerateTrips(profile model.VehicleProfile, date string) []model.Trip {
	rand := NewSequence(TripSeed(profile.ID, date))

	numTrips := int(rand.Float64()*maxTripsPerDate) + 1
	cursor := earliestStart + rand.Float64()*startWindowHrs

	trips := make([]model.Trip, 0, numTrips)
	lastEnd := math.NaN()

	for i := 0; i < numTrips; i++ {
		duration := rand.Float64()*durationSpread + minDurationHrs
		startHour := cursor
		endHour := startHour + duration
		if endHour > dayCutoffHour {
			break
		}

		idle := 0
		if !math.IsNaN(lastEnd) {
			idle = int(math.Round((startHour - lastEnd) * 60))
		}
		lastEnd = endHour
		cursor = endHour + rand.Float64()*2

		ratedKW := rand.Float64()*20 + 10
		avgKW := ratedKW * (rand.Float64()*0.4 + 0.6)
		peakKW := ratedKW * (rand.Float64()*0.4 + 1.0)

		startSoC := rand.Float64()*40 + 60
		endSoC := startSoC - (rand.Float64()*30 + 10)
		if endSoC < 20 {
			endSoC = 20
		}

		distance := duration * (rand.Float64()*20 + 30)

		tempBase := 15 + rand.Float64()*10
		tempSpread := 10 + rand.Float64()*10
		temps := deriveTemps(tempBase, tempSpread)

		start, end := int(startSoC), int(endSoC)
		energy := float64(start-end) / 100 * profile.BatteryKWh

		trips = append(trips, model.Trip{
			TripID:          i + 1,
			VehicleID:       profile.ID,
			Date:            date,
			StartTime:       formatHour(startHour),
			EndTime:         formatHour(endHour),
			AvgKW:           avgKW,
			RatedKW:         ratedKW,
			PeakKW:          peakKW,
			StartSoC:        start,
			EndSoC:          end,
			DistanceKM:      distance,
			IdleMinutes:     idle,
			Temps:           temps,
			EnergyKWh:       energy,
			EfficiencyScore: report.EfficiencyScore(energy, distance, temps, avgKW, ratedKW, start, end),
		})
	}
	return trips
}

// deriveTemps builds the five per-system ranges from a shared base and
// spread. The per-system deltas keep the battery warmest and the hydraulic
// circuit coolest.
func deriveTemps(base, spread float64) model.TripTemps {
	pair := func(delta float64) model.TempRange {
		return model.TempRange{
			Min: round1(base + delta),
			Max: round1(base + spread + delta),
		}
	}
	return model.TripTemps{
		Motor:        pair(0),
		MCU:          pair(-2),
		Battery:      pair(5),
		DCDC:         pair(0),
		HydraulicOil: pair(-5),
	}
}

// formatHour renders a fractional hour as zero-padded HH:MM.
func formatHour(h float64) string {
	return fmt.Sprintf("%02d:%02d", int(h), int(math.Mod(h, 1)*60))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
