// Package report derives efficiency scores and fleet-level rollups from
// synthesized trip lists.
package report

import "github.com/electrak/fleetpulse/core/model"

// EfficiencyScore maps one trip's raw metrics to a 0-100 integer as a
// weighted sum of four independently bounded sub-scores:
//
//	energy per distance  max 30
//	thermal              max 30
//	power ratio          max 20
//	charge depletion     max 20
//
// Every sub-score has a non-zero floor, so the total is always in [40,100].
// That floor is an inherent property of the weighting, not a bug.
func EfficiencyScore(kwhConsumed, distance float64, temps model.TripTemps, avgKW, ratedKW float64, startSoC, endSoC int) int {
	// A zero-distance trip has no meaningful energy-per-distance figure; it
	// takes the lowest sub-score rather than dividing by zero.
	kwhScore := 10
	if distance > 0 {
		switch kwhPerKm := kwhConsumed / distance; {
		case kwhPerKm < 0.5:
			kwhScore = 30
		case kwhPerKm < 1:
			kwhScore = 20
		}
	}

	maxTemp := temps.MaxAcrossSystems()
	tempScore := 10
	switch {
	case maxTemp < 70:
		tempScore = 30
	case maxTemp < 80:
		tempScore = 20
	}

	powerRatio := 0.0
	if ratedKW > 0 {
		powerRatio = avgKW / ratedKW
	}
	powerScore := 10
	switch {
	case powerRatio < 0.8:
		powerScore = 20
	case powerRatio < 1.0:
		powerScore = 15
	}

	socScore := 15
	if startSoC-endSoC < 30 {
		socScore = 20
	}

	return kwhScore + tempScore + powerScore + socScore
}
