package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electrak/fleetpulse/core/model"
)

func testTrip(vehicleID, date string, endSoC int) model.Trip {
	return model.Trip{
		TripID:     1,
		VehicleID:  vehicleID,
		Date:       date,
		StartTime:  "08:00",
		EndTime:    "10:30",
		AvgKW:      12,
		RatedKW:    20,
		PeakKW:     22,
		StartSoC:   80,
		EndSoC:     endSoC,
		DistanceKM: 100,
		Temps: model.TripTemps{
			Motor:   model.TempRange{Min: 20, Max: 40},
			Battery: model.TempRange{Min: 25, Max: 45},
		},
		EnergyKWh: 10,
	}
}

func TestSummarize(t *testing.T) {
	trips := []model.Trip{
		testTrip("veh1", "2025-09-30", 55),
		testTrip("veh2", "2025-09-30", 30),
	}
	s := Summarize(trips, 1, 2)

	assert.Equal(t, 2, s.TotalTrips)
	assert.InDelta(t, 20, s.TotalKWh, 1e-9)
	assert.InDelta(t, 200, s.TotalDistanceKM, 1e-9)
	assert.InDelta(t, 5, s.TotalHours, 1e-9)
	assert.InDelta(t, 0.1, s.AvgEfficiency, 1e-9)
	// 5 hours over 2 vehicle-days.
	assert.InDelta(t, 5.0/48*100, s.FleetUtilization, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 3, 2)
	assert.Zero(t, s.TotalTrips)
	assert.Zero(t, s.AvgEfficiency)
	assert.Zero(t, s.FleetUtilization)
}

func TestSummarizeUtilizationClamped(t *testing.T) {
	var trips []model.Trip
	for i := 0; i < 20; i++ {
		trips = append(trips, testTrip("veh1", "2025-09-30", 50))
	}
	s := Summarize(trips, 1, 1)
	assert.LessOrEqual(t, s.FleetUtilization, 100.0)
	assert.GreaterOrEqual(t, s.FleetUtilization, 0.0)
}

func TestTotalsByVehicle(t *testing.T) {
	profile := model.VehicleProfile{ID: "veh1", DisplayName: "Vehicle 1", BatteryKWh: 50}
	trips := []model.Trip{
		testTrip("veh1", "2025-09-30", 55),
		testTrip("veh1", "2025-10-01", 40),
	}
	v := TotalsByVehicle(profile, trips, 2)

	assert.Equal(t, "veh1", v.VehicleID)
	assert.Equal(t, "Vehicle 1", v.DisplayName)
	assert.Equal(t, 2, v.Trips)
	assert.InDelta(t, 20, v.TotalKWh, 1e-9)
	assert.InDelta(t, 10, v.AvgKWhPerTrip, 1e-9)
	assert.InDelta(t, 40, v.MaxMotorTemp, 1e-9)
	assert.InDelta(t, 45, v.MaxBatteryTemp, 1e-9)
}

func TestSoCUsageBuckets(t *testing.T) {
	trips := []model.Trip{
		testTrip("veh1", "2025-09-30", 20),
		testTrip("veh1", "2025-09-30", 24),
		testTrip("veh1", "2025-09-30", 25),
		testTrip("veh1", "2025-09-30", 49),
		testTrip("veh1", "2025-09-30", 50),
	}
	buckets := SoCUsage(trips)
	require.Len(t, buckets, 3)
	assert.Equal(t, SoCBucket{Name: "Low (<25%)", Count: 2}, buckets[0])
	assert.Equal(t, SoCBucket{Name: "Medium (25-50%)", Count: 2}, buckets[1])
	assert.Equal(t, SoCBucket{Name: "High (>50%)", Count: 1}, buckets[2])
}

func TestSoCUsageOmitsEmptyBuckets(t *testing.T) {
	buckets := SoCUsage([]model.Trip{testTrip("veh1", "2025-09-30", 60)})
	require.Len(t, buckets, 1)
	assert.Equal(t, "High (>50%)", buckets[0].Name)
}

func TestTimeSeriesContinuousAxis(t *testing.T) {
	dates := []string{"2025-09-29", "2025-09-30", "2025-10-01"}
	trips := []model.Trip{
		testTrip("veh1", "2025-09-29", 50),
		testTrip("veh1", "2025-10-01", 50),
		testTrip("veh2", "2025-10-01", 50),
	}
	points := TimeSeries(trips, dates)
	require.Len(t, points, 3)
	assert.InDelta(t, 10, points[0].KWh, 1e-9)
	assert.Zero(t, points[1].KWh)
	assert.InDelta(t, 20, points[2].KWh, 1e-9)
}

func TestTempTrend(t *testing.T) {
	dates := []string{"2025-09-30", "2025-10-01"}
	a := testTrip("veh1", "2025-09-30", 50)
	b := testTrip("veh2", "2025-09-30", 50)
	b.Temps.Motor.Max = 60
	b.Temps.Battery.Max = 65

	points := TempTrend([]model.Trip{a, b}, dates)
	require.Len(t, points, 2)
	assert.InDelta(t, 50, points[0].MotorTemp, 1e-9)
	assert.InDelta(t, 55, points[0].BatteryTemp, 1e-9)
	assert.Zero(t, points[1].MotorTemp)
}

func TestTripAlerts(t *testing.T) {
	quiet := testTrip("veh1", "2025-09-30", 60)
	assert.Empty(t, TripAlerts(quiet))

	bad := testTrip("veh1", "2025-09-30", 20)
	bad.Temps.Battery.Max = 90
	bad.PeakKW = 30
	bad.IdleMinutes = 90
	assert.ElementsMatch(t,
		[]Alert{AlertLowSoC, AlertHighTemp, AlertHighPeak, AlertLongIdle},
		TripAlerts(bad))
}
