package api

import (
	"encoding/csv"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electrak/fleetpulse/core/metrics"
	"github.com/electrak/fleetpulse/core/model"
	"github.com/electrak/fleetpulse/core/params"
	infralogger "github.com/electrak/fleetpulse/infra/logger"
	"github.com/electrak/fleetpulse/internal/eventbus"
)

type memHistory struct {
	samples map[string][]model.TelemetrySample
}

func (m *memHistory) key(id string, d model.Domain) string { return id + "/" + string(d) }

func (m *memHistory) push(s model.TelemetrySample) {
	if m.samples == nil {
		m.samples = make(map[string][]model.TelemetrySample)
	}
	k := m.key(s.VehicleID, s.Domain)
	m.samples[k] = append(m.samples[k], s)
}

func (m *memHistory) Latest(id string, d model.Domain) (model.TelemetrySample, bool) {
	items := m.samples[m.key(id, d)]
	if len(items) == 0 {
		return model.TelemetrySample{}, false
	}
	return items[len(items)-1], true
}

func (m *memHistory) Items(id string, d model.Domain) []model.TelemetrySample {
	return m.samples[m.key(id, d)]
}

func newTestServer(t *testing.T) (*Server, *memHistory, *eventbus.Bus) {
	t.Helper()
	profiles := model.NewProfileStore([]model.VehicleProfile{
		{ID: "veh1", DisplayName: "Vehicle 1", BatteryKWh: 50},
		{ID: "veh2", DisplayName: "Vehicle 2", BatteryKWh: 60},
	})
	hist := &memHistory{}
	cache := params.NewCache(params.SyntheticLoader("SN-1", rand.New(rand.NewSource(1))))
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	srv := NewServer(infralogger.NopLogger{}, profiles, hist, cache, bus, metrics.NopSink{})
	return srv, hist, bus
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success, "error: %s", resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListVehicles(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/vehicles")
	require.Equal(t, http.StatusOK, rec.Code)

	var vehicles []model.VehicleProfile
	decodeData(t, rec, &vehicles)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "veh1", vehicles[0].ID)
}

func TestLatestTelemetry(t *testing.T) {
	srv, hist, _ := newTestServer(t)
	hist.push(model.TelemetrySample{
		VehicleID: "veh1",
		Domain:    model.DomainBattery,
		Timestamp: time.Now(),
		Battery:   &model.BatterySample{SoC: 61.5},
	})

	rec := doGet(t, srv, "/api/v1/telemetry/veh1/battery")
	require.Equal(t, http.StatusOK, rec.Code)

	var sample model.TelemetrySample
	decodeData(t, rec, &sample)
	require.NotNil(t, sample.Battery)
	assert.Equal(t, 61.5, sample.Battery.SoC)
}

func TestLatestTelemetryNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/telemetry/veh1/battery")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestTelemetryBadDomain(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/telemetry/veh1/transmission")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTelemetryHistory(t *testing.T) {
	srv, hist, _ := newTestServer(t)
	for i := 0; i < 3; i++ {
		hist.push(model.TelemetrySample{
			VehicleID: "veh1",
			Domain:    model.DomainMotor,
			Motor:     &model.MotorSample{Speed: 3000 + float64(i)},
		})
	}

	rec := doGet(t, srv, "/api/v1/telemetry/veh1/motor/history")
	require.Equal(t, http.StatusOK, rec.Code)

	var samples []model.TelemetrySample
	decodeData(t, rec, &samples)
	require.Len(t, samples, 3)
	assert.Equal(t, 3002.0, samples[2].Motor.Speed)
}

func TestParams(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/params/"+strings.ReplaceAll("HV Battery & BMS", " ", "%20"))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []params.Parameter
	decodeData(t, rec, &rows)
	require.NotEmpty(t, rows)
	assert.Equal(t, "SN-1", rows[0].SerialNo)
}

func TestParamsUnknownCategory(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/params/Nonsense")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDailyReport(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/reports/daily?start=2025-09-30&end=2025-09-30")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep DailyReport
	decodeData(t, rec, &rep)
	assert.Equal(t, []string{"2025-09-30"}, rep.Dates)
	require.Len(t, rep.Vehicles, 2)
	// veh1 yields one trip and veh2 two on this date.
	assert.Equal(t, 3, rep.Summary.TotalTrips)
	assert.Len(t, rep.Series, 1)
}

func TestDailyReportDeterministic(t *testing.T) {
	srv, _, _ := newTestServer(t)
	a := doGet(t, srv, "/api/v1/reports/daily?start=2025-09-29&end=2025-10-01")
	b := doGet(t, srv, "/api/v1/reports/daily?start=2025-09-29&end=2025-10-01")
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestDailyReportVehicleFilter(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/reports/daily?start=2025-09-30&end=2025-09-30&vehicles=veh1")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep DailyReport
	decodeData(t, rec, &rep)
	require.Len(t, rep.Vehicles, 1)
	assert.Equal(t, "veh1", rep.Vehicles[0].VehicleID)
	for _, tr := range rep.Trips {
		assert.Equal(t, "veh1", tr.VehicleID)
	}
}

func TestDailyReportSorted(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/reports/daily?start=2025-09-30&end=2025-09-30&sort_by=avgKw&sort_dir=desc")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep DailyReport
	decodeData(t, rec, &rep)
	for i := 1; i < len(rep.Trips); i++ {
		assert.GreaterOrEqual(t, rep.Trips[i-1].AvgKW, rep.Trips[i].AvgKW)
	}
}

func TestDailyReportEndDefaultsToStart(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/reports/daily?start=2025-09-30")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep DailyReport
	decodeData(t, rec, &rep)
	assert.Equal(t, []string{"2025-09-30"}, rep.Dates)
	assert.Equal(t, 3, rep.Summary.TotalTrips)
}

func TestDailyReportUnknownVehicleUsesFallback(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/reports/daily?start=2025-09-30&end=2025-09-30&vehicles=ghost")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep DailyReport
	decodeData(t, rec, &rep)
	require.Len(t, rep.Vehicles, 1)
	assert.Equal(t, "ghost", rep.Vehicles[0].VehicleID)
	assert.Equal(t, model.DefaultProfile.DisplayName, rep.Vehicles[0].DisplayName)
}

func TestDailyReportBadRequests(t *testing.T) {
	srv, _, _ := newTestServer(t)
	cases := []string{
		"/api/v1/reports/daily",
		"/api/v1/reports/daily?start=2025-10-01&end=2025-09-30",
		"/api/v1/reports/daily?start=bogus&end=2025-09-30",
		"/api/v1/reports/daily?start=2025-09-30&end=junk",
	}
	for _, path := range cases {
		rec := doGet(t, srv, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestDailyReportCSV(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doGet(t, srv, "/api/v1/reports/daily.csv?start=2025-09-30&end=2025-09-30&columns=vehicle,startTime,endTime")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 trips
	assert.Equal(t, []string{"Vehicle", "Start Time", "End Time"}, records[0])
	assert.Equal(t, []string{"Vehicle 1", "08:40", "11:14"}, records[1])
}
