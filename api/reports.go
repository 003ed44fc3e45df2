package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/electrak/fleetpulse/core/model"
	"github.com/electrak/fleetpulse/core/report"
	"github.com/electrak/fleetpulse/core/sim"
	"github.com/electrak/fleetpulse/pkg/export"
)

// DailyReport is the full payload backing the trip report page.
type DailyReport struct {
	Dates     []string                  `json:"dates"`
	Trips     []model.Trip              `json:"trips"`
	Summary   report.Summary            `json:"summary"`
	Vehicles  []report.VehicleTotals    `json:"vehicles"`
	SoCUsage  []report.SoCBucket        `json:"soc_usage"`
	Series    []report.DatePoint        `json:"series"`
	TempTrend []report.TempPoint        `json:"temp_trend"`
	Alerts    map[string][]report.Alert `json:"alerts,omitempty"`
}

type reportQuery struct {
	dates    []string
	profiles []model.VehicleProfile
	sortBy   string
	sortDir  report.SortDirection
}

func (s *Server) parseReportQuery(r *http.Request) (reportQuery, string) {
	q := r.URL.Query()
	// An empty end is a single-date range, matching the CLI.
	dates, err := report.DatesInRange(q.Get("start"), q.Get("end"))
	if err != nil {
		return reportQuery{}, err.Error()
	}

	// Unknown vehicle ids resolve to the default profile so a stale
	// selection still yields a report instead of aborting it.
	var profiles []model.VehicleProfile
	if raw := q.Get("vehicles"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			p, _ := s.profiles.Lookup(id)
			profiles = append(profiles, p)
		}
	}
	if len(profiles) == 0 {
		profiles = s.profiles.List()
	}
	if len(profiles) == 0 {
		return reportQuery{}, "no vehicles configured"
	}

	dir := report.Ascending
	if q.Get("sort_dir") == "desc" {
		dir = report.Descending
	}
	return reportQuery{dates: dates, profiles: profiles, sortBy: q.Get("sort_by"), sortDir: dir}, ""
}

func buildTrips(rq reportQuery) []model.Trip {
	var trips []model.Trip
	for _, date := range rq.dates {
		for _, p := range rq.profiles {
			trips = append(trips, sim.GenerateTrips(p, date)...)
		}
	}
	if rq.sortBy != "" {
		trips = report.SortTrips(trips, rq.sortBy, rq.sortDir)
	}
	return trips
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	rq, errMsg := s.parseReportQuery(r)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}
	trips := buildTrips(rq)

	rep := DailyReport{
		Dates:     rq.dates,
		Trips:     trips,
		Summary:   report.Summarize(trips, len(rq.dates), len(rq.profiles)),
		SoCUsage:  report.SoCUsage(trips),
		Series:    report.TimeSeries(trips, rq.dates),
		TempTrend: report.TempTrend(trips, rq.dates),
	}
	for _, p := range rq.profiles {
		var own []model.Trip
		for _, t := range trips {
			if t.VehicleID == p.ID {
				own = append(own, t)
			}
		}
		rep.Vehicles = append(rep.Vehicles, report.TotalsByVehicle(p, own, len(rq.dates)))
	}
	for _, t := range trips {
		if alerts := report.TripAlerts(t); len(alerts) > 0 {
			if rep.Alerts == nil {
				rep.Alerts = make(map[string][]report.Alert)
			}
			key := fmt.Sprintf("%s/%s/%d", t.VehicleID, t.Date, t.TripID)
			rep.Alerts[key] = alerts
		}
	}

	s.sink.RecordReport(len(rq.profiles), len(trips))
	respondJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDailyReportCSV(w http.ResponseWriter, r *http.Request) {
	rq, errMsg := s.parseReportQuery(r)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}
	trips := buildTrips(rq)

	names := make(map[string]string, len(rq.profiles))
	for _, p := range rq.profiles {
		names[p.ID] = p.DisplayName
	}
	rows := make([]export.Row, len(trips))
	for i, t := range trips {
		rows[i] = export.Row{VehicleName: names[t.VehicleID], Trip: t}
	}

	var columns []string
	if raw := r.URL.Query().Get("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-report.csv"`)
	s.sink.RecordReport(len(rq.profiles), len(trips))
	if err := export.WriteCSV(w, rows, columns); err != nil {
		s.log.Errorf("csv export: %v", err)
	}
}
