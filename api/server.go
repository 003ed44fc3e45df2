// Package api exposes the fleet dashboard HTTP and WebSocket surface.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/electrak/fleetpulse/core/logger"
	"github.com/electrak/fleetpulse/core/metrics"
	"github.com/electrak/fleetpulse/core/model"
	"github.com/electrak/fleetpulse/core/params"
	"github.com/electrak/fleetpulse/internal/eventbus"
)

// HistoryStore reads retained telemetry samples per vehicle and domain.
type HistoryStore interface {
	Latest(vehicleID string, domain model.Domain) (model.TelemetrySample, bool)
	Items(vehicleID string, domain model.Domain) []model.TelemetrySample
}

// Server routes dashboard requests to the core packages.
type Server struct {
	log      logger.Logger
	profiles *model.ProfileStore
	history  HistoryStore
	params   *params.Cache
	bus      *eventbus.Bus
	sink     metrics.Sink
	router   *mux.Router
}

// NewServer wires the API router. bus may be nil when live streaming is
// disabled; the /ws route is then not registered.
func NewServer(log logger.Logger, profiles *model.ProfileStore, history HistoryStore, cache *params.Cache, bus *eventbus.Bus, sink metrics.Sink) *Server {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	s := &Server{
		log:      log,
		profiles: profiles,
		history:  history,
		params:   cache,
		bus:      bus,
		sink:     sink,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/vehicles", s.handleListVehicles).Methods("GET")
	v1.HandleFunc("/telemetry/{vehicle}/{domain}", s.handleLatestTelemetry).Methods("GET")
	v1.HandleFunc("/telemetry/{vehicle}/{domain}/history", s.handleTelemetryHistory).Methods("GET")
	v1.HandleFunc("/reports/daily", s.handleDailyReport).Methods("GET")
	v1.HandleFunc("/reports/daily.csv", s.handleDailyReportCSV).Methods("GET")
	v1.HandleFunc("/params/{category}", s.handleParams).Methods("GET")
	v1.Use(jsonMiddleware)

	if s.bus != nil {
		s.router.HandleFunc("/ws", s.handleWS)
	}
	s.router.Use(s.loggingMiddleware)
}

// Router returns the configured router.
func (s *Server) Router() *mux.Router { return s.router }

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debugf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.profiles.List())
}

func (s *Server) handleLatestTelemetry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	domain := model.Domain(vars["domain"])
	if !domain.Valid() {
		respondError(w, http.StatusBadRequest, "unknown telemetry domain")
		return
	}
	sample, ok := s.history.Latest(vars["vehicle"], domain)
	if !ok {
		respondError(w, http.StatusNotFound, "no telemetry for vehicle")
		return
	}
	respondJSON(w, http.StatusOK, sample)
}

func (s *Server) handleTelemetryHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	domain := model.Domain(vars["domain"])
	if !domain.Valid() {
		respondError(w, http.StatusBadRequest, "unknown telemetry domain")
		return
	}
	respondJSON(w, http.StatusOK, s.history.Items(vars["vehicle"], domain))
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force_refresh") == "true"
	values, err := s.params.Get(mux.Vars(r)["category"], force)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, values)
}
