package app

import (
	"sync"

	"github.com/electrak/fleetpulse/core/history"
	"github.com/electrak/fleetpulse/core/model"
)

// HistoryStore retains a bounded trailing window of samples per vehicle and
// domain. Windows are created lazily on first push.
type HistoryStore struct {
	mu       sync.RWMutex
	capacity int
	windows  map[historyKey]*history.Window[model.TelemetrySample]
}

type historyKey struct {
	vehicleID string
	domain    model.Domain
}

// NewHistoryStore creates a store whose windows hold capacity samples each.
func NewHistoryStore(capacity int) *HistoryStore {
	return &HistoryStore{
		capacity: capacity,
		windows:  make(map[historyKey]*history.Window[model.TelemetrySample]),
	}
}

// Push records a sample in the window for its vehicle and domain.
func (h *HistoryStore) Push(s model.TelemetrySample) {
	key := historyKey{vehicleID: s.VehicleID, domain: s.Domain}
	h.mu.Lock()
	w, ok := h.windows[key]
	if !ok {
		w = history.NewWindow[model.TelemetrySample](h.capacity)
		h.windows[key] = w
	}
	h.mu.Unlock()
	w.Push(s)
}

// Latest returns the most recent sample for the vehicle and domain.
func (h *HistoryStore) Latest(vehicleID string, domain model.Domain) (model.TelemetrySample, bool) {
	h.mu.RLock()
	w, ok := h.windows[historyKey{vehicleID: vehicleID, domain: domain}]
	h.mu.RUnlock()
	if !ok {
		var zero model.TelemetrySample
		return zero, false
	}
	return w.Latest()
}

// Items returns the retained samples for the vehicle and domain, oldest
// first. The result is a copy.
func (h *HistoryStore) Items(vehicleID string, domain model.Domain) []model.TelemetrySample {
	h.mu.RLock()
	w, ok := h.windows[historyKey{vehicleID: vehicleID, domain: domain}]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return w.Items()
}
