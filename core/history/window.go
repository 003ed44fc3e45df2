// Package history implements the bounded trailing window the trend displays
// keep per metric stream: a fixed number of most-recent entries, oldest
// evicted first.
package history

import "sync"

// DefaultCapacity matches the ten-point trend charts.
const DefaultCapacity = 10

// Window retains the most recent entries up to a fixed capacity, evicting
// the oldest on each insert past the bound. It has a single writer per
// stream but is guarded for concurrent readers.
type Window[T any] struct {
	mu    sync.RWMutex
	cap   int
	items []T
}

// NewWindow creates a window with the given capacity; non-positive values
// fall back to DefaultCapacity.
func NewWindow[T any](capacity int) *Window[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window[T]{cap: capacity}
}

// Push appends v, dropping the oldest entry when the window is full.
func (w *Window[T]) Push(v T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.items) == w.cap {
		copy(w.items, w.items[1:])
		w.items[len(w.items)-1] = v
		return
	}
	w.items = append(w.items, v)
}

// Items returns a copy of the retained entries, oldest first.
func (w *Window[T]) Items() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]T, len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of retained entries.
func (w *Window[T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}

// Latest returns the most recent entry, false when the window is empty.
func (w *Window[T]) Latest() (T, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var zero T
	if len(w.items) == 0 {
		return zero, false
	}
	return w.items[len(w.items)-1], true
}
