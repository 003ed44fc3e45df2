// Package eventbus fans telemetry samples out from the active source (mock
// ticker or push feed) to any number of subscribers, such as WebSocket
// clients and history retention.
package eventbus

import (
	"sync"

	"github.com/electrak/fleetpulse/core/model"
)

// Bus is a publish/subscribe fan-out for telemetry samples. Delivery is
// non-blocking: a slow subscriber drops samples rather than stalling the
// tick loop.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan model.TelemetrySample
	closed bool
}

// New creates a new Bus.
func New() *Bus { return &Bus{} }

// Publish sends the sample to all subscribers.
func (b *Bus) Publish(s model.TelemetrySample) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Bus) Subscribe() <-chan model.TelemetrySample {
	ch := make(chan model.TelemetrySample, 16)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan model.TelemetrySample) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes all subscriber channels and clears the list.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
