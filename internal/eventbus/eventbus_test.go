package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electrak/fleetpulse/core/model"
)

func sample(id string) model.TelemetrySample {
	return model.TelemetrySample{VehicleID: id, Domain: model.DomainBattery, Timestamp: time.Now()}
}

func TestPublishSubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	sub := b.Subscribe()
	b.Publish(sample("veh1"))

	select {
	case got := <-sub:
		assert.Equal(t, "veh1", got.VehicleID)
	case <-time.After(time.Second):
		t.Fatal("no sample delivered")
	}
}

func TestFanOut(t *testing.T) {
	b := New()
	defer b.Close()

	a := b.Subscribe()
	c := b.Subscribe()
	b.Publish(sample("veh2"))

	for _, sub := range []<-chan model.TelemetrySample{a, c} {
		select {
		case got := <-sub:
			assert.Equal(t, "veh2", got.VehicleID)
		case <-time.After(time.Second):
			t.Fatal("subscriber missed sample")
		}
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	b := New()
	defer b.Close()

	_ = b.Subscribe() // never drained
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(sample("veh1"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	sub := b.Subscribe()
	b.Unsubscribe(sub)

	// The channel is closed on unsubscribe.
	_, open := <-sub
	assert.False(t, open)
}

func TestCloseClosesSubscribers(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Close()

	_, open := <-sub
	require.False(t, open)

	// Publishing after close is a no-op.
	b.Publish(sample("veh1"))
}
