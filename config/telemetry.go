package config

import (
	"fmt"
	"time"
)

// Telemetry feed sources.
const (
	SourceMock = "mock"
	SourceWS   = "ws"
	SourceMQTT = "mqtt"
)

// TelemetryConfig controls the live telemetry pipeline.
type TelemetryConfig struct {
	// Source selects where samples come from: mock, ws or mqtt.
	Source string `json:"source"`
	// TickMS is the interval in milliseconds between synthesized samples
	// when running the mock source.
	TickMS int `json:"tick_ms"`
	// HistorySize bounds the per-vehicle, per-domain sample window.
	HistorySize int `json:"history_size"`
}

// SetDefaults applies sane defaults.
func (c *TelemetryConfig) SetDefaults() {
	if c.Source == "" {
		c.Source = SourceMock
	}
	if c.TickMS <= 0 {
		c.TickMS = 2000
	}
	if c.HistorySize <= 0 {
		c.HistorySize = 10
	}
}

// Validate rejects unknown sources.
func (c *TelemetryConfig) Validate() error {
	switch c.Source {
	case SourceMock, SourceWS, SourceMQTT:
		return nil
	default:
		return fmt.Errorf("telemetry: unknown source %q", c.Source)
	}
}

// TickPeriod returns the mock source interval as a duration.
func (c TelemetryConfig) TickPeriod() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}
