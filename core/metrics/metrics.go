// Package metrics defines the sink interface the service records
// observability events through. Prometheus and InfluxDB implementations
// live in infra/metrics and can be combined with NewMultiSink.
package metrics

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// Sink records service events for observability purposes.
type Sink interface {
	// RecordSample counts one telemetry sample per domain and source
	// ("mock", "ws", "mqtt").
	RecordSample(domain, source string)
	// RecordReport counts one generated report with its trip total.
	RecordReport(vehicles, trips int)
	// RecordFeedError counts one recoverable feed decode or transport error.
	RecordFeedError(source string)
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSample(string, string) {}
func (NopSink) RecordReport(int, int)       {}
func (NopSink) RecordFeedError(string)      {}

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

func (m *MultiSink) RecordSample(domain, source string) {
	for _, s := range m.Sinks {
		s.RecordSample(domain, source)
	}
}

func (m *MultiSink) RecordReport(vehicles, trips int) {
	for _, s := range m.Sinks {
		s.RecordReport(vehicles, trips)
	}
}

func (m *MultiSink) RecordFeedError(source string) {
	for _, s := range m.Sinks {
		s.RecordFeedError(source)
	}
}
