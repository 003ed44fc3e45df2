package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records service events in Prometheus metrics.
type PromSink struct {
	samples    *prometheus.CounterVec
	reports    *prometheus.CounterVec
	reportSize *prometheus.HistogramVec
	feedErrors *prometheus.CounterVec
}

// NewPromSink registers telemetry metrics on the provided registerer. If reg
// is nil, the default registerer is used. Already-registered collectors are
// reused so repeated construction is safe.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	samples := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "telemetry_samples_total",
		Help: "Total number of telemetry samples produced or ingested",
	}, []string{"domain", "source"})
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_reports_total",
		Help: "Total number of trip reports generated",
	}, []string{"vehicles"})
	reportSize := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trip_report_trips",
		Help:    "Trips per generated report",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	}, []string{"vehicles"})
	feedErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_errors_total",
		Help: "Total number of recoverable push-feed errors",
	}, []string{"source"})

	for i, c := range []*prometheus.CounterVec{samples, reports, feedErrors} {
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				switch i {
				case 0:
					samples = are.ExistingCollector.(*prometheus.CounterVec)
				case 1:
					reports = are.ExistingCollector.(*prometheus.CounterVec)
				default:
					feedErrors = are.ExistingCollector.(*prometheus.CounterVec)
				}
			} else {
				return nil, err
			}
		}
	}
	if err := reg.Register(reportSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reportSize = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{samples: samples, reports: reports, reportSize: reportSize, feedErrors: feedErrors}, nil
}

// RecordSample increments the per-domain sample counter.
func (s *PromSink) RecordSample(domain, source string) {
	s.samples.WithLabelValues(domain, source).Inc()
}

// RecordReport counts one report and observes its trip total.
func (s *PromSink) RecordReport(vehicles, trips int) {
	label := strconv.Itoa(vehicles)
	s.reports.WithLabelValues(label).Inc()
	s.reportSize.WithLabelValues(label).Observe(float64(trips))
}

// RecordFeedError increments the per-source feed error counter.
func (s *PromSink) RecordFeedError(source string) {
	s.feedErrors.WithLabelValues(source).Inc()
}
