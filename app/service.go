// Package app wires configuration, telemetry sources, retention, metrics
// and the API server into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/electrak/fleetpulse/api"
	"github.com/electrak/fleetpulse/config"
	"github.com/electrak/fleetpulse/core/feed"
	coremetrics "github.com/electrak/fleetpulse/core/metrics"
	"github.com/electrak/fleetpulse/core/model"
	"github.com/electrak/fleetpulse/core/params"
	"github.com/electrak/fleetpulse/core/sim"
	"github.com/electrak/fleetpulse/infra/logger"
	"github.com/electrak/fleetpulse/infra/metrics"
	"github.com/electrak/fleetpulse/infra/mqtt"
	"github.com/electrak/fleetpulse/infra/ws"
	"github.com/electrak/fleetpulse/internal/eventbus"
)

// Service orchestrates the telemetry pipeline and the API server.
type Service struct {
	cfg      *config.Config
	log      logger.Logger
	profiles *model.ProfileStore
	synth    *sim.Synthesizer
	history  *HistoryStore
	bus      *eventbus.Bus
	sink     coremetrics.Sink
	source   feed.Source
	closers  []func()
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")
	profiles := model.NewProfileStore(cfg.Fleet.Vehicles)

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	var closers []func()
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			closers = append(closers, is.Close)
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	switch len(sinks) {
	case 0:
	case 1:
		sink = sinks[0]
	default:
		sink = coremetrics.NewMultiSink(sinks...)
	}

	svc := &Service{
		cfg:      cfg,
		log:      log,
		profiles: profiles,
		synth:    sim.NewSynthesizer(profiles, nil),
		history:  NewHistoryStore(cfg.Telemetry.HistorySize),
		bus:      eventbus.New(),
		sink:     sink,
		closers:  closers,
	}
	switch cfg.Telemetry.Source {
	case config.SourceWS:
		svc.source = ws.NewClient(cfg.WS, sink)
	case config.SourceMQTT:
		svc.source = mqtt.NewSource(cfg.MQTT, sink)
	}
	return svc, nil
}

// Run starts the telemetry source and the API server and blocks until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.source != nil {
		samples := make(chan model.TelemetrySample, 64)
		go s.ingest(ctx, samples)
		go func() {
			if err := s.source.Run(ctx, samples); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Errorf("telemetry source: %v", err)
			}
		}()
	} else {
		go s.tick(ctx)
	}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	cache := params.NewCache(params.SyntheticLoader("FP-"+time.Now().Format("20060102"), nil))
	server := api.NewServer(logger.New("api"), s.profiles, s.history, cache, s.bus, s.sink)
	httpSrv := &http.Server{Addr: s.cfg.Server.Addr, Handler: server.Router()}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("api listening on %s", s.cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// tick runs the mock source: one synthesized sample per vehicle and domain
// per period, continuing from the previous retained sample.
func (s *Service) tick(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Telemetry.TickPeriod())
	defer ticker.Stop()
	domains := []model.Domain{model.DomainBattery, model.DomainMotor, model.DomainFault}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range s.profiles.IDs() {
				for _, domain := range domains {
					var prev *model.TelemetrySample
					if last, ok := s.history.Latest(id, domain); ok {
						prev = &last
					}
					sample := s.synth.Sample(id, domain, prev)
					s.publish(sample, "mock")
				}
			}
		}
	}
}

// ingest forwards push-feed samples into retention and fan-out.
func (s *Service) ingest(ctx context.Context, samples <-chan model.TelemetrySample) {
	for {
		select {
		case <-ctx.Done():
			return
		case sample, ok := <-samples:
			if !ok {
				return
			}
			s.publish(sample, s.cfg.Telemetry.Source)
		}
	}
}

func (s *Service) publish(sample model.TelemetrySample, source string) {
	s.history.Push(sample)
	s.bus.Publish(sample)
	s.sink.RecordSample(string(sample.Domain), source)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	for _, c := range s.closers {
		c()
	}
	return nil
}
