// Package mqtt implements the MQTT push-feed transport using Eclipse Paho.
// Deployments that publish telemetry over a broker instead of a raw
// WebSocket use this source; the decoded sample stream is identical.
package mqtt

import (
	"context"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/electrak/fleetpulse/core/feed"
	"github.com/electrak/fleetpulse/core/metrics"
	"github.com/electrak/fleetpulse/core/model"
	"github.com/electrak/fleetpulse/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT feed.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "fleetpulse-feed"
	}
	if c.Topic == "" {
		c.Topic = "fleet/+/telemetry"
	}
}

// Source subscribes to the telemetry topic and delivers decoded samples.
// It implements feed.Source.
type Source struct {
	cfg  Config
	log  logger.Logger
	sink metrics.Sink

	newClient func(opts *paho.ClientOptions) paho.Client
}

var _ feed.Source = (*Source)(nil)

// NewSource creates an MQTT feed source for the configured broker.
func NewSource(cfg Config, sink metrics.Sink) *Source {
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Source{
		cfg:       cfg,
		log:       logger.New("mqtt-feed"),
		sink:      sink,
		newClient: paho.NewClient,
	}
}

// Run connects to the broker, subscribes and delivers samples to out until
// ctx is done. Paho's auto-reconnect handles transient broker loss; the
// subscription is re-established on each connect.
func (s *Source) Run(ctx context.Context, out chan<- model.TelemetrySample) error {
	opts := paho.NewClientOptions().
		AddBroker(s.cfg.Broker).
		SetClientID(s.cfg.ClientID).
		SetAutoReconnect(true)
	if s.cfg.Username != "" {
		opts.SetUsername(s.cfg.Username)
		opts.SetPassword(s.cfg.Password)
	}

	handler := func(_ paho.Client, msg paho.Message) {
		sample, err := feed.Decode(msg.Payload())
		if err != nil {
			s.sink.RecordFeedError("mqtt")
			s.log.Warnf("dropping payload on %s: %v", msg.Topic(), err)
			return
		}
		select {
		case out <- sample:
		case <-ctx.Done():
		}
	}

	opts.OnConnect = func(c paho.Client) {
		s.log.Infof("MQTT connected")
		if token := c.Subscribe(s.cfg.Topic, s.cfg.QoS, handler); token.Wait() && token.Error() != nil {
			s.log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		s.sink.RecordFeedError("mqtt")
		s.log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		s.log.Warnf("reconnecting to MQTT broker")
	}

	cli := s.newClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	<-ctx.Done()
	cli.Disconnect(250)
	return ctx.Err()
}
