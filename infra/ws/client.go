// Package ws implements the WebSocket push-feed transport. It owns the
// connection lifecycle (Connecting -> Open -> Closed -> Reconnecting with
// exponential backoff); the telemetry core only sees the decoded sample
// stream.
package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/electrak/fleetpulse/core/feed"
	"github.com/electrak/fleetpulse/core/metrics"
	"github.com/electrak/fleetpulse/core/model"
	"github.com/electrak/fleetpulse/infra/logger"
)

// Config defines the connection parameters for the WebSocket feed.
type Config struct {
	URL         string `json:"url"`
	MaxRetries  int    `json:"max_retries"`
	BackoffMS   int    `json:"backoff_ms"`
	MaxBackoffS int    `json:"max_backoff_s"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.MaxRetries == 0 {
		c.MaxRetries = 10
	}
	if c.BackoffMS == 0 {
		c.BackoffMS = 500
	}
	if c.MaxBackoffS == 0 {
		c.MaxBackoffS = 30
	}
}

// Client consumes push messages from an upstream feed and delivers decoded
// samples. It implements feed.Source.
type Client struct {
	cfg  Config
	dial func(ctx context.Context, url string) (conn, error)
	log  logger.Logger
	sink metrics.Sink
}

// conn is the subset of *websocket.Conn the client uses.
type conn interface {
	ReadMessage() (int, []byte, error)
	Close() error
}

var _ feed.Source = (*Client)(nil)

// NewClient creates a Client for the configured upstream URL.
func NewClient(cfg Config, sink metrics.Sink) *Client {
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Client{
		cfg: cfg,
		dial: func(ctx context.Context, url string) (conn, error) {
			c, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
			return c, err
		},
		log:  logger.New("ws-feed"),
		sink: sink,
	}
}

// Run connects to the upstream feed and delivers samples to out until ctx
// is done or the retry ceiling is reached. A successful read resets the
// retry budget.
func (c *Client) Run(ctx context.Context, out chan<- model.TelemetrySample) error {
	attempts := 0
	backoff := time.Duration(c.cfg.BackoffMS) * time.Millisecond
	maxBackoff := time.Duration(c.cfg.MaxBackoffS) * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Infof("connecting to %s", c.cfg.URL)
		cn, err := c.dial(ctx, c.cfg.URL)
		if err != nil {
			attempts++
			c.sink.RecordFeedError("ws")
			if attempts > c.cfg.MaxRetries {
				return fmt.Errorf("feed unreachable after %d attempts: %w", attempts, err)
			}
			c.log.Warnf("dial failed (attempt %d/%d): %v, reconnecting in %s",
				attempts, c.cfg.MaxRetries, err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		c.log.Infof("feed open")
		err = c.consume(ctx, cn, out, &attempts)
		_ = cn.Close()
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warnf("feed closed: %v, reconnecting", err)
		backoff = time.Duration(c.cfg.BackoffMS) * time.Millisecond
	}
}

// consume reads messages until the connection drops. Malformed payloads are
// recoverable: they are counted and skipped, the last good sample stands.
func (c *Client) consume(ctx context.Context, cn conn, out chan<- model.TelemetrySample, attempts *int) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, payload, err := cn.ReadMessage()
		if err != nil {
			return err
		}
		*attempts = 0
		sample, err := feed.Decode(payload)
		if err != nil {
			c.sink.RecordFeedError("ws")
			c.log.Warnf("dropping payload: %v", err)
			continue
		}
		select {
		case out <- sample:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
