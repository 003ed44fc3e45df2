// Package feed defines the contract between the telemetry core and a push
// transport: deliver zero or more well-formed samples, in arrival order,
// until closed. Connection lifecycle, reconnection and backoff belong to the
// transport implementations, not to this package.
package feed

import (
	"context"

	"github.com/electrak/fleetpulse/core/model"
)

// Source streams inbound telemetry samples. Run blocks until ctx is
// canceled or the source fails terminally, delivering decoded samples to
// out in arrival order. Malformed payloads are recoverable: they are
// reported through the handler's logger and skipped, never delivered.
type Source interface {
	Run(ctx context.Context, out chan<- model.TelemetrySample) error
}
