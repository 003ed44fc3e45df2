package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/electrak/fleetpulse/core/model"
)

// envelope is the inbound push message: a domain-named key holding either a
// single reading or an array of readings.
type envelope struct {
	VehicleID string          `json:"vehicle_id"`
	Battery   json.RawMessage `json:"battery,omitempty"`
	Motor     json.RawMessage `json:"motor,omitempty"`
	Faults    json.RawMessage `json:"faults,omitempty"`
}

type stamped struct {
	Timestamp int64 `json:"timestamp"` // unix milliseconds
}

// Decode parses one push payload into a TelemetrySample. When the domain key
// holds an array, the reading with the greatest timestamp is selected as
// current. Unknown or missing domain keys and malformed readings return an
// error; callers treat these as recoverable and keep the last good sample.
func Decode(payload []byte) (model.TelemetrySample, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return model.TelemetrySample{}, fmt.Errorf("decode feed payload: %w", err)
	}

	var (
		raw    json.RawMessage
		domain model.Domain
	)
	switch {
	case env.Battery != nil:
		raw, domain = env.Battery, model.DomainBattery
	case env.Motor != nil:
		raw, domain = env.Motor, model.DomainMotor
	case env.Faults != nil:
		raw, domain = env.Faults, model.DomainFault
	default:
		return model.TelemetrySample{}, fmt.Errorf("feed payload has no battery, motor or faults key")
	}

	reading, ts, err := latestReading(raw)
	if err != nil {
		return model.TelemetrySample{}, err
	}

	sample := model.TelemetrySample{
		VehicleID: env.VehicleID,
		Domain:    domain,
		Timestamp: time.UnixMilli(ts),
	}
	switch domain {
	case model.DomainBattery:
		sample.Battery = &model.BatterySample{}
		err = json.Unmarshal(reading, sample.Battery)
	case model.DomainMotor:
		sample.Motor = &model.MotorSample{}
		err = json.Unmarshal(reading, sample.Motor)
	case model.DomainFault:
		sample.Fault = &model.FaultSample{}
		err = json.Unmarshal(reading, sample.Fault)
	}
	if err != nil {
		return model.TelemetrySample{}, fmt.Errorf("decode %s reading: %w", domain, err)
	}
	return sample, nil
}

// latestReading unwraps a single reading or selects the max-timestamp
// element of an array of readings.
func latestReading(raw json.RawMessage) (json.RawMessage, int64, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, 0, fmt.Errorf("decode reading list: %w", err)
		}
		if len(list) == 0 {
			return nil, 0, fmt.Errorf("empty reading list")
		}
		best, bestTS := list[0], int64(-1)
		for _, r := range list {
			var s stamped
			if err := json.Unmarshal(r, &s); err != nil {
				return nil, 0, fmt.Errorf("decode reading timestamp: %w", err)
			}
			if s.Timestamp > bestTS {
				best, bestTS = r, s.Timestamp
			}
		}
		return best, bestTS, nil
	}

	var s stamped
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, 0, fmt.Errorf("decode reading: %w", err)
	}
	return raw, s.Timestamp, nil
}
