// Package sim synthesizes demo telemetry: live tick samples driven by
// ambient randomness and deterministic per-date trip lists driven by a
// seeded sequence. The two randomness sources are deliberately distinct:
// live ticks carry no reproducibility contract, trip reports do.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/electrak/fleetpulse/core/model"
)

// FaultCatalog lists the motor controller fault parameters a fault sample
// can report.
var FaultCatalog = []string{
	"Hardware driver failure",
	"Hardware overcurrent fault",
	"Zero offset fault",
	"Fan failure",
	"Temperature difference failure",
	"AC Hall failure",
	"Stall failure",
	"Low voltage undervoltage fault",
	"Software overcurrent fault",
	"Hardware overvoltage fault",
	"Total hardware failure",
	"Bus overvoltage fault",
	"Busbar undervoltage fault",
	"Module over temperature fault",
	"Module over temperature warning",
	"Overspeed fault",
	"OverRpmAlarm_Flag",
	"Motor over temperature warning",
	"Motor over temperature fault",
	"CAN offline failure",
	"Encoder failure",
}

// Synthesizer produces plausible bounded-range telemetry samples per vehicle
// and tick. It never fails: unknown vehicles fall back to the default
// profile and every numeric field stays inside its documented range.
type Synthesizer struct {
	profiles *model.ProfileStore
	rng      *rand.Rand
	now      func() time.Time
}

// NewSynthesizer creates a Synthesizer reading vehicle base profiles from
// profiles. When rng is nil an ambient time-seeded source is used.
func NewSynthesizer(profiles *model.ProfileStore, rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{profiles: profiles, rng: rng, now: time.Now}
}

// Sample returns a fully populated sample for the vehicle and domain,
// optionally continuing from prev for smooth tick-to-tick variation.
func (s *Synthesizer) Sample(vehicleID string, domain model.Domain, prev *model.TelemetrySample) model.TelemetrySample {
	out := model.TelemetrySample{
		VehicleID: vehicleID,
		Domain:    domain,
		Timestamp: s.now(),
	}
	switch domain {
	case model.DomainMotor:
		out.Motor = s.motor(prevMotor(prev))
	case model.DomainFault:
		out.Fault = s.fault()
	default:
		out.Battery = s.battery(vehicleID, prevBattery(prev))
	}
	return out
}

func prevBattery(prev *model.TelemetrySample) *model.BatterySample {
	if prev == nil {
		return nil
	}
	return prev.Battery
}

func prevMotor(prev *model.TelemetrySample) *model.MotorSample {
	if prev == nil {
		return nil
	}
	return prev.Motor
}

// step continues a value from its previous reading with a bounded random
// walk, clamped to [lo, hi]. Without a previous reading it draws fresh from
// the base range.
func (s *Synthesizer) step(prev, lo, hi, jitter float64, hasPrev bool) float64 {
	if !hasPrev {
		return lo + s.rng.Float64()*(hi-lo)
	}
	v := prev + (s.rng.Float64()*2-1)*jitter
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

func (s *Synthesizer) battery(vehicleID string, prev *model.BatterySample) *model.BatterySample {
	has := prev != nil
	get := func(sel func(*model.BatterySample) float64) float64 {
		if !has {
			return 0
		}
		return sel(prev)
	}

	b := &model.BatterySample{
		SoC:                  s.step(get(func(p *model.BatterySample) float64 { return p.SoC }), 40, 80, 0.5, has),
		StackVoltage:         s.step(get(func(p *model.BatterySample) float64 { return p.StackVoltage }), 600, 700, 2, has),
		MaxCellVoltage:       s.step(get(func(p *model.BatterySample) float64 { return p.MaxCellVoltage }), 4.0, 4.2, 0.02, has),
		AvgCellVoltage:       s.step(get(func(p *model.BatterySample) float64 { return p.AvgCellVoltage }), 3.9, 4.1, 0.02, has),
		MinCellVoltage:       s.step(get(func(p *model.BatterySample) float64 { return p.MinCellVoltage }), 3.8, 4.0, 0.02, has),
		MaxTemp:              s.step(get(func(p *model.BatterySample) float64 { return p.MaxTemp }), 33, 38, 0.3, has),
		AvgTemp:              s.step(get(func(p *model.BatterySample) float64 { return p.AvgTemp }), 30, 35, 0.3, has),
		MinTemp:              s.step(get(func(p *model.BatterySample) float64 { return p.MinTemp }), 28, 32, 0.3, has),
		Current:              s.step(get(func(p *model.BatterySample) float64 { return p.Current }), 5, 20, 1, has),
		ChargerCurrentDemand: s.step(get(func(p *model.BatterySample) float64 { return p.ChargerCurrentDemand }), 5, 12, 0.5, has),
		ChargerVoltageDemand: s.step(get(func(p *model.BatterySample) float64 { return p.ChargerVoltageDemand }), 580, 620, 2, has),
		Status:               "active",
	}

	// Module layout is a function of the vehicle profile so repeated ticks
	// for the same vehicle keep a stable shape.
	profile, _ := s.profiles.Lookup(vehicleID)
	modules := 3
	if profile.BatteryKWh >= 70 {
		modules = 4
	}
	for m := 0; m < modules; m++ {
		mod := model.BatteryModule{CellAvg: 3.95 + s.rng.Float64()*0.1}
		for r := 0; r < 3; r++ {
			mod.Temps = append(mod.Temps, round1(30+s.rng.Float64()*4))
		}
		b.Modules = append(b.Modules, mod)
	}
	return b
}

func (s *Synthesizer) motor(prev *model.MotorSample) *model.MotorSample {
	has := prev != nil
	get := func(sel func(*model.MotorSample) float64) float64 {
		if !has {
			return 0
		}
		return sel(prev)
	}

	direction := "Forward"
	if !has && s.rng.Float64() > 0.5 {
		direction = "Reverse"
	} else if has {
		direction = prev.RotationDirection
	}

	faultStatus := "Normal"
	if s.rng.Float64() > 0.8 {
		faultStatus = "Warning"
	}

	return &model.MotorSample{
		TorqueLimit:       s.step(get(func(p *model.MotorSample) float64 { return p.TorqueLimit }), 200, 250, 5, has),
		TorqueValue:       s.step(get(func(p *model.MotorSample) float64 { return p.TorqueValue }), 150, 180, 5, has),
		Speed:             s.step(get(func(p *model.MotorSample) float64 { return p.Speed }), 3000, 3500, 50, has),
		RotationDirection: direction,
		OperationMode:     "Drive",
		MCUEnable:         "Enabled",
		MCUDrivePermit:    "Permitted",
		MCUOffPermit:      "Permitted",
		TotalFaultStatus:  faultStatus,
		ACCurrent:         s.step(get(func(p *model.MotorSample) float64 { return p.ACCurrent }), 100, 120, 3, has),
		ACVoltage:         s.step(get(func(p *model.MotorSample) float64 { return p.ACVoltage }), 400, 450, 5, has),
		DCVoltage:         s.step(get(func(p *model.MotorSample) float64 { return p.DCVoltage }), 48, 53, 1, has),
		MotorTemp:         s.step(get(func(p *model.MotorSample) float64 { return p.MotorTemp }), 60, 70, 1, has),
		MCUTemp:           s.step(get(func(p *model.MotorSample) float64 { return p.MCUTemp }), 50, 58, 1, has),
		RadiatorTemp:      s.step(get(func(p *model.MotorSample) float64 { return p.RadiatorTemp }), 45, 50, 1, has),
	}
}

// fault draws a sample with weighted severity: roughly 80% Normal,
// 12% Warning, 8% Critical.
func (s *Synthesizer) fault() *model.FaultSample {
	severity := model.SeverityNormal
	switch v := s.rng.Float64(); {
	case v >= 0.92:
		severity = model.SeverityCritical
	case v >= 0.80:
		severity = model.SeverityWarning
	}

	idx := s.rng.Intn(len(FaultCatalog))
	status := "Inactive"
	if severity != model.SeverityNormal {
		status = "Active"
	}
	return &model.FaultSample{
		Code:        fmt.Sprintf("F%03d", 100+idx),
		Description: FaultCatalog[idx],
		Severity:    severity,
		Status:      status,
	}
}
