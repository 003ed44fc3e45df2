package model

import "time"

// Domain identifies the telemetry stream a sample belongs to.
type Domain string

const (
	DomainBattery Domain = "battery"
	DomainMotor   Domain = "motor"
	DomainFault   Domain = "fault"
)

// Valid reports whether d names a known telemetry domain.
func (d Domain) Valid() bool {
	switch d {
	case DomainBattery, DomainMotor, DomainFault:
		return true
	}
	return false
}

// BatteryModule holds per-module pack readings.
type BatteryModule struct {
	Temps   []float64 `json:"temps"`
	CellAvg float64   `json:"cell_avg"`
}

// BatterySample is one battery-domain snapshot.
type BatterySample struct {
	SoC                  float64         `json:"soc"`
	StackVoltage         float64         `json:"stack_voltage"`
	MaxCellVoltage       float64         `json:"max_cell_voltage"`
	AvgCellVoltage       float64         `json:"avg_cell_voltage"`
	MinCellVoltage       float64         `json:"min_cell_voltage"`
	MaxTemp              float64         `json:"max_temp"`
	AvgTemp              float64         `json:"avg_temp"`
	MinTemp              float64         `json:"min_temp"`
	Current              float64         `json:"current"`
	ChargerCurrentDemand float64         `json:"charger_current_demand"`
	ChargerVoltageDemand float64         `json:"charger_voltage_demand"`
	Status               string          `json:"status"`
	Modules              []BatteryModule `json:"modules"`
}

// MotorSample is one motor-domain snapshot.
type MotorSample struct {
	TorqueLimit       float64 `json:"torque_limit"`
	TorqueValue       float64 `json:"torque_value"`
	Speed             float64 `json:"speed"`
	RotationDirection string  `json:"rotation_direction"`
	OperationMode     string  `json:"operation_mode"`
	MCUEnable         string  `json:"mcu_enable"`
	MCUDrivePermit    string  `json:"mcu_drive_permit"`
	MCUOffPermit      string  `json:"mcu_off_permit"`
	TotalFaultStatus  string  `json:"total_fault_status"`
	ACCurrent         float64 `json:"ac_current"`
	ACVoltage         float64 `json:"ac_voltage"`
	DCVoltage         float64 `json:"dc_voltage"`
	MotorTemp         float64 `json:"motor_temp"`
	MCUTemp           float64 `json:"mcu_temp"`
	RadiatorTemp      float64 `json:"radiator_temp"`
}

// FaultSeverity categorises a fault sample.
type FaultSeverity string

const (
	SeverityNormal   FaultSeverity = "Normal"
	SeverityWarning  FaultSeverity = "Warning"
	SeverityCritical FaultSeverity = "Critical"
)

// FaultSample is one fault-domain snapshot.
type FaultSample struct {
	Code        string        `json:"code"`
	Description string        `json:"description"`
	Severity    FaultSeverity `json:"severity"`
	Status      string        `json:"status"`
}

// TelemetrySample is a snapshot for one vehicle and domain. Exactly one of
// Battery, Motor or Fault is populated, matching Domain. Samples are
// ephemeral: generated or received per tick and retained only in the bounded
// trailing history.
type TelemetrySample struct {
	VehicleID string         `json:"vehicle_id"`
	Domain    Domain         `json:"domain"`
	Timestamp time.Time      `json:"timestamp"`
	Battery   *BatterySample `json:"battery,omitempty"`
	Motor     *MotorSample   `json:"motor,omitempty"`
	Fault     *FaultSample   `json:"fault,omitempty"`
}
