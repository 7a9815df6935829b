package ina260

import (
	"context"
)

// CurrentBehaviorFunc defines the function signature for current behavior.
// It returns the current in microamps or an error.
type CurrentBehaviorFunc func(ctx context.Context) (int32, error)

// VoltageBehaviorFunc defines the function signature for voltage behavior.
// It returns the bus voltage in microvolts or an error.
type VoltageBehaviorFunc func(ctx context.Context) (uint32, error)

// PowerBehaviorFunc defines the function signature for power behavior.
// It returns the power in milliwatts or an error.
type PowerBehaviorFunc func(ctx context.Context) (uint32, error)

// MockPowerMonitor is a mock power monitor that uses behavior functions to
// produce results without requiring any hardware. Code written against the
// driver's measurement surface can swap it in during tests.
type MockPowerMonitor struct {
	currentBehavior CurrentBehaviorFunc
	voltageBehavior VoltageBehaviorFunc
	powerBehavior   PowerBehaviorFunc
}

// NewMockPowerMonitor creates a mock power monitor with the given behavior
// functions.
//
// Example usage:
//
//	mon := NewMockPowerMonitor(
//		func(ctx context.Context) (int32, error) { return 1_250_000, nil },
//		func(ctx context.Context) (uint32, error) { return 5_000_000, nil },
//		func(ctx context.Context) (uint32, error) { return 6250, nil },
//	)
func NewMockPowerMonitor(current CurrentBehaviorFunc, voltage VoltageBehaviorFunc, power PowerBehaviorFunc) *MockPowerMonitor {
	return &MockPowerMonitor{
		currentBehavior: current,
		voltageBehavior: voltage,
		powerBehavior:   power,
	}
}

// Current returns the current in microamps by calling the current behavior.
func (m *MockPowerMonitor) Current(ctx context.Context) (int32, error) {
	return m.currentBehavior(ctx)
}

// Voltage returns the voltage in microvolts by calling the voltage behavior.
func (m *MockPowerMonitor) Voltage(ctx context.Context) (uint32, error) {
	return m.voltageBehavior(ctx)
}

// Power returns the power in milliwatts by calling the power behavior.
func (m *MockPowerMonitor) Power(ctx context.Context) (uint32, error) {
	return m.powerBehavior(ctx)
}
