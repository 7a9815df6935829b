package ina260

import (
	"context"
	"encoding/binary"
	"fmt"
)

// DefaultAddress is the INA260 7-bit I2C address with A0/A1 tied to GND.
const DefaultAddress byte = 0x40

// INA260 represents a TI INA260 power monitor (current, bus voltage, power)
// on an I2C bus.
//
// Typical usage:
//
//	dev, err := ina260.New(ctx, bus)
//	uA, err := dev.Current(ctx)
//
// The driver keeps a shadow copy of the configuration register so field
// updates are computed locally instead of re-reading the chip. The shadow
// only advances after a successful write, so a failed setter leaves the
// device in its last known good state and can simply be retried.
//
// An INA260 is not safe for concurrent use; callers running it from several
// goroutines must serialize access themselves.
type INA260 struct {
	transport I2CBus
	address   byte
	state     uint16
}

func defaultConfig() uint16 {
	return ModeCurrentVoltageContinuous.Bits() |
		Avg1.Bits() |
		ShuntConvTime1100us.Bits() |
		BusConvTime1100us.Bits()
}

// New connects to an INA260 at the default address and resets it to its
// power-on configuration.
func New(ctx context.Context, bus I2CBus) (*INA260, error) {
	return NewWithAddress(ctx, bus, DefaultAddress)
}

// NewWithAddress connects to an INA260 at the given 7-bit address and resets
// it. The reset write must succeed before a device is returned; on failure
// no device is produced.
func NewWithAddress(ctx context.Context, bus I2CBus, address byte) (*INA260, error) {
	dev := &INA260{
		transport: bus,
		address:   address,
		state:     defaultConfig(),
	}
	if err := dev.writeRegister(ctx, regConfig, configReset); err != nil {
		return nil, fmt.Errorf("ina260: reset failed: %w", err)
	}
	return dev, nil
}

// Address returns the device's 7-bit bus address.
func (d *INA260) Address() byte {
	return d.address
}

// Config returns the shadow configuration word, the value last successfully
// written to the configuration register.
func (d *INA260) Config() uint16 {
	return d.state
}

// Snapshot returns the shadow configuration decoded into its fields.
func (d *INA260) Snapshot() ConfigSnapshot {
	return DecodeConfig(d.state)
}

// SetAveragingMode changes the number of samples averaged per conversion.
func (d *INA260) SetAveragingMode(ctx context.Context, a AveragingMode) error {
	return d.updateConfig(ctx, averagingMask, a.Bits())
}

// SetOperatingMode changes the conversion mode. After switching to a
// triggered mode, each new sample requires setting the mode again.
func (d *INA260) SetOperatingMode(ctx context.Context, m OperatingMode) error {
	return d.updateConfig(ctx, operatingModeMask, m.Bits())
}

// SetShuntConvTime changes the shunt-current channel conversion time.
func (d *INA260) SetShuntConvTime(ctx context.Context, t ConvTime) error {
	return d.updateConfig(ctx, shuntConvMask, t.Bits())
}

// SetBusConvTime changes the bus-voltage channel conversion time.
func (d *INA260) SetBusConvTime(ctx context.Context, t ConvTime) error {
	return d.updateConfig(ctx, busConvMask, t.Bits())
}

func (d *INA260) updateConfig(ctx context.Context, mask, bits uint16) error {
	next := mergeConfig(d.state, mask, bits)
	if err := d.writeRegister(ctx, regConfig, next); err != nil {
		return fmt.Errorf("ina260: configuration write failed: %w", err)
	}
	d.state = next
	return nil
}

// DieID returns the chip's die identification number and revision.
func (d *INA260) DieID(ctx context.Context) (id, revision uint16, err error) {
	word, err := d.readRegister(ctx, regDieID)
	if err != nil {
		return 0, 0, err
	}
	return word >> 4, word & 0xF, nil
}

// ManufacturerID returns the manufacturer identification register, 0x5449
// ("TI") on a genuine part.
func (d *INA260) ManufacturerID(ctx context.Context) (uint16, error) {
	return d.readRegister(ctx, regManufacturerID)
}

// Connected reports whether the die identification register answers with the
// INA260 signature.
func (d *INA260) Connected(ctx context.Context) bool {
	word, err := d.readRegister(ctx, regDieID)
	return err == nil && word == dieIDWord
}

// CurrentRaw returns the current register count, 1.25 mA per bit, signed.
func (d *INA260) CurrentRaw(ctx context.Context) (int16, error) {
	word, err := d.readRegister(ctx, regCurrent)
	if err != nil {
		return 0, err
	}
	return int16(word), nil
}

// Current returns the measured current in microamps.
func (d *INA260) Current(ctx context.Context) (int32, error) {
	raw, err := d.CurrentRaw(ctx)
	if err != nil {
		return 0, err
	}
	return scaleCurrent(raw), nil
}

// CurrentSplit returns the measured current as whole amps plus a remainder
// in 10 µA steps. The sign is carried by the whole part; see splitSigned for
// the sub-ampere boundary behavior.
func (d *INA260) CurrentSplit(ctx context.Context) (int8, uint32, error) {
	raw, err := d.CurrentRaw(ctx)
	if err != nil {
		return 0, 0, err
	}
	whole, rest := splitSigned(int32(raw), ampereCounts, currentRemainderScale)
	return whole, rest, nil
}

// VoltageRaw returns the bus voltage register count, 1.25 mV per bit.
func (d *INA260) VoltageRaw(ctx context.Context) (uint16, error) {
	return d.readRegister(ctx, regVoltage)
}

// Voltage returns the measured bus voltage in microvolts.
func (d *INA260) Voltage(ctx context.Context) (uint32, error) {
	raw, err := d.VoltageRaw(ctx)
	if err != nil {
		return 0, err
	}
	return scaleVoltage(raw), nil
}

// VoltageSplit returns the measured voltage as whole volts plus a remainder
// in 10 µV steps.
func (d *INA260) VoltageSplit(ctx context.Context) (uint8, uint32, error) {
	raw, err := d.VoltageRaw(ctx)
	if err != nil {
		return 0, 0, err
	}
	whole, rest := splitUnsigned(uint32(raw), voltCounts, voltageRemainderScale)
	return whole, rest, nil
}

// PowerRaw returns the power register count, 10 mW per bit.
func (d *INA260) PowerRaw(ctx context.Context) (uint16, error) {
	return d.readRegister(ctx, regPower)
}

// Power returns the measured power in milliwatts.
func (d *INA260) Power(ctx context.Context) (uint32, error) {
	raw, err := d.PowerRaw(ctx)
	if err != nil {
		return 0, err
	}
	return scalePower(raw), nil
}

// PowerSplit returns the measured power as whole watts plus a remainder in
// 10 µW steps. The whole part wraps above 255 W (raw counts past 25500);
// use Power for the full range.
func (d *INA260) PowerSplit(ctx context.Context) (uint8, uint32, error) {
	raw, err := d.PowerRaw(ctx)
	if err != nil {
		return 0, 0, err
	}
	whole, rest := splitUnsigned(uint32(raw), wattCounts, powerRemainderScale)
	return whole, rest, nil
}

// writeRegister sends one register write transaction: the register address
// followed by the 16-bit value, most significant byte first.
func (d *INA260) writeRegister(ctx context.Context, reg byte, value uint16) error {
	var out [3]byte
	out[0] = reg
	binary.BigEndian.PutUint16(out[1:], value)
	return d.transport.WriteToAddr(ctx, d.address, out[:])
}

// readRegister selects a register and reads its 16-bit big-endian content.
func (d *INA260) readRegister(ctx context.Context, reg byte) (uint16, error) {
	if err := d.transport.WriteToAddr(ctx, d.address, []byte{reg}); err != nil {
		return 0, fmt.Errorf("ina260: could not select register %#02x: %w", reg, err)
	}
	buf := make([]byte, 2)
	if err := d.transport.ReadFromAddr(ctx, d.address, buf); err != nil {
		return 0, fmt.Errorf("ina260: could not read register %#02x: %w", reg, err)
	}
	return binary.BigEndian.Uint16(buf), nil
}
