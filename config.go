package ina260

import "fmt"

// Configuration register layout: four disjoint fields inside bits 0-11.
// Field values below carry their bit patterns pre-shifted into position, so
// merging is a plain mask-and-or against the current word.
const (
	operatingModeMask uint16 = 0x0007
	shuntConvMask     uint16 = 0x0038
	busConvMask       uint16 = 0x01C0
	averagingMask     uint16 = 0x0E00
)

func mergeConfig(word, mask, bits uint16) uint16 {
	return (word &^ mask) | bits
}

// AveragingMode selects how many samples are collected and averaged per
// conversion (bits 9-11).
type AveragingMode struct {
	bits    uint16
	samples int
}

func (a AveragingMode) Bits() uint16 { return a.bits }

func (a AveragingMode) Samples() int { return a.samples }

func (a AveragingMode) String() string {
	return fmt.Sprintf("%d samples", a.samples)
}

var (
	Avg1    = AveragingMode{0x0000, 1}
	Avg4    = AveragingMode{0x0200, 4}
	Avg16   = AveragingMode{0x0400, 16}
	Avg64   = AveragingMode{0x0600, 64}
	Avg128  = AveragingMode{0x0800, 128}
	Avg256  = AveragingMode{0x0A00, 256}
	Avg512  = AveragingMode{0x0C00, 512}
	Avg1024 = AveragingMode{0x0E00, 1024}
)

var averagingModes = []AveragingMode{Avg1, Avg4, Avg16, Avg64, Avg128, Avg256, Avg512, Avg1024}

// AveragingModeFromSamples maps a sample count (1, 4, 16, ... 1024) to its
// averaging mode.
func AveragingModeFromSamples(samples int) (AveragingMode, error) {
	for _, m := range averagingModes {
		if m.samples == samples {
			return m, nil
		}
	}
	return AveragingMode{}, fmt.Errorf("unsupported sample count: %d", samples)
}

// ConvTime is one of the eight ADC conversion durations the chip supports.
// Shunt-current and bus-voltage channels use the same ladder but occupy
// different bit ranges, hence the two sets below.
type ConvTime struct {
	bits   uint16
	micros int
}

func (t ConvTime) Bits() uint16 { return t.bits }

func (t ConvTime) Micros() int { return t.micros }

func (t ConvTime) String() string {
	if t.micros >= 1000 {
		return fmt.Sprintf("%d.%03d ms", t.micros/1000, t.micros%1000)
	}
	return fmt.Sprintf("%d us", t.micros)
}

// Shunt-current conversion times (bits 3-5).
var (
	ShuntConvTime140us  = ConvTime{0x0000, 140}
	ShuntConvTime204us  = ConvTime{0x0008, 204}
	ShuntConvTime332us  = ConvTime{0x0010, 332}
	ShuntConvTime588us  = ConvTime{0x0018, 588}
	ShuntConvTime1100us = ConvTime{0x0020, 1100}
	ShuntConvTime2116us = ConvTime{0x0028, 2116}
	ShuntConvTime4156us = ConvTime{0x0030, 4156}
	ShuntConvTime8244us = ConvTime{0x0038, 8244}
)

// Bus-voltage conversion times (bits 6-8).
var (
	BusConvTime140us  = ConvTime{0x0000, 140}
	BusConvTime204us  = ConvTime{0x0040, 204}
	BusConvTime332us  = ConvTime{0x0080, 332}
	BusConvTime588us  = ConvTime{0x00C0, 588}
	BusConvTime1100us = ConvTime{0x0100, 1100}
	BusConvTime2116us = ConvTime{0x0140, 2116}
	BusConvTime4156us = ConvTime{0x0180, 4156}
	BusConvTime8244us = ConvTime{0x01C0, 8244}
)

var (
	shuntConvTimes = []ConvTime{
		ShuntConvTime140us, ShuntConvTime204us, ShuntConvTime332us, ShuntConvTime588us,
		ShuntConvTime1100us, ShuntConvTime2116us, ShuntConvTime4156us, ShuntConvTime8244us,
	}
	busConvTimes = []ConvTime{
		BusConvTime140us, BusConvTime204us, BusConvTime332us, BusConvTime588us,
		BusConvTime1100us, BusConvTime2116us, BusConvTime4156us, BusConvTime8244us,
	}
)

// ShuntConvTimeFromMicros maps a duration in microseconds to the shunt
// channel conversion time setting.
func ShuntConvTimeFromMicros(micros int) (ConvTime, error) {
	for _, t := range shuntConvTimes {
		if t.micros == micros {
			return t, nil
		}
	}
	return ConvTime{}, fmt.Errorf("unsupported conversion time: %d us", micros)
}

// BusConvTimeFromMicros maps a duration in microseconds to the bus channel
// conversion time setting.
func BusConvTimeFromMicros(micros int) (ConvTime, error) {
	for _, t := range busConvTimes {
		if t.micros == micros {
			return t, nil
		}
	}
	return ConvTime{}, fmt.Errorf("unsupported conversion time: %d us", micros)
}

// OperatingMode selects continuous, triggered or shutdown operation and
// which channels take part in a conversion (bits 0-2).
type OperatingMode struct {
	bits uint16
	name string
}

func (m OperatingMode) Bits() uint16 { return m.bits }

func (m OperatingMode) String() string { return m.name }

var (
	ModeShutdown                 = OperatingMode{0x0000, "shutdown"}
	ModeCurrentTriggered         = OperatingMode{0x0001, "current triggered"}
	ModeVoltageTriggered         = OperatingMode{0x0002, "voltage triggered"}
	ModeCurrentVoltageTriggered  = OperatingMode{0x0003, "current+voltage triggered"}
	ModeCurrentContinuous        = OperatingMode{0x0005, "current continuous"}
	ModeVoltageContinuous        = OperatingMode{0x0006, "voltage continuous"}
	ModeCurrentVoltageContinuous = OperatingMode{0x0007, "current+voltage continuous"}
)

var operatingModes = []OperatingMode{
	ModeShutdown, ModeCurrentTriggered, ModeVoltageTriggered, ModeCurrentVoltageTriggered,
	ModeCurrentContinuous, ModeVoltageContinuous, ModeCurrentVoltageContinuous,
}

// OperatingModeFromName maps a mode name as printed by String() to its
// operating mode.
func OperatingModeFromName(name string) (OperatingMode, error) {
	for _, m := range operatingModes {
		if m.name == name {
			return m, nil
		}
	}
	return OperatingMode{}, fmt.Errorf("unknown operating mode: %q", name)
}

// ConfigSnapshot is a decoded configuration word, mostly for display.
type ConfigSnapshot struct {
	Raw           string `yaml:"raw"`
	OperatingMode string `yaml:"operating_mode"`
	ShuntConvTime string `yaml:"shunt_conversion_time"`
	BusConvTime   string `yaml:"bus_conversion_time"`
	Averaging     string `yaml:"averaging"`
}

// DecodeConfig splits a configuration word into its four fields.
func DecodeConfig(word uint16) ConfigSnapshot {
	snap := ConfigSnapshot{Raw: fmt.Sprintf("0x%04x", word)}
	for _, m := range operatingModes {
		if word&operatingModeMask == m.bits {
			snap.OperatingMode = m.String()
		}
	}
	// triggered/continuous encodings leave a hole at bit pattern 100b which
	// the chip treats as shutdown
	if snap.OperatingMode == "" {
		snap.OperatingMode = ModeShutdown.String()
	}
	for _, t := range shuntConvTimes {
		if word&shuntConvMask == t.bits {
			snap.ShuntConvTime = t.String()
		}
	}
	for _, t := range busConvTimes {
		if word&busConvMask == t.bits {
			snap.BusConvTime = t.String()
		}
	}
	for _, m := range averagingModes {
		if word&averagingMask == m.bits {
			snap.Averaging = m.String()
		}
	}
	return snap
}
