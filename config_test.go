package ina260

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_MasksAreDisjoint(t *testing.T) {
	masks := []uint16{operatingModeMask, shuntConvMask, busConvMask, averagingMask}
	var union uint16
	for i, m := range masks {
		for j, n := range masks {
			if i != j {
				assert.Zero(t, m&n, "masks %#x and %#x overlap", m, n)
			}
		}
		union |= m
	}
	// the four fields fill bits 0-11
	assert.Equal(t, uint16(0x0FFF), union)
}

func TestConfig_ValuesStayInsideField(t *testing.T) {
	for _, m := range averagingModes {
		assert.Zero(t, m.Bits()&^averagingMask, "averaging %s escapes its field", m)
	}
	for _, c := range shuntConvTimes {
		assert.Zero(t, c.Bits()&^shuntConvMask, "shunt time %s escapes its field", c)
	}
	for _, c := range busConvTimes {
		assert.Zero(t, c.Bits()&^busConvMask, "bus time %s escapes its field", c)
	}
	for _, m := range operatingModes {
		assert.Zero(t, m.Bits()&^operatingModeMask, "mode %s escapes its field", m)
	}
}

func TestConfig_MergePreservesOtherFields(t *testing.T) {
	type update struct {
		mask uint16
		bits []uint16
	}
	updates := []update{
		{operatingModeMask, nil},
		{shuntConvMask, nil},
		{busConvMask, nil},
		{averagingMask, nil},
	}
	for _, m := range operatingModes {
		updates[0].bits = append(updates[0].bits, m.Bits())
	}
	for _, c := range shuntConvTimes {
		updates[1].bits = append(updates[1].bits, c.Bits())
	}
	for _, c := range busConvTimes {
		updates[2].bits = append(updates[2].bits, c.Bits())
	}
	for _, m := range averagingModes {
		updates[3].bits = append(updates[3].bits, m.Bits())
	}

	words := []uint16{0x0000, 0x0127, 0x0FFF, 0x0A55}
	for _, word := range words {
		for i, u := range updates {
			for _, bits := range u.bits {
				merged := mergeConfig(word, u.mask, bits)
				assert.Equal(t, bits, merged&u.mask)
				for j, other := range updates {
					if i == j {
						continue
					}
					assert.Equal(t, word&other.mask, merged&other.mask,
						"update of field %#x changed field %#x in %#04x", u.mask, other.mask, word)
				}
			}
		}
	}
}

func TestConfig_DefaultWord(t *testing.T) {
	// continuous current+voltage, no averaging, 1.1 ms on both channels
	assert.Equal(t, uint16(0x0127), defaultConfig())
}

func TestConfig_Decode(t *testing.T) {
	tests := []struct {
		word     uint16
		expected ConfigSnapshot
	}{
		{0x0127, ConfigSnapshot{
			Raw:           "0x0127",
			OperatingMode: "current+voltage continuous",
			ShuntConvTime: "1.100 ms",
			BusConvTime:   "1.100 ms",
			Averaging:     "1 samples",
		}},
		{0x0000, ConfigSnapshot{
			Raw:           "0x0000",
			OperatingMode: "shutdown",
			ShuntConvTime: "140 us",
			BusConvTime:   "140 us",
			Averaging:     "1 samples",
		}},
		{0x0E5E, ConfigSnapshot{
			Raw:           "0x0e5e",
			OperatingMode: "voltage continuous",
			ShuntConvTime: "588 us",
			BusConvTime:   "204 us",
			Averaging:     "1024 samples",
		}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("0x%04x", test.word), func(t *testing.T) {
			assert.Equal(t, test.expected, DecodeConfig(test.word))
			assert.Equal(t, fmt.Sprintf("0x%04x", test.word), DecodeConfig(test.word).Raw)
		})
	}
}

func TestConfig_Lookups(t *testing.T) {
	m, err := AveragingModeFromSamples(64)
	assert.NoError(t, err)
	assert.Equal(t, Avg64, m)
	_, err = AveragingModeFromSamples(2)
	assert.Error(t, err)

	s, err := ShuntConvTimeFromMicros(2116)
	assert.NoError(t, err)
	assert.Equal(t, ShuntConvTime2116us, s)
	_, err = ShuntConvTimeFromMicros(1000)
	assert.Error(t, err)

	b, err := BusConvTimeFromMicros(8244)
	assert.NoError(t, err)
	assert.Equal(t, BusConvTime8244us, b)

	o, err := OperatingModeFromName("shutdown")
	assert.NoError(t, err)
	assert.Equal(t, ModeShutdown, o)
	_, err = OperatingModeFromName("turbo")
	assert.Error(t, err)
}
