package ina260

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaling(t *testing.T) {
	assert.Equal(t, int32(1250), scaleCurrent(1))
	assert.Equal(t, int32(-1250), scaleCurrent(-1))
	assert.Equal(t, int32(-40_960_000), scaleCurrent(-32768))
	assert.Equal(t, uint32(1_000_000), scaleVoltage(800))
	assert.Equal(t, uint32(81_918_750), scaleVoltage(65535))
	assert.Equal(t, uint32(1000), scalePower(100))
	assert.Equal(t, uint32(655_350), scalePower(65535))
}

func TestSplitSigned(t *testing.T) {
	tests := []struct {
		raw   int32
		whole int8
		rest  uint32
	}{
		{0, 0, 0},
		{1, 0, 125},
		{799, 0, 99875},
		{800, 1, 0},
		{1600, 2, 0},
		{2000, 2, 50000},
		// sub-unit negative readings lose their sign: the whole part is the
		// only signed component and it is zero here
		{-1, 0, 125},
		{-500, 0, 62500},
		{-799, 0, 99875},
		{-800, -1, 0},
		{-900, -1, 12500},
		{-1600, -2, 0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d", test.raw), func(t *testing.T) {
			whole, rest := splitSigned(test.raw, ampereCounts, currentRemainderScale)
			assert.Equal(t, test.whole, whole)
			assert.Equal(t, test.rest, rest)
		})
	}
}

func TestSplitUnsigned(t *testing.T) {
	tests := []struct {
		raw    uint32
		counts uint32
		scale  uint32
		whole  uint8
		rest   uint32
	}{
		{0, voltCounts, voltageRemainderScale, 0, 0},
		{800, voltCounts, voltageRemainderScale, 1, 0},
		{801, voltCounts, voltageRemainderScale, 1, 125},
		{2449, voltCounts, voltageRemainderScale, 3, 6125},
		{100, wattCounts, powerRemainderScale, 1, 0},
		{99, wattCounts, powerRemainderScale, 0, 99000},
		{250, wattCounts, powerRemainderScale, 2, 50000},
		// the whole part is a uint8 and wraps past 255 units; the remainder
		// stays exact
		{25500, wattCounts, powerRemainderScale, 255, 0},
		{25600, wattCounts, powerRemainderScale, 0, 0},
		{65535, wattCounts, powerRemainderScale, 143, 35000},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d_%d", test.raw, test.counts), func(t *testing.T) {
			whole, rest := splitUnsigned(test.raw, test.counts, test.scale)
			assert.Equal(t, test.whole, whole)
			assert.Equal(t, test.rest, rest)
		})
	}
}

// Recombining whole and remainder must reproduce the scaled raw value
// exactly for every non-negative count.
func TestSplitRecombines(t *testing.T) {
	for raw := int32(0); raw <= 4000; raw++ {
		whole, rest := splitSigned(raw, ampereCounts, currentRemainderScale)
		recombined := int32(whole)*ampereCounts*currentRemainderScale + int32(rest)
		assert.Equal(t, raw*currentRemainderScale, recombined, "raw %d", raw)
	}
	for raw := uint32(0); raw <= 1000; raw++ {
		whole, rest := splitUnsigned(raw, wattCounts, powerRemainderScale)
		recombined := uint32(whole)*wattCounts*powerRemainderScale + rest
		assert.Equal(t, raw*powerRemainderScale, recombined, "raw %d", raw)
	}
}
