package ina260

// Register LSB weights (datasheet section 8.6.3). Raw counts are widened to
// 32 bits before scaling so the products cannot overflow.
const (
	currentLSBMicroamps  int32  = 1250
	voltageLSBMicrovolts uint32 = 1250
	powerLSBMilliwatts   uint32 = 10
)

// Split-representation constants: how many raw counts make one whole unit,
// and the remainder weight once the whole units are taken out. 800 counts of
// 1.25 mA/mV make one ampere or volt, leaving a remainder in 10 µA/10 µV
// steps; 100 counts of 10 mW make one watt, leaving 10 µW steps.
const (
	ampereCounts          int32  = 800
	currentRemainderScale int32  = 125
	voltCounts            uint32 = 800
	voltageRemainderScale uint32 = 125
	wattCounts            uint32 = 100
	powerRemainderScale   uint32 = 1000
)

func scaleCurrent(raw int16) int32 {
	return int32(raw) * currentLSBMicroamps
}

func scaleVoltage(raw uint16) uint32 {
	return uint32(raw) * voltageLSBMicrovolts
}

func scalePower(raw uint16) uint32 {
	return uint32(raw) * powerLSBMilliwatts
}

// splitSigned decomposes a signed raw count into whole units and a scaled
// remainder magnitude. Division truncates toward zero, so the sign of the
// reading is carried by the whole part alone; a negative reading smaller
// than one whole unit comes out as (0, magnitude).
func splitSigned(raw, counts, scale int32) (int8, uint32) {
	whole := raw / counts
	rest := (raw - whole*counts) * scale
	if rest < 0 {
		rest = -rest
	}
	return int8(whole), uint32(rest)
}

// splitUnsigned decomposes an unsigned raw count into whole units and a
// scaled remainder. The whole part is truncated to uint8 and wraps past 255
// units; only the power register can reach that bound (above raw count
// 25500, i.e. 255 W), and the remainder stays exact either way.
func splitUnsigned(raw, counts, scale uint32) (uint8, uint32) {
	whole := raw / counts
	rest := (raw - whole*counts) * scale
	return uint8(whole), rest
}
