package ina260

// INA260 register addresses (datasheet section 8.6).
const (
	regConfig         byte = 0x00
	regCurrent        byte = 0x01
	regVoltage        byte = 0x02
	regPower          byte = 0x03
	regMaskEnable     byte = 0x06
	regAlertLimit     byte = 0x07
	regManufacturerID byte = 0xFE
	regDieID          byte = 0xFF
)

// Writing this value to the configuration register resets the chip to its
// power-on state. The bit is self-clearing and never appears in reads.
const configReset uint16 = 0x8000

// Identification register contents of a genuine INA260.
const (
	manufacturerIDTI uint16 = 0x5449 // "TI"
	dieIDWord        uint16 = 0x2270 // die id 0x227, revision 0
)
