package llcc68

const (
	// 32MHz crystal oscillator.
	fXTAL = 32_000_000
	// The PLL step is fXTAL / 2^25 Hz.
	freqStepShift = 25

	// LLCC68 operating frequency range.
	minFrequency = 150_000_000
	maxFrequency = 960_000_000

	maxPayload = 255
	// Largest value of a 24 bit timeout field.
	max24 = 0x00FF_FFFF

	busySamples = 8
	busyPollMs  = 1
	irqPollMs   = 1

	defaultIRQPolls  = 200
	defaultTxTimeout = 6400 // 100ms.
	defaultTCXODelay = 0x64
)

// Special values of the 24 bit TX/RX timeout, counted in 15.625µs ticks.
const (
	// TimeoutDisabled keeps the radio in TX until the packet is sent, or RX
	// until a packet is received (single mode).
	TimeoutDisabled uint32 = 0
	// RxContinuous keeps the radio in RX after each received packet.
	RxContinuous uint32 = max24
)

// LoRa sync word register, MSB at 0x0740 and LSB at 0x0741.
const regLoRaSyncWord = 0x0740

// PacketType selects the modem. Only LoRa is implemented.
type PacketType uint8

const (
	PacketTypeGFSK PacketType = 0
	PacketTypeLoRa PacketType = 1
)

func (pt PacketType) String() string {
	switch pt {
	case PacketTypeGFSK:
		return "gfsk"
	case PacketTypeLoRa:
		return "lora"
	default:
		return "unknown"
	}
}

// StandbyMode selects the oscillator running in standby.
type StandbyMode uint8

const (
	// StandbyRC runs the 13MHz RC oscillator.
	StandbyRC StandbyMode = 0
	// StandbyXOSC runs the 32MHz crystal oscillator.
	StandbyXOSC StandbyMode = 1
)

// RegulatorMode selects the power regulator.
type RegulatorMode uint8

const (
	RegulatorLDO  RegulatorMode = 0
	RegulatorDCDC RegulatorMode = 1 // DC-DC+LDO.
)

// TCXOVoltage is the supply voltage DIO3 outputs to an external TCXO.
type TCXOVoltage uint8

const (
	TCXO1_6V TCXOVoltage = iota
	TCXO1_7V
	TCXO1_8V
	TCXO2_2V
	TCXO2_4V
	TCXO2_7V
	TCXO3_0V
	TCXO3_3V
)

// RampTime is the power amplifier ramp up/down duration.
type RampTime uint8

const (
	Ramp10us RampTime = iota
	Ramp20us
	Ramp40us
	Ramp80us
	Ramp200us
	Ramp800us
	Ramp1700us
	Ramp3400us
)

// FallbackMode is the mode the radio enters after a successful TX or RX.
type FallbackMode uint8

const (
	FallbackFS          FallbackMode = 0x40
	FallbackStandbyXOSC FallbackMode = 0x30
	FallbackStandbyRC   FallbackMode = 0x20
)

// LoRa bandwidth codes of SetModulationParams.
const (
	bw125 uint8 = 0x04
	bw250 uint8 = 0x05
	bw500 uint8 = 0x06
)

// Recommended power amplifier settings (DutyCycle, HPMax) for the given
// maximum output powers, datasheet table 13-21.
var (
	PA22dBm = PAConfig{DutyCycle: 0x04, HPMax: 0x07}
	PA20dBm = PAConfig{DutyCycle: 0x03, HPMax: 0x05}
	PA17dBm = PAConfig{DutyCycle: 0x02, HPMax: 0x03}
	PA14dBm = PAConfig{DutyCycle: 0x02, HPMax: 0x02}
)

const (
	// LoRa sync words in their register (two byte) form.
	SyncWordPublic  uint16 = 0x3444
	SyncWordPrivate uint16 = 0x1424
)
