package llcc68

import (
	"time"

	"golang.org/x/exp/constraints"
)

// codec.go turns typed requests into the exact byte sequences of the LLCC68
// command interface and parses replies. Every multi-byte field is sent most
// significant byte first. The append functions here are pure and never touch the bus.

// RFCode converts a carrier frequency in Hz to the value of SetRfFrequency:
//
//	code = floor(freq / (32MHz / 2^25))
//
// Computed with integer arithmetic so the result is exact.
func RFCode(freqHz uint32) uint32 {
	return uint32((uint64(freqHz) << freqStepShift) / fXTAL)
}

// TicksFromDuration converts d to a TX/RX timeout in 15.625µs ticks, clamped
// to the 24 bit field. Note a result of 0 disables the timeout and
// 0xFFFFFF means continuous RX.
func TicksFromDuration(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	ticks := uint64(d) * 64 / uint64(time.Millisecond)
	if ticks > max24 {
		return max24
	}
	return uint32(ticks)
}

// appendBE appends the n least significant bytes of v, most significant first.
func appendBE[T constraints.Unsigned](dst []byte, v T, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

// beUint reads b as a big endian unsigned integer.
func beUint[T constraints.Unsigned](b []byte) (v T) {
	for _, c := range b {
		v = v<<8 | T(c)
	}
	return v
}

// appendTimeout24 masks timeout to 24 bits; higher bits are dropped.
func appendTimeout24(dst []byte, timeout uint32) []byte {
	return appendBE(dst, timeout&max24, 3)
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

type irqFlagPos uint8

const (
	irqPosTxDone irqFlagPos = iota
	irqPosRxDone
	irqPosPreambleDetected
	irqPosSyncWordValid
	irqPosHeaderValid
	irqPosHeaderErr
	irqPosCRCErr
	irqPosCADDone
	irqPosCADDetected
	irqPosTimeout
	irqNumFlags
)

func (pos irqFlagPos) String() (str string) {
	switch pos {
	case irqPosTxDone:
		str = "TxDone"
	case irqPosRxDone:
		str = "RxDone"
	case irqPosPreambleDetected:
		str = "PreambleDetected"
	case irqPosSyncWordValid:
		str = "SyncWordValid"
	case irqPosHeaderValid:
		str = "HeaderValid"
	case irqPosHeaderErr:
		str = "HeaderErr"
	case irqPosCRCErr:
		str = "CRCErr"
	case irqPosCADDone:
		str = "CADDone"
	case irqPosCADDetected:
		str = "CADDetected"
	case irqPosTimeout:
		str = "Timeout"
	default:
		str = "UnknownIRQ"
	}
	return str
}

// IRQFlags is the set of interrupt events of the LLCC68. It is used both as an
// enable/routing mask for SetDIOIRQParams and as the decoded interrupt status.
type IRQFlags struct {
	TxDone           bool
	RxDone           bool
	PreambleDetected bool
	SyncWordValid    bool
	HeaderValid      bool
	HeaderErr        bool
	CRCErr           bool
	CADDone          bool
	CADDetected      bool
	Timeout          bool
}

// IRQAll has every event set.
var IRQAll = IRQFlags{
	TxDone: true, RxDone: true, PreambleDetected: true, SyncWordValid: true, HeaderValid: true,
	HeaderErr: true, CRCErr: true, CADDone: true, CADDetected: true, Timeout: true,
}

func (f IRQFlags) bits() [irqNumFlags]bool {
	return [irqNumFlags]bool{
		irqPosTxDone:           f.TxDone,
		irqPosRxDone:           f.RxDone,
		irqPosPreambleDetected: f.PreambleDetected,
		irqPosSyncWordValid:    f.SyncWordValid,
		irqPosHeaderValid:      f.HeaderValid,
		irqPosHeaderErr:        f.HeaderErr,
		irqPosCRCErr:           f.CRCErr,
		irqPosCADDone:          f.CADDone,
		irqPosCADDetected:      f.CADDetected,
		irqPosTimeout:          f.Timeout,
	}
}

// Uint16 encodes the flags into the 16 bit register layout, bit 0 being TxDone.
func (f IRQFlags) Uint16() (v uint16) {
	for pos, set := range f.bits() {
		if set {
			v |= 1 << pos
		}
	}
	return v
}

// IRQFlagsFromUint16 decodes the 16 bit register layout. Bits 10 to 15 are RFU and ignored.
func IRQFlagsFromUint16(v uint16) IRQFlags {
	has := func(pos irqFlagPos) bool { return v&(1<<pos) != 0 }
	return IRQFlags{
		TxDone:           has(irqPosTxDone),
		RxDone:           has(irqPosRxDone),
		PreambleDetected: has(irqPosPreambleDetected),
		SyncWordValid:    has(irqPosSyncWordValid),
		HeaderValid:      has(irqPosHeaderValid),
		HeaderErr:        has(irqPosHeaderErr),
		CRCErr:           has(irqPosCRCErr),
		CADDone:          has(irqPosCADDone),
		CADDetected:      has(irqPosCADDetected),
		Timeout:          has(irqPosTimeout),
	}
}

// Any reports whether at least one flag is set.
func (f IRQFlags) Any() bool { return f.Uint16() != 0 }

func (f IRQFlags) String() string {
	str := "["
	for pos, set := range f.bits() {
		if !set {
			continue
		}
		if len(str) > 1 {
			str += ","
		}
		str += irqFlagPos(pos).String()
	}
	return str + "]"
}

// SleepConfig is the parameter of SetSleep.
type SleepConfig struct {
	// WarmStart retains the configuration while asleep. A cold start loses it.
	WarmStart bool
	// RTCWakeup wakes the device when the RTC timeout elapses.
	RTCWakeup bool
}

// Byte packs the configuration: bit 2 start type, bit 1 reserved (0), bit 0 RTC wake-up.
func (sc SleepConfig) Byte() byte {
	return b2u8(sc.WarmStart)<<2 | b2u8(sc.RTCWakeup)
}

// ChipMode is the operating mode reported by GetStatus.
type ChipMode uint8

const (
	ChipModeUnused      ChipMode = 0
	ChipModeStandbyRC   ChipMode = 2
	ChipModeStandbyXOSC ChipMode = 3
	ChipModeFS          ChipMode = 4
	ChipModeRx          ChipMode = 5
	ChipModeTx          ChipMode = 6
)

func (m ChipMode) String() (s string) {
	switch m {
	case ChipModeStandbyRC:
		s = "stdby-rc"
	case ChipModeStandbyXOSC:
		s = "stdby-xosc"
	case ChipModeFS:
		s = "fs"
	case ChipModeRx:
		s = "rx"
	case ChipModeTx:
		s = "tx"
	default:
		s = "unknown"
	}
	return s
}

// CommandStatus is the outcome of the last command reported by GetStatus.
type CommandStatus uint8

const (
	CmdDataAvailable CommandStatus = 2
	CmdTimeout       CommandStatus = 3
	CmdProcessingErr CommandStatus = 4
	CmdExecFailure   CommandStatus = 5
	CmdTxDone        CommandStatus = 6
)

func (c CommandStatus) String() (s string) {
	switch c {
	case CmdDataAvailable:
		s = "data-available"
	case CmdTimeout:
		s = "timeout"
	case CmdProcessingErr:
		s = "processing-error"
	case CmdExecFailure:
		s = "exec-failure"
	case CmdTxDone:
		s = "tx-done"
	default:
		s = "ok"
	}
	return s
}

// Status is the decoded status byte of the chip.
type Status struct {
	Mode    ChipMode
	Command CommandStatus
}

func decodeStatus(b byte) Status {
	return Status{
		Mode:    ChipMode((b >> 4) & 0b111),
		Command: CommandStatus((b >> 1) & 0b111),
	}
}

// PacketStatus holds the LoRa link quality of the last received packet.
type PacketStatus struct {
	RSSI       int16 // average RSSI over the packet in dBm.
	SNR        int8  // estimated SNR in dB.
	SignalRSSI int16 // RSSI of the despread LoRa signal in dBm.
}

func decodePacketStatus(b []byte) PacketStatus {
	return PacketStatus{
		RSSI:       -int16(b[0]) / 2,
		SNR:        int8(b[1]) / 4,
		SignalRSSI: -int16(b[2]) / 2,
	}
}

// syncWordRegister expands the one byte LoRa sync word into its register form,
// i.e. 0x34 becomes 0x3444 and 0x12 becomes 0x1424.
func syncWordRegister(sw uint8) uint16 {
	hi := sw&0xF0 | 0x04
	lo := sw<<4 | 0x04
	return uint16(hi)<<8 | uint16(lo)
}

func appendSetSleep(dst []byte, sc SleepConfig) []byte {
	return append(dst, byte(OpSetSleep), sc.Byte())
}

func appendSetStandby(dst []byte, mode StandbyMode) []byte {
	return append(dst, byte(OpSetStandby), byte(mode))
}

func appendSetFS(dst []byte) []byte {
	return append(dst, byte(OpSetFS))
}

func appendSetTx(dst []byte, timeout uint32) []byte {
	return appendTimeout24(append(dst, byte(OpSetTx)), timeout)
}

func appendSetRx(dst []byte, timeout uint32) []byte {
	return appendTimeout24(append(dst, byte(OpSetRx)), timeout)
}

func appendSetRegulatorMode(dst []byte, mode RegulatorMode) []byte {
	return append(dst, byte(OpSetRegulatorMode), byte(mode))
}

// appendSetPAConfig appends the duty cycle and HP max followed by the
// reserved deviceSel (0x00, LLCC68) and paLut (0x01) bytes.
func appendSetPAConfig(dst []byte, pa PAConfig) []byte {
	const deviceSel, paLut = 0x00, 0x01
	return append(dst, byte(OpSetPAConfig), pa.DutyCycle, pa.HPMax, deviceSel, paLut)
}

func appendSetRxTxFallbackMode(dst []byte, mode FallbackMode) []byte {
	return append(dst, byte(OpSetRxTxFallbackMode), byte(mode))
}

func appendSetDIOIRQParams(dst []byte, enable, dio1, dio2, dio3 IRQFlags) []byte {
	dst = append(dst, byte(OpSetDIOIRQParams))
	dst = appendBE(dst, enable.Uint16(), 2)
	dst = appendBE(dst, dio1.Uint16(), 2)
	dst = appendBE(dst, dio2.Uint16(), 2)
	return appendBE(dst, dio3.Uint16(), 2)
}

func appendClearIRQStatus(dst []byte, clear IRQFlags) []byte {
	return appendBE(append(dst, byte(OpClearIRQStatus)), clear.Uint16(), 2)
}

func appendSetDIO2AsRFSwitchCtrl(dst []byte, enable bool) []byte {
	return append(dst, byte(OpSetDIO2AsRFSwitchCtrl), b2u8(enable))
}

func appendSetDIO3AsTCXOCtrl(dst []byte, v TCXOVoltage, delay uint32) []byte {
	return appendTimeout24(append(dst, byte(OpSetDIO3AsTCXOCtrl), byte(v)), delay)
}

func appendSetRFFrequency(dst []byte, rfCode uint32) []byte {
	return appendBE(append(dst, byte(OpSetRFFrequency)), rfCode, 4)
}

func appendSetPacketType(dst []byte, pt PacketType) []byte {
	return append(dst, byte(OpSetPacketType), byte(pt))
}

// appendSetTxParams does not range check power; see [Device.SetTxParams].
func appendSetTxParams(dst []byte, power int8, ramp RampTime) []byte {
	return append(dst, byte(OpSetTxParams), byte(power), byte(ramp))
}

func appendSetLoRaModulationParams(dst []byte, mp ModulationParams) []byte {
	return append(dst, byte(OpSetModulationParams), mp.SpreadFactor, mp.Bandwidth, mp.CodingRate, b2u8(mp.LDRO))
}

func appendSetLoRaPacketParams(dst []byte, pp PacketParams) []byte {
	dst = appendBE(append(dst, byte(OpSetPacketParams)), pp.PreambleLength, 2)
	return append(dst, byte(pp.HeaderType), pp.PayloadLength, b2u8(pp.CRC), b2u8(pp.InvertIQ))
}

func appendSetBufferBaseAddress(dst []byte, txBase, rxBase uint8) []byte {
	return append(dst, byte(OpSetBufferBaseAddress), txBase, rxBase)
}

// appendWriteRegister appends the header of WriteRegister; data follows in the same transaction.
func appendWriteRegister(dst []byte, addr uint16) []byte {
	return appendBE(append(dst, byte(OpWriteRegister)), addr, 2)
}

// appendReadRegister appends the header of ReadRegister including the status
// byte clocked out before the first data byte.
func appendReadRegister(dst []byte, addr uint16) []byte {
	return append(appendBE(append(dst, byte(OpReadRegister)), addr, 2), byte(opNOP))
}

func appendWriteBuffer(dst []byte, offset uint8) []byte {
	return append(dst, byte(OpWriteBuffer), offset)
}

func appendReadBuffer(dst []byte, offset uint8) []byte {
	return append(dst, byte(OpReadBuffer), offset, byte(opNOP))
}

// appendGetter appends a read-style command with no parameters followed by
// the status byte that precedes the reply.
func appendGetter(dst []byte, op Opcode) []byte {
	return append(dst, byte(op), byte(opNOP))
}

func appendClearDeviceErrors(dst []byte) []byte {
	return append(dst, byte(OpClearDeviceErrors), 0, 0)
}
