package llcc68

// Opcode is a one byte command identifier understood by the LLCC68 command processor.
type Opcode uint8

// Command opcodes, see DS_LLCC68 chapter 13.
const (
	opNOP                   Opcode = 0x00
	OpSetSleep              Opcode = 0x84
	OpSetStandby            Opcode = 0x80
	OpSetFS                 Opcode = 0xC1
	OpSetTx                 Opcode = 0x83
	OpSetRx                 Opcode = 0x82
	OpStopTimerOnPreamble   Opcode = 0x9F
	OpSetRxDutyCycle        Opcode = 0x94
	OpSetCAD                Opcode = 0xC5
	OpSetTxContinuousWave   Opcode = 0xD1
	OpSetTxInfinitePreamble Opcode = 0xD2
	OpSetRegulatorMode      Opcode = 0x96
	OpCalibrate             Opcode = 0x89
	OpCalibrateImage        Opcode = 0x98
	OpSetPAConfig           Opcode = 0x95
	OpSetRxTxFallbackMode   Opcode = 0x93
	OpWriteRegister         Opcode = 0x0D
	OpReadRegister          Opcode = 0x1D
	OpWriteBuffer           Opcode = 0x0E
	OpReadBuffer            Opcode = 0x1E
	OpSetDIOIRQParams       Opcode = 0x08
	OpGetIRQStatus          Opcode = 0x12
	OpClearIRQStatus        Opcode = 0x02
	OpSetDIO2AsRFSwitchCtrl Opcode = 0x9D
	OpSetDIO3AsTCXOCtrl     Opcode = 0x97
	OpSetRFFrequency        Opcode = 0x86
	OpSetPacketType         Opcode = 0x8A
	OpGetPacketType         Opcode = 0x11
	OpSetTxParams           Opcode = 0x8E
	OpSetModulationParams   Opcode = 0x8B
	OpSetPacketParams       Opcode = 0x8C
	OpSetCADParams          Opcode = 0x88
	OpSetBufferBaseAddress  Opcode = 0x8F
	OpSetLoRaSymbNumTimeout Opcode = 0xA0
	OpGetStatus             Opcode = 0xC0
	OpGetRSSIInst           Opcode = 0x15
	OpGetRxBufferStatus     Opcode = 0x13
	OpGetPacketStatus       Opcode = 0x14
	OpGetDeviceErrors       Opcode = 0x17
	OpClearDeviceErrors     Opcode = 0x07
	OpGetStats              Opcode = 0x10
	OpResetStats            Opcode = 0x00
)

func (op Opcode) String() (s string) {
	switch op {
	case OpSetSleep:
		s = "SetSleep"
	case OpSetStandby:
		s = "SetStandby"
	case OpSetFS:
		s = "SetFs"
	case OpSetTx:
		s = "SetTx"
	case OpSetRx:
		s = "SetRx"
	case OpStopTimerOnPreamble:
		s = "StopTimerOnPreamble"
	case OpSetRxDutyCycle:
		s = "SetRxDutyCycle"
	case OpSetCAD:
		s = "SetCad"
	case OpSetTxContinuousWave:
		s = "SetTxContinuousWave"
	case OpSetTxInfinitePreamble:
		s = "SetTxInfinitePreamble"
	case OpSetRegulatorMode:
		s = "SetRegulatorMode"
	case OpCalibrate:
		s = "Calibrate"
	case OpCalibrateImage:
		s = "CalibrateImage"
	case OpSetPAConfig:
		s = "SetPaConfig"
	case OpSetRxTxFallbackMode:
		s = "SetRxTxFallbackMode"
	case OpWriteRegister:
		s = "WriteRegister"
	case OpReadRegister:
		s = "ReadRegister"
	case OpWriteBuffer:
		s = "WriteBuffer"
	case OpReadBuffer:
		s = "ReadBuffer"
	case OpSetDIOIRQParams:
		s = "SetDioIrqParams"
	case OpGetIRQStatus:
		s = "GetIrqStatus"
	case OpClearIRQStatus:
		s = "ClearIrqStatus"
	case OpSetDIO2AsRFSwitchCtrl:
		s = "SetDIO2AsRfSwitchCtrl"
	case OpSetDIO3AsTCXOCtrl:
		s = "SetDIO3AsTcxoCtrl"
	case OpSetRFFrequency:
		s = "SetRfFrequency"
	case OpSetPacketType:
		s = "SetPacketType"
	case OpGetPacketType:
		s = "GetPacketType"
	case OpSetTxParams:
		s = "SetTxParams"
	case OpSetModulationParams:
		s = "SetModulationParams"
	case OpSetPacketParams:
		s = "SetPacketParams"
	case OpSetCADParams:
		s = "SetCadParams"
	case OpSetBufferBaseAddress:
		s = "SetBufferBaseAddress"
	case OpSetLoRaSymbNumTimeout:
		s = "SetLoRaSymbNumTimeout"
	case OpGetStatus:
		s = "GetStatus"
	case OpGetRSSIInst:
		s = "GetRssiInst"
	case OpGetRxBufferStatus:
		s = "GetRxBufferStatus"
	case OpGetPacketStatus:
		s = "GetPacketStatus"
	case OpGetDeviceErrors:
		s = "GetDeviceErrors"
	case OpClearDeviceErrors:
		s = "ClearDeviceErrors"
	case OpGetStats:
		s = "GetStats"
	case OpResetStats: // Shares 0x00 with NOP.
		s = "ResetStats"
	default:
		s = "unknown"
	}
	return s
}
