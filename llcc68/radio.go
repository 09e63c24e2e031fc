package llcc68

import (
	"log/slog"

	"github.com/lorakit/lora"
)

// SetPAConfig configures the power amplifier. See the PA presets such as [PA22dBm].
func (d *Device) SetPAConfig(pa PAConfig) error {
	return d.command(appendSetPAConfig(d.cmd[:0], pa), nil)
}

// SetDIO3AsTCXOCtrl makes DIO3 supply an external TCXO with voltage v. delay
// is the TCXO startup time in 15.625µs ticks, masked to 24 bits.
func (d *Device) SetDIO3AsTCXOCtrl(v TCXOVoltage, delay uint32) error {
	return d.command(appendSetDIO3AsTCXOCtrl(d.cmd[:0], v, delay), nil)
}

// SetDIO2AsRFSwitchCtrl makes DIO2 drive an RF switch: high in TX, low otherwise.
func (d *Device) SetDIO2AsRFSwitchCtrl(enable bool) error {
	return d.command(appendSetDIO2AsRFSwitchCtrl(d.cmd[:0], enable), nil)
}

// SetPacketType selects the modem. Only LoRa is supported; other packet types
// record and return Unsupported without a bus transaction.
func (d *Device) SetPacketType(pt PacketType) error {
	if pt != PacketTypeLoRa {
		d.debug("llcc68:packet-type", slog.String("type", pt.String()))
		return d.fail("set-packet-type", Unsupported)
	}
	return d.command(appendSetPacketType(d.cmd[:0], pt), nil)
}

// SetRFFrequency sets the carrier frequency in Hz. See [RFCode].
func (d *Device) SetRFFrequency(freqHz uint32) error {
	if freqHz < minFrequency || freqHz > maxFrequency {
		return ErrBadFrequency
	}
	return d.command(appendSetRFFrequency(d.cmd[:0], RFCode(freqHz)), nil)
}

// SetTxParams sets the output power in dBm and the PA ramp time. Power must be
// between -9 and 22 dBm; values outside the range are rejected, never clamped.
func (d *Device) SetTxParams(dBm int8, ramp RampTime) error {
	if err := checkTxPower(dBm); err != nil {
		return err
	}
	if ramp > Ramp3400us {
		return ErrBadRampTime
	}
	return d.command(appendSetTxParams(d.cmd[:0], dBm, ramp), nil)
}

// SetBufferBaseAddress sets where TX and RX packets start in the data buffer.
func (d *Device) SetBufferBaseAddress(txBase, rxBase uint8) error {
	return d.command(appendSetBufferBaseAddress(d.cmd[:0], txBase, rxBase), nil)
}

// SetLoRaModulationParams sets spreading factor, bandwidth, coding rate and LDRO.
func (d *Device) SetLoRaModulationParams(mp ModulationParams) error {
	return d.command(appendSetLoRaModulationParams(d.cmd[:0], mp), nil)
}

// SetLoRaPacketParams sets the packet shape. PayloadLength is the length of the
// next packet sent, and of every packet received when the header is implicit.
func (d *Device) SetLoRaPacketParams(pp PacketParams) error {
	if pp.HeaderType != lora.HeaderExplicit && pp.HeaderType != lora.HeaderImplicit {
		return ErrBadHeaderType
	}
	err := d.command(appendSetLoRaPacketParams(d.cmd[:0], pp), nil)
	if err != nil {
		d.payloadLen = -1
		return err
	}
	d.payloadLen = int(pp.PayloadLength)
	return nil
}

// SetSyncWord writes the two byte LoRa sync word, i.e. [SyncWordPublic].
func (d *Device) SetSyncWord(sw uint16) error {
	var b [2]byte
	return d.WriteRegister(regLoRaSyncWord, appendBE(b[:0], sw, 2))
}
