package llcc68

import (
	"errors"
	"log/slog"
)

var irqTxDone = IRQFlags{TxDone: true}

// SendPacket transmits payload and blocks until TxDone is signalled on DIO1 or
// the configured poll budget runs out. Once the first command has been
// attempted, the TxDone status is cleared and the chip is returned to
// continuous RX whether or not the transmission completed. An empty payload
// is a no-op.
//
// The packet params are reprogrammed only when len(payload) differs from the
// last programmed payload length, since with an explicit header the chip
// takes the TX length from them.
//
// SendPacket does not retry. A missing TxDone edge returns TimedOut, which is
// also recorded in LastError.
func (d *Device) SendPacket(payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	if len(payload) > maxPayload {
		return ErrPayloadTooLong
	}
	err := d.transmit(payload)
	if err == nil {
		d.debug("llcc68:tx-done", slog.Int("len", len(payload)))
	}
	clearErr := d.ClearIRQStatus(irqTxDone)
	rxErr := d.SetRx(RxContinuous)
	return errors.Join(err, clearErr, rxErr)
}

// transmit runs SendPacket up to the TxDone wait, stopping at the first failure.
func (d *Device) transmit(payload []byte) error {
	err := d.SetStandby(StandbyRC)
	if err != nil {
		return err
	}
	err = d.WriteBuffer(0, payload)
	if err != nil {
		return err
	}
	if len(payload) != d.payloadLen {
		pp := loraPacket(d.cfg.Config)
		pp.PayloadLength = uint8(len(payload))
		err = d.SetLoRaPacketParams(pp)
		if err != nil {
			return err
		}
	}
	err = d.SetDIOIRQParams(irqTxDone, irqTxDone, IRQFlags{}, IRQFlags{})
	if err != nil {
		return err
	}
	err = d.SetTx(d.cfg.TxTimeout)
	if err != nil {
		return err
	}
	return d.WaitForEvent(DIO1, d.cfg.IRQPolls)
}
