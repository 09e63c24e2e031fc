package llcc68

import (
	"errors"
	"io"
	"log/slog"
)

var irqRx = IRQFlags{RxDone: true, Timeout: true, CRCErr: true, HeaderErr: true}

// Receive waits for a single packet and copies its payload into dst,
// returning the payload length. timeout is in 15.625µs ticks as in SetRx;
// [TimeoutDisabled] waits as long as the configured DIO poll budget allows.
//
// The RX timeout interrupt and a missing DIO1 edge return TimedOut. Payload
// CRC and header errors return ErrCRC and ErrHeader. If dst is too short the
// payload is truncated and io.ErrShortBuffer is returned along with the full length.
func (d *Device) Receive(dst []byte, timeout uint32) (int, error) {
	timeout &= max24
	err := d.SetStandby(StandbyRC)
	if err != nil {
		return 0, err
	}
	err = d.SetDIOIRQParams(irqRx, irqRx, IRQFlags{}, IRQFlags{})
	if err != nil {
		return 0, err
	}
	err = d.SetRx(timeout)
	if err != nil {
		return 0, err
	}
	polls := d.cfg.IRQPolls
	if timeout != TimeoutDisabled && timeout != RxContinuous {
		polls += int(timeout / 64) // 64 ticks per millisecond.
	}
	err = d.WaitForEvent(DIO1, polls)
	if err != nil {
		return 0, errors.Join(err, d.ClearIRQStatus(IRQAll))
	}
	irq, err := d.GetIRQStatus()
	if err != nil {
		return 0, err
	}
	err = d.ClearIRQStatus(IRQAll)
	if err != nil {
		return 0, err
	}
	switch {
	case irq.Timeout:
		return 0, d.fail("receive", TimedOut)
	case irq.HeaderErr:
		return 0, ErrHeader
	case irq.CRCErr:
		return 0, ErrCRC
	case !irq.RxDone:
		return 0, d.fail("receive", TimedOut)
	}
	n, start, err := d.GetRxBufferStatus()
	if err != nil {
		return 0, err
	}
	d.debug("llcc68:rx-done", slog.Int("len", int(n)), slog.Int("start", int(start)))
	toRead := int(n)
	if toRead > len(dst) {
		toRead = len(dst)
		err = io.ErrShortBuffer
	}
	if rerr := d.ReadBuffer(start, dst[:toRead]); rerr != nil {
		return 0, rerr
	}
	return int(n), err
}
