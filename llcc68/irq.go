package llcc68

import "log/slog"

// IRQLine is one of the three DIO lines interrupts can be routed to.
type IRQLine uint8

const (
	DIO1 IRQLine = iota + 1
	DIO2
	DIO3
)

func (d *Device) linePin(line IRQLine) (Pin, error) {
	switch line {
	case DIO1:
		return d.pins.DIO1, nil
	case DIO2:
		return d.pins.DIO2, nil
	case DIO3:
		return d.pins.DIO3, nil
	}
	return 0, ErrBadIRQLine
}

// SetDIOIRQParams selects the events latched in the interrupt status (enable)
// and which of them additionally drive each DIO line high. An event routed to
// a line must also be enabled to have effect.
func (d *Device) SetDIOIRQParams(enable, dio1, dio2, dio3 IRQFlags) error {
	return d.command(appendSetDIOIRQParams(d.cmd[:0], enable, dio1, dio2, dio3), nil)
}

// GetIRQStatus reads the interrupt status.
func (d *Device) GetIRQStatus() (IRQFlags, error) {
	var reply [2]byte
	err := d.query(appendGetter(d.cmd[:0], OpGetIRQStatus), reply[:])
	if err != nil {
		return IRQFlags{}, err
	}
	return IRQFlagsFromUint16(beUint[uint16](reply[:])), nil
}

// ClearIRQStatus clears the flags set in clear. Other flags are left untouched.
func (d *Device) ClearIRQStatus(clear IRQFlags) error {
	return d.command(appendClearIRQStatus(d.cmd[:0], clear), nil)
}

// WaitForEvent polls line every millisecond until it reads high, up to polls
// times. It does not read or clear the interrupt status. Running out of polls
// records and returns TimedOut; polls <= 0 uses the configured budget.
func (d *Device) WaitForEvent(line IRQLine, polls int) error {
	pin, err := d.linePin(line)
	if err != nil {
		return err
	}
	if polls <= 0 {
		polls = d.cfg.IRQPolls
	}
	for i := 0; i < polls; i++ {
		if d.gpio.Get(pin) {
			return nil
		}
		d.timer.Delay(irqPollMs)
	}
	d.debug("llcc68:wait-event", slog.Int("line", int(line)), slog.Int("polls", polls))
	return d.fail("wait-event", TimedOut)
}
