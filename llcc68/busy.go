package llcc68

// IsBusy samples the BUSY line 8 times in a row and reports busy when at
// least half of the samples read high, which filters single sample glitches.
func (d *Device) IsBusy() bool {
	high := 0
	for i := 0; i < busySamples; i++ {
		if d.gpio.Get(d.pins.Busy) {
			high++
		}
	}
	return high >= busySamples/2
}

// WaitBusy blocks until the chip deasserts BUSY, polling every millisecond.
// If timeout is non-negative and more than timeout milliseconds elapse, TimedOut
// is recorded and returned. A negative timeout waits forever.
func (d *Device) WaitBusy(timeout int32) error {
	start := d.timer.Timestamp()
	for d.IsBusy() {
		// Wrapping subtraction keeps elapsed correct across timestamp overflow.
		if timeout >= 0 && d.timer.Timestamp()-start > timeout {
			return d.fail("wait-busy", TimedOut)
		}
		d.timer.Delay(busyPollMs)
	}
	return nil
}
