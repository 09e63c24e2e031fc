package llcc68

// SetSleep puts the chip to sleep. Only a falling edge on NSS (or NRESET)
// wakes it; with a cold start the configuration is lost.
func (d *Device) SetSleep(sc SleepConfig) error {
	err := d.transition(appendSetSleep(d.cmd[:0], sc))
	if err == nil && !sc.WarmStart {
		d.payloadLen = -1
	}
	return err
}

// SetStandby enters standby with the selected oscillator. Like every mode
// change it waits for BUSY indefinitely, see [Config.BusyTimeout].
func (d *Device) SetStandby(mode StandbyMode) error {
	return d.transition(appendSetStandby(d.cmd[:0], mode))
}

// SetFS enters frequency synthesis mode, in which the PLL is locked to the
// carrier frequency. Mostly useful for testing.
func (d *Device) SetFS() error {
	return d.transition(appendSetFS(d.cmd[:0]))
}

// SetTx starts transmission of the buffer contents. timeout is in 15.625µs
// ticks and is masked to 24 bits; 0 disables it.
func (d *Device) SetTx(timeout uint32) error {
	return d.transition(appendSetTx(d.cmd[:0], timeout))
}

// SetRx starts reception. timeout is in 15.625µs ticks and is masked to 24
// bits. [TimeoutDisabled] receives a single packet, [RxContinuous] stays in RX.
func (d *Device) SetRx(timeout uint32) error {
	return d.transition(appendSetRx(d.cmd[:0], timeout))
}

// SetRegulatorMode selects LDO only or DC-DC+LDO.
func (d *Device) SetRegulatorMode(mode RegulatorMode) error {
	return d.command(appendSetRegulatorMode(d.cmd[:0], mode), nil)
}

// SetRxTxFallbackMode selects the mode entered after a successful TX or RX.
func (d *Device) SetRxTxFallbackMode(mode FallbackMode) error {
	return d.command(appendSetRxTxFallbackMode(d.cmd[:0], mode), nil)
}
