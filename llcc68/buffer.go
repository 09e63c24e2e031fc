package llcc68

// WriteRegister writes data to consecutive registers starting at addr. An
// empty data slice performs no bus transaction.
func (d *Device) WriteRegister(addr uint16, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return d.command(appendWriteRegister(d.cmd[:0], addr), data)
}

// ReadRegister fills dst with consecutive registers starting at addr. An
// empty dst performs no bus transaction.
func (d *Device) ReadRegister(addr uint16, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}
	return d.query(appendReadRegister(d.cmd[:0], addr), dst)
}

// WriteBuffer writes data into the data buffer at offset. Writes past the end
// of the 256 byte buffer wrap around to 0. An empty data slice performs no bus
// transaction.
func (d *Device) WriteBuffer(offset uint8, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return d.command(appendWriteBuffer(d.cmd[:0], offset), data)
}

// ReadBuffer fills dst from the data buffer starting at offset. An empty dst
// performs no bus transaction.
func (d *Device) ReadBuffer(offset uint8, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}
	return d.query(appendReadBuffer(d.cmd[:0], offset), dst)
}
