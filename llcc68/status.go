package llcc68

// GetStatus reads the chip mode and the status of the last command. The
// status byte is clocked out while the opcode is sent, so no dummy byte precedes it.
func (d *Device) GetStatus() (Status, error) {
	var reply [1]byte
	err := d.query(append(d.cmd[:0], byte(OpGetStatus)), reply[:])
	return decodeStatus(reply[0]), err
}

// GetPacketType reads the packet type the modem is set to.
func (d *Device) GetPacketType() (PacketType, error) {
	var reply [1]byte
	err := d.query(appendGetter(d.cmd[:0], OpGetPacketType), reply[:])
	return PacketType(reply[0]), err
}

// GetRxBufferStatus returns the length of the last received payload and the
// buffer offset it starts at.
func (d *Device) GetRxBufferStatus() (payloadLen, start uint8, err error) {
	var reply [2]byte
	err = d.query(appendGetter(d.cmd[:0], OpGetRxBufferStatus), reply[:])
	return reply[0], reply[1], err
}

// GetPacketStatus returns the link quality of the last received packet.
func (d *Device) GetPacketStatus() (PacketStatus, error) {
	var reply [3]byte
	err := d.query(appendGetter(d.cmd[:0], OpGetPacketStatus), reply[:])
	if err != nil {
		return PacketStatus{}, err
	}
	return decodePacketStatus(reply[:]), nil
}

// DeviceErrors are the calibration and oscillator errors latched by the chip.
type DeviceErrors uint16

const (
	DevErrRC64kCalib DeviceErrors = 1 << iota
	DevErrRC13MCalib
	DevErrPLLCalib
	DevErrADCCalib
	DevErrImageCalib
	DevErrXOSCStart
	DevErrPLLLock
	_
	DevErrPARamp
)

// Has reports whether all flags in e2 are set.
func (e DeviceErrors) Has(e2 DeviceErrors) bool { return e&e2 == e2 }

// GetDeviceErrors reads the latched device errors.
func (d *Device) GetDeviceErrors() (DeviceErrors, error) {
	var reply [2]byte
	err := d.query(appendGetter(d.cmd[:0], OpGetDeviceErrors), reply[:])
	return DeviceErrors(beUint[uint16](reply[:])), err
}

// ClearDeviceErrors clears all latched device errors.
func (d *Device) ClearDeviceErrors() error {
	return d.command(appendClearDeviceErrors(d.cmd[:0]), nil)
}
