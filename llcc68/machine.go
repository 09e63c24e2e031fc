//go:build tinygo

package llcc68

import (
	"machine"
	"time"
)

// MachineGPIO implements GPIO on TinyGo targets. A Pin is a machine.Pin number.
type MachineGPIO struct{}

func (MachineGPIO) Get(pin Pin) bool { return machine.Pin(pin).Get() }

func (MachineGPIO) Set(pin Pin, high bool) { machine.Pin(pin).Set(high) }

// Configure sets NSS and NRESET as outputs driven high and BUSY and the wired
// DIO lines as pulled down inputs. A zero DIO2 or DIO3 is left alone.
func (MachineGPIO) Configure(pins PinMap) {
	for _, p := range []Pin{pins.NSS, pins.Reset} {
		machine.Pin(p).Configure(machine.PinConfig{Mode: machine.PinOutput})
		machine.Pin(p).High()
	}
	inputs := []Pin{pins.Busy, pins.DIO1}
	if pins.DIO2 != 0 {
		inputs = append(inputs, pins.DIO2)
	}
	if pins.DIO3 != 0 {
		inputs = append(inputs, pins.DIO3)
	}
	for _, p := range inputs {
		machine.Pin(p).Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	}
}

// MachineTimer implements Timer with the runtime clock.
type MachineTimer struct {
	start time.Time
}

func NewMachineTimer() *MachineTimer { return &MachineTimer{start: time.Now()} }

func (t *MachineTimer) Delay(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

func (t *MachineTimer) Timestamp() int32 { return int32(t.Timestamp64()) }

func (t *MachineTimer) Timestamp64() int64 { return time.Since(t.start).Milliseconds() }
