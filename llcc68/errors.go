package llcc68

import (
	"errors"

	"github.com/lorakit/lora"
)

// ErrorCode is the kind of runtime failure recorded by the Device. TimedOut and
// Unsupported are returned as errors by the operation that hit them and are
// also kept as the Device's last recorded error, see [Device.LastError].
type ErrorCode uint8

const (
	NoError ErrorCode = iota
	// TimedOut is recorded when a BUSY or DIO wait exceeds its budget.
	TimedOut
	// Unsupported is recorded when an operation is asked for a packet type
	// other than LoRa.
	Unsupported
)

func (e ErrorCode) Error() string {
	switch e {
	case NoError:
		return "no error"
	case TimedOut:
		return "timed out"
	case Unsupported:
		return "unsupported configuration"
	default:
		return "unknown error code"
	}
}

func (e ErrorCode) String() string { return e.Error() }

// Contract violations. These indicate a caller bug and are returned without
// touching the bus or the last recorded error.
var (
	ErrTxPowerRange    = errors.New("tx power must be between -9 and 22 dBm")
	ErrPayloadTooLong  = errors.New("payload longer than 255 bytes")
	ErrBadBandwidth    = errors.New("bandwidth must be 125, 250 or 500kHz")
	ErrBadSpreadFactor = errors.New("bad spread factor, must be SF5..SF11")
	ErrBadCodingRate   = lora.ErrBadCodingRate
	ErrBadRampTime     = errors.New("bad ramp time")
	ErrBadFrequency    = errors.New("frequency outside 150..960MHz")
	ErrBadHeaderType   = errors.New("bad header type")
	ErrBadIRQLine      = errors.New("bad DIO line, must be DIO1..DIO3")
)

// Reception errors reported by the interrupt status.
var (
	ErrCRC    = errors.New("payload CRC error")
	ErrHeader = errors.New("LoRa header error")
)
