//go:build !tinygo

// Package hostio runs the llcc68 driver on a Linux host through periph.io:
// spidev for the bus and the GPIO character device or sysfs for the control lines.
package hostio

import (
	"errors"
	"log/slog"
	"math/bits"
	"time"

	"github.com/lorakit/lora/llcc68"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

var errNoPin = errors.New("hostio: pin not in pin set")

// Bus implements llcc68.Bus over a periph spi.Conn. The connection should be
// opened with spi.NoCS since chip select is driven from cs so it can span a
// whole command.
type Bus struct {
	conn     spi.Conn
	cs       gpio.PinOut
	lsbFirst bool
	wbuf     []byte
	rbuf     []byte
}

var _ llcc68.Bus = (*Bus)(nil)

// NewBus releases cs and returns a Bus over conn.
func NewBus(conn spi.Conn, cs gpio.PinOut) (*Bus, error) {
	if err := cs.Out(gpio.High); err != nil {
		return nil, err
	}
	return &Bus{conn: conn, cs: cs}, nil
}

func (b *Bus) BeginTransaction() error { return b.cs.Out(gpio.Low) }

func (b *Bus) EndTransaction() error { return b.cs.Out(gpio.High) }

func (b *Bus) Transfer(w byte) (byte, error) {
	var r [1]byte
	err := b.Tx([]byte{w}, r[:])
	return r[0], err
}

// Tx performs a full duplex transfer. spidev requires both buffers to be the
// same length so a nil or short side is backed by an internal buffer.
func (b *Bus) Tx(w, r []byte) error {
	n := len(w)
	if len(r) > n {
		n = len(r)
	}
	if n == 0 {
		return nil
	}
	wb := grow(&b.wbuf, n)
	copy(wb, w)
	clear(wb[len(w):])
	rb := r
	if len(r) != n {
		rb = grow(&b.rbuf, n)
	}
	if b.lsbFirst {
		reverse(wb)
	}
	err := b.conn.Tx(wb, rb)
	if err != nil {
		return err
	}
	if b.lsbFirst {
		reverse(rb)
	}
	if len(r) != n {
		copy(r, rb)
	}
	return nil
}

func (b *Bus) SetBitOrder(msbFirst bool) { b.lsbFirst = !msbFirst }

func (b *Bus) IsBitOrderMSBFirst() bool { return !b.lsbFirst }

func grow(buf *[]byte, n int) []byte {
	if cap(*buf) < n {
		*buf = make([]byte, n)
	}
	return (*buf)[:n]
}

func reverse(b []byte) {
	for i := range b {
		b[i] = bits.Reverse8(b[i])
	}
}

// Pins implements llcc68.GPIO over periph pins keyed by their llcc68.Pin.
type Pins map[llcc68.Pin]gpio.PinIO

var _ llcc68.GPIO = Pins(nil)

// Get returns false for a pin missing from the set.
func (p Pins) Get(pin llcc68.Pin) bool {
	line, ok := p[pin]
	return ok && line.Read() == gpio.High
}

// Set ignores pins missing from the set. llcc68.GPIO has no error return, so
// a failed write is logged through the default slog logger and dropped.
func (p Pins) Set(pin llcc68.Pin, high bool) {
	line, ok := p[pin]
	if !ok {
		return
	}
	if err := line.Out(gpio.Level(high)); err != nil {
		slog.Error("hostio:set", slog.String("pin", line.String()), slog.Bool("high", high), slog.String("err", err.Error()))
	}
}

// Clock implements llcc68.Timer on the host monotonic clock.
type Clock struct {
	start time.Time
}

var _ llcc68.Timer = (*Clock)(nil)

func NewClock() *Clock { return &Clock{start: time.Now()} }

func (c *Clock) Delay(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// Timestamp wraps around after about 24 days.
func (c *Clock) Timestamp() int32 { return int32(c.Timestamp64()) }

func (c *Clock) Timestamp64() int64 { return time.Since(c.start).Milliseconds() }
