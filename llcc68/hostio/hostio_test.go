//go:build !tinygo

package hostio

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/lorakit/lora"
	"github.com/lorakit/lora/llcc68"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

var testPinMap = llcc68.PinMap{NSS: 8, Reset: 22, Busy: 23, DIO1: 24}

func testPins() map[llcc68.Pin]*gpiotest.Pin {
	m := make(map[llcc68.Pin]*gpiotest.Pin)
	for _, n := range []llcc68.Pin{testPinMap.NSS, testPinMap.Reset, testPinMap.Busy, testPinMap.DIO1} {
		m[n] = &gpiotest.Pin{N: "GPIO", Num: int(n)}
	}
	return m
}

func lookupIn(m map[llcc68.Pin]*gpiotest.Pin) func(llcc68.Pin) gpio.PinIO {
	return func(n llcc68.Pin) gpio.PinIO {
		p, ok := m[n]
		if !ok {
			return nil
		}
		return p
	}
}

func TestBusTransaction(t *testing.T) {
	port := &spitest.Playback{Playback: conntest.Playback{
		DontPanic: true,
		Ops: []conntest.IO{
			{W: []byte{0x12, 0x00}, R: []byte{0xA2, 0xA2}},
			{W: []byte{0x00, 0x00}, R: []byte{0x02, 0x01}},
		},
	}}
	conn, err := port.Connect(physic.MegaHertz, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		t.Fatal(err)
	}
	cs := &gpiotest.Pin{N: "CS"}
	bus, err := NewBus(conn, cs)
	if err != nil {
		t.Fatal(err)
	}
	if cs.Read() != gpio.High {
		t.Fatal("chip select not released")
	}
	if err := bus.BeginTransaction(); err != nil {
		t.Fatal(err)
	}
	if cs.Read() != gpio.Low {
		t.Error("chip select not asserted")
	}
	var r [2]byte
	if err := bus.Tx([]byte{0x12, 0x00}, nil); err != nil {
		t.Fatal(err)
	}
	if err := bus.Tx(nil, r[:]); err != nil {
		t.Fatal(err)
	}
	if err := bus.EndTransaction(); err != nil {
		t.Fatal(err)
	}
	if r != [2]byte{0x02, 0x01} {
		t.Errorf("read %#x", r)
	}
	if cs.Read() != gpio.High {
		t.Error("chip select not released")
	}
	if err := port.Close(); err != nil {
		t.Error(err)
	}
}

func TestBusLSBFirst(t *testing.T) {
	port := &spitest.Playback{Playback: conntest.Playback{
		DontPanic: true,
		Ops:       []conntest.IO{{W: []byte{0x80, 0xC0}, R: []byte{0x01, 0x80}}},
	}}
	conn, err := port.Connect(physic.MegaHertz, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		t.Fatal(err)
	}
	bus, err := NewBus(conn, &gpiotest.Pin{})
	if err != nil {
		t.Fatal(err)
	}
	bus.SetBitOrder(false)
	if bus.IsBitOrderMSBFirst() {
		t.Fatal("bit order not changed")
	}
	r := []byte{0, 0}
	if err := bus.Tx([]byte{0x01, 0x03}, r); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0x80 || r[1] != 0x01 {
		t.Errorf("read %#x", r)
	}
}

func TestPins(t *testing.T) {
	m := testPins()
	pins := Pins{}
	for n, p := range m {
		pins[n] = p
	}
	pins.Set(testPinMap.Reset, true)
	if m[testPinMap.Reset].Read() != gpio.High {
		t.Error("Set high")
	}
	pins.Set(testPinMap.Reset, false)
	if m[testPinMap.Reset].Read() != gpio.Low {
		t.Error("Set low")
	}
	m[testPinMap.Busy].Out(gpio.High)
	if !pins.Get(testPinMap.Busy) {
		t.Error("Get high")
	}
	if pins.Get(99) {
		t.Error("missing pin read high")
	}
	pins.Set(99, true) // Must not panic.
}

// stuckPin is an output whose writes fail.
type stuckPin struct{ gpiotest.Pin }

var errStuck = errors.New("line stuck")

func (p *stuckPin) Out(gpio.Level) error { return errStuck }

func TestPinsSetLogsError(t *testing.T) {
	var out bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&out, nil)))
	defer slog.SetDefault(prev)
	pins := Pins{testPinMap.Reset: &stuckPin{gpiotest.Pin{N: "GPIO22"}}}
	pins.Set(testPinMap.Reset, true)
	log := out.String()
	if !strings.Contains(log, "msg=hostio:set pin=GPIO22") || !strings.Contains(log, `err="line stuck"`) {
		t.Errorf("failed write not logged: %q", log)
	}
}

func TestConnect(t *testing.T) {
	m := testPins()
	hw, err := connect(&spitest.Playback{}, Config{Pins: testPinMap}, lookupIn(m))
	if err != nil {
		t.Fatal(err)
	}
	if m[testPinMap.NSS].Read() != gpio.High || m[testPinMap.Reset].Read() != gpio.High {
		t.Error("outputs not driven high")
	}
	if m[testPinMap.Busy].Pull() != gpio.PullDown {
		t.Error("BUSY not configured as input")
	}
	if len(hw.GPIO) != 4 {
		t.Errorf("got %d pins, want 4", len(hw.GPIO))
	}
	if hw.Pins != testPinMap {
		t.Errorf("got pin map %+v", hw.Pins)
	}

	delete(m, testPinMap.DIO1)
	_, err = connect(&spitest.Playback{}, Config{Pins: testPinMap}, lookupIn(m))
	if !errors.Is(err, errNoPin) {
		t.Errorf("missing DIO1: got %v", err)
	}
}

// discardPort is an spi.PortCloser that accepts every write and reads zeros.
type discardPort struct{ conntest.Discard }

func (p *discardPort) Close() error                     { return nil }
func (p *discardPort) LimitSpeed(physic.Frequency) error { return nil }
func (p *discardPort) Connect(physic.Frequency, spi.Mode, int) (spi.Conn, error) {
	return p, nil
}
func (p *discardPort) TxPackets([]spi.Packet) error { return nil }

func TestDeviceOverHost(t *testing.T) {
	m := testPins()
	hw, err := connect(&discardPort{}, Config{Pins: testPinMap}, lookupIn(m))
	if err != nil {
		t.Fatal(err)
	}
	defer hw.Close()
	m[testPinMap.DIO1].Out(gpio.High)
	d, err := llcc68.New(hw.Bus, hw.GPIO, hw.Timer, hw.Pins, llcc68.DefaultConfig(lora.Freq868_0M))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SendPacket([]byte("ping")); err != nil {
		t.Fatal(err)
	}
	if m[testPinMap.NSS].Read() != gpio.High {
		t.Error("chip select left asserted")
	}
}

func TestClock(t *testing.T) {
	c := NewClock()
	start := c.Timestamp()
	c.Delay(2)
	if elapsed := c.Timestamp() - start; elapsed < 2 {
		t.Errorf("elapsed %dms after 2ms delay", elapsed)
	}
	if c.Timestamp64() < int64(c.Timestamp()) {
		t.Error("64 bit timestamp behind 32 bit one")
	}
}
