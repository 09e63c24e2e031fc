//go:build !tinygo

package hostio

import (
	"fmt"

	"github.com/lorakit/lora/llcc68"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Config selects the SPI port and the GPIO lines (BCM numbering) the LLCC68 is
// wired to. A zero DIO2 or DIO3 means the line is not connected.
type Config struct {
	// SPIPort is the periph port name, i.e. "/dev/spidev0.0". Empty selects the first port.
	SPIPort string
	// SPIClockHz defaults to 8MHz. The LLCC68 accepts up to 16MHz.
	SPIClockHz int64
	Pins       llcc68.PinMap
}

// Hardware holds the capabilities llcc68.New needs, backed by real hardware.
type Hardware struct {
	Bus   *Bus
	GPIO  Pins
	Timer *Clock
	Pins  llcc68.PinMap
	port  spi.PortCloser
}

// Close releases the SPI port.
func (h *Hardware) Close() error { return h.port.Close() }

// Open initializes periph host drivers and opens the SPI port and the pins in cfg.
func Open(cfg Config) (*Hardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hostio: periph init: %w", err)
	}
	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("hostio: open SPI port: %w", err)
	}
	hw, err := connect(port, cfg, gpioByNumber)
	if err != nil {
		port.Close()
		return nil, err
	}
	return hw, nil
}

func gpioByNumber(n llcc68.Pin) gpio.PinIO {
	return gpioreg.ByName(fmt.Sprintf("GPIO%d", n))
}

// connect sets up the port and pins; lookup resolves a pin number to a periph pin.
func connect(port spi.PortCloser, cfg Config, lookup func(llcc68.Pin) gpio.PinIO) (*Hardware, error) {
	if cfg.SPIClockHz == 0 {
		cfg.SPIClockHz = 8_000_000
	}
	conn, err := port.Connect(physic.Frequency(cfg.SPIClockHz)*physic.Hertz, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		return nil, fmt.Errorf("hostio: connect SPI: %w", err)
	}
	pm := cfg.Pins
	pins := make(Pins)
	outputs := []llcc68.Pin{pm.NSS, pm.Reset}
	inputs := []llcc68.Pin{pm.Busy, pm.DIO1}
	// DIO2 and DIO3 usually drive the RF switch and TCXO and are left unconnected.
	for _, n := range []llcc68.Pin{pm.DIO2, pm.DIO3} {
		if n != 0 {
			inputs = append(inputs, n)
		}
	}
	for _, n := range outputs {
		p := lookup(n)
		if p == nil {
			return nil, fmt.Errorf("hostio: output GPIO%d: %w", n, errNoPin)
		}
		if err := p.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("hostio: output %s: %w", p, err)
		}
		pins[n] = p
	}
	for _, n := range inputs {
		p := lookup(n)
		if p == nil {
			return nil, fmt.Errorf("hostio: input GPIO%d: %w", n, errNoPin)
		}
		if err := p.In(gpio.PullDown, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("hostio: input %s: %w", p, err)
		}
		pins[n] = p
	}
	bus, err := NewBus(conn, pins[pm.NSS])
	if err != nil {
		return nil, err
	}
	return &Hardware{Bus: bus, GPIO: pins, Timer: NewClock(), Pins: pm, port: port}, nil
}
