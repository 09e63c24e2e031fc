package llcc68

import (
	"math/bits"

	"tinygo.org/x/drivers"
)

// SPIBus adapts a drivers.SPI (i.e. machine.SPI0) and a chip select line to Bus.
// Byte order is MSB first unless changed with SetBitOrder, in which case each
// byte is bit-reversed in software.
type SPIBus struct {
	spi      drivers.SPI
	cs       PinOutput
	lsbFirst bool
}

var _ Bus = (*SPIBus)(nil)

// NewSPIBus returns a Bus over spi. cs is driven low for the duration of a
// transaction and is released (driven high) on return.
func NewSPIBus(spi drivers.SPI, cs PinOutput) *SPIBus {
	cs(true)
	return &SPIBus{spi: spi, cs: cs}
}

func (b *SPIBus) BeginTransaction() error {
	b.cs(false)
	return nil
}

func (b *SPIBus) EndTransaction() error {
	b.cs(true)
	return nil
}

func (b *SPIBus) Transfer(w byte) (byte, error) {
	if !b.lsbFirst {
		return b.spi.Transfer(w)
	}
	r, err := b.spi.Transfer(bits.Reverse8(w))
	return bits.Reverse8(r), err
}

func (b *SPIBus) Tx(w, r []byte) error {
	if !b.lsbFirst {
		return b.spi.Tx(w, r)
	}
	n := len(w)
	if len(r) > n {
		n = len(r)
	}
	for i := 0; i < n; i++ {
		var out byte
		if i < len(w) {
			out = w[i]
		}
		in, err := b.Transfer(out)
		if err != nil {
			return err
		}
		if i < len(r) {
			r[i] = in
		}
	}
	return nil
}

func (b *SPIBus) SetBitOrder(msbFirst bool) { b.lsbFirst = !msbFirst }

func (b *SPIBus) IsBitOrderMSBFirst() bool { return !b.lsbFirst }
