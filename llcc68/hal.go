package llcc68

// Pin identifies a GPIO line in a platform specific way, i.e. a machine.Pin
// number on TinyGo targets or a BCM GPIO number on a Linux host.
type Pin uint8

// PinMap holds the lines the LLCC68 is wired to. It is fixed for the lifetime
// of a Device.
type PinMap struct {
	NSS   Pin // chip select, active low. Driven by the Bus implementation.
	Reset Pin // NRESET, active low.
	Busy  Pin // BUSY, high while the chip is processing a command.
	DIO1  Pin
	DIO2  Pin
	DIO3  Pin
}

// PinOutput is a function that sets the logic-level of a pin to high (true)
// or low (false). It is used to abstract a GPIO pin interface.
type PinOutput func(level bool)

// Bus is the synchronous serial transport the LLCC68 command interface runs over.
// A transaction spans every byte between BeginTransaction and EndTransaction,
// which assert and release chip select. Transactions must not be interleaved.
type Bus interface {
	BeginTransaction() error
	EndTransaction() error
	// Transfer writes a single byte out on the bus and receives a byte at the same time.
	Transfer(w byte) (byte, error)
	// Tx transmits w and simultaneously receives into r. The two buffers must
	// be the same length unless one of them is nil, in which case Tx only
	// transmits or only receives (while sending zeros). w and r may be the
	// same slice for an in-place transfer.
	Tx(w, r []byte) error
	SetBitOrder(msbFirst bool)
	IsBitOrderMSBFirst() bool
}

// GPIO reads and writes logic levels on the lines of a PinMap.
type GPIO interface {
	Get(pin Pin) bool
	Set(pin Pin, high bool)
}

// Timer provides blocking millisecond delays and a monotonic millisecond clock.
type Timer interface {
	Delay(ms uint32)
	// Timestamp returns a monotonic millisecond count. It may wrap around.
	Timestamp() int32
	Timestamp64() int64
}
