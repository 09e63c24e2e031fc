package llcc68

import (
	"errors"
	"testing"

	"github.com/lorakit/lora"
)

var testPins = PinMap{NSS: 1, Reset: 2, Busy: 3, DIO1: 4, DIO2: 5, DIO3: 6}

var errBusTest = errors.New("bus fault")

// fakeBus records the bytes written in every transaction. Reads inside a
// transaction are served from replies, keyed by the transaction's opcode.
type fakeBus struct {
	txs      [][]byte
	cur      []byte
	inTxn    bool
	begins   int
	ends     int
	msbFirst bool
	replies  map[Opcode][]byte
	// failOp makes the command write of this opcode fail when failErr is set.
	// The failed write is still recorded.
	failOp  Opcode
	failErr error
	// beginHook runs at the start of every transaction.
	beginHook func()
	// endHook runs after every transaction.
	endHook func()
}

func (b *fakeBus) BeginTransaction() error {
	if b.inTxn {
		return errors.New("nested transaction")
	}
	b.begins++
	b.inTxn = true
	b.cur = nil
	if b.beginHook != nil {
		b.beginHook()
	}
	return nil
}

func (b *fakeBus) EndTransaction() error {
	if !b.inTxn {
		return errors.New("end without begin")
	}
	b.ends++
	b.inTxn = false
	b.txs = append(b.txs, b.cur)
	if b.endHook != nil {
		b.endHook()
	}
	return nil
}

func (b *fakeBus) Transfer(w byte) (byte, error) {
	var r [1]byte
	err := b.Tx([]byte{w}, r[:])
	return r[0], err
}

func (b *fakeBus) Tx(w, r []byte) error {
	if !b.inTxn {
		return errors.New("tx outside transaction")
	}
	if b.failErr != nil && len(b.cur) == 0 && len(w) > 0 && Opcode(w[0]) == b.failOp {
		b.cur = append(b.cur, w...)
		return b.failErr
	}
	if w != nil {
		b.cur = append(b.cur, w...)
	} else {
		b.cur = append(b.cur, make([]byte, len(r))...)
	}
	if r != nil && len(b.cur) > 0 {
		copy(r, b.replies[Opcode(b.cur[0])])
	}
	return nil
}

func (b *fakeBus) SetBitOrder(msbFirst bool) { b.msbFirst = msbFirst }
func (b *fakeBus) IsBitOrderMSBFirst() bool  { return b.msbFirst }

func (b *fakeBus) reset() {
	b.txs = nil
	b.begins = 0
	b.ends = 0
}

func (b *fakeBus) opcodes() []Opcode {
	ops := make([]Opcode, len(b.txs))
	for i, tx := range b.txs {
		ops[i] = Opcode(tx[0])
	}
	return ops
}

// fakeClock is a virtual millisecond clock advanced only by Delay.
type fakeClock struct {
	now    int32
	delays int
}

func (c *fakeClock) Delay(ms uint32) {
	c.delays++
	c.now += int32(ms)
}

func (c *fakeClock) Timestamp() int32   { return c.now }
func (c *fakeClock) Timestamp64() int64 { return int64(c.now) }

// fakeGPIO reads levels through get and records writes.
type fakeGPIO struct {
	get    func(pin Pin) bool
	writes []pinWrite
}

type pinWrite struct {
	pin  Pin
	high bool
}

func (g *fakeGPIO) Get(pin Pin) bool {
	if g.get == nil {
		return false
	}
	return g.get(pin)
}

func (g *fakeGPIO) Set(pin Pin, high bool) {
	g.writes = append(g.writes, pinWrite{pin: pin, high: high})
}

type testRig struct {
	bus   *fakeBus
	gpio  *fakeGPIO
	clock *fakeClock
	dio1  bool
	busy  func() bool
}

// newRig returns fakes where BUSY reads low and DIO1 reads rig.dio1.
func newRig() *testRig {
	rig := &testRig{bus: &fakeBus{msbFirst: true}, clock: &fakeClock{}, dio1: true}
	rig.gpio = &fakeGPIO{get: func(pin Pin) bool {
		switch pin {
		case testPins.Busy:
			return rig.busy != nil && rig.busy()
		case testPins.DIO1:
			return rig.dio1
		}
		return false
	}}
	return rig
}

// newTestDevice initializes a Device with cfg and forgets the init transactions.
func newTestDevice(t *testing.T, cfg Config) (*Device, *testRig) {
	t.Helper()
	rig := newRig()
	d, err := New(rig.bus, rig.gpio, rig.clock, testPins, cfg)
	if err != nil {
		t.Fatal(err)
	}
	rig.bus.reset()
	return d, rig
}

// newBareDevice returns a Device that skipped initialization.
func newBareDevice(rig *testRig) *Device {
	return &Device{
		bus:        rig.bus,
		gpio:       rig.gpio,
		timer:      rig.clock,
		pins:       testPins,
		cfg:        Config{IRQPolls: defaultIRQPolls, BusyTimeout: -1, TxTimeout: defaultTxTimeout},
		payloadLen: -1,
	}
}

func testConfig() Config {
	return DefaultConfig(lora.Freq868_0M)
}
