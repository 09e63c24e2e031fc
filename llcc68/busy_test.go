package llcc68

import (
	"errors"
	"math"
	"testing"
)

func TestIsBusyDebounce(t *testing.T) {
	testCases := []struct {
		samples []bool
		want    bool
	}{
		{[]bool{true, true, true, true, false, false, false, false}, true},
		{[]bool{false, true, false, true, false, true, false, true}, true},
		{[]bool{true, false, false, true, false, false, true, false}, false},
		{[]bool{true, true, true, true, true, true, true, true}, true},
		{[]bool{false, false, false, false, false, false, false, true}, false},
		{make([]bool, 8), false},
	}
	for _, tc := range testCases {
		rig := newRig()
		idx := 0
		rig.busy = func() bool {
			v := tc.samples[idx%len(tc.samples)]
			idx++
			return v
		}
		d := newBareDevice(rig)
		got := d.IsBusy()
		if got != tc.want {
			t.Errorf("samples %v: got busy=%v, want %v", tc.samples, got, tc.want)
		}
		if idx != busySamples {
			t.Errorf("sampled %d times, want %d", idx, busySamples)
		}
	}
}

func TestWaitBusyTimeout(t *testing.T) {
	rig := newRig()
	rig.busy = func() bool { return true }
	d := newBareDevice(rig)
	err := d.WaitBusy(50)
	if !errors.Is(err, TimedOut) {
		t.Fatalf("got err %v, want TimedOut", err)
	}
	if d.LastError() != TimedOut {
		t.Errorf("LastError=%v, want TimedOut", d.LastError())
	}
	if rig.clock.now < 50 || rig.clock.now > 52 {
		t.Errorf("returned after %dms, want ~50ms", rig.clock.now)
	}
}

func TestWaitBusyDeasserts(t *testing.T) {
	rig := newRig()
	rig.busy = func() bool { return rig.clock.now < 10 }
	d := newBareDevice(rig)
	err := d.WaitBusy(50)
	if err != nil {
		t.Fatal(err)
	}
	if d.LastError() != NoError {
		t.Errorf("LastError=%v, want NoError", d.LastError())
	}
	if rig.clock.now != 10 {
		t.Errorf("returned after %dms, want 10ms", rig.clock.now)
	}
}

func TestWaitBusyForever(t *testing.T) {
	rig := newRig()
	rig.busy = func() bool { return rig.clock.now < 5000 }
	d := newBareDevice(rig)
	err := d.WaitBusy(-1)
	if err != nil {
		t.Fatal(err)
	}
	if rig.clock.now != 5000 {
		t.Errorf("returned after %dms", rig.clock.now)
	}
}

func TestWaitBusyWrap(t *testing.T) {
	rig := newRig()
	rig.clock.now = math.MaxInt32 - 5
	start := rig.clock.now
	rig.busy = func() bool { return true }
	d := newBareDevice(rig)
	err := d.WaitBusy(50)
	if !errors.Is(err, TimedOut) {
		t.Fatalf("got err %v, want TimedOut", err)
	}
	elapsed := rig.clock.now - start
	if elapsed < 50 || elapsed > 52 {
		t.Errorf("timed out after %dms across wraparound", elapsed)
	}
}

func TestCommandsWaitForBusy(t *testing.T) {
	rig := newRig()
	busyUntil := int32(0)
	violations := 0
	rig.busy = func() bool { return rig.clock.now < busyUntil }
	rig.bus.beginHook = func() {
		if rig.clock.now < busyUntil {
			violations++
		}
	}
	rig.bus.endHook = func() { busyUntil = rig.clock.now + 3 }
	d, err := New(rig.bus, rig.gpio, rig.clock, testPins, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	err = d.SendPacket([]byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if violations != 0 {
		t.Errorf("%d commands issued while BUSY was high", violations)
	}
	if rig.bus.begins < 10 {
		t.Errorf("expected init and send commands, got %d transactions", rig.bus.begins)
	}
}

func TestBusyTimeoutAbortsCommand(t *testing.T) {
	rig := newRig()
	d := newBareDevice(rig)
	d.cfg.BusyTimeout = 5
	rig.busy = func() bool { return true }
	err := d.SetRegulatorMode(RegulatorDCDC)
	if !errors.Is(err, TimedOut) {
		t.Fatalf("got err %v, want TimedOut", err)
	}
	if rig.bus.begins != 0 {
		t.Errorf("command issued while busy")
	}
}

func TestModeChangeIgnoresBusyTimeout(t *testing.T) {
	rig := newRig()
	d := newBareDevice(rig)
	d.cfg.BusyTimeout = 5
	rig.busy = func() bool { return rig.clock.now < 20 }
	for _, change := range []func() error{
		func() error { return d.SetStandby(StandbyRC) },
		func() error { return d.SetTx(0) },
		func() error { return d.SetRx(RxContinuous) },
		d.SetFS,
		func() error { return d.SetSleep(SleepConfig{WarmStart: true}) },
	} {
		rig.clock.now = 0
		rig.bus.reset()
		if err := change(); err != nil {
			t.Fatal(err)
		}
		if rig.clock.now != 20 {
			t.Errorf("issued after %dms, want 20ms", rig.clock.now)
		}
		if len(rig.bus.txs) != 1 {
			t.Errorf("got %d transactions, want 1", len(rig.bus.txs))
		}
	}
	if d.LastError() != NoError {
		t.Errorf("LastError=%v", d.LastError())
	}
}
