package core

import (
	"testing"
	"time"

	"yakio/nrf51"
)

func TestRNGGetValueBlocksUntilStarted(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Configure()

	got := make(chan uint8, 1)
	go func() {
		got <- r.GetValue()
	}()

	select {
	case v := <-got:
		t.Fatalf("GetValue returned %d before start", v)
	case <-time.After(50 * time.Millisecond):
	}

	if b.LatchRandom(1) {
		t.Fatal("stopped RNG produced a value")
	}

	r.Start()
	if !b.LatchRandom(0xA5) {
		t.Fatal("running RNG did not produce a value")
	}
	select {
	case v := <-got:
		if v != 0xA5 {
			t.Errorf("GetValue = %#x, want 0xa5", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("GetValue did not return after VALRDY")
	}
}

func TestRNGValueConsumedOnce(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Configure()
	r.Start()
	b.LatchRandom(42)

	if v := r.GetValue(); v != 42 {
		t.Errorf("GetValue = %d, want 42", v)
	}
	if b.Peek(nrf51.RNG+nrf51.RNG_EVENTS_VALRDY) != 0 {
		t.Error("VALRDY still set after read")
	}
	if _, ok := r.TryValue(); ok {
		t.Error("second read found a value without a new VALRDY")
	}

	b.LatchRandom(7)
	if v, ok := r.TryValue(); !ok || v != 7 {
		t.Errorf("TryValue = %d, %v", v, ok)
	}
}

func TestRNGStartClearsReady(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Configure()
	b.Poke(nrf51.RNG+nrf51.RNG_EVENTS_VALRDY, 1)
	r.Start()
	if !b.RNGRunning() {
		t.Fatal("RNG not running")
	}
	if _, ok := r.TryValue(); ok {
		t.Error("Start left a stale VALRDY")
	}
	r.Stop()
	if b.RNGRunning() {
		t.Error("Stop did not stop generation")
	}
}

// rngReader consumes the value from its callback
type rngReader struct {
	r      *RNG
	values []uint8
	other  int
}

func (c *rngReader) Callback0() { c.other++ }
func (c *rngReader) Callback1() { c.other++ }
func (c *rngReader) Callback2() {
	if v, ok := c.r.TryValue(); ok {
		c.values = append(c.values, v)
	}
}
func (c *rngReader) Callback3() { c.other++ }

func TestRNGCallbackDispatchesOwnSlot(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Configure()
	reader := &rngReader{r: &r}
	r.SetCallback(Callback2, reader)

	if !b.IRQEnabled(nrf51.IRQ_RNG) {
		t.Fatal("RNG irq not enabled")
	}
	r.Start()
	b.LatchRandom(3)
	b.LatchRandom(200)

	if len(reader.values) != 2 || reader.values[0] != 3 || reader.values[1] != 200 {
		t.Errorf("values = %v, want [3 200]", reader.values)
	}
	if reader.other != 0 {
		t.Errorf("other slots ran %d times", reader.other)
	}
}

func TestRNGRejectsHeartbeat(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Configure()
	r.SetCallback(Heartbeat, &probe{})

	if r.CallbackID() != CallbackNone {
		t.Errorf("CallbackID = %v", r.CallbackID())
	}
	if b.IRQEnabled(nrf51.IRQ_RNG) {
		t.Error("Heartbeat registration armed the irq")
	}
}

func TestRNGNoCallbackDropsLatch(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Configure()
	r.SetCallback(Callback0, &probe{})
	r.ClearCallbacks()
	r.Start()

	b.LatchRandom(9)
	if b.Peek(nrf51.RNG+nrf51.RNG_EVENTS_VALRDY) != 0 {
		t.Error("unhandled VALRDY left asserted")
	}
}

func TestRNGErrorCorrection(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Configure()

	r.SetErrorCorrection(true)
	if !r.ErrorCorrection() || b.Peek(nrf51.RNG+nrf51.RNG_CONFIG) != nrf51.RNG_CONFIG_DERCEN {
		t.Error("DERCEN not set")
	}
	r.SetErrorCorrection(false)
	if r.ErrorCorrection() {
		t.Error("DERCEN not cleared")
	}
}

func TestRNGShutdown(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Configure()
	p := &probe{}
	r.SetCallback(Callback1, p)
	r.Start()
	r.Shutdown()

	if b.RNGRunning() || b.IRQEnabled(nrf51.IRQ_RNG) || r.CallbackID() != CallbackNone {
		t.Error("Shutdown left the RNG active")
	}
	if b.LatchRandom(1) {
		t.Error("stopped RNG produced a value")
	}
}

func TestRNGUnconfiguredNoop(t *testing.T) {
	b := setupBoard(t)
	var r RNG
	r.Start()
	r.SetCallback(Callback0, &probe{})
	r.SetErrorCorrection(true)
	r.Shutdown()
	if v := r.GetValue(); v != 0 {
		t.Errorf("GetValue = %d", v)
	}
	if n := len(b.Writes()); n != 0 {
		t.Errorf("unconfigured RNG made %d writes", n)
	}
}

func TestRNGSecondInstanceTakesOver(t *testing.T) {
	b := setupBoard(t)
	var first, second RNG
	first.Configure()
	second.Configure()

	if Interrupts.Owner(nrf51.IRQ_RNG) != &second {
		t.Fatal("last configured RNG does not own the irq")
	}
	if Interrupts.Replaced != 1 {
		t.Errorf("Replaced = %d, want 1", Interrupts.Replaced)
	}

	p1, p2 := &probe{}, &probe{}
	first.SetCallback(Callback0, p1)
	second.SetCallback(Callback0, p2)
	second.Start()
	b.LatchRandom(5)
	if p1.calls[Callback0] != 0 || p2.calls[Callback0] != 1 {
		t.Errorf("p1=%v p2=%v", p1.calls, p2.calls)
	}
}
