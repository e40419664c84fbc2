package firmware

import (
	"testing"

	"yakio/core"
	"yakio/nrf51"
	"yakio/protocol"
	"yakio/sim"
)

type capture []byte

func (c *capture) Output(data []byte) {
	*c = append(*c, data...)
}

// drain decodes and clears everything captured so far
func (c *capture) drain(t *testing.T) []protocol.Message {
	t.Helper()
	var msgs []protocol.Message
	var d protocol.Decoder
	if err := d.Feed(protocol.NewSliceInputBuffer(*c), func(m protocol.Message) {
		msgs = append(msgs, m)
	}); err != nil {
		t.Fatalf("decode: %v", err)
	}
	*c = (*c)[:0]
	return msgs
}

var testConfig = Config{
	HeartbeatPrescaler: HeartbeatPrescaler,
	HeartbeatCompare:   HeartbeatCompare,
	DebounceTicks:      3,
	RollPeriod:         10,
	ReportPeriod:       5,
}

func setup(t *testing.T) (*App, *sim.Board, *capture) {
	t.Helper()
	b := sim.New()
	core.SetBus(b)
	core.Interrupts.Reset()
	b.OnIRQ = core.Interrupts.Dispatch

	out := &capture{}
	app := New(testConfig)
	app.Init(out)
	return app, b, out
}

func beats(b *sim.Board, n int) {
	for i := 0; i < n; i++ {
		b.FireCompare(int(core.Timer2))
	}
}

func find(msgs []protocol.Message, id protocol.MessageID) (protocol.Message, bool) {
	for _, m := range msgs {
		if m.ID == id {
			return m, true
		}
	}
	return protocol.Message{}, false
}

func TestInit(t *testing.T) {
	app, b, out := setup(t)

	if !b.TimerRunning(2) {
		t.Error("heartbeat timer not running")
	}
	if !b.IRQEnabled(nrf51.IRQ_TIMER2) || !b.IRQEnabled(nrf51.IRQ_RNG) {
		t.Error("heartbeat or RNG interrupt not enabled")
	}
	if got := b.Peek(nrf51.TIMER2 + nrf51.TIMER_PRESCALER); got != HeartbeatPrescaler {
		t.Errorf("PRESCALER = %d", got)
	}
	if got := b.Peek(nrf51.TIMER2 + nrf51.TIMER_CC); got != HeartbeatCompare {
		t.Errorf("CC[0] = %d", got)
	}
	if !b.RNGRunning() {
		t.Error("RNG not started")
	}
	if b.Dir()&core.LEDMask != core.LEDMask {
		t.Errorf("DIR = %#x, LED lines not outputs", b.Dir())
	}

	msgs := out.drain(t)
	if len(msgs) != 1 || msgs[0].ID != protocol.MsgLog || msgs[0].Text != "yakio ready" {
		t.Errorf("startup messages = %+v", msgs)
	}
	if app.Dropped() != 0 {
		t.Errorf("Dropped = %d", app.Dropped())
	}
}

func TestHeartbeatRefreshesMatrix(t *testing.T) {
	app, b, _ := setup(t)

	start := app.Matrix().Row()
	beats(b, 4)
	if got := app.Matrix().Row(); got != (start+4)%core.MatrixRowGroups {
		t.Errorf("Row = %d after 4 heartbeats from %d", got, start)
	}
}

func TestPeriodicRoll(t *testing.T) {
	app, b, out := setup(t)
	out.drain(t)

	b.LatchRandom(173)
	beats(b, 10)
	app.Poll()

	msgs := out.drain(t)
	r, ok := find(msgs, protocol.MsgRandom)
	if !ok || r.Value != 173 {
		t.Fatalf("random message = %+v, %v", r, ok)
	}
	f, ok := find(msgs, protocol.MsgFrame)
	if !ok || f.Value != 0x1FFFF00 {
		t.Errorf("frame = %#x, %v; want 17 lit cells", f.Value, ok)
	}
	if hb, ok := find(msgs, protocol.MsgHeartbeat); !ok || hb.Value != 10 {
		t.Errorf("heartbeat = %+v, %v", hb, ok)
	}
	if app.Matrix().GetPixel(4, 2) != 1 || app.Matrix().GetPixel(4, 3) != 0 {
		t.Error("bar graph not displayed")
	}

	// nothing new until the next period
	app.Poll()
	if msgs := out.drain(t); len(msgs) != 0 {
		t.Errorf("unexpected messages %+v", msgs)
	}
}

func TestNoRollWithoutRandom(t *testing.T) {
	app, b, out := setup(t)
	out.drain(t)

	beats(b, 10)
	app.Poll()

	if _, ok := find(out.drain(t), protocol.MsgRandom); ok {
		t.Error("rolled before any random value arrived")
	}
}

func TestButtonARollsNow(t *testing.T) {
	app, b, out := setup(t)
	b.LatchRandom(42)
	out.drain(t)

	b.SetInput(uint8(core.ButtonA), false)
	beats(b, 3)
	b.SetInput(uint8(core.ButtonA), true)
	beats(b, 1)
	app.Poll()

	msgs := out.drain(t)
	btn, ok := find(msgs, protocol.MsgButton)
	if !ok || btn.Value != 0 || btn.Count != 1 {
		t.Errorf("button message = %+v, %v", btn, ok)
	}
	if r, ok := find(msgs, protocol.MsgRandom); !ok || r.Value != 42 {
		t.Errorf("random message = %+v, %v", r, ok)
	}
}

func TestButtonATooShort(t *testing.T) {
	app, b, out := setup(t)
	out.drain(t)

	b.SetInput(uint8(core.ButtonA), false)
	beats(b, 2)
	b.SetInput(uint8(core.ButtonA), true)
	beats(b, 1)
	app.Poll()

	if _, ok := find(out.drain(t), protocol.MsgButton); ok {
		t.Error("short press was reported")
	}
}

func TestButtonBFreezes(t *testing.T) {
	app, b, out := setup(t)
	b.LatchRandom(99)
	out.drain(t)

	b.SetInput(uint8(core.ButtonB), false)
	beats(b, 1)
	b.SetInput(uint8(core.ButtonB), true)
	beats(b, 1)
	app.Poll()

	if !app.Frozen() {
		t.Fatal("button B did not freeze the roll")
	}
	btn, ok := find(out.drain(t), protocol.MsgButton)
	if !ok || btn.Value != 1 || btn.Count != 1 {
		t.Errorf("button message = %+v, %v", btn, ok)
	}

	beats(b, 10)
	app.Poll()
	msgs := out.drain(t)
	if _, ok := find(msgs, protocol.MsgRandom); ok {
		t.Error("rolled while frozen")
	}
	if _, ok := find(msgs, protocol.MsgHeartbeat); !ok {
		t.Error("heartbeat telemetry stopped while frozen")
	}
}

func TestBarImage(t *testing.T) {
	tests := []struct {
		n   int
		lit int
	}{
		{-1, 0}, {0, 0}, {1, 1}, {17, 17}, {25, 25}, {40, 25},
	}
	for _, tt := range tests {
		img := BarImage(tt.n)
		lit := 0
		for i, v := range img {
			if v == 1 {
				lit++
				if i >= tt.lit {
					t.Errorf("BarImage(%d): cell %d lit", tt.n, i)
				}
			}
		}
		if lit != tt.lit {
			t.Errorf("BarImage(%d) lit %d cells, want %d", tt.n, lit, tt.lit)
		}
	}
}

func TestPollFlushesDeferredDebug(t *testing.T) {
	app, _, out := setup(t)
	core.SetDebugWriter(app.Log)
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()
	t.Cleanup(func() {
		core.StopAsyncDebug()
		core.SetDebugEnabled(false)
		core.SetDebugWriter(func(string) {})
	})
	out.drain(t)

	core.DebugAsync("from irq")
	if len(*out) != 0 {
		t.Fatal("deferred line sent before Poll")
	}
	app.Poll()
	m, ok := find(out.drain(t), protocol.MsgLog)
	if !ok || m.Text != "from irq" {
		t.Errorf("log after Poll = %+v, %v", m, ok)
	}
}
