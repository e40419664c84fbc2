// Package firmware is the micro:bit demo application: a 1 ms heartbeat
// refreshes the LED matrix and samples the buttons, the RNG feeds a bar
// graph every two seconds, and everything is reported as telemetry frames.
//
// Button A (debounced) rolls a new value at once. Button B (raw edge)
// freezes and unfreezes the periodic roll.
package firmware

import (
	"sync/atomic"

	"yakio/core"
	"yakio/protocol"
)

const randomValid = 1 << 8

// App owns every driver. Interrupt callbacks only touch the matrix refresh,
// the button samplers, the scheduler and the atomics below; all telemetry is
// encoded from Poll.
type App struct {
	cfg Config

	heartbeat core.Timer
	rng       core.RNG
	matrix    core.LEDMatrix

	buttonA core.GPIO
	buttonB core.GPIO
	pressA  core.Debouncer
	pressB  core.Edge

	sched  core.Scheduler
	roll   core.SoftTimer
	report core.SoftTimer

	enc *protocol.Encoder

	latest    atomic.Uint32 // last random byte | randomValid
	rollDue   atomic.Bool
	reportDue atomic.Bool

	frozen  bool
	presses [2]uint32
	dropped uint32
}

// New returns an application using cfg. Nothing touches hardware until Init.
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Init configures the drivers and starts the heartbeat. Frames go to sink.
func (a *App) Init(sink protocol.FrameSink) {
	a.enc = protocol.NewEncoder(sink)

	a.matrix.Configure()

	a.buttonA.Configure(core.ButtonA, core.PinInput)
	a.buttonB.Configure(core.ButtonB, core.PinInput)
	a.pressA = core.Debouncer{In: &a.buttonA, MinTicks: a.cfg.DebounceTicks}
	a.pressB = core.Edge{In: &a.buttonB}

	a.rng.Configure()
	a.rng.SetErrorCorrection(true)
	a.rng.SetCallback(core.Callback1, a)
	a.rng.Start()

	a.roll.Handler = core.Every(a.cfg.RollPeriod, func() { a.rollDue.Store(true) })
	a.sched.After(&a.roll, a.cfg.RollPeriod)
	a.report.Handler = core.Every(a.cfg.ReportPeriod, func() { a.reportDue.Store(true) })
	a.sched.After(&a.report, a.cfg.ReportPeriod)

	a.heartbeat.Configure(core.Timer2)
	a.heartbeat.QuickSetup(a.cfg.HeartbeatPrescaler, a.cfg.HeartbeatCompare, core.Heartbeat, a)

	a.send(a.enc.Log("yakio ready"))
}

// Heartbeat runs in the TIMER2 interrupt.
func (a *App) Heartbeat() {
	a.matrix.Refresh()
	a.pressA.Sample()
	a.pressB.Sample()
	a.sched.Tick()
}

// Callback1 runs in the RNG interrupt and keeps the newest byte.
func (a *App) Callback1() {
	if v, ok := a.rng.TryValue(); ok {
		a.latest.Store(uint32(v) | randomValid)
	}
}

// Poll is one pass of the main loop
func (a *App) Poll() {
	core.FlushDebug()
	rollNow := false

	if a.pressA.Take() {
		a.presses[0]++
		a.send(a.enc.Button(0, a.presses[0]))
		rollNow = true
	}
	if a.pressB.Take() {
		a.presses[1]++
		a.frozen = !a.frozen
		a.send(a.enc.Button(1, a.presses[1]))
	}

	if a.rollDue.Swap(false) && !a.frozen {
		rollNow = true
	}
	if rollNow {
		a.showRandom()
	}

	if a.reportDue.Swap(false) {
		a.send(a.enc.Heartbeat(a.heartbeat.Ticks()))
	}
}

// showRandom lights one LED per ten counts of the latest random byte
func (a *App) showRandom() {
	v := a.latest.Load()
	if v&randomValid == 0 {
		return
	}
	value := uint8(v)

	a.matrix.SetImage(BarImage(int(value) / 10))
	a.send(a.enc.Random(value))
	a.send(a.enc.Frame(a.matrix.ImageBits()))
}

// Log sends text as a MsgLog frame. It is the board's debug writer.
func (a *App) Log(text string) {
	if a.enc != nil {
		a.send(a.enc.Log(text))
	}
}

func (a *App) send(err error) {
	if err != nil {
		a.dropped++
	}
}

// Frozen reports whether the periodic roll is paused
func (a *App) Frozen() bool {
	return a.frozen
}

// Matrix returns the LED matrix driver
func (a *App) Matrix() *core.LEDMatrix {
	return &a.matrix
}

// Dropped returns how many frames could not be encoded
func (a *App) Dropped() uint32 {
	return a.dropped
}

// BarImage lights the first n cells in reading order
func BarImage(n int) [core.MatrixCells]uint8 {
	var img [core.MatrixCells]uint8
	for i := 0; i < n && i < core.MatrixCells; i++ {
		img[i] = 1
	}
	return img
}
