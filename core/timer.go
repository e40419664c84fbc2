package core

import (
	"yakio/mmio"
	"yakio/nrf51"
)

// TimerID names one of the three 16 MHz timer blocks.
type TimerID uint8

const (
	Timer0 TimerID = iota
	Timer1
	Timer2

	TimerCount = 3
)

// TimerMode is the MODE register value.
type TimerMode uint32

const (
	ModeTimer   TimerMode = nrf51.TIMER_MODE_TIMER
	ModeCounter TimerMode = nrf51.TIMER_MODE_COUNTER
)

// BitMode is the BITMODE register value.
type BitMode uint32

const (
	BitMode16 BitMode = nrf51.TIMER_BITMODE_16BIT
	BitMode8  BitMode = nrf51.TIMER_BITMODE_08BIT
	BitMode24 BitMode = nrf51.TIMER_BITMODE_24BIT
	BitMode32 BitMode = nrf51.TIMER_BITMODE_32BIT
)

// Bits returns the counter width in bits.
func (m BitMode) Bits() int {
	switch m {
	case BitMode8:
		return 8
	case BitMode24:
		return 24
	case BitMode32:
		return 32
	}
	return 16
}

// Shortcut is a set of SHORTS register bits.
type Shortcut uint32

const (
	ShortNone          Shortcut = 0
	ShortCompare0Clear Shortcut = nrf51.TIMER_SHORTS_COMPARE0_CLEAR
	ShortCompare1Clear Shortcut = nrf51.TIMER_SHORTS_COMPARE1_CLEAR
	ShortCompare2Clear Shortcut = nrf51.TIMER_SHORTS_COMPARE2_CLEAR
	ShortCompare3Clear Shortcut = nrf51.TIMER_SHORTS_COMPARE3_CLEAR
	ShortCompare0Stop  Shortcut = nrf51.TIMER_SHORTS_COMPARE0_STOP
	ShortCompare1Stop  Shortcut = nrf51.TIMER_SHORTS_COMPARE1_STOP
	ShortCompare2Stop  Shortcut = nrf51.TIMER_SHORTS_COMPARE2_STOP
	ShortCompare3Stop  Shortcut = nrf51.TIMER_SHORTS_COMPARE3_STOP
	shortcutMask       Shortcut = nrf51.TIMER_SHORTS_ALL
)

// Timer drives one TIMER block in compare mode. The zero value is an
// unconfigured timer: every operation is a no-op until Configure.
//
// A Timer is meant to live as a field of the application's owner struct.
// The registered callback target is not owned and must outlive the timer's
// active use.
type Timer struct {
	configured bool
	id         TimerID
	base       uint32
	irq        int
	cb         binding
	ticks      uint32
}

// Configure binds t to timer id, stops it, disarms shortcuts and interrupts
// and claims its IRQ line in Interrupts. An invalid id leaves t unconfigured.
// Rebinding to a different id first retires the old block.
func (t *Timer) Configure(id TimerID) {
	if id >= TimerCount {
		return
	}
	if t.configured && id != t.id {
		t.release()
	}
	t.id = id
	t.base = nrf51.Timer(int(id))
	t.irq = nrf51.TimerIRQ(int(id))
	t.configured = true

	Interrupts.Claim(t.irq, t, t.handleInterrupt)

	t.Stop()
	t.SetShortcut(ShortNone)
	MustBus().Store(t.base+nrf51.TIMER_INTENCLR, nrf51.TIMER_INTEN_ALL)
}

// release stops the bound block, disarms its interrupt at both ends and
// gives up its dispatcher claim.
func (t *Timer) release() {
	t.Stop()
	t.DisableInterrupt()
	t.DisableIRQ()
	Interrupts.Release(t.irq, t)
}

// SetupOption adjusts QuickSetup.
type SetupOption func(*setupConfig)

type setupConfig struct {
	autoStart bool
}

// WithoutStart leaves the timer stopped after QuickSetup.
func WithoutStart() SetupOption {
	return func(c *setupConfig) {
		c.autoStart = false
	}
}

// QuickSetup programs a periodic compare interrupt: the counter runs at
// 16 MHz / 2^prescaler, matches at compare, clears itself and dispatches
// slot on target. Neither argument is range checked.
func (t *Timer) QuickSetup(prescaler, compare uint32, slot CallbackID, target any, opts ...SetupOption) {
	if !t.configured {
		return
	}
	cfg := setupConfig{autoStart: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	t.Stop()
	t.SetBitMode(t.MaxBitMode())
	t.SetMode(ModeTimer)
	t.SetPrescaler(prescaler)
	t.SetCountLevel(compare)
	t.SetShortcut(ShortCompare0Clear)
	t.Clear()
	t.SetCallback(slot, target)
	t.EnableInterrupt()
	t.EnableIRQ()

	if cfg.autoStart {
		t.Start()
	}
}

// Start triggers the START task.
func (t *Timer) Start() {
	t.task(nrf51.TIMER_START)
}

// Stop triggers the STOP task.
func (t *Timer) Stop() {
	t.task(nrf51.TIMER_STOP)
}

// Clear resets the counter to zero.
func (t *Timer) Clear() {
	t.task(nrf51.TIMER_CLEAR)
}

func (t *Timer) task(offset uint32) {
	if !t.configured {
		return
	}
	MustBus().Store(t.base+offset, 1)
}

// Shutdown retires the timer: stop, forget the callback, disable the IRQ.
// A compare event already latched stays latched.
func (t *Timer) Shutdown() {
	if !t.configured {
		return
	}
	t.Stop()
	t.ClearCallbacks()
	t.DisableIRQ()
	RecordIRQ(EvtShutdown, uint8(t.irq), t.ticks)
}

// SetCallback registers slot on target, replacing the previous pair. The
// swap runs with interrupts masked, so the handler sees either pair whole.
func (t *Timer) SetCallback(slot CallbackID, target any) {
	if !t.configured {
		return
	}
	b := bind(slot, target)
	state := disableInterrupts()
	t.cb = b
	restoreInterrupts(state)
}

// ClearCallbacks drops the registered pair.
func (t *Timer) ClearCallbacks() {
	t.SetCallback(CallbackNone, nil)
}

// ClearCallbackByID drops the registration only if it is for slot.
func (t *Timer) ClearCallbackByID(slot CallbackID) {
	if t.cb.id == slot {
		t.ClearCallbacks()
	}
}

// CallbackID returns the registered slot.
func (t *Timer) CallbackID() CallbackID {
	return t.cb.id
}

// SetPrescaler writes PRESCALER. Valid values are 0 to 9.
func (t *Timer) SetPrescaler(p uint32) {
	t.write(nrf51.TIMER_PRESCALER, p)
}

// Prescaler reads PRESCALER.
func (t *Timer) Prescaler() uint32 {
	return t.read(nrf51.TIMER_PRESCALER)
}

// SetCountLevel writes CC[0].
func (t *Timer) SetCountLevel(v uint32) {
	t.write(nrf51.TIMER_CC, v)
}

// CountLevel reads CC[0].
func (t *Timer) CountLevel() uint32 {
	return t.read(nrf51.TIMER_CC)
}

// SetBitMode writes BITMODE.
func (t *Timer) SetBitMode(m BitMode) {
	t.write(nrf51.TIMER_BITMODE, uint32(m))
}

// BitMode reads BITMODE.
func (t *Timer) BitMode() BitMode {
	return BitMode(t.read(nrf51.TIMER_BITMODE) & 0x3)
}

// MaxBitMode is the widest counter the block supports: TIMER0 is 32 bits,
// TIMER1 and TIMER2 are 16 bits.
func (t *Timer) MaxBitMode() BitMode {
	if t.id == Timer0 {
		return BitMode32
	}
	return BitMode16
}

// SetMode selects timer or counter mode.
func (t *Timer) SetMode(m TimerMode) {
	t.write(nrf51.TIMER_MODE, uint32(m))
}

// Mode reads MODE.
func (t *Timer) Mode() TimerMode {
	return TimerMode(t.read(nrf51.TIMER_MODE) & 0x1)
}

// SetShortcut replaces the SHORTS bits.
func (t *Timer) SetShortcut(s Shortcut) {
	if !t.configured {
		return
	}
	mmio.ReplaceBits(MustBus(), t.base+nrf51.TIMER_SHORTS, uint32(shortcutMask), uint32(s))
}

// Shortcut reads SHORTS.
func (t *Timer) Shortcut() Shortcut {
	return Shortcut(t.read(nrf51.TIMER_SHORTS)) & shortcutMask
}

// EnableInterrupt arms the COMPARE[0] interrupt in the peripheral.
func (t *Timer) EnableInterrupt() {
	t.write(nrf51.TIMER_INTENSET, nrf51.TIMER_INTEN_COMPARE0)
}

// DisableInterrupt disarms the COMPARE[0] interrupt in the peripheral.
func (t *Timer) DisableInterrupt() {
	t.write(nrf51.TIMER_INTENCLR, nrf51.TIMER_INTEN_COMPARE0)
}

// EnableIRQ enables the timer's line at the NVIC.
func (t *Timer) EnableIRQ() {
	if t.configured {
		EnableIRQ(t.irq)
	}
}

// DisableIRQ disables the timer's line at the NVIC.
func (t *Timer) DisableIRQ() {
	if t.configured {
		DisableIRQ(t.irq)
	}
}

// ClearCompareEvent acknowledges COMPARE[0].
func (t *Timer) ClearCompareEvent() {
	t.write(nrf51.TIMER_EVENTS_COMPARE, 0)
}

// Configured reports whether Configure succeeded.
func (t *Timer) Configured() bool {
	return t.configured
}

// ID returns the bound timer.
func (t *Timer) ID() TimerID {
	return t.id
}

// IRQ returns the bound interrupt line, or -1 when unconfigured.
func (t *Timer) IRQ() int {
	if !t.configured {
		return -1
	}
	return t.irq
}

// Ticks returns the number of compare interrupts handled.
func (t *Timer) Ticks() uint32 {
	return loadCount(&t.ticks)
}

// handleInterrupt is claimed in Interrupts. The event is acknowledged after
// the callback so the callback can still observe it.
func (t *Timer) handleInterrupt() {
	t.cb.call()
	incCount(&t.ticks)
	t.ClearCompareEvent()
}

func (t *Timer) write(offset, v uint32) {
	if !t.configured {
		return
	}
	MustBus().Store(t.base+offset, v)
}

func (t *Timer) read(offset uint32) uint32 {
	if !t.configured {
		return 0
	}
	return MustBus().Load(t.base + offset)
}
