package core

import (
	"yakio/mmio"
	"yakio/nrf51"
)

// RNG drives the random number generator. There is one RNG block, so the
// last RNG to Configure owns its interrupt line.
type RNG struct {
	configured bool
	cb         binding
}

// Configure claims the RNG interrupt and disarms the VALRDY shortcut.
func (r *RNG) Configure() {
	r.configured = true
	Interrupts.Claim(nrf51.IRQ_RNG, r, r.handleInterrupt)
	mmio.ClearBits(MustBus(), nrf51.RNG+nrf51.RNG_SHORTS, nrf51.RNG_SHORTS_VALRDY_STOP)
}

// Start clears the ready latch and starts generation.
func (r *RNG) Start() {
	if !r.configured {
		return
	}
	b := MustBus()
	b.Store(nrf51.RNG+nrf51.RNG_EVENTS_VALRDY, 0)
	b.Store(nrf51.RNG+nrf51.RNG_START, 1)
}

// Stop halts generation.
func (r *RNG) Stop() {
	if !r.configured {
		return
	}
	MustBus().Store(nrf51.RNG+nrf51.RNG_STOP, 1)
}

// GetValue spins until a value is ready, consumes and returns it.
// It never returns if the generator is stopped and no value is latched.
func (r *RNG) GetValue() uint8 {
	if !r.configured {
		return 0
	}
	b := MustBus()
	for b.Load(nrf51.RNG+nrf51.RNG_EVENTS_VALRDY) == 0 {
		spinWait()
	}
	return r.take(b)
}

// TryValue consumes the latched value if there is one.
func (r *RNG) TryValue() (uint8, bool) {
	if !r.configured {
		return 0, false
	}
	b := MustBus()
	if b.Load(nrf51.RNG+nrf51.RNG_EVENTS_VALRDY) == 0 {
		return 0, false
	}
	return r.take(b), true
}

func (r *RNG) take(b mmio.Bus) uint8 {
	v := uint8(b.Load(nrf51.RNG + nrf51.RNG_VALUE))
	b.Store(nrf51.RNG+nrf51.RNG_EVENTS_VALRDY, 0)
	return v
}

// SetCallback registers slot on target for VALRDY interrupts and enables
// them in the peripheral and the NVIC. The RNG has no heartbeat, so the
// Heartbeat slot is refused.
func (r *RNG) SetCallback(slot CallbackID, target any) {
	if !r.configured || slot == Heartbeat {
		return
	}
	b := bind(slot, target)
	state := disableInterrupts()
	r.cb = b
	restoreInterrupts(state)

	MustBus().Store(nrf51.RNG+nrf51.RNG_INTENSET, nrf51.RNG_INTEN_VALRDY)
	EnableIRQ(nrf51.IRQ_RNG)
}

// ClearCallbacks drops the registered pair. Interrupts stay armed.
func (r *RNG) ClearCallbacks() {
	if !r.configured {
		return
	}
	state := disableInterrupts()
	r.cb = binding{}
	restoreInterrupts(state)
}

// CallbackID returns the registered slot.
func (r *RNG) CallbackID() CallbackID {
	return r.cb.id
}

// SetErrorCorrection turns bias removal (CONFIG.DERCEN) on or off. Only
// change it while stopped.
func (r *RNG) SetErrorCorrection(enabled bool) {
	if !r.configured {
		return
	}
	var v uint32
	if enabled {
		v = nrf51.RNG_CONFIG_DERCEN
	}
	mmio.ReplaceBits(MustBus(), nrf51.RNG+nrf51.RNG_CONFIG, nrf51.RNG_CONFIG_DERCEN, v)
}

// ErrorCorrection reports whether bias removal is on.
func (r *RNG) ErrorCorrection() bool {
	if !r.configured {
		return false
	}
	return MustBus().Load(nrf51.RNG+nrf51.RNG_CONFIG)&nrf51.RNG_CONFIG_DERCEN != 0
}

// EnableIRQ enables the RNG line at the NVIC.
func (r *RNG) EnableIRQ() {
	if r.configured {
		EnableIRQ(nrf51.IRQ_RNG)
	}
}

// DisableIRQ disables the RNG line at the NVIC.
func (r *RNG) DisableIRQ() {
	if r.configured {
		DisableIRQ(nrf51.IRQ_RNG)
	}
}

// Shutdown stops generation, forgets the callback and disables the IRQ.
func (r *RNG) Shutdown() {
	if !r.configured {
		return
	}
	r.Stop()
	r.ClearCallbacks()
	r.DisableIRQ()
	RecordIRQ(EvtShutdown, nrf51.IRQ_RNG, 0)
}

// Configured reports whether Configure ran.
func (r *RNG) Configured() bool {
	return r.configured
}

// handleInterrupt dispatches VALRDY. The callback is expected to consume the
// value; with no callback bound the latch is dropped here so the line does
// not stay asserted.
func (r *RNG) handleInterrupt() {
	if r.cb.fn == nil {
		MustBus().Store(nrf51.RNG+nrf51.RNG_EVENTS_VALRDY, 0)
		return
	}
	r.cb.call()
}
