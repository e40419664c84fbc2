package sim

import "yakio/nrf51"

// TimerRunning reports whether timer n has been started and not stopped.
func (b *Board) TimerRunning(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timers[n].running
}

// TimerCounter returns the internal counter of timer n.
func (b *Board) TimerCounter(n int) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timers[n].counter
}

// TimerTasks returns how many START, STOP and CLEAR tasks timer n received.
func (b *Board) TimerTasks(n int) (starts, stops, clears int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := &b.timers[n]
	return t.starts, t.stops, t.clears
}

// CompareEvent returns EVENTS_COMPARE[0] of timer n.
func (b *Board) CompareEvent(n int) uint32 {
	return b.Load(b.timers[n].base + nrf51.TIMER_EVENTS_COMPARE)
}

// FireCompare generates a COMPARE[0] match on timer n: the event latch is
// set, the COMPARE0_CLEAR shortcut is applied, and the interrupt is raised
// when INTEN and the NVIC allow it.
func (b *Board) FireCompare(n int) {
	irq := b.fireCompare(n)
	if irq >= 0 {
		b.deliver(irq)
	}
}

func (b *Board) fireCompare(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := &b.timers[n]
	b.regs[t.base+nrf51.TIMER_EVENTS_COMPARE] = 1
	shorts := b.regs[t.base+nrf51.TIMER_SHORTS]
	if shorts&nrf51.TIMER_SHORTS_COMPARE0_CLEAR != 0 {
		t.counter = 0
	}
	if shorts&nrf51.TIMER_SHORTS_COMPARE0_STOP != 0 {
		t.running = false
	}
	if t.inten&nrf51.TIMER_INTEN_COMPARE0 == 0 {
		return -1
	}
	return b.raise(t.irq)
}

// Step advances timer n by ticks prescaled counts, firing COMPARE[0] each
// time the counter reaches CC[0]. Stopped timers do not count.
func (b *Board) Step(n int, ticks uint32) {
	for i := uint32(0); i < ticks; i++ {
		if !b.stepOnce(n) {
			continue
		}
		b.FireCompare(n)
	}
}

func (b *Board) stepOnce(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := &b.timers[n]
	if !t.running {
		return false
	}
	t.counter = (t.counter + 1) & bitmodeMask(b.regs[t.base+nrf51.TIMER_BITMODE])
	return t.counter == b.regs[t.base+nrf51.TIMER_CC]
}

func bitmodeMask(mode uint32) uint32 {
	switch mode {
	case nrf51.TIMER_BITMODE_08BIT:
		return 0xFF
	case nrf51.TIMER_BITMODE_24BIT:
		return 0xFFFFFF
	case nrf51.TIMER_BITMODE_32BIT:
		return 0xFFFFFFFF
	}
	return 0xFFFF
}

// RNGRunning reports whether the RNG has been started and not stopped.
func (b *Board) RNGRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rngRunning
}

// LatchRandom produces v as the next random byte if the RNG is running. It
// sets VALUE and EVENTS_VALRDY, applies the VALRDY_STOP shortcut and raises
// the RNG interrupt when enabled. It reports whether a value was produced.
func (b *Board) LatchRandom(v uint8) bool {
	irq, ok := b.latchRandom(v)
	if irq >= 0 {
		b.deliver(irq)
	}
	return ok
}

func (b *Board) latchRandom(v uint8) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.rngRunning {
		return -1, false
	}
	b.regs[nrf51.RNG+nrf51.RNG_VALUE] = uint32(v)
	b.regs[nrf51.RNG+nrf51.RNG_EVENTS_VALRDY] = 1
	if b.regs[nrf51.RNG+nrf51.RNG_SHORTS]&nrf51.RNG_SHORTS_VALRDY_STOP != 0 {
		b.rngRunning = false
	}
	if b.rngInten&nrf51.RNG_INTEN_VALRDY == 0 {
		return -1, true
	}
	return b.raise(nrf51.IRQ_RNG), true
}

// IRQEnabled reports whether irq is enabled in the NVIC.
func (b *Board) IRQEnabled(irq int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nvicEnabled&(1<<irq) != 0
}

// IRQPending reports whether irq is latched as pending in the NVIC.
func (b *Board) IRQPending(irq int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nvicPending&(1<<irq) != 0
}

// SetInput drives the IN level of a pin.
func (b *Board) SetInput(pin uint8, high bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if high {
		b.gpioIn |= 1 << pin
	} else {
		b.gpioIn &^= 1 << pin
	}
}

// Out returns the GPIO OUT register.
func (b *Board) Out() uint32 {
	return b.Load(nrf51.GPIO + nrf51.GPIO_OUT)
}

// Dir returns the GPIO DIR register.
func (b *Board) Dir() uint32 {
	return b.Load(nrf51.GPIO + nrf51.GPIO_DIR)
}
