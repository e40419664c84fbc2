// Package sim is a host-side model of the nRF51822 registers the HAL drives.
//
// Board implements mmio.Bus. Plain registers behave as storage; SET/CLR
// registers, tasks and events follow the reference manual closely enough for
// driver tests. Interrupts that are enabled both in the peripheral and in the
// NVIC are delivered synchronously through OnIRQ, which tests normally point
// at core.Interrupts.Dispatch.
package sim

import (
	"sync"

	"yakio/nrf51"
)

// Write is one recorded store.
type Write struct {
	Addr  uint32
	Value uint32
}

type timerState struct {
	base    uint32
	irq     int
	running bool
	counter uint32
	inten   uint32
	starts  int
	stops   int
	clears  int
}

// Board is a simulated nRF51822. The zero value is not usable; call New.
type Board struct {
	mu   sync.Mutex
	regs map[uint32]uint32

	gpioOut uint32
	gpioDir uint32
	gpioIn  uint32

	nvicEnabled uint32
	nvicPending uint32

	timers [3]timerState

	rngRunning bool
	rngInten   uint32

	writes []Write
	record bool

	// OnIRQ is called, without the board lock held, whenever an enabled
	// interrupt is raised.
	OnIRQ func(irq int)
}

// New returns a board in its reset state. Button inputs read high, as the
// micro:bit buttons have external pull-ups.
func New() *Board {
	b := &Board{
		regs:   make(map[uint32]uint32),
		gpioIn: 1<<17 | 1<<26,
		record: true,
	}
	for n := range b.timers {
		b.timers[n] = timerState{base: nrf51.Timer(n), irq: nrf51.TimerIRQ(n)}
	}
	return b
}

func (b *Board) timerFor(addr uint32) (*timerState, uint32) {
	for n := range b.timers {
		t := &b.timers[n]
		if addr >= t.base && addr < t.base+0x1000 {
			return t, addr - t.base
		}
	}
	return nil, 0
}

// Load implements mmio.Bus
func (b *Board) Load(addr uint32) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch addr {
	case nrf51.GPIO + nrf51.GPIO_OUT, nrf51.GPIO + nrf51.GPIO_OUTSET, nrf51.GPIO + nrf51.GPIO_OUTCLR:
		return b.gpioOut
	case nrf51.GPIO + nrf51.GPIO_DIR, nrf51.GPIO + nrf51.GPIO_DIRSET, nrf51.GPIO + nrf51.GPIO_DIRCLR:
		return b.gpioDir
	case nrf51.GPIO + nrf51.GPIO_IN:
		return b.gpioIn
	case nrf51.NVIC + nrf51.NVIC_ISER, nrf51.NVIC + nrf51.NVIC_ICER:
		return b.nvicEnabled
	case nrf51.NVIC + nrf51.NVIC_ISPR, nrf51.NVIC + nrf51.NVIC_ICPR:
		return b.nvicPending
	case nrf51.RNG + nrf51.RNG_INTEN, nrf51.RNG + nrf51.RNG_INTENSET, nrf51.RNG + nrf51.RNG_INTENCLR:
		return b.rngInten
	}
	if t, off := b.timerFor(addr); t != nil {
		switch off {
		case nrf51.TIMER_INTENSET, nrf51.TIMER_INTENCLR:
			return t.inten
		}
	}
	return b.regs[addr]
}

// Store implements mmio.Bus
func (b *Board) Store(addr uint32, v uint32) {
	irq := b.store(addr, v)
	if irq >= 0 {
		b.deliver(irq)
	}
}

func (b *Board) store(addr uint32, v uint32) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.record {
		b.writes = append(b.writes, Write{Addr: addr, Value: v})
	}

	switch addr {
	case nrf51.GPIO + nrf51.GPIO_OUT:
		b.gpioOut = v
		return -1
	case nrf51.GPIO + nrf51.GPIO_OUTSET:
		b.gpioOut |= v
		return -1
	case nrf51.GPIO + nrf51.GPIO_OUTCLR:
		b.gpioOut &^= v
		return -1
	case nrf51.GPIO + nrf51.GPIO_DIR:
		b.setDir(v)
		return -1
	case nrf51.GPIO + nrf51.GPIO_DIRSET:
		b.setDir(b.gpioDir | v)
		return -1
	case nrf51.GPIO + nrf51.GPIO_DIRCLR:
		b.setDir(b.gpioDir &^ v)
		return -1
	case nrf51.GPIO + nrf51.GPIO_IN:
		return -1
	case nrf51.NVIC + nrf51.NVIC_ISER:
		b.nvicEnabled |= v
		return b.pendingEnabled()
	case nrf51.NVIC + nrf51.NVIC_ICER:
		b.nvicEnabled &^= v
		return -1
	case nrf51.NVIC + nrf51.NVIC_ISPR:
		b.nvicPending |= v
		return b.pendingEnabled()
	case nrf51.NVIC + nrf51.NVIC_ICPR:
		b.nvicPending &^= v
		return -1
	case nrf51.RNG + nrf51.RNG_START:
		if v != 0 {
			b.rngRunning = true
		}
		return -1
	case nrf51.RNG + nrf51.RNG_STOP:
		if v != 0 {
			b.rngRunning = false
		}
		return -1
	case nrf51.RNG + nrf51.RNG_INTEN:
		b.rngInten = v
		return -1
	case nrf51.RNG + nrf51.RNG_INTENSET:
		b.rngInten |= v
		return -1
	case nrf51.RNG + nrf51.RNG_INTENCLR:
		b.rngInten &^= v
		return -1
	}

	if pin, ok := cnfPin(addr); ok {
		b.regs[addr] = v
		if v&nrf51.GPIO_CNF_DIR_Msk != 0 {
			b.gpioDir |= 1 << pin
		} else {
			b.gpioDir &^= 1 << pin
		}
		return -1
	}

	if t, off := b.timerFor(addr); t != nil {
		switch off {
		case nrf51.TIMER_START:
			if v != 0 {
				t.running = true
				t.starts++
			}
			return -1
		case nrf51.TIMER_STOP, nrf51.TIMER_SHUTDOWN:
			if v != 0 {
				t.running = false
				t.stops++
			}
			return -1
		case nrf51.TIMER_CLEAR:
			if v != 0 {
				t.counter = 0
				t.clears++
			}
			return -1
		case nrf51.TIMER_INTENSET:
			t.inten |= v
			return -1
		case nrf51.TIMER_INTENCLR:
			t.inten &^= v
			return -1
		}
	}

	b.regs[addr] = v
	return -1
}

func (b *Board) setDir(v uint32) {
	b.gpioDir = v
	for pin := uint8(0); pin < nrf51.GPIOPinCount; pin++ {
		addr := nrf51.PinCNF(pin)
		if v&(1<<pin) != 0 {
			b.regs[addr] |= nrf51.GPIO_CNF_DIR_Msk
		} else {
			b.regs[addr] &^= nrf51.GPIO_CNF_DIR_Msk
		}
	}
}

func cnfPin(addr uint32) (uint8, bool) {
	start := uint32(nrf51.GPIO + nrf51.GPIO_PIN_CNF)
	if addr < start || addr >= start+nrf51.GPIOPinCount*nrf51.BytesInRegister {
		return 0, false
	}
	return uint8((addr - start) / nrf51.BytesInRegister), true
}

// pendingEnabled returns the lowest pending interrupt that is enabled, or -1.
// The caller holds the lock.
func (b *Board) pendingEnabled() int {
	ready := b.nvicPending & b.nvicEnabled
	if ready == 0 {
		return -1
	}
	for irq := 0; irq < nrf51.IRQCount; irq++ {
		if ready&(1<<irq) != 0 {
			return irq
		}
	}
	return -1
}

// raise latches irq as pending and returns it if it can be taken now.
// The caller holds the lock.
func (b *Board) raise(irq int) int {
	b.nvicPending |= 1 << irq
	if b.nvicEnabled&(1<<irq) == 0 {
		return -1
	}
	return irq
}

// deliver takes a pending interrupt the way the core would: clear pending,
// run the handler to completion.
func (b *Board) deliver(irq int) {
	b.mu.Lock()
	if b.nvicPending&b.nvicEnabled&(1<<irq) == 0 {
		b.mu.Unlock()
		return
	}
	b.nvicPending &^= 1 << irq
	handler := b.OnIRQ
	b.mu.Unlock()

	if handler != nil {
		handler(irq)
	}
}

// SetRecording turns the write log on or off.
func (b *Board) SetRecording(on bool) {
	b.mu.Lock()
	b.record = on
	b.mu.Unlock()
}

// Writes returns a copy of the write log.
func (b *Board) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Write, len(b.writes))
	copy(out, b.writes)
	return out
}

// ResetWrites empties the write log.
func (b *Board) ResetWrites() {
	b.mu.Lock()
	b.writes = b.writes[:0]
	b.mu.Unlock()
}

// Peek reads a register without side effects on the write log.
func (b *Board) Peek(addr uint32) uint32 {
	return b.Load(addr)
}

// Poke stores a register value directly, bypassing recording and side effects.
func (b *Board) Poke(addr uint32, v uint32) {
	b.mu.Lock()
	b.regs[addr] = v
	b.mu.Unlock()
}
