package core

import "yakio/nrf51"

// Dispatcher maps IRQ numbers to the driver handlers that claimed them.
// Vector trampolines call Dispatch with a fixed irq; drivers Claim the line
// when they are configured. Replacement is last-writer-wins.
type Dispatcher struct {
	handlers [nrf51.IRQCount]func()
	owners   [nrf51.IRQCount]any
	counts   [nrf51.IRQCount]uint32

	// Replaced counts claims that displaced a different owner.
	Replaced uint32

	// Unclaimed runs for an irq nobody claimed. Nil selects the default
	// handler, which never returns on the board.
	Unclaimed func(irq int)
}

// Interrupts is the process-wide dispatcher. There is one interrupt
// controller, so there is one table.
var Interrupts = &Dispatcher{}

// Claim installs h for irq on behalf of owner and returns the previous
// handler. A claim by a different owner than the current one is logged.
func (d *Dispatcher) Claim(irq int, owner any, h func()) func() {
	if irq < 0 || irq >= nrf51.IRQCount {
		return nil
	}
	state := disableInterrupts()
	prev := d.handlers[irq]
	prevOwner := d.owners[irq]
	d.handlers[irq] = h
	d.owners[irq] = owner
	replaced := prev != nil && prevOwner != owner
	if replaced {
		d.Replaced++
		RecordIRQ(EvtReplaced, uint8(irq), d.Replaced)
	}
	restoreInterrupts(state)

	if replaced {
		DebugPrintln("[IRQ] irq " + itoa(irq) + ": handler replaced")
	}
	return prev
}

// Release removes the handler for irq if owner holds it.
func (d *Dispatcher) Release(irq int, owner any) {
	if irq < 0 || irq >= nrf51.IRQCount {
		return
	}
	state := disableInterrupts()
	if d.owners[irq] == owner {
		d.handlers[irq] = nil
		d.owners[irq] = nil
	}
	restoreInterrupts(state)
}

// Owner returns the current owner of irq.
func (d *Dispatcher) Owner(irq int) any {
	if irq < 0 || irq >= nrf51.IRQCount {
		return nil
	}
	return d.owners[irq]
}

// Count returns how many times irq has been dispatched to a handler.
func (d *Dispatcher) Count(irq int) uint32 {
	if irq < 0 || irq >= nrf51.IRQCount {
		return 0
	}
	return d.counts[irq]
}

// Dispatch runs the handler for irq. It is the body of every trampoline.
func (d *Dispatcher) Dispatch(irq int) {
	if irq < 0 || irq >= nrf51.IRQCount {
		return
	}
	h := d.handlers[irq]
	if h == nil {
		RecordIRQ(EvtUnclaimed, uint8(irq), 0)
		DebugAsync("[IRQ] irq " + itoa(irq) + ": unclaimed")
		if d.Unclaimed != nil {
			d.Unclaimed(irq)
			return
		}
		unclaimedInterrupt(irq)
		return
	}
	d.counts[irq]++
	RecordIRQ(EvtDispatch, uint8(irq), d.counts[irq])
	h()
}

// Reset drops every claim and counter.
func (d *Dispatcher) Reset() {
	state := disableInterrupts()
	*d = Dispatcher{Unclaimed: d.Unclaimed}
	restoreInterrupts(state)
}
