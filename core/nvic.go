package core

import "yakio/nrf51"

// NVIC adapter. Each operation is a single write of 1<<irq to the matching
// set/clear register; irq outside [0,31] is ignored.

func nvicWrite(offset uint32, irq int) {
	if irq < 0 || irq >= nrf51.IRQCount {
		return
	}
	MustBus().Store(nrf51.NVIC+offset, 1<<uint(irq))
}

// EnableIRQ enables irq at the interrupt controller.
func EnableIRQ(irq int) {
	nvicWrite(nrf51.NVIC_ISER, irq)
}

// DisableIRQ disables irq at the interrupt controller.
func DisableIRQ(irq int) {
	nvicWrite(nrf51.NVIC_ICER, irq)
}

// ClearPendingIRQ drops a latched request for irq.
func ClearPendingIRQ(irq int) {
	nvicWrite(nrf51.NVIC_ICPR, irq)
}

// SetPendingIRQ latches a request for irq as if the peripheral raised it.
func SetPendingIRQ(irq int) {
	nvicWrite(nrf51.NVIC_ISPR, irq)
}

// IRQEnabled reads back the enable bit of irq.
func IRQEnabled(irq int) bool {
	if irq < 0 || irq >= nrf51.IRQCount {
		return false
	}
	return MustBus().Load(nrf51.NVIC+nrf51.NVIC_ISER)&(1<<uint(irq)) != 0
}
