//go:build microbit

// Package vectors connects the interrupt vector table to core.Interrupts.
package vectors

import (
	"device/nrf"
	"runtime/interrupt"

	"yakio/core"
	"yakio/nrf51"
)

// Install points the TIMER0..2 and RNG vectors at core.Interrupts.
// The NVIC enable bits are left to the drivers.
func Install() {
	interrupt.New(nrf.IRQ_TIMER0, func(interrupt.Interrupt) {
		core.Interrupts.Dispatch(nrf51.IRQ_TIMER0)
	})
	interrupt.New(nrf.IRQ_TIMER1, func(interrupt.Interrupt) {
		core.Interrupts.Dispatch(nrf51.IRQ_TIMER1)
	})
	interrupt.New(nrf.IRQ_TIMER2, func(interrupt.Interrupt) {
		core.Interrupts.Dispatch(nrf51.IRQ_TIMER2)
	})
	interrupt.New(nrf.IRQ_RNG, func(interrupt.Interrupt) {
		core.Interrupts.Dispatch(nrf51.IRQ_RNG)
	})
}
