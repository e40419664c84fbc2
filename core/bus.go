package core

import "yakio/mmio"

// Global register bus used by every driver.
var bus mmio.Bus

// SetBus installs the register bus. Target builds install mmio.Hardware from
// init; host tests install a sim.Board.
func SetBus(b mmio.Bus) {
	bus = b
}

// MustBus returns the configured bus or panics if missing.
func MustBus() mmio.Bus {
	if bus == nil {
		panic("register bus not configured")
	}
	return bus
}
