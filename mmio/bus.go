// Package mmio is the register access layer. Drivers go through a Bus so the
// same code runs against real hardware and against a simulated register file.
package mmio

// Bus performs 32-bit loads and stores at absolute peripheral addresses.
type Bus interface {
	// Load reads the register at addr
	Load(addr uint32) uint32

	// Store writes v to the register at addr
	Store(addr uint32, v uint32)
}

// SetBits performs a read-modify-write that sets mask.
func SetBits(b Bus, addr, mask uint32) {
	b.Store(addr, b.Load(addr)|mask)
}

// ClearBits performs a read-modify-write that clears mask.
func ClearBits(b Bus, addr, mask uint32) {
	b.Store(addr, b.Load(addr)&^mask)
}

// ReplaceBits clears mask and then ORs in value&mask in a single store.
func ReplaceBits(b Bus, addr, mask, value uint32) {
	b.Store(addr, (b.Load(addr)&^mask)|(value&mask))
}
