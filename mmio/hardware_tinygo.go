//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// Hardware is the memory-mapped bus of the running chip.
type Hardware struct{}

// Load reads a peripheral register with a volatile access
func (Hardware) Load(addr uint32) uint32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(addr))).Get()
}

// Store writes a peripheral register with a volatile access
func (Hardware) Store(addr uint32, v uint32) {
	(*volatile.Register32)(unsafe.Pointer(uintptr(addr))).Set(v)
}
