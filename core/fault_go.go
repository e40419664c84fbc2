//go:build !tinygo

package core

func unclaimedInterrupt(irq int) {
	panic("core: unclaimed interrupt " + itoa(irq))
}
