//go:build tinygo

package core

// unclaimedInterrupt is the default handler. It never returns.
func unclaimedInterrupt(irq int) {
	for {
	}
}
