//go:build tinygo

package core

import "sync/atomic"

// loadCount reads a counter written from interrupt context
func loadCount(p *uint32) uint32 {
	return atomic.LoadUint32(p)
}

// incCount bumps a counter from interrupt context
func incCount(p *uint32) {
	atomic.AddUint32(p, 1)
}
