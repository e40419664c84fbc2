//go:build !tinygo

package core

// loadCount reads a counter (regular Go implementation)
func loadCount(p *uint32) uint32 {
	return *p
}

// incCount bumps a counter (regular Go implementation)
func incCount(p *uint32) {
	*p++
}
