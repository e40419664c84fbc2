//go:build tinygo

package core

// spinWait is one iteration of a busy-poll
func spinWait() {}
