//go:build !tinygo

package core

import "runtime"

// spinWait yields so a test goroutine can latch the awaited value
func spinWait() {
	runtime.Gosched()
}
