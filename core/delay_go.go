//go:build !tinygo

package core

import "time"

// DelayMillis sleeps roughly ms milliseconds.
func DelayMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
