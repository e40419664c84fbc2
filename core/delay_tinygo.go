//go:build tinygo

package core

import "device/arm"

// loopsPerMilli is tuned for a 16 MHz core with the loop overhead folded in
const loopsPerMilli = 1333

// DelayMillis busy-waits roughly ms milliseconds. It is coarse and
// uncalibrated: interrupts taken during the wait stretch it.
func DelayMillis(ms uint32) {
	for ; ms > 0; ms-- {
		for i := 0; i < loopsPerMilli; i++ {
			arm.Asm("nop")
		}
	}
}
