//go:build !tinygo

package core

// State is a placeholder for interrupt state on regular Go
type State uintptr

// criticalDepth counts nested critical sections so tests can check that
// registration code runs with interrupts masked.
var criticalDepth int

// disableInterrupts enters a critical section (bookkeeping only on regular Go)
func disableInterrupts() State {
	criticalDepth++
	return State(criticalDepth - 1)
}

// restoreInterrupts leaves the critical section entered by disableInterrupts
func restoreInterrupts(state State) {
	criticalDepth = int(state)
}

// inCriticalSection reports whether a critical section is open
func inCriticalSection() bool {
	return criticalDepth > 0
}
