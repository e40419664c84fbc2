package core

import (
	"testing"

	"yakio/sim"
)

// setupBoard installs a fresh simulated board and routes its interrupts
// through a clean Interrupts table.
func setupBoard(t *testing.T) *sim.Board {
	t.Helper()
	b := sim.New()
	SetBus(b)
	Interrupts.Reset()
	Interrupts.Unclaimed = nil
	b.OnIRQ = Interrupts.Dispatch
	ClearIRQRing()
	return b
}

// probe implements every callback hook and counts calls
type probe struct {
	calls [6]int
}

func (p *probe) Callback0() { p.calls[Callback0]++ }
func (p *probe) Callback1() { p.calls[Callback1]++ }
func (p *probe) Callback2() { p.calls[Callback2]++ }
func (p *probe) Callback3() { p.calls[Callback3]++ }
func (p *probe) Heartbeat() { p.calls[Heartbeat]++ }

// only reports whether slot was called n times and nothing else was called
func (p *probe) only(slot CallbackID, n int) bool {
	for id, c := range p.calls {
		if CallbackID(id) == slot {
			if c != n {
				return false
			}
		} else if c != 0 {
			return false
		}
	}
	return true
}

// captureDebug enables debug output into a slice for the test's duration
func captureDebug(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(true)
	t.Cleanup(func() {
		SetDebugWriter(func(string) {})
		SetDebugEnabled(false)
	})
	return &lines
}
