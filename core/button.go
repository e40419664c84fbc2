package core

// Input is a readable digital line. *GPIO implements it.
type Input interface {
	Get() bool
}

// Debouncer turns samples of an active-low button into press events. A press
// counts only once the button has read low for MinTicks consecutive samples
// and is then released. The event stays latched until Take.
//
// Sample runs in the heartbeat; Take runs in the main loop.
type Debouncer struct {
	In       Input
	MinTicks uint32

	count   uint32
	down    bool
	pressed bool
}

// Sample reads the input once.
func (d *Debouncer) Sample() {
	if d.In == nil {
		return
	}
	if !d.In.Get() {
		if d.count < d.MinTicks {
			d.count++
		}
		d.down = d.count >= d.MinTicks
		return
	}
	if d.count >= d.MinTicks && d.count > 0 {
		d.pressed = true
	}
	d.count = 0
	d.down = false
}

// Held reports whether the button is currently held past MinTicks.
func (d *Debouncer) Held() bool {
	return d.down
}

// Pressed reports a latched press without consuming it.
func (d *Debouncer) Pressed() bool {
	return d.pressed
}

// Take consumes a latched press. It is safe against a concurrent Sample
// from the heartbeat.
func (d *Debouncer) Take() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if !d.pressed {
		return false
	}
	d.pressed = false
	return true
}

// Edge reports release transitions of an active-low button with no
// debouncing, so contact bounce can produce several events per press.
type Edge struct {
	In Input

	last    bool
	primed  bool
	pressed bool
}

// Sample reads the input once.
func (e *Edge) Sample() {
	if e.In == nil {
		return
	}
	level := e.In.Get()
	if e.primed && level && !e.last {
		e.pressed = true
	}
	e.last = level
	e.primed = true
}

// Take consumes a latched release.
func (e *Edge) Take() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if !e.pressed {
		return false
	}
	e.pressed = false
	return true
}
