package core

import (
	"yakio/mmio"
	"yakio/nrf51"
)

// Pin is an nRF51 GPIO number. The named constants follow the micro:bit V1
// edge connector.
type Pin uint8

const (
	Pin0    Pin = 3
	Pin1    Pin = 2
	Pin2    Pin = 1
	Pin3    Pin = 4  // also LED col1
	Pin4    Pin = 5  // also LED col2
	Pin5    Pin = 17 // also button A
	Pin6    Pin = 12 // also LED col9
	Pin7    Pin = 11 // also LED col8
	Pin8    Pin = 18
	Pin9    Pin = 10 // also LED col7
	Pin10   Pin = 6  // also LED col3
	Pin11   Pin = 26 // also button B
	Pin12   Pin = 20
	Pin13   Pin = 23
	Pin14   Pin = 22
	Pin15   Pin = 21
	Pin16   Pin = 16
	Pin19   Pin = 0
	Pin20   Pin = 30
	ButtonA     = Pin5
	ButtonB     = Pin11
)

// PinDirection is the PIN_CNF DIR field.
type PinDirection uint32

const (
	PinInput  PinDirection = 0
	PinOutput PinDirection = 1 << nrf51.GPIO_CNF_DIR_Pos
)

// PinInputBuffer is the PIN_CNF INPUT field.
type PinInputBuffer uint32

const (
	InputConnect    PinInputBuffer = 0
	InputDisconnect PinInputBuffer = 1 << nrf51.GPIO_CNF_INPUT_Pos
)

// PinPull is the PIN_CNF PULL field.
type PinPull uint32

const (
	PullDisabled PinPull = 0
	PullDown     PinPull = 1 << nrf51.GPIO_CNF_PULL_Pos
	PullUp       PinPull = 3 << nrf51.GPIO_CNF_PULL_Pos
)

// PinDrive is the PIN_CNF DRIVE field. S is standard, H high drive and D
// disconnected, for '0' then '1'.
type PinDrive uint32

const (
	S0S1 PinDrive = 0 << nrf51.GPIO_CNF_DRIVE_Pos
	H0S1 PinDrive = 1 << nrf51.GPIO_CNF_DRIVE_Pos
	S0H1 PinDrive = 2 << nrf51.GPIO_CNF_DRIVE_Pos
	H0H1 PinDrive = 3 << nrf51.GPIO_CNF_DRIVE_Pos
	D0S1 PinDrive = 4 << nrf51.GPIO_CNF_DRIVE_Pos
	D0H1 PinDrive = 5 << nrf51.GPIO_CNF_DRIVE_Pos
	S0D1 PinDrive = 6 << nrf51.GPIO_CNF_DRIVE_Pos
	H0D1 PinDrive = 7 << nrf51.GPIO_CNF_DRIVE_Pos
)

// externalPullUp reports pins the board pulls up in hardware. Their PULL
// field is left alone and reads as PullUp.
func externalPullUp(p Pin) bool {
	switch p {
	case Pin0, Pin1, Pin2, ButtonA, ButtonB:
		return true
	}
	return false
}

// GPIO drives one pin. The zero value is unconfigured and ignores every call.
type GPIO struct {
	configured bool
	pin        Pin
	cnf        uint32
}

// Configure binds g to pin with direction dir.
func (g *GPIO) Configure(pin Pin, dir PinDirection) {
	if pin >= nrf51.GPIOPinCount {
		return
	}
	g.pin = pin
	g.cnf = nrf51.PinCNF(uint8(pin))
	g.configured = true
	g.SetDirection(dir)
}

// Pin returns the bound pin.
func (g *GPIO) Pin() Pin {
	return g.pin
}

func (g *GPIO) mask() uint32 {
	return 1 << uint(g.pin)
}

// Get reads the IN level. Only meaningful with the input buffer connected.
func (g *GPIO) Get() bool {
	if !g.configured {
		return false
	}
	return MustBus().Load(nrf51.GPIO+nrf51.GPIO_IN)&g.mask() != 0
}

// Set drives the pin high or low.
func (g *GPIO) Set(high bool) {
	if high {
		g.High()
	} else {
		g.Low()
	}
}

// High drives the pin high.
func (g *GPIO) High() {
	if g.configured {
		MustBus().Store(nrf51.GPIO+nrf51.GPIO_OUTSET, g.mask())
	}
}

// Low drives the pin low.
func (g *GPIO) Low() {
	if g.configured {
		MustBus().Store(nrf51.GPIO+nrf51.GPIO_OUTCLR, g.mask())
	}
}

// Toggle inverts the driven level, as read back from OUT.
func (g *GPIO) Toggle() {
	if !g.configured {
		return
	}
	g.Set(MustBus().Load(nrf51.GPIO+nrf51.GPIO_OUT)&g.mask() == 0)
}

// SetDirection writes DIR and connects the input buffer.
func (g *GPIO) SetDirection(dir PinDirection) {
	g.field(nrf51.GPIO_CNF_DIR_Msk, uint32(dir))
	g.SetInputBuffer(InputConnect)
}

// Direction reads DIR back from PIN_CNF.
func (g *GPIO) Direction() PinDirection {
	return PinDirection(g.read(nrf51.GPIO_CNF_DIR_Msk))
}

// SetInputBuffer writes INPUT.
func (g *GPIO) SetInputBuffer(b PinInputBuffer) {
	g.field(nrf51.GPIO_CNF_INPUT_Msk, uint32(b))
}

// InputBuffer reads INPUT back from PIN_CNF.
func (g *GPIO) InputBuffer() PinInputBuffer {
	return PinInputBuffer(g.read(nrf51.GPIO_CNF_INPUT_Msk))
}

// SetPull writes PULL, except on pins with a board pull-up.
func (g *GPIO) SetPull(p PinPull) {
	if externalPullUp(g.pin) {
		return
	}
	g.field(nrf51.GPIO_CNF_PULL_Msk, uint32(p))
}

// Pull reads PULL back from PIN_CNF.
func (g *GPIO) Pull() PinPull {
	if !g.configured {
		return PullDisabled
	}
	if externalPullUp(g.pin) {
		return PullUp
	}
	switch p := PinPull(g.read(nrf51.GPIO_CNF_PULL_Msk)); p {
	case PullDown, PullUp:
		return p
	}
	return PullDisabled
}

// SetDrive writes DRIVE.
func (g *GPIO) SetDrive(d PinDrive) {
	g.field(nrf51.GPIO_CNF_DRIVE_Msk, uint32(d))
}

// Drive reads DRIVE back from PIN_CNF.
func (g *GPIO) Drive() PinDrive {
	return PinDrive(g.read(nrf51.GPIO_CNF_DRIVE_Msk))
}

// Configured reports whether Configure succeeded.
func (g *GPIO) Configured() bool {
	return g.configured
}

func (g *GPIO) field(mask, value uint32) {
	if !g.configured {
		return
	}
	mmio.ReplaceBits(MustBus(), g.cnf, mask, value)
}

func (g *GPIO) read(mask uint32) uint32 {
	if !g.configured {
		return 0
	}
	return MustBus().Load(g.cnf) & mask
}
