// Package nrf51 holds the nRF51822 register map used by the micro:bit V1 HAL.
//
// Addresses and offsets come from the nRF51 Series Reference Manual v3.0
// (peripheral instance table, section 9) and the ARM Cortex-M0 NVIC
// programmer's model. Nothing here touches hardware.
package nrf51

// BytesInRegister is the width of every peripheral register.
const BytesInRegister = 4

// Peripheral base addresses
const (
	CLOCK  = 0x40000000 // Clock control (shared with POWER and MPU)
	RADIO  = 0x40001000 // 2.4 GHz radio
	UART0  = 0x40002000 // UART
	SPI0   = 0x40003000 // SPI master 0 / TWI0
	SPI1   = 0x40004000 // SPI master 1 / SPIS1 / TWI1
	GPIOTE = 0x40006000 // GPIO tasks and events
	ADC    = 0x40007000 // Analog to digital converter
	TIMER0 = 0x40008000 // Timer 0
	TIMER1 = 0x40009000 // Timer 1
	TIMER2 = 0x4000A000 // Timer 2
	RTC0   = 0x4000B000 // Real time counter 0
	TEMP   = 0x4000C000 // Temperature sensor
	RNG    = 0x4000D000 // Random number generator
	ECB    = 0x4000E000 // AES ECB mode encryption
	AAR    = 0x4000F000 // Accelerated address resolver / CCM
	WDT    = 0x40010000 // Watchdog timer
	RTC1   = 0x40011000 // Real time counter 1
	QDEC   = 0x40012000 // Quadrature decoder
	LPCOMP = 0x40013000 // Low power comparator
	SWI0   = 0x40014000 // Software interrupt 0
	NVMC   = 0x4001E000 // Non volatile memory controller
	PPI    = 0x4001F000 // PPI controller
	FICR   = 0x10000000 // Factory information configuration
	UICR   = 0x10001000 // User information configuration
	GPIO   = 0x50000000 // General purpose input and output
	NVIC   = 0xE000E000 // Nested vectored interrupt controller (SCS base)
)

// IRQ numbers. The nRF51 derives the IRQ number from the peripheral ID,
// which is bits 12..16 of the base address.
const (
	IRQ_CLOCK  = 0x00 // CLOCK, POWER, MPU
	IRQ_RADIO  = 0x01
	IRQ_UART0  = 0x02
	IRQ_SPI0   = 0x03 // SPI0, TWI0
	IRQ_SPI1   = 0x04 // SPI1, SPIS1, TWI1
	IRQ_GPIOTE = 0x06
	IRQ_ADC    = 0x07
	IRQ_TIMER0 = 0x08
	IRQ_TIMER1 = 0x09
	IRQ_TIMER2 = 0x0A
	IRQ_RTC0   = 0x0B
	IRQ_TEMP   = 0x0C
	IRQ_RNG    = 0x0D
	IRQ_ECB    = 0x0E
	IRQ_AAR    = 0x0F // AAR, CCM
	IRQ_WDT    = 0x10
	IRQ_RTC1   = 0x11
	IRQ_QDEC   = 0x12
	IRQ_LPCOMP = 0x13
	IRQ_SWI0   = 0x14
	IRQ_SWI1   = 0x15
	IRQ_SWI2   = 0x16
	IRQ_SWI3   = 0x17
	IRQ_SWI4   = 0x18
	IRQ_SWI5   = 0x19
	IRQ_NVMC   = 0x1E
	IRQ_PPI    = 0x1F

	// IRQCount is the number of external interrupt lines on the Cortex-M0.
	IRQCount = 32
)

// NVIC register offsets (from NVIC base)
const (
	NVIC_ISER = 0x100 // Interrupt set-enable
	NVIC_ICER = 0x180 // Interrupt clear-enable
	NVIC_ISPR = 0x200 // Interrupt set-pending
	NVIC_ICPR = 0x280 // Interrupt clear-pending
	NVIC_IPR0 = 0x400 // Priority 0..3
)

// CLOCK register offsets
const (
	CLOCK_HFCLKSTART   = 0x000 // Start HFCLK crystal oscillator
	CLOCK_HFCLKSTOP    = 0x004 // Stop HFCLK crystal oscillator
	CLOCK_LFCLKSTART   = 0x008 // Start LFCLK source
	CLOCK_LFCLKSTOP    = 0x00C // Stop LFCLK source
	CLOCK_HFCLKSTARTED = 0x100 // HFCLK oscillator started event
	CLOCK_LFCLKSTARTED = 0x104 // LFCLK started event
	CLOCK_HFCLKSTAT    = 0x40C // Which HFCLK source is running
	CLOCK_XTALFREQ     = 0x550 // Crystal frequency
)

// HFClockHz is the 16 MHz crystal that drives TIMER0..2 before the prescaler.
const HFClockHz = 16000000

// TIMER register offsets
const (
	TIMER_START          = 0x000 // Start timer task
	TIMER_STOP           = 0x004 // Stop timer task
	TIMER_COUNT          = 0x008 // Increment timer (counter mode only)
	TIMER_CLEAR          = 0x00C // Clear timer task
	TIMER_SHUTDOWN       = 0x010 // Shut down timer task
	TIMER_CAPTURE0       = 0x040 // Capture timer value to CC[0]
	TIMER_EVENTS_COMPARE = 0x140 // COMPARE[0] event, COMPARE[n] at +4n
	TIMER_SHORTS         = 0x200 // Shortcut register
	TIMER_INTENSET       = 0x304 // Enable interrupt
	TIMER_INTENCLR       = 0x308 // Disable interrupt
	TIMER_MODE           = 0x504 // Timer mode selection
	TIMER_BITMODE        = 0x508 // Counter bit width
	TIMER_PRESCALER      = 0x510 // Prescaler, f = 16MHz / 2^PRESCALER
	TIMER_CC             = 0x540 // CC[0], CC[n] at +4n
	TIMER_CCCount        = 4
)

// TIMER SHORTS bits
const (
	TIMER_SHORTS_COMPARE0_CLEAR = 1 << 0
	TIMER_SHORTS_COMPARE1_CLEAR = 1 << 1
	TIMER_SHORTS_COMPARE2_CLEAR = 1 << 2
	TIMER_SHORTS_COMPARE3_CLEAR = 1 << 3
	TIMER_SHORTS_COMPARE0_STOP  = 1 << 8
	TIMER_SHORTS_COMPARE1_STOP  = 1 << 9
	TIMER_SHORTS_COMPARE2_STOP  = 1 << 10
	TIMER_SHORTS_COMPARE3_STOP  = 1 << 11

	TIMER_SHORTS_ALL = TIMER_SHORTS_COMPARE0_CLEAR | TIMER_SHORTS_COMPARE1_CLEAR |
		TIMER_SHORTS_COMPARE2_CLEAR | TIMER_SHORTS_COMPARE3_CLEAR |
		TIMER_SHORTS_COMPARE0_STOP | TIMER_SHORTS_COMPARE1_STOP |
		TIMER_SHORTS_COMPARE2_STOP | TIMER_SHORTS_COMPARE3_STOP
)

// TIMER INTEN bits
const (
	TIMER_INTEN_COMPARE0 = 1 << 16
	TIMER_INTEN_COMPARE1 = 1 << 17
	TIMER_INTEN_COMPARE2 = 1 << 18
	TIMER_INTEN_COMPARE3 = 1 << 19

	TIMER_INTEN_ALL = TIMER_INTEN_COMPARE0 | TIMER_INTEN_COMPARE1 |
		TIMER_INTEN_COMPARE2 | TIMER_INTEN_COMPARE3
)

// TIMER MODE and BITMODE register values
const (
	TIMER_MODE_TIMER   = 0
	TIMER_MODE_COUNTER = 1

	TIMER_BITMODE_16BIT = 0
	TIMER_BITMODE_08BIT = 1
	TIMER_BITMODE_24BIT = 2
	TIMER_BITMODE_32BIT = 3
)

// RNG register offsets
const (
	RNG_START         = 0x000 // Start generation task
	RNG_STOP          = 0x004 // Stop generation task
	RNG_EVENTS_VALRDY = 0x100 // New value written to VALUE
	RNG_SHORTS        = 0x200 // Shortcut register
	RNG_INTEN         = 0x300 // Enable or disable interrupt
	RNG_INTENSET      = 0x304 // Enable interrupt
	RNG_INTENCLR      = 0x308 // Disable interrupt
	RNG_CONFIG        = 0x504 // Configuration register
	RNG_VALUE         = 0x508 // Output random number
)

// RNG bits
const (
	RNG_SHORTS_VALRDY_STOP = 1 << 0
	RNG_INTEN_VALRDY       = 1 << 0
	RNG_CONFIG_DERCEN      = 1 << 0
)

// GPIO register offsets
const (
	GPIO_OUT     = 0x504 // Write GPIO port
	GPIO_OUTSET  = 0x508 // Set individual bits in GPIO port
	GPIO_OUTCLR  = 0x50C // Clear individual bits in GPIO port
	GPIO_IN      = 0x510 // Read GPIO port
	GPIO_DIR     = 0x514 // Direction of GPIO pins
	GPIO_DIRSET  = 0x518 // DIR set register
	GPIO_DIRCLR  = 0x51C // DIR clear register
	GPIO_PIN_CNF = 0x700 // PIN_CNF[0], PIN_CNF[n] at +4n

	GPIOPinCount = 32
)

// GPIO PIN_CNF fields
const (
	GPIO_CNF_DIR_Pos   = 0
	GPIO_CNF_DIR_Msk   = 0x1 << GPIO_CNF_DIR_Pos
	GPIO_CNF_INPUT_Pos = 1
	GPIO_CNF_INPUT_Msk = 0x1 << GPIO_CNF_INPUT_Pos
	GPIO_CNF_PULL_Pos  = 2
	GPIO_CNF_PULL_Msk  = 0x3 << GPIO_CNF_PULL_Pos
	GPIO_CNF_DRIVE_Pos = 8
	GPIO_CNF_DRIVE_Msk = 0x7 << GPIO_CNF_DRIVE_Pos
	GPIO_CNF_SENSE_Pos = 16
	GPIO_CNF_SENSE_Msk = 0x3 << GPIO_CNF_SENSE_Pos
)

// Timer returns the base address of timer n (0..2), or 0 if n is out of range.
func Timer(n int) uint32 {
	switch n {
	case 0:
		return TIMER0
	case 1:
		return TIMER1
	case 2:
		return TIMER2
	}
	return 0
}

// TimerIRQ returns the IRQ line of timer n (0..2), or -1 if n is out of range.
func TimerIRQ(n int) int {
	switch n {
	case 0:
		return IRQ_TIMER0
	case 1:
		return IRQ_TIMER1
	case 2:
		return IRQ_TIMER2
	}
	return -1
}

// PinCNF returns the address of PIN_CNF[pin].
func PinCNF(pin uint8) uint32 {
	return GPIO + GPIO_PIN_CNF + uint32(pin)*BytesInRegister
}
