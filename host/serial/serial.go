// Package serial opens the board's USB serial link for the host tools.
package serial

import (
	"io"
)

// Port is the byte stream the monitor reads telemetry from.
// NativePort is backed by github.com/tarm/serial; tests supply their own.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. The micro:bit interface chip bridges UART0 at 115200.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is the UART0 rate the firmware configures
const DefaultBaud = 115200

// DefaultConfig returns the configuration for a micro:bit on device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}
