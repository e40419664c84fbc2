//go:build microbit

package main

import (
	"machine"
)

// The interface chip bridges UART0 to USB at this rate
const serialBaud = 115200

// uartSink writes telemetry frames to UART0
type uartSink struct {
	uart *machine.UART
}

// InitTelemetry configures UART0 on the interface-chip pins
func InitTelemetry() uartSink {
	machine.UART0.Configure(machine.UARTConfig{
		BaudRate: serialBaud,
		TX:       machine.UART_TX_PIN,
		RX:       machine.UART_RX_PIN,
	})
	return uartSink{uart: machine.UART0}
}

// Output implements protocol.FrameSink
func (s uartSink) Output(data []byte) {
	s.uart.Write(data)
}
