// Package monitor consumes the board's telemetry stream and prints it.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"yakio/host/serial"
	"yakio/protocol"
)

const (
	fifoSize  = 1024
	readChunk = 256
)

// Options controls what the monitor prints
type Options struct {
	// Render draws MsgFrame bitmaps as a 5x5 grid
	Render bool

	// Quiet drops heartbeat messages
	Quiet bool

	// StopOnEOF ends Run at io.EOF. Live ports report EOF on a read
	// timeout, so this is only set when replaying a capture.
	StopOnEOF bool

	// Errors receives decode errors. Nil discards them.
	Errors io.Writer
}

// Stats summarises a session
type Stats struct {
	Messages uint32
	Frames   uint32
	Lost     uint32
	Resyncs  uint32
	Errors   uint32
}

// Monitor reads frames from a port and writes one line per message to out
type Monitor struct {
	port serial.Port
	out  io.Writer
	opts Options

	fifo     *protocol.FifoBuffer
	decoder  protocol.Decoder
	messages uint32
	errors   uint32
}

// New returns a monitor reading from port
func New(port serial.Port, out io.Writer, opts Options) *Monitor {
	if opts.Errors == nil {
		opts.Errors = io.Discard
	}
	return &Monitor{
		port: port,
		out:  out,
		opts: opts,
		fifo: protocol.NewFifoBuffer(fifoSize),
	}
}

// Run reads until ctx is done or the port fails. Closing the port is the
// way to unblock a pending read; a read error after cancellation is not
// reported.
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, readChunk)
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := m.port.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, io.EOF) {
			if m.opts.StopOnEOF {
				return nil
			}
			continue
		}
		return fmt.Errorf("monitor: read: %w", err)
	}
}

// Feed pushes raw bytes through the frame decoder
func (m *Monitor) Feed(data []byte) {
	for len(data) > 0 {
		n := m.fifo.Write(data)
		data = data[n:]
		m.decode()
		if n == 0 && m.fifo.Free() == 0 {
			// decoder cannot make progress on a full buffer
			m.fifo.Pop(m.fifo.Available())
		}
	}
}

func (m *Monitor) decode() {
	err := m.decoder.Feed(m.fifo, m.handle)
	if err == nil {
		return
	}
	m.errors++
	fmt.Fprintf(m.opts.Errors, "monitor: %v\n", err)
}

func (m *Monitor) handle(msg protocol.Message) {
	m.messages++
	switch msg.ID {
	case protocol.MsgLog:
		fmt.Fprintf(m.out, "log: %s\n", msg.Text)
	case protocol.MsgRandom:
		fmt.Fprintf(m.out, "random: %d\n", msg.Value)
	case protocol.MsgFrame:
		if m.opts.Render {
			fmt.Fprint(m.out, RenderFrame(msg.Value))
		} else {
			fmt.Fprintf(m.out, "frame: 0x%07x\n", msg.Value)
		}
	case protocol.MsgButton:
		fmt.Fprintf(m.out, "button %s: %d\n", ButtonName(msg.Value), msg.Count)
	case protocol.MsgHeartbeat:
		if !m.opts.Quiet {
			fmt.Fprintf(m.out, "heartbeat: %d\n", msg.Value)
		}
	}
}

// Stats returns the counters for the session so far
func (m *Monitor) Stats() Stats {
	return Stats{
		Messages: m.messages,
		Frames:   m.decoder.Frames,
		Lost:     m.decoder.Lost,
		Resyncs:  m.decoder.Resyncs,
		Errors:   m.errors,
	}
}

// Close closes the underlying port
func (m *Monitor) Close() error {
	return m.port.Close()
}

// ButtonName maps the MsgButton index to the label printed on the board
func ButtonName(button uint32) string {
	switch button {
	case 0:
		return "A"
	case 1:
		return "B"
	}
	return fmt.Sprintf("%d", button)
}

// RenderFrame draws a 25-bit image, bit 24 at the top left, as five rows of
// '#' (lit) and '.' (dark).
func RenderFrame(bits uint32) string {
	var sb strings.Builder
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if bits>>uint(24-row*5-col)&1 != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
