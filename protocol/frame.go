package protocol

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MessageID identifies a telemetry message
type MessageID uint8

const (
	MsgLog       MessageID = 1 // text
	MsgRandom    MessageID = 2 // value
	MsgFrame     MessageID = 3 // 25-bit LED bitmap, bit 24 is (1,1)
	MsgButton    MessageID = 4 // button, press count
	MsgHeartbeat MessageID = 5 // heartbeat ticks
)

// String returns the message name
func (id MessageID) String() string {
	switch id {
	case MsgLog:
		return "log"
	case MsgRandom:
		return "random"
	case MsgFrame:
		return "frame"
	case MsgButton:
		return "button"
	case MsgHeartbeat:
		return "heartbeat"
	}
	return fmt.Sprintf("msg(%d)", uint8(id))
}

// Message is one decoded telemetry message
type Message struct {
	ID    MessageID
	Seq   uint8  // Low nibble of the carrying frame's sequence byte
	Text  string // MsgLog
	Value uint32 // MsgRandom value, MsgFrame bitmap, MsgButton button, MsgHeartbeat ticks
	Count uint32 // MsgButton
}

// Encoder frames messages for the board-to-host link. It is not safe for
// concurrent use; the firmware encodes from its main loop only.
type Encoder struct {
	out     FrameSink
	scratch ScratchOutput
	seq     uint8
}

// NewEncoder returns an encoder writing complete frames to out
func NewEncoder(out FrameSink) *Encoder {
	return &Encoder{out: out}
}

// Seq returns the sequence number the next frame will carry
func (e *Encoder) Seq() uint8 {
	return MessageDest | e.seq&MessageSeqMask
}

// EncodeFrame builds one frame from the payload written by body and sends
// it. Nothing is sent if the frame would exceed MessageLengthMax.
func (e *Encoder) EncodeFrame(body func(output OutputBuffer)) error {
	s := &e.scratch
	s.Reset()

	s.Output([]byte{0, e.Seq()})
	body(s)

	length := s.CurPosition() + MessageTrailerSize
	if length > MessageLengthMax || s.Overflowed() {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}
	s.Update(MessagePositionLen, uint8(length))

	var trailer [MessageTrailerSize]byte
	s.Output(appendCRC(trailer[:0], s.Result()))

	e.out.Output(s.Result())
	e.seq = (e.seq + 1) & MessageSeqMask
	return nil
}

// Log sends a MsgLog. Text longer than a frame can carry is truncated.
func (e *Encoder) Log(text string) error {
	// room for the id and the length prefix
	if max := MessagePayloadMax - 3; len(text) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return e.EncodeFrame(func(out OutputBuffer) {
		EncodeVLQUint(out, uint32(MsgLog))
		EncodeVLQString(out, text)
	})
}

// Random sends a MsgRandom
func (e *Encoder) Random(v uint8) error {
	return e.send(MsgRandom, uint32(v))
}

// Frame sends a MsgFrame
func (e *Encoder) Frame(bits uint32) error {
	return e.send(MsgFrame, bits&0x1FFFFFF)
}

// Heartbeat sends a MsgHeartbeat
func (e *Encoder) Heartbeat(ticks uint32) error {
	return e.send(MsgHeartbeat, ticks)
}

// Button sends a MsgButton
func (e *Encoder) Button(button uint8, count uint32) error {
	return e.send(MsgButton, uint32(button), count)
}

func (e *Encoder) send(id MessageID, args ...uint32) error {
	return e.EncodeFrame(func(out OutputBuffer) {
		EncodeVLQUint(out, uint32(id))
		for _, a := range args {
			EncodeVLQUint(out, a)
		}
	})
}

// DecodeMessages parses every message in a frame payload
func DecodeMessages(payload []byte, seq uint8, handle func(Message)) error {
	for len(payload) > 0 {
		id, err := DecodeVLQUint(&payload)
		if err != nil {
			return err
		}
		m := Message{ID: MessageID(id), Seq: seq & MessageSeqMask}
		switch m.ID {
		case MsgLog:
			m.Text, err = DecodeVLQString(&payload)
		case MsgRandom, MsgFrame, MsgHeartbeat:
			m.Value, err = DecodeVLQUint(&payload)
		case MsgButton:
			m.Value, err = DecodeVLQUint(&payload)
			if err == nil {
				m.Count, err = DecodeVLQUint(&payload)
			}
		default:
			return fmt.Errorf("%w: %d", ErrUnknownMessage, id)
		}
		if err != nil {
			return fmt.Errorf("decode %v: %w", m.ID, err)
		}
		if handle != nil {
			handle(m)
		}
	}
	return nil
}

// Decoder extracts frames from a byte stream and resynchronises on the sync
// byte after a corrupt frame.
type Decoder struct {
	unsynced bool
	started  bool
	expected uint8

	Frames  uint32 // Frames accepted
	Resyncs uint32 // Times the stream was dropped up to a sync byte
	Lost    uint32 // Frames missing according to the sequence numbers
}

// Feed decodes every complete frame in input, calls handle for each message
// and pops the consumed bytes. A partial frame is left for the next call.
// The returned error joins every framing and payload error seen.
func (d *Decoder) Feed(input InputBuffer, handle func(Message)) error {
	data := input.Data()
	var errs []error

	desync := func(err error) {
		d.unsynced = true
		errs = append(errs, err)
	}

	for len(data) > 0 {
		if d.unsynced {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.unsynced = false
			d.Resyncs++
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			desync(fmt.Errorf("%w: length %d", ErrBadFrame, msgLen))
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			desync(fmt.Errorf("%w: sequence byte %#x", ErrBadFrame, seq))
			continue
		}

		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			desync(fmt.Errorf("%w: missing sync byte", ErrBadFrame))
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if actual := CRC16(data[:msgLen-MessageTrailerSize]); frameCRC != actual {
			desync(fmt.Errorf("%w: got %#04x want %#04x", ErrBadCRC, frameCRC, actual))
			continue
		}

		payload := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]

		n := seq & MessageSeqMask
		if d.started && n != d.expected {
			d.Lost += uint32((n - d.expected) & MessageSeqMask)
		}
		d.started = true
		d.expected = (n + 1) & MessageSeqMask
		d.Frames++

		if err := DecodeMessages(payload, seq, handle); err != nil {
			errs = append(errs, err)
		}
	}

	if consumed := input.Available() - len(data); consumed > 0 {
		input.Pop(consumed)
	}
	return errors.Join(errs...)
}

// Synchronized reports whether the decoder is aligned on a frame boundary
func (d *Decoder) Synchronized() bool {
	return !d.unsynced
}
