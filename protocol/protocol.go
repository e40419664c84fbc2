// Package protocol implements the yakio telemetry wire format: framed,
// CRC-checked blocks of VLQ-encoded messages sent from the board to a host.
//
// Frame layout:
//
//	len | seq | payload... | crc hi | crc lo | 0x7E
//
// len counts the whole frame. seq is 0x10 | n&0x0F. The CRC covers len, seq
// and the payload.
package protocol

import "errors"

// Version of the telemetry format
const Version = "1"

// Framing constants
const (
	MessageMax         = 512 // Scratch buffer size
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageLengthMin
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10
	MessageSeqMask     = 0x0F
)

var (
	ErrFrameTooLarge  = errors.New("frame exceeds maximum length")
	ErrBadFrame       = errors.New("malformed frame header")
	ErrBadCRC         = errors.New("frame CRC mismatch")
	ErrUnknownMessage = errors.New("unknown message id")
)
