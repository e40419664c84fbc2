package protocol

import "errors"

var (
	ErrInvalidVLQ     = errors.New("invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("buffer too small for VLQ")
)

// vlqMaxBytes is the longest encoding of a 32-bit value
const vlqMaxBytes = 5

// EncodeVLQInt writes v as 7-bit groups, most significant first, with bit 7
// set on every byte but the last. The top group is sign-extended from bit 5
// when it is 0x60 or above, so single bytes cover [-32, 96).
func EncodeVLQInt(output FrameSink, v int32) {
	var buf [vlqMaxBytes]byte
	output.Output(appendVLQ(buf[:0], v))
}

func appendVLQ(out []byte, v int32) []byte {
	for shift := 28; shift > 0; shift -= 7 {
		// a group is needed if v does not fit in the groups below it
		lo := int32(1) << (shift - 2)
		if v < -lo || v >= 3*lo {
			out = append(out, byte(v>>shift)&0x7F|0x80)
		}
	}
	return append(out, byte(v)&0x7F)
}

// EncodeVLQUint writes v with the same encoding as EncodeVLQInt
func EncodeVLQUint(output FrameSink, v uint32) {
	EncodeVLQInt(output, int32(v))
}

// DecodeVLQInt reads one value from the front of *data and advances it.
func DecodeVLQInt(data *[]byte) (int32, error) {
	in := *data
	if len(in) == 0 {
		return 0, ErrBufferTooSmall
	}

	v := uint32(in[0] & 0x7F)
	if in[0]&0x60 == 0x60 {
		v |= ^uint32(0x1F)
	}
	i := 1
	for in[i-1]&0x80 != 0 {
		switch {
		case i == vlqMaxBytes:
			return 0, ErrInvalidVLQ
		case i == len(in):
			return 0, ErrBufferTooSmall
		}
		v = v<<7 | uint32(in[i]&0x7F)
		i++
	}

	*data = in[i:]
	return int32(v), nil
}

// DecodeVLQUint reads one unsigned value
func DecodeVLQUint(data *[]byte) (uint32, error) {
	v, err := DecodeVLQInt(data)
	return uint32(v), err
}

// EncodeVLQBytes writes len(b) followed by b
func EncodeVLQBytes(output FrameSink, b []byte) {
	EncodeVLQUint(output, uint32(len(b)))
	output.Output(b)
}

// EncodeVLQString writes len(s) followed by s
func EncodeVLQString(output FrameSink, s string) {
	EncodeVLQBytes(output, []byte(s))
}

// DecodeVLQBytes reads a length-prefixed block. The result aliases *data.
func DecodeVLQBytes(data *[]byte) ([]byte, error) {
	rest := *data
	n, err := DecodeVLQUint(&rest)
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(len(rest)) {
		return nil, ErrBufferTooSmall
	}
	*data = rest[n:]
	return rest[:n], nil
}

// DecodeVLQString reads a length-prefixed string
func DecodeVLQString(data *[]byte) (string, error) {
	b, err := DecodeVLQBytes(data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
