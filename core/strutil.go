package core

import "strconv"

// Number formatting for debug lines. strconv keeps fmt out of the firmware
// image.

func itoa(n int) string {
	return strconv.Itoa(n)
}

func utoa(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}

// hex32 formats v as 0x followed by eight lowercase hex digits
func hex32(v uint32) string {
	buf := []byte("0x00000000")
	digits := strconv.AppendUint(nil, uint64(v), 16)
	copy(buf[len(buf)-len(digits):], digits)
	return string(buf)
}
