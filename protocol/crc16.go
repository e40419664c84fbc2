package protocol

// CRC16 computes CRC-16/MCRF4XX: polynomial 0x1021 reflected (0x8408),
// initial value 0xFFFF, no final XOR.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for range 8 {
			if crc&1 != 0 {
				crc = crc>>1 ^ 0x8408
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// appendCRC appends the CRC of data, high byte first, then the sync byte
func appendCRC(out []byte, data []byte) []byte {
	crc := CRC16(data)
	return append(out, byte(crc>>8), byte(crc), MessageValueSync)
}
