package protocol

// CRC16 calculates the CRC16 checksum used by Klipper and Anchor
// (CCITT polynomial, reflected, initial value 0xFFFF).
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b = b ^ uint8(crc&0xFF)
		b = b ^ (b << 4)
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}

const hexDigits = "0123456789abcdef"

// appendChecksum appends the separator and the four digit hex CRC
func appendChecksum(dst []byte, crc uint16) []byte {
	return append(dst, ChecksumSep,
		hexDigits[crc>>12&0xF],
		hexDigits[crc>>8&0xF],
		hexDigits[crc>>4&0xF],
		hexDigits[crc&0xF])
}

// parseChecksum decodes four hex digits
func parseChecksum(s string) (uint16, bool) {
	if len(s) != ChecksumLen {
		return 0, false
	}
	var crc uint16
	for i := 0; i < len(s); i++ {
		c := s[i]
		var n byte
		switch {
		case c >= '0' && c <= '9':
			n = c - '0'
		case c >= 'a' && c <= 'f':
			n = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			n = c - 'A' + 10
		default:
			return 0, false
		}
		crc = crc<<4 | uint16(n)
	}
	return crc, true
}
