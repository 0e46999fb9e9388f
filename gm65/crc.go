package gm65

// CRC16 computes the module checksum with the default polynomial.
func CRC16(data []byte) uint16 {
	return Checksum(data, Polynomial)
}

// Checksum is the bit-serial, table-less CRC-16 used by the module (MSB first, zero init, no final XOR).
// The register is shifted before testing bit 16, and the input bit triggers its own XOR.
func Checksum(data []byte, polynomial uint16) uint16 {
	var crc uint32
	for _, b := range data {
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			crc <<= 1
			if crc&0x10000 != 0 {
				crc ^= uint32(polynomial)
			}
			if b&mask != 0 {
				crc ^= uint32(polynomial)
			}
		}
	}

	return uint16(crc & 0xFFFF)
}
