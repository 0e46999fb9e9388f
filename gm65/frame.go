package gm65

import (
	"encoding/binary"
	"fmt"
)

// BuildFrame assembles a command frame:
//
//	7E 00 | type | len | zone(2) | data... | crc(2)
//
// The CRC covers everything between the header and the trailer.
func BuildFrame(zone Zone, data []byte, t CommandType) ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidCommandType, uint8(t))
	}
	if len(data) > CommMaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLong, len(data))
	}

	frame := make([]byte, 0, 8+len(data))
	frame = append(frame, CommHeaderHigh, CommHeaderLow, byte(t), byte(len(data)))
	frame = binary.BigEndian.AppendUint16(frame, uint16(zone))
	frame = append(frame, data...)

	return binary.BigEndian.AppendUint16(frame, CRC16(frame[2:])), nil
}
