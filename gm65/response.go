package gm65

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	stateAck = iota
	stateZeroHigh
	stateZeroLow
	stateReadLength
	stateReadData
	stateReadCRC
)

// ReadResponse reads a response frame one byte at a time:
//
//	02 00 00 | len | data... | crc(2)
//
// The CRC is computed over `00 len data...` and compared big-endian.
// A header mismatch returns ErrNoResponse as soon as the offending byte is read.
// Every read honours the deadline.
func ReadResponse(r io.Reader, deadline time.Time) ([]byte, error) {
	if r == nil {
		return nil, errors.New("reader is nil")
	}

	buf := make([]byte, 1)
	crc := make([]byte, 0, 2)
	var data []byte
	var length int

	state := stateAck
	for {
		if err := readByte(r, buf, deadline); err != nil {
			if errors.Is(err, ErrTimeout) && state < stateReadLength {
				return nil, ErrNoResponse
			}
			return nil, err
		}
		b := buf[0]

		switch state {
		case stateAck:
			if b != CommResponseAck {
				return nil, fmt.Errorf("%w: unexpected header 0x%02X", ErrNoResponse, b)
			}
			state = stateZeroHigh
		case stateZeroHigh, stateZeroLow:
			if b != 0x00 {
				return nil, fmt.Errorf("%w: unexpected header 0x%02X", ErrNoResponse, b)
			}
			state++
		case stateReadLength:
			length = int(b)
			data = make([]byte, 0, length)
			state = stateReadData
			if length == 0 {
				state = stateReadCRC
			}
		case stateReadData:
			data = append(data, b)
			if len(data) == length {
				state = stateReadCRC
			}
		case stateReadCRC:
			crc = append(crc, b)
			if len(crc) < 2 {
				continue
			}

			expected := CRC16(append([]byte{0x00, byte(length)}, data...))
			received := binary.BigEndian.Uint16(crc)
			if received != expected {
				return nil, fmt.Errorf("%w: received 0x%04X, computed 0x%04X", ErrChecksum, received, expected)
			}
			return data, nil
		}
	}
}

// readByte blocks until one byte is read or the deadline is reached.
// A zero-length read without error is a port read timeout and is retried.
func readByte(r io.Reader, buf []byte, deadline time.Time) error {
	for {
		if time.Now().After(deadline) {
			return ErrTimeout
		}

		n, err := r.Read(buf[:1])
		if n == 1 {
			return nil
		}
		if err != nil {
			return &TransportError{Op: "read", Err: err}
		}
	}
}
