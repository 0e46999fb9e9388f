package gm65

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC16(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{"empty", []byte{}, 0x0000},
		{"zeros", []byte{0x00, 0x00}, 0x0000},
		{"check string", []byte("123456789"), 0x31C3},
		{"response of sound level", []byte{0x00, 0x01, 0x64}, 0x1F13},
		{"scan duration frame", []byte{0x08, 0x01, 0x00, 0x06, 0x32}, 0xC82E},
		{"eeprom save frame", []byte{0x09, 0x01, 0x00, 0x00, 0x00}, 0xDEC8},
		{"read prefix frame", []byte{0x07, 0x01, 0x00, 0x63, 0x0F}, 0xBEF6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CRC16(tt.data), "0x%04X", CRC16(tt.data))
		})
	}
}

func TestCRC16_Deterministic(t *testing.T) {
	data := []byte{0x7E, 0x00, 0x08, 0x01, 0x00, 0x0A, 0x02}
	first := CRC16(data)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CRC16(data))
	}
	assert.Equal(t, []byte{0x7E, 0x00, 0x08, 0x01, 0x00, 0x0A, 0x02}, data, "input must not be mutated")
}

// The double XOR of the module variant cancels out when both the register bit and the input bit are set,
// so it must agree with the textbook MSB-first CRC-16 (XMODEM).
func TestCRC16_MatchesXMODEM(t *testing.T) {
	xmodem := func(data []byte) uint16 {
		var crc uint16
		for _, b := range data {
			crc ^= uint16(b) << 8
			for i := 0; i < 8; i++ {
				if crc&0x8000 != 0 {
					crc = crc<<1 ^ Polynomial
				} else {
					crc <<= 1
				}
			}
		}
		return crc
	}

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		data := make([]byte, rnd.Intn(300))
		rnd.Read(data)
		assert.Equal(t, xmodem(data), CRC16(data))
	}
}

func TestChecksum_Polynomial(t *testing.T) {
	// A single low bit only triggers the input XOR.
	assert.Equal(t, uint16(0x1021), Checksum([]byte{0x01}, 0x1021))
	assert.Equal(t, uint16(0x8005), Checksum([]byte{0x01}, 0x8005))
}
