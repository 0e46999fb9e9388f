package gm65

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrame_ScanDuration(t *testing.T) {
	frame, err := BuildFrame(ZoneScanDuration, []byte{50}, CommandWrite)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7E, 0x00, 0x08, 0x01, 0x00, 0x06, 0x32, 0xC8, 0x2E}, frame)
}

func TestBuildFrame(t *testing.T) {
	tests := []struct {
		name string
		zone Zone
		data []byte
		t    CommandType
	}{
		{"read prefix", ZonePrefix, []byte{AffixReadLength}, CommandRead},
		{"update suffix", ZoneSuffix, []byte("#F!!"), CommandWrite},
		{"eeprom save", ZoneEEPROM, []byte{0x00}, CommandEEPROM},
		{"empty payload", 0x1234, nil, CommandWrite},
		{"max payload", 0xFFFF, bytes.Repeat([]byte{0xA5}, CommMaxPayload), CommandWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildFrame(tt.zone, tt.data, tt.t)
			require.NoError(t, err)
			require.Len(t, frame, 8+len(tt.data))

			assert.Equal(t, []byte{CommHeaderHigh, CommHeaderLow}, frame[:2])
			assert.Equal(t, byte(tt.t), frame[2])
			assert.Equal(t, byte(len(tt.data)), frame[3])
			assert.Equal(t, uint16(tt.zone), binary.BigEndian.Uint16(frame[4:6]))
			assert.Equal(t, tt.data, frame[6:6+len(tt.data)])
			assert.Equal(t, CRC16(frame[2:len(frame)-2]), binary.BigEndian.Uint16(frame[len(frame)-2:]))
		})
	}
}

func TestBuildFrame_InvalidCommandType(t *testing.T) {
	for _, ct := range []CommandType{0x00, 0x06, 0x0A, 0xFF} {
		frame, err := BuildFrame(ZoneTrigger, []byte{0x01}, ct)
		assert.ErrorIs(t, err, ErrInvalidCommandType)
		assert.Nil(t, frame)
	}
}

func TestBuildFrame_PayloadTooLong(t *testing.T) {
	_, err := BuildFrame(ZonePrefix, make([]byte, CommMaxPayload+1), CommandWrite)
	assert.ErrorIs(t, err, ErrPayloadTooLong)
}

func TestCommandType_String(t *testing.T) {
	assert.Equal(t, "read", CommandRead.String())
	assert.Equal(t, "write", CommandWrite.String())
	assert.Equal(t, "eeprom", CommandEEPROM.String())
	assert.Equal(t, "CommandType(0x42)", CommandType(0x42).String())
	assert.Equal(t, "0x0063", ZonePrefix.String())
}
