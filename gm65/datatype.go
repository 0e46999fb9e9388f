package gm65

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
)

type (
	CommandType uint8
	Zone        uint16
)

func (t CommandType) Valid() bool {
	switch t {
	case CommandRead, CommandWrite, CommandEEPROM:
		return true
	}
	return false
}

func (t CommandType) String() string {
	switch t {
	case CommandRead:
		return "read"
	case CommandWrite:
		return "write"
	case CommandEEPROM:
		return "eeprom"
	default:
		return fmt.Sprintf("CommandType(0x%02X)", uint8(t))
	}
}

func (z Zone) String() string {
	return fmt.Sprintf("0x%04X", uint16(z))
}

// A Port is the byte-oriented link to the module.
// go.bug.st/serial.Port satisfies it.
type Port interface {
	io.ReadWriteCloser
	ResetInputBuffer() error
	SetReadTimeout(t time.Duration) error
}

type PortInfo struct {
	Name         string `json:"name"`
	VID          string `json:"vid"`
	PID          string `json:"pid"`
	SerialNumber string `json:"serial_number"`
	Product      string `json:"product"`
	GM65         bool   `json:"gm65"`
}

func hexdump(p []byte) string {
	return strings.ToUpper(hex.EncodeToString(p))
}
