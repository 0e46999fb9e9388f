package gm65

import "time"

// USB identifiers of the GM65 virtual serial port.
const (
	VendorID  = "6666" // 26214
	ProductID = "7777" // 30583
)

const (
	BaudRate = 9600

	DefaultTurnaround      = 50 * time.Millisecond
	DefaultResponseTimeout = time.Second
	DefaultRetries         = 2

	ScanPollAttempts = 10
	ScanPollInterval = 300 * time.Millisecond

	Polynomial uint16 = 0x1021
)

const (
	CommHeaderHigh  byte = 0x7E
	CommHeaderLow   byte = 0x00
	CommResponseAck byte = 0x02
	CommEndLine     byte = '\n'

	CommMaxPayload = 255
)

const (
	CommandRead   CommandType = 0x07
	CommandWrite  CommandType = 0x08
	CommandEEPROM CommandType = 0x09
)

const (
	ZoneEEPROM       Zone = 0x0000
	ZoneTrigger      Zone = 0x0002
	ZoneScanDuration Zone = 0x0006
	ZoneSoundLevel   Zone = 0x000A

	// Bit 6-5: 00 CR | 01 CRLF | 10 Tab | 11 None
	// Bit 4: RF, bit 3: prefix, bit 2: code ID, bit 1: suffix, bit 0: tail
	ZonePrefixSuffix Zone = 0x0060
	ZonePrefix       Zone = 0x0063
	ZoneSuffix       Zone = 0x0072
)

const (
	// AffixReadLength is the number of bytes requested when reading back the prefix or the suffix.
	AffixReadLength = 15

	triggerScan byte = 0x01
)
