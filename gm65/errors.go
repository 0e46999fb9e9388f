package gm65

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("device not found/plugged")
	ErrInvalidCommandType = errors.New("invalid command type")
	ErrPayloadTooLong     = errors.New("payload too long")
	ErrNoResponse         = errors.New("no response")
	ErrChecksum           = errors.New("checksum mismatch")
	ErrTimeout            = errors.New("response timed out")
	ErrTransport          = errors.New("transport failure")
	ErrInvalidDuration    = errors.New("invalid scan duration")
	ErrNoBarcode          = errors.New("no barcode read")
)

// A TransportError is a byte-level read or write failure on the port.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Retryable reports whether the whole command may be sent again.
func Retryable(err error) bool {
	return errors.Is(err, ErrNoResponse) || errors.Is(err, ErrChecksum)
}
