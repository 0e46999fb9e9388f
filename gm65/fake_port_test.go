package gm65

import (
	"bytes"
	"encoding/binary"
	"time"
)

// fakePort replays one queued answer per written frame.
// An empty input buffer behaves like a serial read timeout: (0, nil).
type fakePort struct {
	answers  [][]byte
	rx       bytes.Buffer
	writes   [][]byte
	flushes  int
	closed   bool
	writeErr error
	readErr  error
	timeout  time.Duration
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.readErr != nil {
		return 0, p.readErr
	}
	if p.rx.Len() == 0 {
		return 0, nil
	}
	return p.rx.Read(b)
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}

	p.writes = append(p.writes, bytes.Clone(b))
	if len(p.answers) > 0 {
		p.rx.Write(p.answers[0])
		p.answers = p.answers[1:]
	}
	return len(b), nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func (p *fakePort) ResetInputBuffer() error {
	p.flushes++
	p.rx.Reset()
	return nil
}

func (p *fakePort) SetReadTimeout(t time.Duration) error {
	p.timeout = t
	return nil
}

// answer builds a valid response frame carrying data.
func answer(data ...byte) []byte {
	frame := []byte{0x02, 0x00, 0x00, byte(len(data))}
	frame = append(frame, data...)
	return binary.BigEndian.AppendUint16(frame, CRC16(append([]byte{0x00, byte(len(data))}, data...)))
}
