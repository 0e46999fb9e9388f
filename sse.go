package gm65d

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

type Event struct {
	ID   string
	Data []byte
}

// WriteSSE writes one server-sent event.
func WriteSSE(w io.Writer, e Event) error {
	var buf bytes.Buffer
	if e.ID != "" {
		fmt.Fprintf(&buf, "id: %s\n", e.ID)
	}
	for _, line := range bytes.Split(e.Data, []byte{'\n'}) {
		fmt.Fprintf(&buf, "data: %s\n", line)
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// ReadSSE reads the next event, comments and unknown fields are skipped.
func ReadSSE(r *bufio.Reader) (Event, error) {
	var e Event
	var data [][]byte

	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return e, err
		}
		line = bytes.TrimRight(line, "\r\n")

		if len(line) == 0 {
			if e.ID == "" && len(data) == 0 {
				continue
			}

			e.Data = bytes.Join(data, []byte{'\n'})
			return e, nil
		}

		field, value, _ := bytes.Cut(line, []byte{':'})
		value = bytes.TrimPrefix(value, []byte{' '})

		switch string(field) {
		case "id":
			e.ID = string(value)
		case "data":
			data = append(data, bytes.Clone(value))
		}
	}
}
