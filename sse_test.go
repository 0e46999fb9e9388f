package gm65d

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSE(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSSE(&buf, Event{ID: "a1", Data: []byte(`{"code":"4006381333931"}`)}))
	require.NoError(t, WriteSSE(&buf, Event{Data: []byte("line1\nline2")}))
	assert.Equal(t, "id: a1\ndata: {\"code\":\"4006381333931\"}\n\ndata: line1\ndata: line2\n\n", buf.String())

	r := bufio.NewReader(&buf)

	e, err := ReadSSE(r)
	require.NoError(t, err)
	assert.Equal(t, "a1", e.ID)
	assert.Equal(t, []byte(`{"code":"4006381333931"}`), e.Data)

	e, err = ReadSSE(r)
	require.NoError(t, err)
	assert.Empty(t, e.ID)
	assert.Equal(t, []byte("line1\nline2"), e.Data)

	_, err = ReadSSE(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadSSE_SkipsCommentsAndBlankLines(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\n\n: keep-alive\nevent: scan\r\ndata:raw\r\n\r\n"))

	e, err := ReadSSE(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("raw"), e.Data)
}
