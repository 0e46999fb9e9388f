package gm65d

import (
	"context"
	"net"
	"net/http"
)

// NewClient returns an HTTP client talking to the daemon over its unix socket.
// Requests are sent to http://unix/<path>.
func NewClient(socket string) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", socket)
			},
			DisableCompression: false,
		},
	}
}
