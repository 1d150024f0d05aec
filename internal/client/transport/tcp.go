package transport

import (
	"context"
	"fmt"
	"net"
	"time"
)

// connStream adapts a net.Conn. Conns that cannot half-close (net.Pipe, for
// instance) treat CloseWrite as a no-op.
type connStream struct {
	net.Conn
}

// NewConnStream wraps an established connection.
func NewConnStream(conn net.Conn) Stream {
	return &connStream{Conn: conn}
}

func (c *connStream) CloseWrite() error {
	if hc, ok := c.Conn.(interface{ CloseWrite() error }); ok {
		return hc.CloseWrite()
	}
	return nil
}

// DialTCP opens a TCP connection to addr.
func DialTCP(ctx context.Context, addr string, timeout time.Duration) (Stream, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial tcp %s: %w", addr, err)
	}
	return NewConnStream(conn), nil
}
