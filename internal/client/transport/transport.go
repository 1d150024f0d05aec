// Package transport turns a server address into a byte stream that can be
// split into an independently owned read half and write half.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
)

// Stream is a bidirectional byte stream to the chat server.
type Stream interface {
	io.Reader
	io.Writer

	// CloseWrite signals end-of-stream to the peer while reads keep working
	CloseWrite() error

	// Close releases the stream; blocked reads and writes return
	Close() error
}

// Dial connects to addr. ws:// and wss:// URLs use WebSocket, anything else
// (host:port or tcp://host:port) uses TCP.
func Dial(ctx context.Context, addr string, timeout time.Duration) (Stream, error) {
	switch {
	case strings.HasPrefix(addr, "ws://"), strings.HasPrefix(addr, "wss://"):
		return DialWebSocket(ctx, addr, timeout)
	case strings.HasPrefix(addr, "tcp://"):
		u, err := url.Parse(addr)
		if err != nil {
			return nil, fmt.Errorf("parse address %q: %w", addr, err)
		}
		return DialTCP(ctx, u.Host, timeout)
	default:
		return DialTCP(ctx, addr, timeout)
	}
}

// Split returns the two halves of s. The write half's Close half-closes the
// stream instead of releasing it.
func Split(s Stream) (io.Reader, io.WriteCloser) {
	return readHalf{s}, writeHalf{s}
}

type readHalf struct{ s Stream }

func (r readHalf) Read(p []byte) (int, error) { return r.s.Read(p) }

type writeHalf struct{ s Stream }

func (w writeHalf) Write(p []byte) (int, error) { return w.s.Write(p) }
func (w writeHalf) Close() error                { return w.s.CloseWrite() }
