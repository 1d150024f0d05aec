package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourusername/termchat/internal/protocol"
)

const writeWait = 10 * time.Second

// wsStream presents a WebSocket connection as a newline-delimited byte
// stream: every text message is one frame.
type wsStream struct {
	conn *websocket.Conn

	pending []byte // unread part of the current message, delimiter included

	wmu  sync.Mutex
	wbuf []byte // bytes written since the last delimiter
}

// NewWebSocketStream wraps an established WebSocket connection.
func NewWebSocketStream(conn *websocket.Conn) Stream {
	return &wsStream{conn: conn}
}

// DialWebSocket opens a WebSocket connection to serverURL.
func DialWebSocket(ctx context.Context, serverURL string, timeout time.Duration) (Stream, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: timeout,
	}

	conn, _, err := dialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket %s: %w", serverURL, err)
	}
	return NewWebSocketStream(conn), nil
}

func (s *wsStream) Read(p []byte) (int, error) {
	for len(s.pending) == 0 {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		// some servers terminate each message themselves
		s.pending = protocol.EncodeFrame(protocol.TrimFrame(string(message)))
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// Write buffers p and sends one text message per complete line. On error it
// reports how much of p went out in complete lines and drops the rest.
func (s *wsStream) Write(p []byte) (int, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	buffered := len(s.wbuf)
	s.wbuf = append(s.wbuf, p...)
	sent := 0 // bytes of wbuf already written out
	for {
		i := bytes.IndexByte(s.wbuf[sent:], '\n')
		if i < 0 {
			break
		}
		if err := s.writeLine(s.wbuf[sent : sent+i]); err != nil {
			s.wbuf = s.wbuf[:0]
			return max(sent-buffered, 0), err
		}
		sent += i + 1
	}
	s.wbuf = append(s.wbuf[:0], s.wbuf[sent:]...)
	return len(p), nil
}

func (s *wsStream) writeLine(line []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	return s.conn.WriteMessage(websocket.TextMessage, line)
}

// CloseWrite sends a normal-closure close frame.
func (s *wsStream) CloseWrite() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	if errors.Is(err, websocket.ErrCloseSent) {
		return nil
	}
	return err
}

func (s *wsStream) Close() error {
	return s.conn.Close()
}
