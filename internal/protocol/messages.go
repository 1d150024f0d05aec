package protocol //handles communication protocol between client and server

// Plain-text framing: one UTF-8 line per frame, '\n' terminated.
import (
	"fmt"
	"strings"
)

const (
	// Delimiter terminates every frame on the wire
	Delimiter = '\n'

	// QuitSentinel is the frame a client sends to end its session
	QuitSentinel = "/quit"
)

// Status lines injected into the message log by the reader
const (
	StatusDisconnected = "Connection to server closed."
	StatusReadFailed   = "Could not read message from server: %v"
)

// IsQuit reports whether line is the quit sentinel, ignoring case and surrounding whitespace
func IsQuit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), QuitSentinel)
}

// EncodeFrame appends the delimiter to a line
func EncodeFrame(line string) []byte {
	frame := make([]byte, 0, len(line)+1)
	frame = append(frame, line...)
	return append(frame, Delimiter)
}

// TrimFrame strips the trailing delimiter (and a preceding carriage return) from a raw frame
func TrimFrame(frame string) string {
	frame = strings.TrimSuffix(frame, string(Delimiter))
	return strings.TrimSuffix(frame, "\r")
}

// ReadFailed formats the status line for a failed read
func ReadFailed(err error) string {
	return fmt.Sprintf(StatusReadFailed, err)
}
