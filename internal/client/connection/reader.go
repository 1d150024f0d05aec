package connection

import (
	"bufio"
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/yourusername/termchat/internal/logging"
	"github.com/yourusername/termchat/internal/protocol"
)

// DefaultMaxFrameSize bounds a single inbound line
const DefaultMaxFrameSize = 64 * 1024

// Reader pulls newline-delimited frames off the read half of the stream and
// forwards them, delimiter stripped, on its inbound channel.
type Reader struct {
	scanner *bufio.Scanner
	inbound chan string
	logger  *zap.Logger
}

// NewReader creates a reader over src. queueSize is the inbound channel
// capacity; maxFrame bounds a single line (0 means DefaultMaxFrameSize).
func NewReader(src io.Reader, queueSize, maxFrame int, logger *zap.Logger) *Reader {
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrameSize
	}
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, min(4096, maxFrame)), maxFrame)

	return &Reader{
		scanner: scanner,
		inbound: make(chan string, queueSize),
		logger:  logging.OrNop(logger),
	}
}

// Inbound returns the channel lines are delivered on. It is closed when Run returns.
func (r *Reader) Inbound() <-chan string {
	return r.inbound
}

// Run reads until end of stream, a read error, or until ctx is done (the
// consumer has gone away). End of stream and read errors are reported as a
// single status line; a gone consumer ends the loop silently.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.inbound)

	for r.scanner.Scan() {
		if !r.deliver(ctx, r.scanner.Text()) {
			r.logger.Debug("Inbound consumer gone, reader stopping")
			return nil
		}
	}

	if err := r.scanner.Err(); err != nil {
		r.logger.Warn("Read from server failed", zap.Error(err))
		r.deliver(ctx, protocol.ReadFailed(err))
		return nil
	}

	r.logger.Info("Server closed the connection")
	r.deliver(ctx, protocol.StatusDisconnected)
	return nil
}

// deliver blocks until line is queued or ctx is done.
func (r *Reader) deliver(ctx context.Context, line string) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case r.inbound <- line:
		return true
	case <-ctx.Done():
		return false
	}
}
