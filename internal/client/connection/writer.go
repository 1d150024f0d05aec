package connection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/termchat/internal/logging"
	"github.com/yourusername/termchat/internal/protocol"
)

// ErrWriterClosed is returned by Send once the writer has stopped or the
// send side has been closed.
var ErrWriterClosed = errors.New("connection: writer closed")

// Writer frames outbound lines and writes them to the write half of the stream.
type Writer struct {
	dst      io.WriteCloser
	outbound chan string
	done     chan struct{}
	logger   *zap.Logger

	mu     sync.RWMutex
	closed bool

	err error // set before done is closed
}

// NewWriter creates a writer over dst with an outbound queue of queueSize.
// dst is closed when Run returns.
func NewWriter(dst io.WriteCloser, queueSize int, logger *zap.Logger) *Writer {
	return &Writer{
		dst:      dst,
		outbound: make(chan string, queueSize),
		done:     make(chan struct{}),
		logger:   logging.OrNop(logger),
	}
}

// Send queues line, blocking while the queue is full. It fails with
// ErrWriterClosed when the writer is no longer consuming.
func (w *Writer) Send(ctx context.Context, line string) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrWriterClosed
	}

	select {
	case <-w.done:
		return ErrWriterClosed
	default:
	}

	select {
	case w.outbound <- line:
		return nil
	case <-w.done:
		return ErrWriterClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend queues line only if there is room right now.
func (w *Writer) TrySend(line string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}

	select {
	case <-w.done:
		return false
	default:
	}

	select {
	case w.outbound <- line:
		return true
	default:
		return false
	}
}

// CloseSend marks the end of outbound data. Run drains what is queued and returns.
func (w *Writer) CloseSend() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.outbound)
}

// Done is closed when Run has returned.
func (w *Writer) Done() <-chan struct{} {
	return w.done
}

// Err returns the write error that stopped the writer, if any. Valid after Done.
func (w *Writer) Err() error {
	select {
	case <-w.done:
		return w.err
	default:
		return nil
	}
}

// Run writes queued lines in order until the queue is closed and drained,
// a write fails, or the quit sentinel has been written.
func (w *Writer) Run() error {
	defer close(w.done)
	defer func() {
		if err := w.dst.Close(); err != nil {
			w.logger.Debug("Closing write half failed", zap.Error(err))
		}
	}()

	for line := range w.outbound {
		if _, err := w.dst.Write(protocol.EncodeFrame(line)); err != nil {
			w.logger.Warn("Write to server failed", zap.Error(err))
			w.err = fmt.Errorf("send message: %w", err)
			return w.err
		}

		if protocol.IsQuit(line) {
			w.logger.Info("Quit sentinel written, writer stopping")
			return nil
		}
	}

	w.logger.Debug("Outbound queue closed, writer stopping")
	return nil
}
