package connection

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/termchat/internal/client/transport"
	"github.com/yourusername/termchat/internal/logging"
)

// Options tune the connection manager.
type Options struct {
	QueueSize     int           // inbound and outbound capacity, default 32
	MaxFrameSize  int           // longest inbound line, default DefaultMaxFrameSize
	ShutdownGrace time.Duration // how long Shutdown waits for each task, default 2s
}

const (
	defaultQueueSize     = 32
	defaultShutdownGrace = 2 * time.Second
)

// Manager owns the stream to the server and the reader and writer tasks
// running over its two halves.
type Manager struct {
	stream transport.Stream
	reader *Reader
	writer *Writer
	logger *zap.Logger
	grace  time.Duration

	group      errgroup.Group
	readerDone chan struct{}
	cancel     context.CancelFunc

	startOnce    sync.Once
	started      bool
	shutdownOnce sync.Once
	shutdownErr  error
}

// NewManager splits stream and prepares the reader and writer. Nothing runs until Start.
func NewManager(stream transport.Stream, opts Options, logger *zap.Logger) *Manager {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = defaultShutdownGrace
	}
	logger = logging.OrNop(logger)

	readHalf, writeHalf := transport.Split(stream)
	return &Manager{
		stream:     stream,
		reader:     NewReader(readHalf, opts.QueueSize, opts.MaxFrameSize, logger.Named("reader")),
		writer:     NewWriter(writeHalf, opts.QueueSize, logger.Named("writer")),
		logger:     logger,
		grace:      opts.ShutdownGrace,
		readerDone: make(chan struct{}),
		cancel:     func() {},
	}
}

// Start launches the reader and writer goroutines.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		readCtx, cancel := context.WithCancel(ctx)
		m.cancel = cancel
		m.started = true

		m.group.Go(func() error {
			defer close(m.readerDone)
			return m.reader.Run(readCtx)
		})
		m.group.Go(m.writer.Run)

		m.logger.Info("Connection tasks started")
	})
}

// Inbound returns the lines read from the server.
func (m *Manager) Inbound() <-chan string {
	return m.reader.Inbound()
}

// Writer returns the send side of the outbound queue.
func (m *Manager) Writer() *Writer {
	return m.writer
}

// Shutdown stops consuming inbound lines, closes the outbound queue and
// waits for both tasks. Each task gets the grace period to finish on its own
// (the writer to flush, the peer to close the connection) before the stream
// is closed under it. It returns the writer's error, if any.
func (m *Manager) Shutdown() error {
	m.shutdownOnce.Do(func() {
		if !m.started {
			m.startOnce.Do(func() {})
			m.shutdownErr = m.stream.Close()
			return
		}

		m.cancel()
		m.writer.CloseSend()

		m.waitOrTimeout(m.writer.Done(), "writer")
		m.waitOrTimeout(m.readerDone, "reader")

		if err := m.stream.Close(); err != nil {
			m.logger.Debug("Closing stream failed", zap.Error(err))
		}

		if err := m.group.Wait(); err != nil {
			m.logger.Debug("Connection task returned error", zap.Error(err))
		}
		m.shutdownErr = m.writer.Err()
		m.logger.Info("Connection tasks stopped", zap.Error(m.shutdownErr))
	})
	return m.shutdownErr
}

func (m *Manager) waitOrTimeout(done <-chan struct{}, task string) {
	timer := time.NewTimer(m.grace)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		m.logger.Warn("Task did not stop within grace period", zap.String("task", task), zap.Duration("grace", m.grace))
	}
}
