package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/termchat/internal/client/connection"
	"github.com/yourusername/termchat/internal/client/transport"
	"github.com/yourusername/termchat/internal/client/ui"
	"github.com/yourusername/termchat/internal/config"
	"github.com/yourusername/termchat/internal/logging"
)

// ErrConnect matches any failure to reach the server at startup.
var ErrConnect = errors.New("could not connect to server")

// ConnectError is returned by Run when dialing fails.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Is reports ErrConnect as a match.
func (e *ConnectError) Is(target error) bool { return target == ErrConnect }

// Dialer opens the stream to the server.
type Dialer func(ctx context.Context, addr string, timeout time.Duration) (transport.Stream, error)

// TerminalOpener takes over the terminal for the session.
type TerminalOpener func(opts ui.TerminalOptions, logger *zap.Logger) (ui.Terminal, error)

// Option customizes a Session.
type Option func(*Session)

// WithDialer replaces transport.Dial.
func WithDialer(d Dialer) Option {
	return func(s *Session) { s.dial = d }
}

// WithTerminal replaces the bubbletea terminal.
func WithTerminal(open TerminalOpener) Option {
	return func(s *Session) { s.openTerminal = open }
}

// Session runs one chat session from connect to terminal restoration.
type Session struct {
	cfg          *config.Config
	dial         Dialer
	openTerminal TerminalOpener
	logger       *zap.Logger
	id           string

	networkErr error
}

// NewSession prepares a session for cfg. Nothing is dialed until Run.
func NewSession(cfg *config.Config, logger *zap.Logger, opts ...Option) *Session {
	logger, id := logging.WithSession(logging.OrNop(logger))

	s := &Session{
		cfg:    cfg,
		dial:   transport.Dial,
		logger: logger,
		id:     id,
		openTerminal: func(opts ui.TerminalOptions, logger *zap.Logger) (ui.Terminal, error) {
			return ui.OpenTerminal(opts, logger), nil
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session id carried by every log entry.
func (s *Session) ID() string {
	return s.id
}

// NetworkErr returns the writer failure seen during the session, if any.
// It is set once Run returns.
func (s *Session) NetworkErr() error {
	return s.networkErr
}

// Run connects, runs the chat loop until the user quits, the server goes
// away or ctx is done, then stops the connection tasks and restores the
// terminal. A dial failure is returned as a *ConnectError before the
// terminal is touched.
func (s *Session) Run(ctx context.Context) (err error) {
	addr := s.cfg.Server.Address
	s.logger.Info("Connecting", zap.String("address", addr))

	stream, err := s.dial(ctx, addr, s.cfg.GetDialTimeout())
	if err != nil {
		s.logger.Warn("Connect failed", zap.String("address", addr), zap.Error(err))
		return &ConnectError{Addr: addr, Err: err}
	}

	mgr := connection.NewManager(stream, connection.Options{
		QueueSize:     s.cfg.Server.QueueSize,
		MaxFrameSize:  s.cfg.Server.MaxFrameSize,
		ShutdownGrace: s.cfg.GetShutdownGrace(),
	}, s.logger.Named("conn"))
	mgr.Start(ctx)

	term, err := s.openTerminal(ui.TerminalOptions{Mouse: s.cfg.UI.Mouse}, s.logger.Named("terminal"))
	if err != nil {
		s.networkErr = mgr.Shutdown()
		return fmt.Errorf("open terminal: %w", err)
	}
	defer func() {
		if cerr := term.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("restore terminal: %w", cerr)
		}
	}()

	loop := ui.NewLoop(ui.LoopConfig{
		App:              ui.NewApp(s.cfg.UI.HistorySize, s.cfg.UI.SelfLabel),
		Surface:          term,
		Events:           term,
		Inbound:          mgr.Inbound(),
		Outbox:           mgr.Writer(),
		TickRate:         s.cfg.GetTickRate(),
		ExitOnDisconnect: s.cfg.UI.ExitOnDisconnect,
		Logger:           s.logger.Named("loop"),
	})
	loopErr := loop.Run(ctx)

	s.networkErr = mgr.Shutdown()
	if s.networkErr != nil {
		s.logger.Warn("Connection ended with error", zap.Error(s.networkErr))
	}
	if loopErr != nil {
		s.logger.Error("Chat loop failed", zap.Error(loopErr))
		return loopErr
	}

	s.logger.Info("Session finished")
	return nil
}
