package ui

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/termchat/internal/logging"
	"github.com/yourusername/termchat/internal/protocol"
)

// DefaultTickRate bounds how long the loop waits for input before redrawing
const DefaultTickRate = 250 * time.Millisecond

// Outbox is the send side of the outbound queue.
type Outbox interface {
	// Send queues a line, blocking while the queue is full. An error means
	// the writer is gone.
	Send(ctx context.Context, line string) error

	// TrySend queues a line only if there is room right now.
	TrySend(line string) bool
}

// LoopConfig wires a Loop to its collaborators.
type LoopConfig struct {
	App     *App
	Surface Surface
	Events  EventSource
	Inbound <-chan string
	Outbox  Outbox

	TickRate time.Duration

	// ExitOnDisconnect ends the loop once the inbound channel is closed and
	// drained. When false the session stays open for reading history.
	ExitOnDisconnect bool

	Logger *zap.Logger
}

// Loop is the render/input orchestrator. It is the only owner of App.
type Loop struct {
	cfg    LoopConfig
	logger *zap.Logger
}

// NewLoop creates a loop. A zero TickRate means DefaultTickRate.
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	return &Loop{
		cfg:    cfg,
		logger: logging.OrNop(cfg.Logger),
	}
}

// Run draws, drains at most one inbound line, waits for input within what
// is left of the tick, and applies it, until the user quits, ctx is done,
// or the inbound side closes. Draw and input errors are returned as is.
func (l *Loop) Run(ctx context.Context) error {
	app := l.cfg.App
	inbound := l.cfg.Inbound
	lastTick := time.Now()

	for {
		if err := l.cfg.Surface.Draw(app.Frame()); err != nil {
			return fmt.Errorf("draw: %w", err)
		}

		timeout := max(l.cfg.TickRate-time.Since(lastTick), 0)

		select {
		case line, ok := <-inbound:
			if !ok {
				if l.cfg.ExitOnDisconnect {
					l.logger.Info("Inbound closed, leaving chat loop")
					return nil
				}
				l.logger.Info("Inbound closed, keeping chat open")
				inbound = nil
				break
			}
			app.Log.Append(line)
		default:
		}

		ev, ok, err := l.cfg.Events.PollEvent(timeout)
		if err != nil {
			return fmt.Errorf("poll input: %w", err)
		}
		if ok {
			l.handle(ctx, ev)
		}

		if time.Since(lastTick) >= l.cfg.TickRate {
			lastTick = time.Now()
		}

		if ctx.Err() != nil {
			app.RequestQuit()
		}

		if app.ShouldQuit() {
			if app.NeedsQuitSentinel() {
				sent := l.cfg.Outbox.TrySend(protocol.QuitSentinel)
				l.logger.Debug("Quit sentinel offered to writer", zap.Bool("queued", sent))
			}
			l.logger.Info("Chat loop finished")
			return nil
		}
	}
}

func (l *Loop) handle(ctx context.Context, ev Event) {
	app := l.cfg.App

	switch ev.Key {
	case KeyEnter:
		text, ok := app.Submit()
		if !ok {
			return
		}
		err := l.cfg.Outbox.Send(ctx, text)
		if err != nil {
			l.logger.Warn("Outbound queue rejected message", zap.Error(err))
		}
		app.Sent(text, err)

	case KeyUp:
		app.Log.SelectPrevious()

	case KeyDown:
		app.Log.SelectNext()

	case KeyRunes:
		app.TypeRunes(ev.Runes...)

	case KeyBackspace:
		app.Backspace()

	case KeyEscape:
		app.RequestQuit()
	}
}
