package ui

import (
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/yourusername/termchat/internal/logging"
)

// ErrTerminalClosed is returned once the terminal program has exited.
var ErrTerminalClosed = errors.New("ui: terminal closed")

// Key identifies an input the loop reacts to
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyUp
	KeyDown
	KeyBackspace
	KeyEscape
	KeyRunes
)

// Event is one terminal input event.
type Event struct {
	Key   Key
	Runes []rune // set for KeyRunes
}

// Frame is an immutable snapshot of what to draw.
type Frame struct {
	Lines    []string
	Selected int // -1 when nothing is selected
	Input    string
}

// Surface draws frames.
type Surface interface {
	Draw(Frame) error
}

// EventSource yields input events.
type EventSource interface {
	// PollEvent returns the next event, waiting at most timeout. ok is false
	// when the timeout elapsed without input.
	PollEvent(timeout time.Duration) (ev Event, ok bool, err error)
}

// Terminal is a drawable surface plus its input stream, held for the
// lifetime of a session. Close restores the terminal and is idempotent.
type Terminal interface {
	Surface
	EventSource
	Close() error
}

// TerminalOptions configure the bubbletea terminal.
type TerminalOptions struct {
	Mouse      bool // capture mouse wheel for scrolling
	EventQueue int  // buffered input events, default 64

	// extra program options, used by tests to swap stdin/stdout
	ProgramOptions []tea.ProgramOption
}

// TeaTerminal runs a bubbletea program as the terminal collaborator: it
// enters raw mode and the alternate screen, renders the frames it is given
// and forwards key events.
type TeaTerminal struct {
	program *tea.Program
	events  chan Event
	done    chan struct{}
	logger  *zap.Logger

	runErr    error // set before done is closed
	closeOnce sync.Once
}

// OpenTerminal starts the bubbletea program in its own goroutine.
func OpenTerminal(opts TerminalOptions, logger *zap.Logger) *TeaTerminal {
	if opts.EventQueue <= 0 {
		opts.EventQueue = 64
	}
	logger = logging.OrNop(logger)

	events := make(chan Event, opts.EventQueue)
	// Signals are handled by the caller's context so the loop can quit cleanly
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	programOpts = append(programOpts, opts.ProgramOptions...)

	t := &TeaTerminal{
		program: tea.NewProgram(newModel(events, logger), programOpts...),
		events:  events,
		done:    make(chan struct{}),
		logger:  logger,
	}

	go func() {
		defer close(t.done)
		_, err := t.program.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			t.runErr = err
		}
		logger.Debug("Terminal program exited", zap.Error(err))
	}()

	return t
}

// Draw hands f to the program for rendering.
func (t *TeaTerminal) Draw(f Frame) error {
	if err := t.closedErr(); err != nil {
		return err
	}
	t.program.Send(frameMsg(f))
	return nil
}

// PollEvent checks for a pending event, then waits up to timeout for one.
func (t *TeaTerminal) PollEvent(timeout time.Duration) (Event, bool, error) {
	select {
	case ev := <-t.events:
		return ev, true, nil
	case <-t.done:
		return Event{}, false, t.closedErr()
	default:
	}
	if timeout <= 0 {
		return Event{}, false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.events:
		return ev, true, nil
	case <-t.done:
		return Event{}, false, t.closedErr()
	case <-timer.C:
		return Event{}, false, nil
	}
}

// Close quits the program and waits for the terminal to be restored.
func (t *TeaTerminal) Close() error {
	t.closeOnce.Do(func() {
		t.program.Quit()
		<-t.done
	})
	return t.runErr
}

func (t *TeaTerminal) closedErr() error {
	select {
	case <-t.done:
		if t.runErr != nil {
			return t.runErr
		}
		return ErrTerminalClosed
	default:
		return nil
	}
}
