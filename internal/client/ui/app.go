package ui

import (
	"fmt"
	"unicode"

	"github.com/yourusername/termchat/internal/protocol"
)

// App is the state owned by the render/input loop. Nothing outside the loop
// goroutine touches it; network data reaches it only through Loop.
type App struct {
	Log *MessageLog

	input     []rune
	selfLabel string

	quit     bool
	quitSent bool // the quit sentinel already went out through Send
}

// NewApp creates an empty state. Own messages are logged as "<selfLabel>: text".
func NewApp(historySize int, selfLabel string) *App {
	if selfLabel == "" {
		selfLabel = "Me"
	}
	return &App{
		Log:       NewMessageLog(historySize),
		selfLabel: selfLabel,
	}
}

// Input returns the text being composed.
func (a *App) Input() string {
	return string(a.input)
}

// ShouldQuit reports whether the loop has been asked to stop.
func (a *App) ShouldQuit() bool {
	return a.quit
}

// TypeRunes appends to the input and scrolls to the newest message. The
// input is always a single frame: carriage returns are dropped and other
// control characters (newlines and tabs from a paste) become spaces.
func (a *App) TypeRunes(runes ...rune) {
	for _, r := range runes {
		switch {
		case r == '\r':
		case unicode.IsControl(r):
			a.input = append(a.input, ' ')
		default:
			a.input = append(a.input, r)
		}
	}
	a.Log.SelectLast()
}

// Backspace removes the last character and scrolls to the newest message.
func (a *App) Backspace() {
	if len(a.input) > 0 {
		a.input = a.input[:len(a.input)-1]
	}
	a.Log.SelectLast()
}

// Submit logs the composed text as our own message, clears the input and
// returns the raw text. It returns false when there is nothing to send.
func (a *App) Submit() (string, bool) {
	if len(a.input) == 0 {
		return "", false
	}
	text := string(a.input)
	a.Log.Append(fmt.Sprintf("%s: %s", a.selfLabel, text))
	a.input = a.input[:0]
	return text, true
}

// Sent records the outcome of handing text to the writer.
func (a *App) Sent(text string, err error) {
	if err != nil {
		a.quit = true
	}
	if protocol.IsQuit(text) {
		a.quit = true
		if err == nil {
			a.quitSent = true
		}
	}
}

// RequestQuit marks the loop for shutdown.
func (a *App) RequestQuit() {
	a.quit = true
}

// NeedsQuitSentinel reports whether the writer still has to be told to stop.
func (a *App) NeedsQuitSentinel() bool {
	return a.quit && !a.quitSent
}

// Frame snapshots the state for drawing.
func (a *App) Frame() Frame {
	selected, ok := a.Log.Selected()
	if !ok {
		selected = -1
	}
	return Frame{
		Lines:    a.Log.Lines(),
		Selected: selected,
		Input:    a.Input(),
	}
}
