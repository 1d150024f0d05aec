package ui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openPipedTerminal(t *testing.T) (*TeaTerminal, *io.PipeWriter) {
	t.Helper()
	pr, pw := io.Pipe()
	term := OpenTerminal(TerminalOptions{
		ProgramOptions: []tea.ProgramOption{tea.WithInput(pr), tea.WithOutput(io.Discard)},
	}, zap.NewNop())
	t.Cleanup(func() {
		_ = term.Close()
		_ = pw.Close()
	})
	return term, pw
}

func TestTeaTerminalForwardsInput(t *testing.T) {
	term, pw := openPipedTerminal(t)

	go func() {
		_, _ = pw.Write([]byte("hi"))
		_, _ = pw.Write([]byte("\r"))
	}()

	var typed []rune
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		ev, ok, err := term.PollEvent(50 * time.Millisecond)
		require.NoError(t, err)
		if !ok {
			continue
		}
		if ev.Key == KeyEnter {
			assert.Equal(t, "hi", string(typed))
			return
		}
		require.Equal(t, KeyRunes, ev.Key)
		typed = append(typed, ev.Runes...)
	}
	t.Fatal("no enter event before deadline")
}

func TestTeaTerminalPollTimesOut(t *testing.T) {
	term, _ := openPipedTerminal(t)

	require.NoError(t, term.Draw(Frame{Selected: -1}))

	start := time.Now()
	_, ok, err := term.PollEvent(20 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestTeaTerminalClosed(t *testing.T) {
	term, _ := openPipedTerminal(t)

	require.NoError(t, term.Close())
	require.NoError(t, term.Close(), "close is idempotent")

	assert.ErrorIs(t, term.Draw(Frame{}), ErrTerminalClosed)
	_, _, err := term.PollEvent(time.Millisecond)
	assert.ErrorIs(t, err, ErrTerminalClosed)
}
