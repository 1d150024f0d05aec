package ui

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/termchat/internal/client/connection"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Close() error { return nil }

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// A multi-line paste submitted with Enter must reach the server as one frame.
func TestPastedNewlinesSendOneFrame(t *testing.T) {
	events := make(chan Event, 4)
	m := newModel(events, zap.NewNop())
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Paste: true, Runes: []rune("hi\r\n/quit\tnow")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	close(events)

	term := &scriptedTerminal{}
	for ev := range events {
		term.script = append(term.script, ev)
	}
	require.Len(t, term.script, 2)

	wire := &syncBuffer{}
	w := connection.NewWriter(wire, 8, nil)
	go w.Run()

	app := NewApp(0, "")
	loop := NewLoop(LoopConfig{
		App:              app,
		Surface:          term,
		Events:           term,
		Inbound:          make(chan string),
		Outbox:           w,
		ExitOnDisconnect: true,
	})
	require.NoError(t, loop.Run(context.Background()))
	w.CloseSend()
	<-w.Done()

	// the submitted line, then the sentinel offered by Esc at the end of the script
	frames := strings.Split(strings.TrimSuffix(wire.String(), "\n"), "\n")
	assert.Equal(t, []string{"hi /quit now", "/quit"}, frames)
	assert.Equal(t, []string{"Me: hi /quit now"}, app.Log.Lines())
}
