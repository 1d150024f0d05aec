package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppSubmitLogsOwnMessage(t *testing.T) {
	a := NewApp(0, "alice")
	a.TypeRunes([]rune("hi there")...)

	text, ok := a.Submit()
	assert.True(t, ok)
	assert.Equal(t, "hi there", text)
	assert.Equal(t, "", a.Input())
	assert.Equal(t, []string{"alice: hi there"}, a.Log.Lines())
}

func TestAppSubmitEmptyInput(t *testing.T) {
	a := NewApp(0, "")
	_, ok := a.Submit()
	assert.False(t, ok)
	assert.Equal(t, 0, a.Log.Len())
}

func TestAppBackspaceIsRuneAware(t *testing.T) {
	a := NewApp(0, "")
	a.TypeRunes([]rune("héé")...)
	a.Backspace()
	assert.Equal(t, "hé", a.Input())

	a.Backspace()
	a.Backspace()
	a.Backspace()
	assert.Equal(t, "", a.Input())
}

func TestAppTypingSnapsSelectionToLast(t *testing.T) {
	a := NewApp(0, "")
	a.Log.Append("one")
	a.Log.Append("two")
	a.Log.SelectPrevious()

	a.TypeRunes('x')
	sel, _ := a.Log.Selected()
	assert.Equal(t, 1, sel)

	a.Log.SelectPrevious()
	a.Backspace()
	sel, _ = a.Log.Selected()
	assert.Equal(t, 1, sel)
}

func TestAppSentQuitSentinel(t *testing.T) {
	a := NewApp(0, "")
	a.Sent("/QUIT", nil)
	assert.True(t, a.ShouldQuit())
	assert.False(t, a.NeedsQuitSentinel())
}

func TestAppSentFailure(t *testing.T) {
	a := NewApp(0, "")
	a.Sent("hello", errors.New("writer gone"))
	assert.True(t, a.ShouldQuit())
	assert.True(t, a.NeedsQuitSentinel())
}

func TestAppFrame(t *testing.T) {
	a := NewApp(0, "")
	f := a.Frame()
	assert.Equal(t, -1, f.Selected)
	assert.Empty(t, f.Lines)

	a.Log.Append("a")
	a.TypeRunes('b')
	f = a.Frame()
	assert.Equal(t, 0, f.Selected)
	assert.Equal(t, []string{"a"}, f.Lines)
	assert.Equal(t, "b", f.Input)
}

func TestAppTypeRunesFlattensControlCharacters(t *testing.T) {
	a := NewApp(0, "")
	a.TypeRunes([]rune("one\r\ntwo\tthree\nfour")...)
	assert.Equal(t, "one two three four", a.Input())

	text, ok := a.Submit()
	assert.True(t, ok)
	assert.NotContains(t, text, "\n")
}
