package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	chatTitle       = "Chat"
	inputTitle      = "Message"
	highlightSymbol = ">> "
	inputBoxHeight  = 3
	minListHeight   = 3
	screenMargin    = 1
)

// screenLayout holds the box sizes for the current window size
type screenLayout struct {
	width      int // outer width of both boxes
	listHeight int // outer height of the message box
	listRows   int // visible message lines
}

func (m model) layout() screenLayout {
	width := max(m.width-2*screenMargin, 4)
	listHeight := max(m.height-2*screenMargin-inputBoxHeight, minListHeight)
	return screenLayout{
		width:      width,
		listHeight: listHeight,
		listRows:   listHeight - 2,
	}
}

// viewChat renders the message list above the input box
func (m model) viewChat() string {
	l := m.layout()
	inner := l.width - 2

	// Message list
	rows := make([]string, 0, l.listRows)
	end := min(m.offset+l.listRows, len(m.frame.Lines))
	for i := m.offset; i < end; i++ {
		line := ansi.Truncate(m.frame.Lines[i], max(inner-len(highlightSymbol), 0), "…")
		if i == m.frame.Selected {
			rows = append(rows, selectedMessageStyle.Render(highlightSymbol+line))
			continue
		}
		rows = append(rows, messageStyle.Render(strings.Repeat(" ", len(highlightSymbol))+line))
	}
	chat := titledBox(chatTitle, strings.Join(rows, "\n"), l.width, l.listHeight, chatBorderStyle)

	// Input box with the cursor after the text
	input := inputStyle.Render(tailToWidth(m.frame.Input, inner-1)) + cursorStyle.Render("▊")
	entry := titledBox(inputTitle, input, l.width, inputBoxHeight, inputBorderStyle)

	return lipgloss.NewStyle().
		Margin(screenMargin).
		Render(lipgloss.JoinVertical(lipgloss.Left, chat, entry))
}

// titledBox draws a rounded border of the given outer size with title set
// into the top edge.
func titledBox(title, body string, width, height int, border lipgloss.Style) string {
	b := lipgloss.RoundedBorder()

	fill := max(width-2-1-lipgloss.Width(title), 0)
	top := border.Render(b.TopLeft+b.Top) +
		boxTitleStyle.Render(title) +
		border.Render(strings.Repeat(b.Top, fill)+b.TopRight)

	box := lipgloss.NewStyle().
		Border(b, false, true, true, true).
		BorderForeground(border.GetForeground()).
		Width(width - 2).
		Height(max(height-2, 1)).
		Render(body)

	return top + "\n" + box
}

// tailToWidth keeps the end of s that fits in width cells, so the cursor
// stays visible while typing long lines.
func tailToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width {
		runes = runes[1:]
	}
	return string(runes)
}
