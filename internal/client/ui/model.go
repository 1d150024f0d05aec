package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// model is the bubbletea side of the terminal. It only renders the frames
// the loop sends and forwards input; it never touches App.
type model struct {
	frame  Frame
	offset int // first visible message line
	width  int
	height int

	keys   keyMap
	events chan<- Event
	logger *zap.Logger
}

func newModel(events chan<- Event, logger *zap.Logger) model {
	return model{
		frame:  Frame{Selected: -1},
		width:  80,
		height: 24,
		keys:   defaultKeyMap(),
		events: events,
		logger: logger,
	}
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.offset = scrollOffset(m.offset, m.frame.Selected, len(m.frame.Lines), m.layout().listRows)

	case frameMsg:
		m.frame = Frame(msg)
		m.offset = scrollOffset(m.offset, m.frame.Selected, len(m.frame.Lines), m.layout().listRows)

	case tea.KeyMsg:
		if ev, ok := m.keys.translateKey(msg); ok {
			m.forward(ev)
		}

	case tea.MouseMsg:
		if ev, ok := translateMouse(msg); ok {
			m.forward(ev)
		}
	}

	return m, nil
}

// View renders the chat screen
func (m model) View() string {
	return m.viewChat()
}

// forward queues ev for the loop. It must not block: the loop may itself be
// waiting on this program to accept a frame.
func (m model) forward(ev Event) {
	select {
	case m.events <- ev:
	default:
		m.logger.Warn("Input queue full, dropping event", zap.Int("key", int(ev.Key)))
	}
}

// scrollOffset keeps the selected line inside a window of rows lines.
func scrollOffset(offset, selected, total, rows int) int {
	if rows <= 0 || total == 0 {
		return 0
	}
	if selected >= 0 {
		if selected < offset {
			offset = selected
		}
		if selected >= offset+rows {
			offset = selected - rows + 1
		}
	}
	return min(max(offset, 0), max(total-rows, 0))
}
