package ui

// DefaultHistorySize is how many lines the message log keeps
const DefaultHistorySize = 50

// MessageLog is a bounded, ordered history of chat lines with an optional
// selected line. The selection, when present, is always a valid index.
type MessageLog struct {
	lines    []string
	capacity int
	selected int // -1 when nothing is selected
}

// NewMessageLog creates an empty log. capacity <= 0 means DefaultHistorySize.
func NewMessageLog(capacity int) *MessageLog {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &MessageLog{
		lines:    make([]string, 0, capacity),
		capacity: capacity,
		selected: -1,
	}
}

// Append adds line, evicting the oldest line past capacity, and selects it.
// Empty lines are ignored.
func (l *MessageLog) Append(line string) {
	if line == "" {
		return
	}

	l.lines = append(l.lines, line)
	if len(l.lines) > l.capacity {
		// Keep only the newest lines
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-l.capacity:]...)
	}
	l.selected = len(l.lines) - 1
}

// SelectPrevious moves the selection up one line. With no selection it
// selects the first line.
func (l *MessageLog) SelectPrevious() {
	if len(l.lines) == 0 {
		return
	}
	switch {
	case l.selected < 0:
		l.selected = 0
	case l.selected > 0:
		l.selected--
	}
}

// SelectNext moves the selection down one line, stopping at the last line.
// With no selection it starts from the first line.
func (l *MessageLog) SelectNext() {
	if len(l.lines) == 0 {
		return
	}
	current := max(l.selected, 0)
	if current < len(l.lines)-1 {
		l.selected = current + 1
		return
	}
	l.selected = len(l.lines) - 1
}

// SelectLast selects the newest line, or clears the selection when empty.
func (l *MessageLog) SelectLast() {
	l.selected = len(l.lines) - 1
}

// Selected returns the selected index.
func (l *MessageLog) Selected() (int, bool) {
	return l.selected, l.selected >= 0
}

// Len returns the number of lines held.
func (l *MessageLog) Len() int {
	return len(l.lines)
}

// Lines returns a copy of the held lines, oldest first.
func (l *MessageLog) Lines() []string {
	return append([]string(nil), l.lines...)
}
