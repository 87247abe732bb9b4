package views

import (
	"fmt"
	"sync"

	"artbind/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// ChangeLog keeps the most recent property change and state event lines.
// Record is safe to call from the registry's notification handlers.
type ChangeLog struct {
	mu      sync.Mutex
	max     int
	entries []string
	total   int
}

// NewChangeLog creates a log holding up to size entries
func NewChangeLog(size int) *ChangeLog {
	if size <= 0 {
		size = 8
	}
	return &ChangeLog{max: size}
}

// Record appends a property change
func (l *ChangeLog) Record(ev domain.ChangeEvent) {
	l.add(fmt.Sprintf("%s = %s", ev.Path, domain.FormatValue(ev.Value)))
}

// RecordEvent appends a state machine event
func (l *ChangeLog) RecordEvent(ev domain.StateEvent) {
	l.add(fmt.Sprintf("event %s (state %s)", ev.Name, ev.CurrentState))
}

func (l *ChangeLog) add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, line)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
	l.total++
}

// Recent returns the retained entries, oldest first, and the number of
// entries ever recorded
func (l *ChangeLog) Recent() ([]string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...), l.total
}
