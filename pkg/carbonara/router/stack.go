package router

import "github.com/BrandonKowalski/carbonara/pkg/carbonara/menu"

// StackEntry is the browsing position an overlay was opened from.
type StackEntry struct {
	Mode     Mode
	Menu     menu.MenuID
	Selected int
	Start    int
}

// Stack holds the positions to return to when overlays close. The machine
// only ever pushes one entry, but the stack itself is not limited.
type Stack struct {
	entries []StackEntry
}

func NewStack() *Stack {
	return &Stack{
		entries: make([]StackEntry, 0, 1),
	}
}

// Push records the position of m. A nil menu is recorded as NoMenu.
func (s *Stack) Push(mode Mode, m *menu.Menu) {
	entry := StackEntry{Mode: mode, Menu: menu.NoMenu}
	if m != nil {
		entry.Menu = m.ID
		entry.Selected = m.SelectedIndex()
		entry.Start = m.StartIndex()
	}
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *Stack) Len() int {
	return len(s.entries)
}

func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
