package menu

import (
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
)

// Menu is an ordered, paginated list of items with a cursor. Normal cursor
// moves keep the page window aligned to multiples of the page size.
type Menu struct {
	ID         MenuID
	Title      string
	Parent     MenuID
	Background string

	// Mode is the browsing mode the menu is shown in. NewMenu derives it
	// from the menu's depth.
	Mode Mode

	items    []*Item
	selected int
	start    int
	perPage  int
	tree     *Tree

	backgroundMissing bool
}

// Add appends it and binds it to the menu and the tree's change observers.
func (m *Menu) Add(it *Item) {
	it.parent = m.ID
	it.changes = m.tree.changes
	m.items = append(m.items, it)
	if len(m.items) == 1 {
		m.selectCurrent()
	}
}

func (m *Menu) Items() []*Item {
	return m.items
}

func (m *Menu) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor, or nil for an empty menu.
func (m *Menu) Selected() *Item {
	if len(m.items) == 0 {
		return nil
	}
	return m.items[m.selected]
}

func (m *Menu) SelectedIndex() int {
	return m.selected
}

func (m *Menu) StartIndex() int {
	return m.start
}

func (m *Menu) ItemsPerPage() int {
	return m.perPage
}

// TotalPages is recomputed from the current item count on every call.
func (m *Menu) TotalPages() int {
	return (len(m.items) + m.perPage - 1) / m.perPage
}

// CurrentPage is the 1-based page of the selected item.
func (m *Menu) CurrentPage() int {
	if len(m.items) == 0 {
		return 0
	}
	return m.selected/m.perPage + 1
}

// Window returns the index range [start, end) of the visible rows.
func (m *Menu) Window() (start, end int) {
	end = m.start + m.perPage
	if end > len(m.items) {
		end = len(m.items)
	}
	return m.start, end
}

func (m *Menu) NavigateUp() {
	m.moveTo(m.selected-1, false)
}

func (m *Menu) NavigateDown() {
	m.moveTo(m.selected+1, false)
}

// NavigatePageLeft jumps back by the page stride and starts the window at
// the new selection.
func (m *Menu) NavigatePageLeft() {
	m.moveTo(m.selected-constants.PageStride, true)
}

func (m *Menu) NavigatePageRight() {
	m.moveTo(m.selected+constants.PageStride, true)
}

// SetSelectedIndex restores a saved cursor position.
func (m *Menu) SetSelectedIndex(i int) {
	m.moveTo(i, false)
}

// SetPosition restores both the cursor and the window start. A start that
// does not contain selected is realigned.
func (m *Menu) SetPosition(selected, start int) {
	if len(m.items) == 0 {
		return
	}
	m.moveTo(selected, false)
	if start >= 0 && start <= m.selected && m.selected < start+m.perPage {
		m.start = start
	}
}

// SelectItem activates the item under the cursor.
func (m *Menu) SelectItem() Action {
	it := m.Selected()
	if it == nil {
		return Action{}
	}
	return it.Activate()
}

func (m *Menu) moveTo(i int, jump bool) {
	if len(m.items) == 0 {
		return
	}

	i = clamp(i, 0, len(m.items)-1)
	if i == m.selected {
		return
	}

	m.items[m.selected].Deselect()
	m.selected = i

	if jump {
		m.start = i
	} else {
		m.realign()
	}

	m.selectCurrent()
}

// realign recomputes the window so it is page aligned around the selection.
func (m *Menu) realign() {
	m.start = (m.selected / m.perPage) * m.perPage
}

func (m *Menu) selectCurrent() {
	it := m.items[m.selected]
	it.Select(m.tree.now())
	m.tree.resolveImages(it)
}

// Activate re-selects the current item when the menu becomes visible again.
func (m *Menu) Activate() {
	if len(m.items) > 0 {
		m.selectCurrent()
	}
}
