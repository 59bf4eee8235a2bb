package menu

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
)

const (
	ValueOn  = "ON"
	ValueOff = "OFF"
)

// Kind is the variant of an Item.
type Kind int

const (
	KindEntry Kind = iota
	KindToggle
	KindOption
	KindInteger
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "Entry"
	case KindToggle:
		return "Toggle"
	case KindOption:
		return "Option"
	case KindInteger:
		return "Integer"
	default:
		return "Unknown"
	}
}

// ActionKind says what activating an item asks the navigation layer to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionDescend
	ActionLaunch
	ActionBack
)

// Action is the result of activating an item.
type Action struct {
	Kind ActionKind
	Menu MenuID // ActionDescend target
	Item *Item  // ActionLaunch entry
}

// Item is one selectable row. Entries either open a submenu or launch Path;
// the other kinds carry a value bound to Key.
type Item struct {
	Key        string
	Title      string
	Path       string
	System     string
	Section    string
	Background string
	Thumbnail  string
	Back       bool
	Submenu    MenuID

	kind Kind

	on bool

	options []string
	index   int

	min, max, step, value int

	parent  MenuID
	changes *observer.Registry[observer.SettingChange]

	selected          bool
	selectedAt        time.Time
	scroll            *internal.TextScrollData
	imagesResolved    bool
	backgroundMissing bool
	thumbnailMissing  bool
}

func newItem(kind Kind, key, title string) *Item {
	return &Item{
		Key:     key,
		Title:   title,
		Submenu: NoMenu,
		parent:  NoMenu,
		kind:    kind,
	}
}

// NewEntry creates a launchable leaf for the ROM at path.
func NewEntry(title, path string) *Item {
	it := newItem(KindEntry, path, title)
	it.Path = path
	return it
}

// NewBranch creates an entry that opens submenu.
func NewBranch(title string, submenu MenuID) *Item {
	it := newItem(KindEntry, "", title)
	it.Submenu = submenu
	return it
}

// NewBack creates the sentinel entry that returns to the parent menu.
func NewBack(title string) *Item {
	it := newItem(KindEntry, "", title)
	it.Back = true
	return it
}

func NewToggle(key, title string, on bool) *Item {
	it := newItem(KindToggle, key, title)
	it.on = on
	return it
}

// NewOption creates an item cycling through options, starting at initial.
// It fails with an *OptionValueError when initial is not an option.
func NewOption(key, title string, options []string, initial string) (*Item, error) {
	it := newItem(KindOption, key, title)
	it.options = append([]string(nil), options...)

	index := it.indexOf(initial)
	if index < 0 {
		return nil, &OptionValueError{Key: key, Value: initial}
	}
	it.index = index
	return it, nil
}

// NewInteger creates a bounded integer item. value is clamped into [min, max].
func NewInteger(key, title string, min, max, step, value int) *Item {
	if max < min {
		min, max = max, min
	}
	if step < 1 {
		step = 1
	}

	it := newItem(KindInteger, key, title)
	it.min, it.max, it.step = min, max, step
	it.value = clamp(value, min, max)
	return it
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (it *Item) Kind() Kind {
	return it.kind
}

func (it *Item) IsBranch() bool {
	return it.kind == KindEntry && it.Submenu != NoMenu
}

func (it *Item) IsLaunchable() bool {
	return it.kind == KindEntry && !it.Back && it.Submenu == NoMenu && it.Path != ""
}

// Parent returns the menu the item was added to.
func (it *Item) Parent() MenuID {
	return it.parent
}

// Options returns a copy of an option item's choices.
func (it *Item) Options() []string {
	return append([]string(nil), it.options...)
}

// Bounds returns an integer item's min, max and step.
func (it *Item) Bounds() (min, max, step int) {
	return it.min, it.max, it.step
}

// Value returns the item's current value in its string form. Entries have
// no value.
func (it *Item) Value() string {
	switch it.kind {
	case KindToggle:
		if it.on {
			return ValueOn
		}
		return ValueOff
	case KindOption:
		return it.options[it.index]
	case KindInteger:
		return strconv.Itoa(it.value)
	default:
		return ""
	}
}

// SetValue sets the value from its string form without publishing a change.
func (it *Item) SetValue(v string) error {
	switch it.kind {
	case KindToggle:
		on, ok := parseToggle(v)
		if !ok {
			return fmt.Errorf("%s: %q is not ON or OFF", it.Key, v)
		}
		it.on = on
	case KindOption:
		index := it.indexOf(v)
		if index < 0 {
			return &OptionValueError{Key: it.Key, Value: v}
		}
		it.index = index
	case KindInteger:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", it.Key, err)
		}
		if n < it.min || n > it.max {
			return fmt.Errorf("%s: %d is outside [%d, %d]", it.Key, n, it.min, it.max)
		}
		it.value = n
	default:
		return fmt.Errorf("%s: entries have no value", it.Title)
	}
	return nil
}

func parseToggle(v string) (on bool, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case ValueOn, "TRUE", "1", "YES":
		return true, true
	case ValueOff, "FALSE", "0", "NO":
		return false, true
	}
	return false, false
}

func (it *Item) indexOf(v string) int {
	for i, o := range it.options {
		if o == v {
			return i
		}
	}
	return -1
}

// NavigateLeft moves the value one step back. It reports whether the value
// changed; every change is published to the item's setting observers.
func (it *Item) NavigateLeft() bool {
	return it.navigate(-1)
}

// NavigateRight moves the value one step forward.
func (it *Item) NavigateRight() bool {
	return it.navigate(1)
}

func (it *Item) navigate(dir int) bool {
	switch it.kind {
	case KindToggle:
		it.on = !it.on

	case KindOption:
		if len(it.options) < 2 {
			return false
		}
		it.index = (it.index + dir + len(it.options)) % len(it.options)

	case KindInteger:
		// Strict bounds: a step that would land on min or max is refused.
		next := it.value + dir*it.step
		if dir < 0 && next <= it.min {
			return false
		}
		if dir > 0 && next >= it.max {
			return false
		}
		it.value = next

	default:
		return false
	}

	it.changes.Notify(observer.SettingChange{Key: it.Key, Value: it.Value()})
	return true
}

// Activate returns what pressing Enter on the item means. Toggles flip in
// place.
func (it *Item) Activate() Action {
	switch it.kind {
	case KindToggle:
		it.navigate(1)
		return Action{}
	case KindEntry:
		switch {
		case it.Back:
			return Action{Kind: ActionBack}
		case it.Submenu != NoMenu:
			return Action{Kind: ActionDescend, Menu: it.Submenu}
		case it.Path != "":
			return Action{Kind: ActionLaunch, Item: it}
		}
	}
	return Action{}
}

// Select marks the item selected at now and resets its scroll state.
func (it *Item) Select(now time.Time) {
	it.selected = true
	it.selectedAt = now
	it.scroll = nil
}

// Deselect clears the transient view state.
func (it *Item) Deselect() {
	it.selected = false
	it.selectedAt = time.Time{}
	it.scroll = nil
}

func (it *Item) Selected() bool {
	return it.selected
}
