// Package settings implements the keyed settings screens. Unlike menus,
// the cursor wraps at both ends and every row's update rule is chosen by
// its key.
package settings

import (
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
)

// Setting is one keyed value.
type Setting struct {
	Key     string
	Value   string
	Enabled bool
}

// Definition declares a setting row. Title is a translation id.
type Definition struct {
	Key     string
	Title   string
	Default string
	Policy  Policy

	// AlwaysEnabled rows are shown even when the source has no value.
	AlwaysEnabled bool

	// Format turns the stored value into its displayed form.
	Format func(value string) string
}

// ValueSource provides the initial values of settings.
type ValueSource interface {
	Lookup(key string) (string, bool)
}

// Values is a ValueSource backed by a map.
type Values map[string]string

func (v Values) Lookup(key string) (string, bool) {
	s, ok := v[key]
	return s, ok
}

// Row is what a settings screen draws for one enabled setting.
type Row struct {
	Key      string
	Title    string
	Value    string
	Selected bool
}

// TitleFunc resolves a translation id.
type TitleFunc func(id string) (string, error)

// Settings is a keyed settings model with a wrapping cursor over the keys
// that were enabled when it was created.
type Settings struct {
	settings    map[string]*Setting
	defs        map[string]Definition
	enabledKeys []string
	current     int

	changes  *observer.Registry[observer.SettingChange]
	onChange func(key, value string)

	titleFunc TitleFunc
	titles    map[string]string
}

// New builds the settings for defs. A setting is enabled when source has a
// non-empty value for its key, or when it is always enabled.
func New(source ValueSource, defs []Definition, changes *observer.Registry[observer.SettingChange]) *Settings {
	s := &Settings{
		settings: make(map[string]*Setting, len(defs)),
		defs:     make(map[string]Definition, len(defs)),
		changes:  changes,
		titles:   make(map[string]string, len(defs)),
	}

	for _, def := range defs {
		setting := &Setting{Key: def.Key, Value: def.Default}

		if source != nil {
			if v, ok := source.Lookup(def.Key); ok && v != "" {
				setting.Value = v
				setting.Enabled = true
			}
		}
		if def.AlwaysEnabled {
			setting.Enabled = true
		}
		if toggle, ok := def.Policy.(Toggle); ok {
			setting.Value = toggle.normalize(setting.Value)
		}

		s.settings[def.Key] = setting
		s.defs[def.Key] = def
		if setting.Enabled {
			s.enabledKeys = append(s.enabledKeys, def.Key)
		}
	}

	s.Retranslate()
	return s
}

// EnabledKeys returns the navigable keys in display order.
func (s *Settings) EnabledKeys() []string {
	return append([]string(nil), s.enabledKeys...)
}

func (s *Settings) Len() int {
	return len(s.enabledKeys)
}

// Get returns the setting for key, enabled or not.
func (s *Settings) Get(key string) (Setting, bool) {
	setting, ok := s.settings[key]
	if !ok {
		return Setting{}, false
	}
	return *setting, true
}

func (s *Settings) CurrentIndex() int {
	return s.current
}

// CurrentKey returns the key under the cursor, or "" when nothing is enabled.
func (s *Settings) CurrentKey() string {
	if len(s.enabledKeys) == 0 {
		return ""
	}
	return s.enabledKeys[s.current]
}

func (s *Settings) CurrentValue() string {
	if setting, ok := s.settings[s.CurrentKey()]; ok {
		return setting.Value
	}
	return ""
}

func (s *Settings) NavigateUp() {
	if n := len(s.enabledKeys); n > 0 {
		s.current = (s.current - 1 + n) % n
	}
}

func (s *Settings) NavigateDown() {
	if n := len(s.enabledKeys); n > 0 {
		s.current = (s.current + 1) % n
	}
}

func (s *Settings) NavigateLeft() bool {
	return s.apply(Policy.Left)
}

func (s *Settings) NavigateRight() bool {
	return s.apply(Policy.Right)
}

// NavigateEnter runs the current row's action or flips a toggle.
func (s *Settings) NavigateEnter() bool {
	return s.apply(Policy.Enter)
}

func (s *Settings) apply(op func(Policy, *Setting) bool) bool {
	key := s.CurrentKey()
	if key == "" {
		return false
	}

	policy := s.defs[key].Policy
	if policy == nil {
		return false
	}

	setting := s.settings[key]
	if !op(policy, setting) {
		return false
	}

	s.notifySettingsChange(key, setting.Value)
	return true
}

func (s *Settings) notifySettingsChange(key, value string) {
	internal.GetInternalLogger().Debug("Setting changed", "key", key, "value", value)
	if s.onChange != nil {
		s.onChange(key, value)
	}
	s.changes.Notify(observer.SettingChange{Key: key, Value: value})
}

// SetTitleFunc sets the translation used for row titles and applies it.
func (s *Settings) SetTitleFunc(fn TitleFunc) {
	s.titleFunc = fn
	s.Retranslate()
}

// Retranslate resolves every row title again. A title that fails to
// translate keeps the text returned with the error, or the id itself.
func (s *Settings) Retranslate() {
	for key, def := range s.defs {
		title := def.Title
		if title == "" {
			title = key
		}

		if s.titleFunc != nil {
			text, err := s.titleFunc(title)
			if err != nil {
				internal.GetLogger().Warn("Missing translation for setting", "key", key, "error", err)
			}
			if text != "" {
				title = text
			}
		}

		s.titles[key] = title
	}
}

// Title returns the resolved title of key.
func (s *Settings) Title(key string) string {
	return s.titles[key]
}

// Rows returns the enabled settings in order, ready to draw.
func (s *Settings) Rows() []Row {
	rows := make([]Row, 0, len(s.enabledKeys))
	for i, key := range s.enabledKeys {
		value := s.settings[key].Value
		def := s.defs[key]
		if _, isTrigger := def.Policy.(Trigger); isTrigger {
			value = ""
		} else if def.Format != nil {
			value = def.Format(value)
		}

		rows = append(rows, Row{
			Key:      key,
			Title:    s.titles[key],
			Value:    value,
			Selected: i == s.current,
		})
	}
	return rows
}
