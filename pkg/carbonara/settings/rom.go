package settings

import (
	"errors"
	"path/filepath"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/catalog"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
)

// ROM setting keys.
const (
	KeyCore         = "rom.core"
	KeyRomOverclock = "rom.overclock"
	KeyAutostart    = "rom.autostart"
)

var errNoRomPath = errors.New("rom settings need a rom path")

// RomContext identifies the ROM a settings overlay was opened for.
type RomContext struct {
	Section string
	System  string
	Folder  string
	Title   string
	Path    string
}

// CoreCatalog lists and records the emulator cores of a system.
type CoreCatalog interface {
	Executables(system string) []string
	SelectedCore(system string) string
	SetSelectedCore(system, core string) error
}

// SelectionRecords holds the remembered per-ROM choices.
type SelectionRecords interface {
	Lookup(romPath string) (catalog.Selection, bool)
	Update(rec catalog.Selection)
	Records() []catalog.Selection
	Save() error
}

type RomDeps struct {
	Cores           CoreCatalog
	Selections      SelectionRecords
	OverclockLevels []string
	Titles          TitleFunc
	Languages       *observer.Registry[observer.LanguageChange]
	Changes         *observer.Registry[observer.SettingChange]
}

// RomSettings is the per-ROM overlay: core, CPU speed and autostart. It
// persists every change to the console catalog and the selection records,
// and re-resolves its titles when the language changes.
type RomSettings struct {
	*Settings

	ctx      RomContext
	deps     RomDeps
	language observer.Handle
}

// NewRomSettings builds the overlay for ctx. The core defaults to the ROM's
// remembered core, then the system's selected core, then its first core.
func NewRomSettings(ctx RomContext, deps RomDeps) (*RomSettings, error) {
	if ctx.Path == "" {
		return nil, errNoRomPath
	}

	levels := deps.OverclockLevels
	if len(levels) == 0 {
		levels = DefaultOverclockLevels
	}

	var cores []string
	if deps.Cores != nil {
		cores = deps.Cores.Executables(ctx.System)
	}

	var record catalog.Selection
	var known bool
	if deps.Selections != nil {
		record, known = deps.Selections.Lookup(ctx.Path)
	}

	values := Values{
		KeyCore:         resolveCore(ctx, deps.Cores, cores, record),
		KeyRomOverclock: record.Overclock,
		KeyAutostart:    ValueOff,
	}
	if values[KeyRomOverclock] == "" {
		values[KeyRomOverclock] = levels[0]
	}
	if known && record.Autostart != nil && *record.Autostart {
		values[KeyAutostart] = ValueOn
	}

	defs := []Definition{
		{Key: KeyCore, Title: KeyCore, Policy: Cycle{Values: cores}},
		{Key: KeyRomOverclock, Title: KeyRomOverclock, Policy: Cycle{Values: levels}},
		{Key: KeyAutostart, Title: KeyAutostart, Policy: Toggle{}},
	}

	rs := &RomSettings{
		Settings: New(values, defs, deps.Changes),
		ctx:      ctx,
		deps:     deps,
	}
	rs.onChange = rs.persist

	if deps.Titles != nil {
		rs.SetTitleFunc(deps.Titles)
	}
	if deps.Languages != nil {
		rs.language = deps.Languages.Attach(rs.onLanguageChange)
	}

	return rs, nil
}

func resolveCore(ctx RomContext, cores CoreCatalog, available []string, record catalog.Selection) string {
	if record.Core != "" {
		for _, c := range available {
			if c == record.Core {
				return c
			}
		}
	}
	if cores != nil {
		if c := cores.SelectedCore(ctx.System); c != "" {
			return c
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

func (rs *RomSettings) Context() RomContext {
	return rs.ctx
}

// Core returns the core the ROM will launch with.
func (rs *RomSettings) Core() string {
	s, _ := rs.Get(KeyCore)
	return s.Value
}

func (rs *RomSettings) onLanguageChange(ev observer.LanguageChange) {
	internal.GetInternalLogger().Debug("Retranslating ROM settings", "language", ev.Language)
	rs.Retranslate()
}

func (rs *RomSettings) persist(key, value string) {
	logger := internal.GetLogger()

	if key == KeyCore && rs.deps.Cores != nil {
		if err := rs.deps.Cores.SetSelectedCore(rs.ctx.System, value); err != nil {
			logger.Error("Failed to save core", "system", rs.ctx.System, "core", value, "error", err)
		}
	}

	if rs.deps.Selections == nil {
		return
	}

	record, ok := rs.deps.Selections.Lookup(rs.ctx.Path)
	if !ok {
		record = catalog.Selection{
			Section: rs.ctx.Section,
			Folder:  rs.ctx.Folder,
			Rom:     filepath.Base(rs.ctx.Path),
			Path:    rs.ctx.Path,
		}
	}

	switch key {
	case KeyCore:
		record.Core = value
	case KeyRomOverclock:
		record.Overclock = value
	case KeyAutostart:
		on := IsOn(value)
		record.Autostart = &on
	}
	if record.Core == "" {
		record.Core = rs.Core()
	}

	rs.deps.Selections.Update(record)
	if err := rs.deps.Selections.Save(); err != nil {
		logger.Error("Failed to save selection", "path", rs.ctx.Path, "error", err)
	}
}

// Close stops listening for language changes.
func (rs *RomSettings) Close() {
	if rs.deps.Languages != nil {
		rs.deps.Languages.Detach(rs.language)
	}
}
