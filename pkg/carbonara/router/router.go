package router

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/catalog"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/input"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/launcher"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/menu"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/settings"
)

var (
	// ErrNoRomSelected is returned when ROM settings are requested without
	// a ROM under the cursor. It is not fatal.
	ErrNoRomSelected = errors.New("no rom selected")

	ErrNoCore       = errors.New("no core available")
	ErrLaunchFailed = errors.New("launch failed")

	errNoLauncher = errors.New("no launcher configured")
)

// Mode is the view context of the machine.
type Mode = menu.Mode

const (
	ModeSections       = menu.ModeSections
	ModeSystems        = menu.ModeSystems
	ModeRomList        = menu.ModeRomList
	ModeSystemSettings = menu.ModeSystemSettings
	ModeRomSettings    = menu.ModeRomSettings
)

// ExitReason says why the frame loop should stop.
type ExitReason int

const (
	ExitNone ExitReason = iota
	ExitQuit
	ExitRestart
	ExitLaunch
)

func (r ExitReason) String() string {
	switch r {
	case ExitNone:
		return "None"
	case ExitQuit:
		return "Quit"
	case ExitRestart:
		return "Restart"
	case ExitLaunch:
		return "Launch"
	default:
		return "Unknown"
	}
}

type Deps struct {
	Launcher launcher.Launcher

	// SystemSettings builds the device settings overlay each time it opens.
	SystemSettings func() *settings.Settings

	// Rom is passed to every ROM settings overlay. Its Cores and
	// Selections also resolve the core a ROM launches with.
	Rom settings.RomDeps

	// ResumePath is where the menu position is saved before a launch.
	ResumePath string
}

// Machine routes commands to the active menu or the open settings overlay.
type Machine struct {
	tree   *menu.Tree
	deps   Deps
	active *menu.Menu
	stack  *Stack

	overlay     *settings.Settings
	overlayMode Mode
	rom         *settings.RomSettings

	exit ExitReason
}

// New starts at the root of tree.
func New(tree *menu.Tree, deps Deps) *Machine {
	m := &Machine{
		tree:   tree,
		deps:   deps,
		active: tree.Root(),
		stack:  NewStack(),
	}
	if m.active != nil {
		m.active.Activate()
	}
	return m
}

// Mode returns the overlay mode while one is open, otherwise the mode of
// the active menu.
func (m *Machine) Mode() Mode {
	if m.overlay != nil {
		return m.overlayMode
	}
	if m.active == nil {
		return ModeSections
	}
	return m.active.Mode
}

// Active returns the menu being browsed. It stays set under an overlay.
func (m *Machine) Active() *menu.Menu {
	return m.active
}

// Overlay returns the open settings model, or nil.
func (m *Machine) Overlay() *settings.Settings {
	return m.overlay
}

// RomSettings returns the open ROM overlay, or nil.
func (m *Machine) RomSettings() *settings.RomSettings {
	return m.rom
}

func (m *Machine) Stack() *Stack {
	return m.stack
}

func (m *Machine) Exit() ExitReason {
	return m.exit
}

// RequestExit stops the frame loop after the current frame. The first
// reason wins.
func (m *Machine) RequestExit(reason ExitReason) {
	if m.exit == ExitNone {
		m.exit = reason
	}
}

// Handle applies one command. Returned errors are recoverable; the machine
// is left in a consistent state.
func (m *Machine) Handle(cmd input.Command) error {
	if m.exit != ExitNone || cmd == input.CommandNone {
		return nil
	}

	internal.GetInternalLogger().Debug("Handling command", "command", cmd, "mode", m.Mode())

	switch cmd {
	case input.CommandQuit:
		m.RequestExit(ExitQuit)
		return nil
	case input.CommandShowSystemSettings:
		return m.showSystemSettings()
	case input.CommandShowRomSettings:
		return m.showRomSettings()
	}

	if m.overlay != nil {
		m.handleOverlay(cmd)
		return nil
	}
	return m.handleMenu(cmd)
}

func (m *Machine) handleOverlay(cmd input.Command) {
	switch cmd {
	case input.CommandUp:
		m.overlay.NavigateUp()
	case input.CommandDown:
		m.overlay.NavigateDown()
	case input.CommandLeft, input.CommandPageLeft:
		m.overlay.NavigateLeft()
	case input.CommandRight, input.CommandPageRight:
		m.overlay.NavigateRight()
	case input.CommandEnter:
		m.overlay.NavigateEnter()
	case input.CommandBack:
		m.closeOverlay()
	}
}

func (m *Machine) handleMenu(cmd input.Command) error {
	if m.active == nil {
		return nil
	}

	switch cmd {
	case input.CommandUp:
		m.active.NavigateUp()
	case input.CommandDown:
		m.active.NavigateDown()
	case input.CommandPageLeft:
		m.active.NavigatePageLeft()
	case input.CommandPageRight:
		m.active.NavigatePageRight()
	case input.CommandLeft:
		m.horizontal(-1)
	case input.CommandRight:
		m.horizontal(1)
	case input.CommandEnter:
		return m.execute(m.active.SelectItem())
	case input.CommandBack:
		m.back()
	}
	return nil
}

// horizontal changes the value of a setting row. On entries it moves the
// cursor instead: one item in the full-screen modes, a page stride in lists.
func (m *Machine) horizontal(dir int) {
	it := m.active.Selected()
	if it == nil {
		return
	}

	if it.Kind() != menu.KindEntry {
		if dir < 0 {
			it.NavigateLeft()
		} else {
			it.NavigateRight()
		}
		return
	}

	switch m.active.Mode {
	case ModeSections, ModeSystems:
		if dir < 0 {
			m.active.NavigateUp()
		} else {
			m.active.NavigateDown()
		}
	default:
		if dir < 0 {
			m.active.NavigatePageLeft()
		} else {
			m.active.NavigatePageRight()
		}
	}
}

func (m *Machine) execute(action menu.Action) error {
	switch action.Kind {
	case menu.ActionDescend:
		m.enter(action.Menu)
	case menu.ActionBack:
		m.back()
	case menu.ActionLaunch:
		return m.launch(action.Item)
	}
	return nil
}

func (m *Machine) enter(id menu.MenuID) {
	target := m.tree.Menu(id)
	if target == nil {
		internal.GetLogger().Warn("Submenu does not exist", "menu", id)
		return
	}
	m.active = target
	m.active.Activate()
	internal.GetInternalLogger().Debug("Entered menu", "title", target.Title, "mode", target.Mode)
}

func (m *Machine) back() {
	parent := m.tree.Menu(m.active.Parent)
	if parent == nil {
		return
	}
	m.active = parent
	m.active.Activate()
}

func (m *Machine) showSystemSettings() error {
	if m.overlay != nil {
		if m.overlayMode == ModeSystemSettings {
			m.closeOverlay()
		}
		return nil
	}
	if m.deps.SystemSettings == nil {
		return nil
	}

	s := m.deps.SystemSettings()
	if s == nil {
		return nil
	}
	m.openOverlay(ModeSystemSettings, s)
	return nil
}

func (m *Machine) showRomSettings() error {
	if m.overlay != nil {
		if m.overlayMode == ModeRomSettings {
			m.closeOverlay()
		}
		return nil
	}

	it := m.selectedRom()
	if it == nil {
		return ErrNoRomSelected
	}

	rs, err := settings.NewRomSettings(m.romContext(it), m.deps.Rom)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoRomSelected, err)
	}

	m.rom = rs
	m.openOverlay(ModeRomSettings, rs.Settings)
	return nil
}

func (m *Machine) selectedRom() *menu.Item {
	if m.active == nil {
		return nil
	}
	it := m.active.Selected()
	if it == nil || !it.IsLaunchable() {
		return nil
	}
	return it
}

func (m *Machine) romContext(it *menu.Item) settings.RomContext {
	return settings.RomContext{
		Section: it.Section,
		System:  it.System,
		Folder:  m.tree.FolderName(it),
		Title:   it.Title,
		Path:    it.Path,
	}
}

func (m *Machine) openOverlay(mode Mode, s *settings.Settings) {
	m.stack.Push(m.Mode(), m.active)
	m.overlay = s
	m.overlayMode = mode
	internal.GetInternalLogger().Debug("Opened overlay", "mode", mode)
}

func (m *Machine) closeOverlay() {
	if m.rom != nil {
		m.rom.Close()
		m.rom = nil
	}
	m.overlay = nil

	entry := m.stack.Pop()
	if entry == nil {
		return
	}
	if target := m.tree.Menu(entry.Menu); target != nil {
		m.active = target
		m.active.SetPosition(entry.Selected, entry.Start)
		m.active.Activate()
	}
}

// launch saves the menu position, resolves the core and hands the ROM to
// the launcher. The position must be saved before anything is started.
func (m *Machine) launch(it *menu.Item) error {
	logger := internal.GetLogger()

	if m.deps.ResumePath != "" {
		resume := catalog.Resume{MenuPath: m.tree.Path(m.active.ID), Mode: m.Mode().String()}
		if err := catalog.SaveResume(m.deps.ResumePath, resume); err != nil {
			return err
		}
	}

	core := m.resolveCore(it)
	if core == "" {
		return fmt.Errorf("%w for %s", ErrNoCore, it.System)
	}

	if m.deps.Launcher == nil {
		return errNoLauncher
	}

	req := launcher.Request{Executable: core, Rom: it.Path}
	if records := m.deps.Rom.Selections; records != nil {
		if rec, ok := records.Lookup(it.Path); ok {
			req.Overclock = rec.Overclock
		}
	}

	logger.Info("Launching", "rom", it.Path, "core", core, "overclock", req.Overclock)
	if err := m.deps.Launcher.Launch(req); err != nil {
		logger.Error("Launch failed", "rom", it.Path, "core", core, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrLaunchFailed, it.Path, err)
	}

	m.RequestExit(ExitLaunch)
	return nil
}

// Autostart launches the first remembered ROM marked for autostart, going
// through the same path as pressing Enter on it. ROMs no longer in the tree
// are skipped. It reports whether a launch happened.
func (m *Machine) Autostart() (bool, error) {
	records := m.deps.Rom.Selections
	if records == nil || m.exit != ExitNone || m.overlay != nil {
		return false, nil
	}

	for _, rec := range records.Records() {
		if rec.Autostart == nil || !*rec.Autostart {
			continue
		}
		target, ok := m.tree.Reveal(rec.Path)
		if !ok {
			internal.GetLogger().Warn("Autostart ROM is not in the library", "path", rec.Path)
			continue
		}

		m.active = target
		m.active.Activate()
		internal.GetLogger().Info("Autostarting", "rom", rec.Path)
		if err := m.launch(target.Selected()); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// resolveCore picks the ROM's remembered core, then the system's selected
// core, then its first core.
func (m *Machine) resolveCore(it *menu.Item) string {
	cores := m.deps.Rom.Cores
	var available []string
	if cores != nil {
		available = cores.Executables(it.System)
	}

	if records := m.deps.Rom.Selections; records != nil {
		if rec, ok := records.Lookup(it.Path); ok && rec.Core != "" {
			for _, c := range available {
				if c == rec.Core {
					return c
				}
			}
		}
	}

	if cores != nil {
		if c := cores.SelectedCore(it.System); c != "" {
			return c
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

// Restore walks path from the root, selecting each index and descending
// through branches. It stops at the first index that does not exist.
func (m *Machine) Restore(path []int) error {
	current := m.tree.Root()
	if current == nil || len(path) == 0 {
		return nil
	}
	defer func() { m.active.Activate() }()

	for depth, index := range path {
		if index < 0 || index >= current.Len() {
			return fmt.Errorf("resume index %d out of range at depth %d", index, depth)
		}
		current.SetSelectedIndex(index)
		m.active = current

		if depth == len(path)-1 {
			break
		}

		it := current.Selected()
		next := m.tree.Menu(it.Submenu)
		if !it.IsBranch() || next == nil {
			return fmt.Errorf("resume path descends through a leaf at depth %d", depth)
		}
		current = next
	}

	internal.GetInternalLogger().Debug("Restored menu position", "path", path, "mode", m.active.Mode)
	return nil
}
