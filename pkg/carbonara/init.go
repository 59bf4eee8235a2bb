// Package carbonara is a menu-driven ROM launcher for handheld Linux gaming
// devices running custom firmware like NextUI or Cannoli.
//
// Init wires configuration, theme, translations, catalogs, the menu tree
// and the navigation machine together. Run drives the frame loop until the
// user quits, restarts or launches a game.
package carbonara

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/catalog"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/config"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/i18n"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/input"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/launcher"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/menu"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/platform/cannoli"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/render"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/router"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/settings"
)

// Options configures the launcher.
type Options struct {
	WindowTitle   string               // Window title displayed in windowed mode
	WindowOptions render.WindowOptions // SDL window flags (borderless or resizable)

	ConfigPath     string // TOML device configuration
	ThemePath      string // Theme file; empty selects <ThemesDir>/<display.theme>.toml
	ThemesDir      string // Directory of *.toml themes offered in system settings
	MenuPath       string // JSON menu description; empty lists RomsDir as one section
	RomsDir        string
	CoresDir       string // <system>.json console catalogs
	LanguagesDir   string // <tag>.toml translations
	Language       string // Overrides display.language from the config
	SelectionsPath string // Remembered per-ROM cores
	ResumePath     string // Menu position saved before a launch

	ExcludedExtensions []string // Files never listed as ROMs; nil uses catalog.DefaultExcluded
	ImageCacheSize     int

	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string

	Platform        string // Enables the evdev power button for the named device
	FlipFaceButtons bool   // Swap A and B for devices that confirm with B

	// Renderer replaces the SDL window, e.g. with a TermRenderer.
	Renderer render.Renderer
	// Commands replaces SDL input polling.
	Commands input.Source
	// FrameInterval paces renderers that do not wait for vsync.
	FrameInterval time.Duration
	// Launcher replaces the process launcher. Its exit is left to Run's caller.
	Launcher launcher.Launcher
}

// App is an initialized launcher.
type App struct {
	opts Options

	cfg        *config.Config
	writer     *config.Writer
	theme      internal.Theme
	style      menu.Style
	translator *i18n.Translator
	bus        *observer.Bus

	settingsHandle observer.Handle
	languageHandle observer.Handle

	consoles   *catalog.ConsoleCatalog
	selections settings.SelectionRecords

	tree     *menu.Tree
	machine  *router.Machine
	renderer render.Renderer
	source   input.Source
	power    *input.PowerButton

	system  *settings.Settings
	options *optionList
	overlay *settings.Settings
	status  statusMessage
}

// Init builds every collaborator and restores the saved menu position.
// Missing optional files degrade to defaults; only infrastructure failures
// are returned.
func Init(opts Options) (*App, error) {
	if opts.LogPath != "" {
		internal.SetLogPath(opts.LogPath)
	}
	level := opts.LogLevel
	if level == "" {
		level = os.Getenv(constants.LogLevelEnvVar)
	}
	if level != "" {
		internal.SetRawLogLevel(level)
	}
	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	logger := internal.GetLogger()

	a := &App{
		opts:    opts,
		bus:     observer.NewBus(),
		options: newOptionList(),
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, NewInfrastructureError("load_config", err)
	}
	a.cfg = cfg
	a.writer = config.NewWriter(cfg, a.bus.Settings)

	a.theme = a.loadTheme(cfg.Get(settings.KeyTheme))

	a.translator, err = i18n.New(opts.LanguagesDir, a.bus.Languages)
	if err != nil {
		return nil, NewInfrastructureError("load_translations", err)
	}
	lang := opts.Language
	if lang == "" {
		if v, ok := cfg.Lookup(settings.KeyLanguage); ok {
			lang = v
		}
	}
	if lang != "" {
		if err := a.translator.SetLanguage(lang); err != nil {
			logger.Warn("Unsupported language, keeping English", "language", lang, "error", err)
		}
	}

	a.renderer = opts.Renderer
	if a.renderer == nil {
		r, err := render.NewSDLRenderer(render.SDLOptions{
			Title:    opts.WindowTitle,
			Window:   opts.WindowOptions,
			FontPath: a.theme.FontPath,
			FontSize: a.theme.FontSize,
		})
		if err != nil {
			return nil, NewInfrastructureError("init_renderer", err)
		}
		a.renderer = r
	}

	_, height := a.renderer.Size()
	a.style = menu.Style{Theme: a.theme, Layout: internal.DefaultLayout(height)}

	images := internal.NewImageCache[render.Image](opts.ImageCacheSize, a.renderer.LoadImage)
	a.tree = menu.NewTree(images, a.bus.Settings)
	a.tree.SetItemsPerPage(a.style.Layout.RowsFor(height))

	if err := a.buildMenu(); err != nil {
		a.renderer.Close()
		return nil, NewInfrastructureError("load_menu", err)
	}

	a.consoles = catalog.NewConsoleCatalog(opts.CoresDir)
	if opts.SelectionsPath != "" {
		store, err := catalog.NewSelectionCache().Store(opts.SelectionsPath)
		if err != nil {
			logger.Error("Failed to load selections, cores will not be remembered", "path", opts.SelectionsPath, "error", err)
		} else {
			a.selections = store
		}
	}

	launch := opts.Launcher
	if launch == nil {
		launch = launcher.NewExec(nil)
	}

	a.machine = router.New(a.tree, router.Deps{
		Launcher:       launch,
		SystemSettings: a.systemSettings,
		Rom: settings.RomDeps{
			Cores:      a.consoles,
			Selections: a.selections,
			Titles:     a.translator.Translate,
			Languages:  a.bus.Languages,
			Changes:    a.bus.Settings,
		},
		ResumePath: opts.ResumePath,
	})

	a.settingsHandle = a.bus.Settings.Attach(a.onSettingChange)
	a.languageHandle = a.bus.Languages.Attach(a.onLanguageChange)

	if !a.restore() {
		a.autostart()
	}

	a.source = opts.Commands
	if a.source == nil {
		a.source = input.NewSDLSource(input.DefaultMapping(opts.FlipFaceButtons))
	}

	if opts.Platform != "" {
		power, err := input.OpenPowerButton(input.DefaultPowerButtonConfig(strings.ToUpper(opts.Platform)))
		if err != nil {
			logger.Warn("Power button unavailable", "platform", opts.Platform, "error", err)
		}
		if power != nil {
			power.Start()
			a.power = power
		}
	}

	logger.Info("Launcher ready", "menus", a.tree.Len(), "language", a.translator.Language(), "theme", a.theme.Name)
	return a, nil
}

func (a *App) loadTheme(name string) internal.Theme {
	base := cannoli.InitCannoliTheme(cannoli.FontPath)

	path := a.opts.ThemePath
	if path == "" && a.opts.ThemesDir != "" && name != "" && name != config.NotFound {
		path = filepath.Join(a.opts.ThemesDir, name+".toml")
	}
	if path == "" {
		return base
	}

	theme, err := internal.LoadTheme(path, base)
	if err != nil {
		internal.GetLogger().Warn("Using default theme", "path", path, "error", err)
		return base
	}
	return theme
}

// themeNames lists the themes in ThemesDir by file stem.
func (a *App) themeNames() []string {
	if a.opts.ThemesDir == "" {
		return nil
	}
	entries, err := os.ReadDir(a.opts.ThemesDir)
	if err != nil {
		internal.GetLogger().Warn("Failed to list themes", "path", a.opts.ThemesDir, "error", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

func (a *App) buildMenu() error {
	var desc menu.Description
	if a.opts.MenuPath != "" {
		d, err := menu.LoadDescription(a.opts.MenuPath)
		if err != nil {
			return err
		}
		desc = d
	} else {
		if a.opts.RomsDir == "" {
			return errors.New("neither a menu description nor a roms directory is configured")
		}
		desc = menu.Description{
			Title:    a.opts.WindowTitle,
			Sections: []menu.SectionDescription{{Title: filepath.Base(a.opts.RomsDir), Roms: a.opts.RomsDir}},
		}
	}

	excluded := a.opts.ExcludedExtensions
	if excluded == nil {
		excluded = catalog.DefaultExcluded
	}

	_, err := menu.Build(a.tree, desc, menu.BuildDeps{
		Files:     catalog.NewFileCatalog(excluded...),
		Aliases:   catalog.LoadAliases,
		Values:    a.cfg,
		Theme:     a.theme,
		BackTitle: a.translator.T("menu.back"),
	})
	return err
}

// restore returns to the menu position saved before the last launch. It
// reports whether there was one.
func (a *App) restore() bool {
	if a.opts.ResumePath == "" {
		return false
	}
	logger := internal.GetLogger()

	resume, ok, err := catalog.LoadResume(a.opts.ResumePath)
	if err != nil {
		logger.Warn("Ignoring resume state", "path", a.opts.ResumePath, "error", err)
		return false
	}
	if !ok {
		return false
	}

	if err := a.machine.Restore(resume.MenuPath); err != nil {
		logger.Warn("Menu position only partially restored", "path", resume.MenuPath, "error", err)
	}
	if err := catalog.ClearResume(a.opts.ResumePath); err != nil {
		logger.Warn("Failed to clear resume state", "path", a.opts.ResumePath, "error", err)
	}
	return true
}

// autostart launches the ROM marked for autostart on a fresh boot. A failure
// leaves the menu up with a notice.
func (a *App) autostart() {
	if _, err := a.machine.Autostart(); err != nil {
		internal.GetLogger().Error("Autostart failed", "error", err)
		a.status.show(a.statusText(err), time.Now())
	}
}

// systemSettings builds the device settings overlay from the current
// configuration each time it opens.
func (a *App) systemSettings() *settings.Settings {
	s := settings.NewSystemSettings(a.cfg, settings.SystemOptions{
		Themes:       a.themeNames(),
		Languages:    a.translator.Languages(),
		LanguageName: i18n.DisplayName,
		OnSave:       a.writer.Flush,
		OnRestart: func() error {
			a.machine.RequestExit(ExitRestart)
			return nil
		},
		OnQuit: func() error {
			a.machine.RequestExit(ExitQuit)
			return nil
		},
	}, a.bus.Settings)
	s.SetTitleFunc(a.translator.Translate)
	a.system = s
	return s
}

func (a *App) onSettingChange(ev observer.SettingChange) {
	switch ev.Key {
	case settings.KeyLanguage:
		if err := a.translator.SetLanguage(ev.Value); err != nil {
			internal.GetLogger().Warn("Failed to switch language", "language", ev.Value, "error", err)
		}
	case settings.KeyTheme:
		a.theme = a.loadTheme(ev.Value)
		a.style.Theme = a.theme
	}
}

func (a *App) onLanguageChange(ev observer.LanguageChange) {
	internal.GetInternalLogger().Debug("Language changed", "language", ev.Language)
	if a.system != nil {
		a.system.Retranslate()
	}
}

// Close saves pending configuration changes and releases every resource.
// Must be called before program exit.
func (a *App) Close() {
	logger := internal.GetLogger()

	if err := a.writer.Flush(); err != nil {
		logger.Error("Failed to save configuration", "path", a.cfg.Path(), "error", err)
	}
	a.writer.Close()

	a.bus.Settings.Detach(a.settingsHandle)
	a.bus.Languages.Detach(a.languageHandle)
	if rs := a.machine.RomSettings(); rs != nil {
		rs.Close()
	}

	if closer, ok := a.source.(interface{ Close() }); ok {
		closer.Close()
	}
	if err := a.power.Close(); err != nil {
		logger.Warn("Failed to close power button", "error", err)
	}

	a.tree.Destroy()
	a.renderer.Close()
	internal.CloseLogger()
}
