package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

// Description is the JSON layout of the launcher's top-level menu.
//
//	{
//	  "title": "carbonara",
//	  "sections": [
//	    {"title": "Consoles", "background": "consoles.png", "roms": "/mnt/SDCARD/Roms"},
//	    {"title": "Options", "items": [
//	      {"type": "toggle", "key": "display.show_fps", "title": "Show FPS"},
//	      {"type": "option", "key": "system.usb_mode", "title": "USB", "options": ["MTP", "ADB"]},
//	      {"type": "integer", "key": "system.volume", "title": "Volume", "min": 0, "max": 20, "step": 1}
//	    ]}
//	  ]
//	}
type Description struct {
	Title    string               `json:"title"`
	Sections []SectionDescription `json:"sections"`
}

// SectionDescription is one top-level entry. Sections with Roms list the
// systems found there; sections with Items show those setting rows.
type SectionDescription struct {
	Title      string            `json:"title"`
	Background string            `json:"background,omitempty"`
	Roms       string            `json:"roms,omitempty"`
	Items      []ItemDescription `json:"items,omitempty"`
}

type ItemDescription struct {
	Type    string   `json:"type"`
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Options []string `json:"options,omitempty"`
	Default string   `json:"default,omitempty"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	Step    int      `json:"step,omitempty"`
}

var errNoSections = errors.New("menu description has no sections")

func LoadDescription(path string) (Description, error) {
	var desc Description

	data, err := os.ReadFile(path)
	if err != nil {
		return desc, fmt.Errorf("failed to read menu description: %w", err)
	}

	if err := json.Unmarshal(data, &desc); err != nil {
		return desc, fmt.Errorf("failed to parse menu description %s: %w", path, err)
	}

	return desc, nil
}

// FileCatalog lists the folders and files the builder turns into menus.
type FileCatalog interface {
	ListFolders(path string) ([]string, error)
	ListFiles(folder string) ([]string, error)
}

// ValueSource resolves the initial values of setting items.
type ValueSource interface {
	Lookup(key string) (string, bool)
}

type BuildDeps struct {
	Files     FileCatalog
	Aliases   func(folder string) map[string]string
	Values    ValueSource
	Theme     internal.Theme
	BackTitle string
}

type builder struct {
	tree *Tree
	deps BuildDeps
}

// Build creates the root menu and every submenu described by desc. Folders
// that cannot be read produce empty menus; setting items with inconsistent
// values are skipped.
func Build(t *Tree, desc Description, deps BuildDeps) (*Menu, error) {
	if len(desc.Sections) == 0 {
		return nil, errNoSections
	}
	if deps.BackTitle == "" {
		deps.BackTitle = constants.BackTitle
	}

	b := &builder{tree: t, deps: deps}
	root := t.NewMenu(desc.Title, NoMenu)

	for _, section := range desc.Sections {
		sub := t.NewMenu(section.Title, root.ID)

		item := NewBranch(section.Title, sub.ID)
		item.Section = section.Title
		item.Background = b.background(section.Background)
		root.Add(item)

		if section.Roms != "" {
			b.buildSystems(sub, section)
		}
		if len(section.Items) > 0 && section.Roms == "" {
			sub.Mode = ModeRomList
		}
		for _, id := range section.Items {
			if it := b.settingItem(id); it != nil {
				sub.Add(it)
			}
		}

		sub.Add(NewBack(deps.BackTitle))
	}

	return root, nil
}

func (b *builder) background(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.deps.Theme.BackgroundsDir, name)
}

func (b *builder) buildSystems(parent *Menu, section SectionDescription) {
	systems, err := b.deps.Files.ListFolders(section.Roms)
	if err != nil {
		internal.GetLogger().Error("Failed to list systems", "path", section.Roms, "error", err)
		return
	}

	for _, system := range systems {
		romList := b.tree.NewMenu(system, parent.ID)
		romList.Background = b.background(system + ".png")

		item := NewBranch(system, romList.ID)
		item.Section = section.Title
		item.System = system
		item.Background = romList.Background
		parent.Add(item)

		b.buildFolder(romList, filepath.Join(section.Roms, system), section.Title, system)
	}
}

func (b *builder) buildFolder(m *Menu, dir, section, system string) {
	folders, err := b.deps.Files.ListFolders(dir)
	if err != nil {
		internal.GetLogger().Error("Failed to list folders", "path", dir, "error", err)
	}

	for _, folder := range folders {
		sub := b.tree.NewMenu(folder, m.ID)
		sub.Background = m.Background

		item := NewBranch(folder, sub.ID)
		item.Path = filepath.Join(dir, folder)
		item.Section = section
		item.System = system
		m.Add(item)

		b.buildFolder(sub, item.Path, section, system)
	}

	files, err := b.deps.Files.ListFiles(dir)
	if err != nil {
		internal.GetLogger().Error("Failed to list roms", "path", dir, "error", err)
	}

	var aliases map[string]string
	if b.deps.Aliases != nil {
		aliases = b.deps.Aliases(dir)
	}

	for _, file := range files {
		stem := strings.TrimSuffix(file, filepath.Ext(file))

		title := stem
		if alias, ok := aliases[file]; ok && alias != "" {
			title = alias
		}

		item := NewEntry(title, filepath.Join(dir, file))
		item.Section = section
		item.System = system
		if b.deps.Theme.ThumbnailsDir != "" {
			item.Thumbnail = filepath.Join(b.deps.Theme.ThumbnailsDir, system, stem+".png")
		}
		m.Add(item)
	}

	m.Add(NewBack(b.deps.BackTitle))
}

func (b *builder) initial(desc ItemDescription) string {
	if b.deps.Values != nil {
		if v, ok := b.deps.Values.Lookup(desc.Key); ok && v != "" {
			return v
		}
	}
	return desc.Default
}

// settingItem builds a declarative item, or returns nil when it is invalid.
func (b *builder) settingItem(desc ItemDescription) *Item {
	logger := internal.GetLogger()
	value := b.initial(desc)

	switch strings.ToLower(desc.Type) {
	case "toggle":
		on, _ := parseToggle(value)
		return NewToggle(desc.Key, desc.Title, on)

	case "option":
		if value == "" && len(desc.Options) > 0 {
			value = desc.Options[0]
		}
		it, err := NewOption(desc.Key, desc.Title, desc.Options, value)
		if err != nil {
			logger.Error("Skipping option item", "key", desc.Key, "error", err)
			return nil
		}
		return it

	case "integer":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			n = desc.Min
		}
		return NewInteger(desc.Key, desc.Title, desc.Min, desc.Max, desc.Step, n)

	default:
		logger.Error("Skipping item with unknown type", "key", desc.Key, "type", desc.Type)
		return nil
	}
}
