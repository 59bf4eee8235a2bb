package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

func testCatalog() fakeCatalog {
	return fakeCatalog{
		folders: map[string][]string{
			"/roms":     {"GBA", "GB"},
			"/roms/GBA": {"Hacks"},
		},
		files: map[string][]string{
			"/roms/GBA":       {"b.gba", "a.gba"},
			"/roms/GBA/Hacks": {"c.gba"},
			"/roms/GB":        {"tetris.gb"},
		},
	}
}

func testDescription() Description {
	return Description{
		Title: "carbonara",
		Sections: []SectionDescription{
			{Title: "Consoles", Background: "consoles.png", Roms: "/roms"},
			{Title: "Options", Items: []ItemDescription{
				{Type: "toggle", Key: "display.show_fps", Title: "Show FPS"},
				{Type: "option", Key: "system.usb_mode", Title: "USB", Options: []string{"MTP", "ADB"}},
				{Type: "option", Key: "system.bad", Title: "Bad", Options: []string{"A", "B"}},
				{Type: "integer", Key: "system.volume", Title: "Volume", Min: 0, Max: 20, Step: 1},
				{Type: "slider", Key: "system.unknown", Title: "Unknown"},
			}},
		},
	}
}

func titles(m *Menu) []string {
	var out []string
	for _, it := range m.Items() {
		out = append(out, it.Title)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuild(t *testing.T) {
	tree, _ := newTestTree(nil)
	deps := BuildDeps{
		Files: testCatalog(),
		Aliases: func(folder string) map[string]string {
			if folder == "/roms/GBA" {
				return map[string]string{"a.gba": "Advance Wars"}
			}
			return nil
		},
		Values: mapValues{
			"display.show_fps": "ON",
			"system.usb_mode":  "ADB",
			"system.bad":       "Z",
			"system.volume":    "12",
		},
		Theme: internal.Theme{BackgroundsDir: "/bg", ThumbnailsDir: "/thumbs"},
	}

	root, err := Build(tree, testDescription(), deps)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if got := titles(root); !equalStrings(got, []string{"Consoles", "Options"}) {
		t.Fatalf("root items = %v", got)
	}
	if root.Items()[0].Background != "/bg/consoles.png" {
		t.Errorf("section background = %q", root.Items()[0].Background)
	}

	systems := tree.Menu(root.Items()[0].Submenu)
	if got := titles(systems); !equalStrings(got, []string{"GB", "GBA", "Back"}) {
		t.Fatalf("systems = %v", got)
	}
	if systems.Mode != ModeSystems {
		t.Errorf("systems mode = %v", systems.Mode)
	}

	gba := tree.Menu(systems.Items()[1].Submenu)
	if got := titles(gba); !equalStrings(got, []string{"Hacks", "Advance Wars", "b", "Back"}) {
		t.Fatalf("GBA roms = %v", got)
	}

	wars := gba.Items()[1]
	if wars.Path != "/roms/GBA/a.gba" || wars.System != "GBA" || wars.Section != "Consoles" {
		t.Errorf("unexpected rom entry %+v", wars)
	}
	if wars.Thumbnail != filepath.Join("/thumbs", "GBA", "a.png") {
		t.Errorf("thumbnail = %q", wars.Thumbnail)
	}
	if tree.FolderName(wars) != "GBA" {
		t.Errorf("folder name = %q", tree.FolderName(wars))
	}

	hacks := tree.Menu(gba.Items()[0].Submenu)
	if got := titles(hacks); !equalStrings(got, []string{"c", "Back"}) {
		t.Errorf("nested folder = %v", got)
	}
	if tree.Depth(hacks.ID) != 3 || hacks.Mode != ModeRomList {
		t.Errorf("nested folder depth=%d mode=%v", tree.Depth(hacks.ID), hacks.Mode)
	}

	options := tree.Menu(root.Items()[1].Submenu)
	if got := titles(options); !equalStrings(got, []string{"Show FPS", "USB", "Volume", "Back"}) {
		t.Fatalf("options = %v", got)
	}
	if options.Mode != ModeRomList {
		t.Errorf("settings section should render as rows, mode=%v", options.Mode)
	}

	values := []string{"ON", "ADB", "12"}
	for i, want := range values {
		if got := options.Items()[i].Value(); got != want {
			t.Errorf("%s = %q, want %q", options.Items()[i].Key, got, want)
		}
	}
}

func TestBuildWithoutSections(t *testing.T) {
	tree, _ := newTestTree(nil)
	if _, err := Build(tree, Description{Title: "empty"}, BuildDeps{Files: testCatalog()}); err == nil {
		t.Error("expected error for a description without sections")
	}
}

func TestBuildUnreadableFolder(t *testing.T) {
	tree, _ := newTestTree(nil)
	desc := Description{Sections: []SectionDescription{{Title: "Consoles", Roms: "/roms"}}}
	root, err := Build(tree, desc, BuildDeps{Files: fakeCatalog{
		folders: map[string][]string{"/roms": {"broken"}},
		files:   map[string][]string{},
	}})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	systems := tree.Menu(root.Items()[0].Submenu)
	roms := tree.Menu(systems.Items()[0].Submenu)
	if got := titles(roms); !equalStrings(got, []string{"Back"}) {
		t.Errorf("empty system should only hold Back, got %v", got)
	}
}

func TestLoadDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	data := `{"title": "carbonara", "sections": [{"title": "Consoles", "roms": "/mnt/SDCARD/Roms"}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	desc, err := LoadDescription(path)
	if err != nil {
		t.Fatalf("LoadDescription returned error: %v", err)
	}
	if desc.Title != "carbonara" || len(desc.Sections) != 1 || desc.Sections[0].Roms != "/mnt/SDCARD/Roms" {
		t.Errorf("unexpected description %+v", desc)
	}

	if _, err := LoadDescription(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
