package settings

import (
	"errors"
	"io"
	"os"
	"reflect"
	"testing"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/catalog"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
)

func TestMain(m *testing.M) {
	internal.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func systemConfig() Values {
	return Values{
		KeyBrightness:    "5",
		KeyVolume:        "20",
		KeyScreenRefresh: "60",
		KeyUSBMode:       "MTP",
		KeyTheme:         "Dark",
		KeyLanguage:      "en",
		KeyWiFi:          "false",
		KeyShowFPS:       "",
	}
}

func systemOptions() SystemOptions {
	return SystemOptions{
		Themes:    []string{"Default", "Dark", "Retro"},
		Languages: []string{"en", "fr"},
	}
}

func TestEnabledKeysFollowConfig(t *testing.T) {
	s := NewSystemSettings(systemConfig(), systemOptions(), observer.NewRegistry[observer.SettingChange]())

	want := []string{
		KeyBrightness, KeyVolume, KeyScreenRefresh, KeyUSBMode, KeyTheme, KeyLanguage, KeyWiFi,
		KeySave, KeyRestart, KeyQuit,
	}
	got := s.EnabledKeys()
	if len(got) != len(want) {
		t.Fatalf("EnabledKeys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EnabledKeys = %v, want %v", got, want)
		}
	}

	if setting, ok := s.Get(KeyShowFPS); !ok || setting.Enabled {
		t.Error("an empty config value leaves the setting disabled")
	}
}

func TestNavigateUpWraps(t *testing.T) {
	s := NewSystemSettings(systemConfig(), systemOptions(), observer.NewRegistry[observer.SettingChange]())

	for start := 0; start < s.Len(); start++ {
		for s.CurrentIndex() != start {
			s.NavigateDown()
		}
		for i := 0; i < s.Len(); i++ {
			s.NavigateUp()
		}
		if s.CurrentIndex() != start {
			t.Fatalf("started at %d, ended at %d", start, s.CurrentIndex())
		}
	}

	s.NavigateUp()
	for s.CurrentIndex() != 0 {
		s.NavigateUp()
	}
	s.NavigateUp()
	if s.CurrentKey() != KeyQuit {
		t.Errorf("up from the first row should wrap to the last, got %s", s.CurrentKey())
	}
}

func moveTo(t *testing.T, s *Settings, key string) {
	t.Helper()
	for i := 0; i < s.Len(); i++ {
		if s.CurrentKey() == key {
			return
		}
		s.NavigateDown()
	}
	t.Fatalf("key %s is not enabled", key)
}

func TestPolicies(t *testing.T) {
	changes := observer.NewRegistry[observer.SettingChange]()
	var published []observer.SettingChange
	changes.Attach(func(c observer.SettingChange) { published = append(published, c) })

	s := NewSystemSettings(systemConfig(), systemOptions(), changes)

	moveTo(t, s, KeyVolume)
	if s.NavigateRight() {
		t.Error("volume is already at its max")
	}
	s.NavigateLeft()
	if s.CurrentValue() != "19" {
		t.Errorf("volume = %s, want 19", s.CurrentValue())
	}

	moveTo(t, s, KeyScreenRefresh)
	s.NavigateLeft()
	s.NavigateLeft()
	s.NavigateLeft()
	s.NavigateLeft()
	if s.CurrentValue() != "30" {
		t.Errorf("refresh = %s, want the inclusive min 30", s.CurrentValue())
	}

	moveTo(t, s, KeyTheme)
	s.NavigateRight()
	s.NavigateRight()
	if s.CurrentValue() != "Default" {
		t.Errorf("theme should wrap to Default, got %s", s.CurrentValue())
	}

	moveTo(t, s, KeyWiFi)
	s.NavigateLeft()
	if s.CurrentValue() != ValueOn {
		t.Errorf("wifi = %s, want ON", s.CurrentValue())
	}
	s.NavigateRight()
	if s.CurrentValue() != ValueOff {
		t.Errorf("wifi = %s, want OFF", s.CurrentValue())
	}

	want := []observer.SettingChange{
		{Key: KeyVolume, Value: "19"},
		{Key: KeyScreenRefresh, Value: "50"},
		{Key: KeyScreenRefresh, Value: "40"},
		{Key: KeyScreenRefresh, Value: "30"},
		{Key: KeyTheme, Value: "Retro"},
		{Key: KeyTheme, Value: "Default"},
		{Key: KeyWiFi, Value: ValueOn},
		{Key: KeyWiFi, Value: ValueOff},
	}
	if len(published) != len(want) {
		t.Fatalf("published %v, want %v", published, want)
	}
	for i := range want {
		if published[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, published[i], want[i])
		}
	}
}

func TestToggleValuesAreNormalized(t *testing.T) {
	cfg := systemConfig()
	cfg[KeyShowFPS] = "true"

	changes := observer.NewRegistry[observer.SettingChange]()
	var published []string
	changes.Attach(func(c observer.SettingChange) { published = append(published, c.Value) })

	s := NewSystemSettings(cfg, systemOptions(), changes)

	moveTo(t, s, KeyShowFPS)
	if s.CurrentValue() != ValueOn {
		t.Fatalf("show_fps = %q, want ON", s.CurrentValue())
	}
	if got, _ := s.Get(KeyWiFi); got.Value != ValueOff {
		t.Errorf("wifi = %q, want OFF", got.Value)
	}

	s.NavigateRight()
	s.NavigateRight()
	if !s.NavigateEnter() {
		t.Error("enter on a toggle should flip it")
	}

	want := []string{ValueOff, ValueOn, ValueOff}
	if !reflect.DeepEqual(published, want) {
		t.Errorf("published %v, want %v", published, want)
	}
}

func TestTriggerRunsOnEnterOnly(t *testing.T) {
	var saves, quits int
	opts := systemOptions()
	opts.OnSave = func() error { saves++; return nil }
	opts.OnQuit = func() error { quits++; return errors.New("busy") }

	s := NewSystemSettings(systemConfig(), opts, observer.NewRegistry[observer.SettingChange]())

	moveTo(t, s, KeySave)
	s.NavigateLeft()
	s.NavigateRight()
	if saves != 0 {
		t.Fatal("left/right must not trigger actions")
	}
	s.NavigateEnter()
	if saves != 1 {
		t.Errorf("saves = %d, want 1", saves)
	}

	moveTo(t, s, KeyQuit)
	s.NavigateEnter()
	if quits != 1 {
		t.Errorf("quits = %d, want 1", quits)
	}

	moveTo(t, s, KeyBrightness)
	if s.NavigateEnter() {
		t.Error("enter on a value row does nothing")
	}
}

func TestRowsAndTranslation(t *testing.T) {
	opts := systemOptions()
	opts.LanguageName = func(tag string) string {
		if tag == "en" {
			return "English"
		}
		return tag
	}
	s := NewSystemSettings(systemConfig(), opts, observer.NewRegistry[observer.SettingChange]())

	s.SetTitleFunc(func(id string) (string, error) {
		switch id {
		case KeyBrightness:
			return "Brightness", nil
		case KeyVolume:
			return "Volume", errors.New("missing in fr")
		}
		return "", errors.New("missing")
	})

	rows := s.Rows()
	byKey := map[string]Row{}
	for _, r := range rows {
		byKey[r.Key] = r
	}

	if !rows[0].Selected || rows[1].Selected {
		t.Error("only the current row is selected")
	}
	if byKey[KeyBrightness].Title != "Brightness" || byKey[KeyBrightness].Value != "5" {
		t.Errorf("brightness row = %+v", byKey[KeyBrightness])
	}
	if byKey[KeyVolume].Title != "Volume" {
		t.Errorf("fallback text should be kept, got %q", byKey[KeyVolume].Title)
	}
	if byKey[KeyTheme].Title != KeyTheme {
		t.Errorf("untranslated rows show the id, got %q", byKey[KeyTheme].Title)
	}
	if byKey[KeyLanguage].Value != "English" {
		t.Errorf("language value should be formatted, got %q", byKey[KeyLanguage].Value)
	}
	if byKey[KeySave].Value != "" {
		t.Errorf("action rows have no value, got %q", byKey[KeySave].Value)
	}
}

func TestEmptySettings(t *testing.T) {
	s := New(Values{}, []Definition{{Key: "a", Policy: Toggle{}}}, nil)
	s.NavigateUp()
	s.NavigateDown()
	if s.NavigateLeft() || s.CurrentKey() != "" || len(s.Rows()) != 0 {
		t.Error("settings without enabled keys should be inert")
	}
}

func TestCycleRecoversFromUnknownValue(t *testing.T) {
	c := Cycle{Values: []string{"a", "b", "c"}}

	s := &Setting{Value: "z"}
	c.Right(s)
	if s.Value != "a" {
		t.Errorf("right from unknown = %s, want a", s.Value)
	}

	s.Value = "z"
	c.Left(s)
	if s.Value != "c" {
		t.Errorf("left from unknown = %s, want c", s.Value)
	}

	single := Cycle{Values: []string{"only"}}
	s.Value = "only"
	if single.Right(s) {
		t.Error("a single value cannot change")
	}
}

type fakeCores struct {
	executables map[string][]string
	selected    map[string]string
}

func (f *fakeCores) Executables(system string) []string { return f.executables[system] }
func (f *fakeCores) SelectedCore(system string) string  { return f.selected[system] }
func (f *fakeCores) SetSelectedCore(system, core string) error {
	f.selected[system] = core
	return nil
}

type fakeSelections struct {
	records map[string]catalog.Selection
	saves   int
}

func (f *fakeSelections) Lookup(path string) (catalog.Selection, bool) {
	r, ok := f.records[path]
	return r, ok
}
func (f *fakeSelections) Update(r catalog.Selection) { f.records[r.Path] = r }
func (f *fakeSelections) Records() []catalog.Selection {
	var out []catalog.Selection
	for _, r := range f.records {
		out = append(out, r)
	}
	return out
}
func (f *fakeSelections) Save() error {
	f.saves++
	return nil
}

func newRomFixtures() (*fakeCores, *fakeSelections) {
	cores := &fakeCores{
		executables: map[string][]string{"GBA": {"mgba", "gpsp", "vba"}},
		selected:    map[string]string{"GBA": "gpsp"},
	}
	on := true
	selections := &fakeSelections{records: map[string]catalog.Selection{
		"/roms/GBA/a.gba": {Path: "/roms/GBA/a.gba", Core: "vba", Overclock: "Performance", Autostart: &on},
	}}
	return cores, selections
}

func TestRomSettingsCoreResolution(t *testing.T) {
	cores, selections := newRomFixtures()
	deps := RomDeps{Cores: cores, Selections: selections}

	remembered, err := NewRomSettings(RomContext{System: "GBA", Path: "/roms/GBA/a.gba"}, deps)
	if err != nil {
		t.Fatalf("NewRomSettings returned error: %v", err)
	}
	if remembered.Core() != "vba" {
		t.Errorf("remembered core = %s, want vba", remembered.Core())
	}
	if s, _ := remembered.Get(KeyRomOverclock); s.Value != "Performance" {
		t.Errorf("overclock = %s", s.Value)
	}
	if s, _ := remembered.Get(KeyAutostart); s.Value != ValueOn {
		t.Errorf("autostart = %s", s.Value)
	}

	fresh, _ := NewRomSettings(RomContext{System: "GBA", Path: "/roms/GBA/b.gba"}, deps)
	if fresh.Core() != "gpsp" {
		t.Errorf("catalog core = %s, want gpsp", fresh.Core())
	}

	cores.selected["GBA"] = ""
	first, _ := NewRomSettings(RomContext{System: "GBA", Path: "/roms/GBA/b.gba"}, deps)
	if first.Core() != "mgba" {
		t.Errorf("default core = %s, want the first executable", first.Core())
	}

	unknown, _ := NewRomSettings(RomContext{System: "N64", Path: "/roms/N64/x.z64"}, deps)
	for _, key := range unknown.EnabledKeys() {
		if key == KeyCore {
			t.Error("systems without cores have no core row")
		}
	}
}

func TestRomSettingsPersistsCore(t *testing.T) {
	cores, selections := newRomFixtures()
	rs, err := NewRomSettings(RomContext{Section: "Consoles", System: "GBA", Folder: "GBA", Path: "/roms/GBA/b.gba"},
		RomDeps{Cores: cores, Selections: selections, Changes: observer.NewRegistry[observer.SettingChange]()})
	if err != nil {
		t.Fatalf("NewRomSettings returned error: %v", err)
	}

	rs.NavigateRight()
	if rs.Core() != "vba" {
		t.Fatalf("core = %s, want vba", rs.Core())
	}
	if cores.selected["GBA"] != "vba" {
		t.Error("core choice should be written to the console catalog")
	}

	rec, ok := selections.records["/roms/GBA/b.gba"]
	if !ok || rec.Core != "vba" || rec.Rom != "b.gba" || rec.Section != "Consoles" {
		t.Errorf("selection record = %+v", rec)
	}
	if selections.saves != 1 {
		t.Errorf("saves = %d, want 1", selections.saves)
	}

	rs.NavigateDown()
	rs.NavigateDown()
	rs.NavigateLeft()
	rec = selections.records["/roms/GBA/b.gba"]
	if rec.Autostart == nil || !*rec.Autostart || rec.Core != "vba" {
		t.Errorf("autostart update should keep the core, got %+v", rec)
	}
}

func TestRomSettingsRetranslatesOnLanguageChange(t *testing.T) {
	languages := observer.NewRegistry[observer.LanguageChange]()
	lang := "en"
	titles := func(id string) (string, error) {
		if lang == "fr" && id == KeyCore {
			return "Cœur", nil
		}
		if id == KeyCore {
			return "Core", nil
		}
		return id, nil
	}

	cores, selections := newRomFixtures()
	rs, err := NewRomSettings(RomContext{System: "GBA", Path: "/roms/GBA/a.gba"},
		RomDeps{Cores: cores, Selections: selections, Titles: titles, Languages: languages})
	if err != nil {
		t.Fatalf("NewRomSettings returned error: %v", err)
	}

	if rs.Title(KeyCore) != "Core" {
		t.Fatalf("title = %q", rs.Title(KeyCore))
	}

	lang = "fr"
	languages.Notify(observer.LanguageChange{Language: "fr"})
	if rs.Title(KeyCore) != "Cœur" {
		t.Errorf("title after language change = %q", rs.Title(KeyCore))
	}
	if rs.Core() != "vba" {
		t.Error("retranslating must not change values")
	}

	rs.Close()
	rs.Close()
	if languages.Len() != 0 {
		t.Errorf("Close should detach, %d observers left", languages.Len())
	}
}

func TestRomSettingsNeedsPath(t *testing.T) {
	if _, err := NewRomSettings(RomContext{System: "GBA"}, RomDeps{}); err == nil {
		t.Error("expected error without a rom path")
	}
}
