package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
)

func TestMain(m *testing.M) {
	internal.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

const sampleConfig = `
[system]
brightness = 7
volume = 12
usb_mode = "MTP"
wifi = false
scale = 1.5

[display]
theme = "Default"
themes = "Default, Dark ,, Retro"
languages = ["en", "fr"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carbonara.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGet(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"system.brightness", "7"},
		{"system.usb_mode", "MTP"},
		{"system.wifi", "false"},
		{"system.scale", "1.5"},
		{"display.theme", "Default"},
		{"display.missing", NotFound},
		{"nosection", NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := cfg.Get(tt.key); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestTypedGettersFailSoftly(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := cfg.GetInt("system.volume"); got != 12 {
		t.Errorf("GetInt(volume) = %d", got)
	}
	if got := cfg.GetInt("system.usb_mode"); got != 0 {
		t.Errorf("GetInt of a string should be 0, got %d", got)
	}
	if got := cfg.GetInt("system.missing"); got != 0 {
		t.Errorf("GetInt of a missing key should be 0, got %d", got)
	}
	if cfg.GetBool("system.wifi") {
		t.Error("GetBool(wifi) should be false")
	}
	if cfg.GetBool("display.theme") || cfg.GetBool("system.missing") {
		t.Error("unresolvable booleans should be false")
	}
}

func TestGetList(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	themes := cfg.GetList("display.themes", ",")
	if len(themes) != 3 || themes[0] != "Default" || themes[1] != "Dark" || themes[2] != "Retro" {
		t.Errorf("GetList(themes) = %q", themes)
	}

	langs := cfg.GetList("display.languages", ",")
	if len(langs) != 2 || langs[1] != "fr" {
		t.Errorf("GetList(languages) = %q", langs)
	}

	if cfg.GetList("display.missing", ",") != nil {
		t.Error("missing list should be nil")
	}
}

func TestSetPreservesTypeAndSaves(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	cfg.Set("system.brightness", "9")
	cfg.Set("system.wifi", "ON")
	cfg.Set("system.usb_mode", "ADB")
	cfg.Set("system.volume", "loud")
	cfg.Set("rom.autostart", "OFF")

	if _, ok := cfg.values["system.brightness"].(int64); !ok {
		t.Error("brightness should stay an integer")
	}
	if v, ok := cfg.values["system.wifi"].(bool); !ok || !v {
		t.Error("wifi should become boolean true")
	}
	if _, ok := cfg.values["system.volume"].(string); !ok {
		t.Error("a value that does not parse falls back to a string")
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	for _, key := range []string{"system.brightness", "system.wifi", "system.usb_mode", "rom.autostart", "display.themes"} {
		if reloaded.Get(key) != cfg.Get(key) {
			t.Errorf("%s: saved %q, reloaded %q", key, cfg.Get(key), reloaded.Get(key))
		}
	}
	if reloaded.GetInt("system.brightness") != 9 {
		t.Errorf("brightness after reload = %d", reloaded.GetInt("system.brightness"))
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing config should not be an error: %v", err)
	}
	if len(cfg.Keys()) != 0 {
		t.Errorf("expected empty config, got %v", cfg.Keys())
	}
}

func TestLoadMalformedFile(t *testing.T) {
	if _, err := Load(writeConfig(t, "[system\nbrightness = ")); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestWriter(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	changes := observer.NewRegistry[observer.SettingChange]()
	w := NewWriter(cfg, changes)

	changes.Notify(observer.SettingChange{Key: "unknown.key", Value: "x"})
	if w.Dirty() || cfg.Has("unknown.key") {
		t.Fatal("unknown keys must be ignored")
	}

	changes.Notify(observer.SettingChange{Key: "system.brightness", Value: "3"})
	if !w.Dirty() {
		t.Fatal("writer should be dirty after a change")
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if w.Dirty() {
		t.Error("writer should be clean after flush")
	}

	reloaded, _ := Load(path)
	if reloaded.GetInt("system.brightness") != 3 {
		t.Errorf("brightness = %d after flush", reloaded.GetInt("system.brightness"))
	}

	w.Close()
	changes.Notify(observer.SettingChange{Key: "system.brightness", Value: "5"})
	if w.Dirty() {
		t.Error("closed writer must not apply changes")
	}
}
