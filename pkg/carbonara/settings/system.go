package settings

import (
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
)

// System setting keys. They double as config keys and translation ids.
const (
	KeyBrightness    = "system.brightness"
	KeyVolume        = "system.volume"
	KeyScreenRefresh = "system.screen_refresh"
	KeyUSBMode       = "system.usb_mode"
	KeyOverclock     = "system.overclock"
	KeyWiFi          = "system.wifi"
	KeyTheme         = "display.theme"
	KeyLanguage      = "display.language"
	KeyShowFPS       = "display.show_fps"
	KeyRotation      = "display.rotation"
	KeySave          = "actions.save"
	KeyRestart       = "actions.restart"
	KeyQuit          = "actions.quit"
)

var (
	DefaultUSBModes        = []string{"MTP", "ADB", "OFF"}
	DefaultOverclockLevels = []string{"Powersave", "Normal", "Performance"}
)

// SystemOptions supplies the candidate lists and actions of the system
// settings screen.
type SystemOptions struct {
	Themes          []string
	Languages       []string
	USBModes        []string
	OverclockLevels []string

	LanguageName func(tag string) string

	OnSave    func() error
	OnRestart func() error
	OnQuit    func() error
}

// SystemDefinitions returns the rows of the system settings screen.
func SystemDefinitions(opts SystemOptions) []Definition {
	usbModes := opts.USBModes
	if len(usbModes) == 0 {
		usbModes = DefaultUSBModes
	}
	levels := opts.OverclockLevels
	if len(levels) == 0 {
		levels = DefaultOverclockLevels
	}

	return []Definition{
		{Key: KeyBrightness, Title: KeyBrightness, Policy: Stepper{Min: 0, Max: 10, Step: 1}},
		{Key: KeyVolume, Title: KeyVolume, Policy: Stepper{Min: 0, Max: 20, Step: 1}},
		{Key: KeyScreenRefresh, Title: KeyScreenRefresh, Policy: Stepper{Min: 30, Max: 120, Step: 10}},
		{Key: KeyUSBMode, Title: KeyUSBMode, Policy: Cycle{Values: usbModes}},
		{Key: KeyOverclock, Title: KeyOverclock, Policy: Cycle{Values: levels}},
		{Key: KeyTheme, Title: KeyTheme, Policy: Cycle{Values: opts.Themes}},
		{Key: KeyLanguage, Title: KeyLanguage, Policy: Cycle{Values: opts.Languages}, Format: opts.LanguageName},
		{Key: KeyShowFPS, Title: KeyShowFPS, Policy: Toggle{}},
		{Key: KeyWiFi, Title: KeyWiFi, Policy: Toggle{}},
		{Key: KeyRotation, Title: KeyRotation, Policy: Toggle{}},
		{Key: KeySave, Title: KeySave, Policy: Trigger{Run: opts.OnSave}, AlwaysEnabled: true},
		{Key: KeyRestart, Title: KeyRestart, Policy: Trigger{Run: opts.OnRestart}, AlwaysEnabled: true},
		{Key: KeyQuit, Title: KeyQuit, Policy: Trigger{Run: opts.OnQuit}, AlwaysEnabled: true},
	}
}

// NewSystemSettings builds the device settings screen from cfg. Rows whose
// keys are missing from cfg are not shown.
func NewSystemSettings(cfg ValueSource, opts SystemOptions, changes *observer.Registry[observer.SettingChange]) *Settings {
	return New(cfg, SystemDefinitions(opts), changes)
}
