package i18n

import goi18n "github.com/nicksnyder/go-i18n/v2/i18n"

var defaultMessages = []*goi18n.Message{
	{ID: "settings.system", Other: "Settings"},
	{ID: "settings.rom", Other: "Game Settings"},

	{ID: "system.brightness", Other: "Brightness"},
	{ID: "system.volume", Other: "Volume"},
	{ID: "system.screen_refresh", Other: "Screen Refresh"},
	{ID: "system.usb_mode", Other: "USB Mode"},
	{ID: "system.overclock", Other: "CPU Speed"},
	{ID: "system.wifi", Other: "Wi-Fi"},
	{ID: "display.theme", Other: "Theme"},
	{ID: "display.language", Other: "Language"},
	{ID: "display.show_fps", Other: "Show FPS"},
	{ID: "display.rotation", Other: "Rotate Screen"},
	{ID: "actions.save", Other: "Save"},
	{ID: "actions.restart", Other: "Restart"},
	{ID: "actions.quit", Other: "Quit"},

	{ID: "rom.core", Other: "Core"},
	{ID: "rom.overclock", Other: "CPU Speed"},
	{ID: "rom.autostart", Other: "Start Automatically"},

	{ID: "menu.back", Other: "Back"},

	{ID: "status.no_rom", Other: "Select a game first"},
	{ID: "status.launch_failed", Other: "The game could not be started"},
	{ID: "status.error", Other: "Something went wrong"},
}
