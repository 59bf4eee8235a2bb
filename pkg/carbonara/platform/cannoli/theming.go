// Package cannoli provides theming defaults for the Cannoli custom firmware.
// Cannoli is a community-developed CFW for retro handheld gaming devices.
package cannoli

import (
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

const (
	FontPath       = "/mnt/SDCARD/System/fonts/Cannoli.ttf"
	BackgroundsDir = "/mnt/SDCARD/System/backgrounds"
	ThumbnailsDir  = "/mnt/SDCARD/Imgs"
)

// InitCannoliTheme creates a theme with Cannoli's default colors and the specified font.
// It is also the base every theme file is decoded on top of.
func InitCannoliTheme(fontPath string) internal.Theme {
	return internal.Theme{
		Name:                 "cannoli",
		HighlightColor:       internal.HexToColor(0xFFFFFF),
		AccentColor:          internal.HexToColor(0x008080),
		HintColor:            internal.HexToColor(0x9E9E9E),
		TextColor:            internal.HexToColor(0xFFFFFF),
		HighlightedTextColor: internal.HexToColor(0x000000),
		BackgroundColor:      internal.HexToColor(0x101820),
		FontPath:             fontPath,
		FontSize:             28,
		BackgroundsDir:       BackgroundsDir,
		ThumbnailsDir:        ThumbnailsDir,
	}
}
