package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Color is an RGBA color independent of the rendering backend.
type Color struct {
	R, G, B, A uint8
}

// HexToColor converts 0xRRGGBB to an opaque Color.
func HexToColor(hex uint32) Color {
	return Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(raw) == 6 {
		return HexToColor(uint32(v)), nil
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Theme defines the visual appearance of the launcher. It is loaded once and
// passed to the components that draw.
type Theme struct {
	Name                 string
	HighlightColor       Color // Selected row background
	AccentColor          Color // Page indicator, value arrows
	TextColor            Color // Default text color
	HighlightedTextColor Color // Text on highlighted rows
	HintColor            Color // Footer and status text
	BackgroundColor      Color // Fallback when no background image resolves
	FontPath             string
	FontSize             int
	BackgroundImagePath  string // Default background for list screens
	BackgroundsDir       string // <dir>/<section or system>.png
	ThumbnailsDir        string // <dir>/<system>/<rom>.png
	IconsDir             string
}

type themeFile struct {
	Name           string `toml:"name"`
	Font           string `toml:"font"`
	FontSize       int    `toml:"font_size"`
	Background     string `toml:"background"`
	BackgroundsDir string `toml:"backgrounds_dir"`
	ThumbnailsDir  string `toml:"thumbnails_dir"`
	IconsDir       string `toml:"icons_dir"`
	Colors         struct {
		Highlight       string `toml:"highlight"`
		Accent          string `toml:"accent"`
		Text            string `toml:"text"`
		HighlightedText string `toml:"highlighted_text"`
		Hint            string `toml:"hint"`
		Background      string `toml:"background"`
	} `toml:"colors"`
}

// LoadTheme reads a TOML theme file on top of base. Colors that are absent or
// malformed keep the base value.
func LoadTheme(path string, base Theme) (Theme, error) {
	var tf themeFile
	if _, err := toml.DecodeFile(path, &tf); err != nil {
		return base, fmt.Errorf("failed to decode theme %s: %w", path, err)
	}

	theme := base
	setString(&theme.Name, tf.Name)
	setString(&theme.FontPath, tf.Font)
	setString(&theme.BackgroundImagePath, tf.Background)
	setString(&theme.BackgroundsDir, tf.BackgroundsDir)
	setString(&theme.ThumbnailsDir, tf.ThumbnailsDir)
	setString(&theme.IconsDir, tf.IconsDir)
	if tf.FontSize > 0 {
		theme.FontSize = tf.FontSize
	}

	colors := []struct {
		raw string
		dst *Color
	}{
		{tf.Colors.Highlight, &theme.HighlightColor},
		{tf.Colors.Accent, &theme.AccentColor},
		{tf.Colors.Text, &theme.TextColor},
		{tf.Colors.HighlightedText, &theme.HighlightedTextColor},
		{tf.Colors.Hint, &theme.HintColor},
		{tf.Colors.Background, &theme.BackgroundColor},
	}
	for _, c := range colors {
		if c.raw == "" {
			continue
		}
		parsed, err := ParseHexColor(c.raw)
		if err != nil {
			GetInternalLogger().Warn("Ignoring theme color", "path", path, "error", err)
			continue
		}
		*c.dst = parsed
	}

	return theme, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
