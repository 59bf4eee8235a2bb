// Package constants defines shared constants and configuration values
// used throughout the carbonara launcher.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read at startup.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	LogLevelEnvVar     = "LOG_LEVEL"
	PlatformEnvVar     = "PLATFORM"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

// CPUSpeedEnvVar carries a ROM's overclock level to the emulator process.
const CPUSpeedEnvVar = "CPU_SPEED"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// TextAlign specifies horizontal text alignment.
type TextAlign int

const (
	TextAlignLeft   TextAlign = iota // Align text to the left edge
	TextAlignCenter                  // Center text horizontally
	TextAlignRight                   // Align text to the right edge
)

// Navigation and timing defaults.
const (
	PageStride     = 16              // Items skipped by a page jump
	ScrollDelay    = 1 * time.Second // Idle time before a long title starts scrolling
	DefaultPerPage = 8               // Rows per page when the screen height is unknown
)

// BiosFolder is never listed as a system.
const BiosFolder = "bios"

// BackTitle is the title of the sentinel entry appended to every submenu.
const BackTitle = "Back"
