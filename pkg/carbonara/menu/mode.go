package menu

// Mode is the view context a menu is shown in.
type Mode int

const (
	ModeSections Mode = iota
	ModeSystems
	ModeRomList
	ModeSystemSettings
	ModeRomSettings
)

func (m Mode) String() string {
	switch m {
	case ModeSections:
		return "Sections"
	case ModeSystems:
		return "Systems"
	case ModeRomList:
		return "RomList"
	case ModeSystemSettings:
		return "SystemSettings"
	case ModeRomSettings:
		return "RomSettings"
	default:
		return "Unknown"
	}
}

// IsOverlay reports whether the mode is one of the settings overlays.
func (m Mode) IsOverlay() bool {
	return m == ModeSystemSettings || m == ModeRomSettings
}

// ModeForDepth returns the browsing mode of a menu nested depth levels
// below the root.
func ModeForDepth(depth int) Mode {
	switch {
	case depth <= 0:
		return ModeSections
	case depth == 1:
		return ModeSystems
	default:
		return ModeRomList
	}
}
