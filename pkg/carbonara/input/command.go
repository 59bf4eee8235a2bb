// Package input turns raw device events into abstract navigation commands.
package input

// Command is an abstract navigation command consumed by the router.
type Command int

const (
	CommandNone Command = iota
	CommandUp
	CommandDown
	CommandLeft
	CommandRight
	CommandPageLeft
	CommandPageRight
	CommandEnter
	CommandBack
	CommandShowSystemSettings
	CommandShowRomSettings
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandUp:
		return "Up"
	case CommandDown:
		return "Down"
	case CommandLeft:
		return "Left"
	case CommandRight:
		return "Right"
	case CommandPageLeft:
		return "PageLeft"
	case CommandPageRight:
		return "PageRight"
	case CommandEnter:
		return "Enter"
	case CommandBack:
		return "Back"
	case CommandShowSystemSettings:
		return "ShowSystemSettings"
	case CommandShowRomSettings:
		return "ShowRomSettings"
	case CommandQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirectional reports whether the command auto-repeats while held.
func (c Command) IsDirectional() bool {
	switch c {
	case CommandUp, CommandDown, CommandLeft, CommandRight:
		return true
	}
	return false
}

// Source produces the commands generated since the previous frame.
type Source interface {
	Poll() []Command
}
