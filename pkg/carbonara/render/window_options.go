package render

import "github.com/veandco/go-sdl2/sdl"

// WindowOptions selects the flags of the launcher window. The window is
// always shown; on devices it covers the display.
type WindowOptions struct {
	Borderless bool // No decorations, used on handhelds
	Resizable  bool // Desktop development windows
}

func (wo WindowOptions) IsZero() bool {
	return wo == WindowOptions{}
}

func (wo WindowOptions) sdlFlags() uint32 {
	flags := uint32(sdl.WINDOW_SHOWN)
	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	return flags
}
