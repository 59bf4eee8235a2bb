package input

import (
	"strings"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Mapping binds physical keys and buttons to commands.
type Mapping struct {
	Keys       map[sdl.Keycode]Command
	Buttons    map[sdl.GameControllerButton]Command
	JoyButtons map[uint8]Command
}

// DefaultMapping returns the bindings used on handhelds and desktop keyboards.
// With flipFaceButtons the A/B roles are swapped for devices that label the
// confirm button B.
func DefaultMapping(flipFaceButtons bool) Mapping {
	var confirm, back sdl.GameControllerButton = sdl.CONTROLLER_BUTTON_A, sdl.CONTROLLER_BUTTON_B
	if flipFaceButtons {
		confirm, back = back, confirm
	}

	return Mapping{
		Keys: map[sdl.Keycode]Command{
			sdl.K_UP:       CommandUp,
			sdl.K_DOWN:     CommandDown,
			sdl.K_LEFT:     CommandLeft,
			sdl.K_RIGHT:    CommandRight,
			sdl.K_PAGEUP:   CommandPageLeft,
			sdl.K_PAGEDOWN: CommandPageRight,
			sdl.K_RETURN:   CommandEnter,
			sdl.K_SPACE:    CommandBack,
			sdl.K_s:        CommandShowSystemSettings,
			sdl.K_r:        CommandShowRomSettings,
			sdl.K_q:        CommandQuit,
		},
		Buttons: map[sdl.GameControllerButton]Command{
			sdl.CONTROLLER_BUTTON_DPAD_UP:       CommandUp,
			sdl.CONTROLLER_BUTTON_DPAD_DOWN:     CommandDown,
			sdl.CONTROLLER_BUTTON_DPAD_LEFT:     CommandLeft,
			sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    CommandRight,
			sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  CommandPageLeft,
			sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: CommandPageRight,
			confirm:                             CommandEnter,
			back:                                CommandBack,
			sdl.CONTROLLER_BUTTON_BACK:          CommandShowSystemSettings,
			sdl.CONTROLLER_BUTTON_START:         CommandShowRomSettings,
			sdl.CONTROLLER_BUTTON_GUIDE:         CommandQuit,
		},
		JoyButtons: map[uint8]Command{},
	}
}

// CommandByName resolves a command from its String form, case-insensitively.
func CommandByName(name string) (Command, bool) {
	for c := CommandUp; c <= CommandQuit; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	return CommandNone, false
}

// Translate maps an SDL event to a command. ok is false for events that carry
// no command; pressed distinguishes press from release.
func (m Mapping) Translate(event sdl.Event) (cmd Command, pressed bool, ok bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return CommandQuit, true, true

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return CommandNone, false, false
		}
		cmd, ok = m.Keys[e.Keysym.Sym]
		return cmd, e.State == sdl.PRESSED, ok

	case *sdl.ControllerButtonEvent:
		cmd, ok = m.Buttons[sdl.GameControllerButton(e.Button)]
		return cmd, e.State == sdl.PRESSED, ok

	case *sdl.JoyButtonEvent:
		cmd, ok = m.JoyButtons[e.Button]
		return cmd, e.State == sdl.PRESSED, ok

	case *sdl.JoyHatEvent:
		switch e.Value {
		case sdl.HAT_UP:
			return CommandUp, true, true
		case sdl.HAT_DOWN:
			return CommandDown, true, true
		case sdl.HAT_LEFT:
			return CommandLeft, true, true
		case sdl.HAT_RIGHT:
			return CommandRight, true, true
		case sdl.HAT_CENTERED:
			return CommandNone, false, true
		}
	}

	return CommandNone, false, false
}

// SDLSource polls the SDL event queue once per frame.
type SDLSource struct {
	mapping     Mapping
	repeat      *Repeat
	controllers []*sdl.GameController
}

func NewSDLSource(mapping Mapping) *SDLSource {
	s := &SDLSource{
		mapping: mapping,
		repeat:  NewRepeat(),
	}
	s.openControllers()
	return s
}

func (s *SDLSource) openControllers() {
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		if c := sdl.GameControllerOpen(i); c != nil {
			s.controllers = append(s.controllers, c)
			internal.GetInternalLogger().Debug("Opened game controller", "index", i, "name", c.Name())
		}
	}
}

// Poll drains pending events and returns the resulting commands, followed
// by at most one auto-repeat of the held direction.
func (s *SDLSource) Poll() []Command {
	var commands []Command

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		cmd, pressed, ok := s.mapping.Translate(event)
		if !ok {
			continue
		}

		if _, isHat := event.(*sdl.JoyHatEvent); isHat && cmd == CommandNone {
			s.repeat.SetHeld(s.repeat.Held(), false)
			continue
		}

		s.repeat.SetHeld(cmd, pressed)
		if pressed {
			commands = append(commands, cmd)
		}
	}

	if cmd := s.repeat.Update(); cmd != CommandNone {
		commands = append(commands, cmd)
	}

	return commands
}

// Close releases opened game controllers.
func (s *SDLSource) Close() {
	for _, c := range s.controllers {
		c.Close()
	}
	s.controllers = nil
}
