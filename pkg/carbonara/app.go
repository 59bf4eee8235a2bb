package carbonara

import (
	"errors"
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/router"
)

// Run is the frame loop: poll commands, apply them, draw, present. It
// returns when the machine has an exit reason or the power button asks to
// quit. Pending configuration changes are saved before returning.
func (a *App) Run() (ExitReason, error) {
	logger := internal.GetLogger()

	for {
		if a.power.Requested() {
			a.machine.RequestExit(router.ExitQuit)
		}

		for _, cmd := range a.source.Poll() {
			if err := a.machine.Handle(cmd); err != nil {
				logger.Warn("Command failed", "command", cmd, "mode", a.machine.Mode(), "error", err)
				a.status.show(a.statusText(err), time.Now())
			}
		}

		if reason := a.machine.Exit(); reason != router.ExitNone {
			logger.Info("Leaving frame loop", "reason", reason)
			if err := a.writer.Flush(); err != nil {
				logger.Error("Failed to save configuration", "path", a.cfg.Path(), "error", err)
			}
			return reason, nil
		}

		a.Frame(time.Now())
		if a.opts.FrameInterval > 0 {
			time.Sleep(a.opts.FrameInterval)
		}
	}
}

// Frame draws the current state once.
func (a *App) Frame(now time.Time) {
	mode := a.machine.Mode()

	if overlay := a.machine.Overlay(); overlay != nil {
		if overlay != a.overlay {
			a.overlay = overlay
			a.options.reset()
		}
		title := a.translator.T("settings.system")
		if mode == router.ModeRomSettings {
			title = a.translator.T("settings.rom")
			if rs := a.machine.RomSettings(); rs != nil {
				title = rs.Context().Title
			}
		}
		a.options.render(a.renderer, a.style, title, overlay.Rows(), now)
	} else {
		a.overlay = nil
		if active := a.machine.Active(); active != nil {
			active.Render(a.renderer, a.style, mode, now)
		}
	}

	a.status.render(a.renderer, a.style, now)
	a.renderer.Present()
}

// statusText turns a command error into the notice shown to the user.
func (a *App) statusText(err error) string {
	switch {
	case errors.Is(err, router.ErrNoRomSelected):
		return a.translator.T("status.no_rom")
	case errors.Is(err, router.ErrNoCore), errors.Is(err, router.ErrLaunchFailed):
		return a.translator.T("status.launch_failed")
	default:
		return a.translator.T("status.error")
	}
}

// Machine exposes the navigation state, mainly for tests and tooling.
func (a *App) Machine() *router.Machine {
	return a.machine
}
