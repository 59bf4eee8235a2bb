// Package router is the navigation state machine of the launcher.
//
// A Machine tracks the active menu of a menu.Tree and the view mode it is
// shown in. Commands are applied one at a time:
//
//	m := router.New(tree, router.Deps{
//	    Launcher: launcher.NewExec(os.Exit),
//	    SystemSettings: func() *settings.Settings { return sys },
//	    Rom: settings.RomDeps{Cores: consoles, Selections: store},
//	    ResumePath: "/mnt/SDCARD/.userdata/resume.json",
//	})
//
//	for _, cmd := range source.Poll() {
//	    if err := m.Handle(cmd); err != nil {
//	        logger.Warn("Command failed", "command", cmd, "error", err)
//	    }
//	}
//	if m.Exit() != router.ExitNone {
//	    // leave the frame loop
//	}
//
// # Modes
//
// Browsing modes follow the active menu: the root shows Sections, its
// children show Systems and everything deeper is a RomList. Enter on a
// branch descends, Back returns to the parent menu and is a no-op at the
// root.
//
// # Overlays
//
// ShowSystemSettings and ShowRomSettings open a settings overlay on top of
// the current menu. While an overlay is open every directional and Enter
// command goes to its settings model. Back closes it and restores the menu
// position that was pushed on the Stack when it opened.
//
// ShowRomSettings needs a launchable ROM under the cursor. Without one it
// returns ErrNoRomSelected and the machine stays where it was.
package router
