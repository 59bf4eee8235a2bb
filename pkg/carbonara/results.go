package carbonara

import "github.com/BrandonKowalski/carbonara/pkg/carbonara/router"

// ExitReason says why Run returned.
type ExitReason = router.ExitReason

const (
	ExitNone    = router.ExitNone
	ExitQuit    = router.ExitQuit    // Quit command, quit action or power button
	ExitRestart = router.ExitRestart // Restart action; the caller starts the launcher again
	ExitLaunch  = router.ExitLaunch  // An emulator was started
)
