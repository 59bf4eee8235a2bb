// Package launcher hands a ROM to an emulator process and ends the
// launcher.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/kballard/go-shellquote"
)

var ErrEmptyCommand = errors.New("empty emulator command")

// Request is one ROM to start.
type Request struct {
	Executable string // Emulator command line
	Rom        string
	Overclock  string // CPU level remembered for the ROM; empty keeps the device default
}

// Launcher starts an emulator for a ROM.
type Launcher interface {
	Launch(req Request) error
}

// Exec runs the emulator as a detached process and then calls Exit. The
// emulator is not supervised.
type Exec struct {
	// Dir is the working directory. Empty means the executable's directory.
	Dir string
	Env []string

	// Exit is called once the process started. Nil leaves the caller to
	// stop on its own.
	Exit func(code int)

	start func(cmd *exec.Cmd) error
}

// NewExec returns an Exec that calls exit after a successful start.
func NewExec(exit func(code int)) *Exec {
	return &Exec{Exit: exit}
}

// Command splits executable with shell quoting rules and appends romPath as
// the last argument.
func Command(executable, romPath string) (*exec.Cmd, error) {
	args, err := shellquote.Split(executable)
	if err != nil {
		return nil, fmt.Errorf("failed to parse emulator command %q: %w", executable, err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}

	args = append(args, romPath)
	return exec.Command(args[0], args[1:]...), nil
}

// Launch starts req detached. The overclock level reaches the emulator's
// launch script through the CPU_SPEED environment variable.
func (e *Exec) Launch(req Request) error {
	cmd, err := Command(req.Executable, req.Rom)
	if err != nil {
		return err
	}

	cmd.Dir = e.Dir
	if cmd.Dir == "" && filepath.IsAbs(cmd.Path) {
		cmd.Dir = filepath.Dir(cmd.Path)
	}
	cmd.Env = append(os.Environ(), e.Env...)
	if req.Overclock != "" {
		cmd.Env = append(cmd.Env, constants.CPUSpeedEnvVar+"="+req.Overclock)
	}
	detach(cmd)

	start := e.start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}

	internal.GetLogger().Info("Emulator started", "command", cmd.Args, "dir", cmd.Dir, "overclock", req.Overclock)

	if cmd.Process != nil {
		if err := cmd.Process.Release(); err != nil {
			internal.GetInternalLogger().Warn("Failed to release emulator process", "error", err)
		}
	}

	if e.Exit != nil {
		e.Exit(0)
	}
	return nil
}
