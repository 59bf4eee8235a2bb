package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

var ErrUnknownSystem = errors.New("unknown system")

// Console describes how to run the ROMs of one system.
type Console struct {
	Executables        []string `json:"executables"`
	RomExtensions      []string `json:"romExtensions"`
	RomDirectories     []string `json:"romDirectories"`
	SelectedExecutable string   `json:"selectedExecutable"`
}

// ConsoleCatalog loads <dir>/<system>.json on first use and keeps it.
type ConsoleCatalog struct {
	dir      string
	consoles map[string]*Console
}

func NewConsoleCatalog(dir string) *ConsoleCatalog {
	return &ConsoleCatalog{dir: dir, consoles: make(map[string]*Console)}
}

func (c *ConsoleCatalog) path(system string) string {
	return filepath.Join(c.dir, system+".json")
}

// Console returns the definition of system, or ErrUnknownSystem when it has
// no file.
func (c *ConsoleCatalog) Console(system string) (*Console, error) {
	if console, ok := c.consoles[system]; ok {
		return console, nil
	}

	data, err := os.ReadFile(c.path(system))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSystem, system)
		}
		return nil, fmt.Errorf("failed to read console %s: %w", system, err)
	}

	var console Console
	if err := json.Unmarshal(data, &console); err != nil {
		return nil, fmt.Errorf("failed to parse console %s: %w", system, err)
	}

	c.consoles[system] = &console
	return &console, nil
}

// Executables lists the cores of system; unknown systems have none.
func (c *ConsoleCatalog) Executables(system string) []string {
	console, err := c.Console(system)
	if err != nil {
		internal.GetLogger().Debug("No console definition", "system", system, "error", err)
		return nil
	}
	return console.Executables
}

// SelectedCore returns the chosen executable of system, defaulting to the
// first listed one.
func (c *ConsoleCatalog) SelectedCore(system string) string {
	console, err := c.Console(system)
	if err != nil {
		return ""
	}
	if console.SelectedExecutable != "" && contains(console.Executables, console.SelectedExecutable) {
		return console.SelectedExecutable
	}
	if len(console.Executables) > 0 {
		return console.Executables[0]
	}
	return ""
}

// SetSelectedCore records core as the chosen executable and rewrites the
// system's file.
func (c *ConsoleCatalog) SetSelectedCore(system, core string) error {
	console, err := c.Console(system)
	if err != nil {
		return err
	}
	if !contains(console.Executables, core) {
		return fmt.Errorf("%s is not a core of %s", core, system)
	}
	if console.SelectedExecutable == core {
		return nil
	}

	console.SelectedExecutable = core
	if err := internal.WriteJSONAtomic(c.path(system), console); err != nil {
		return fmt.Errorf("failed to save console %s: %w", system, err)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
