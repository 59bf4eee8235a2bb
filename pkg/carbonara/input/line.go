package input

import (
	"bufio"
	"io"
	"strings"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

// LineSource reads one command name per line, for driving the launcher from
// a terminal. Unknown names are logged and skipped.
type LineSource struct {
	lines chan Command
}

// NewLineSource starts reading r in the background until EOF, which is
// delivered as CommandQuit.
func NewLineSource(r io.Reader) *LineSource {
	s := &LineSource{lines: make(chan Command, 16)}
	go s.read(r)
	return s
}

func (s *LineSource) read(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		cmd, ok := CommandByName(name)
		if !ok {
			internal.GetLogger().Warn("Unknown command", "name", name)
			continue
		}
		s.lines <- cmd
	}
	s.lines <- CommandQuit
	close(s.lines)
}

// Poll returns the commands read since the last call without blocking.
func (s *LineSource) Poll() []Command {
	var commands []Command
	for {
		select {
		case cmd, ok := <-s.lines:
			if !ok {
				return commands
			}
			commands = append(commands, cmd)
		default:
			return commands
		}
	}
}
