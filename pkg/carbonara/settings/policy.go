package settings

import (
	"strconv"
	"strings"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

const (
	ValueOn  = "ON"
	ValueOff = "OFF"
)

// Policy is the update rule of one setting. Each method reports whether the
// value changed.
type Policy interface {
	Left(s *Setting) bool
	Right(s *Setting) bool
	Enter(s *Setting) bool
}

// Stepper moves an integer by Step, clamped to [Min, Max].
type Stepper struct {
	Min, Max, Step int
}

func (p Stepper) current(s *Setting) int {
	v, err := strconv.Atoi(strings.TrimSpace(s.Value))
	if err != nil {
		return p.Min
	}
	return v
}

func (p Stepper) move(s *Setting, delta int) bool {
	v := p.current(s)
	next := v + delta
	if next < p.Min {
		next = p.Min
	}
	if next > p.Max {
		next = p.Max
	}
	if next == v {
		return false
	}
	s.Value = strconv.Itoa(next)
	return true
}

func (p Stepper) Left(s *Setting) bool  { return p.move(s, -p.Step) }
func (p Stepper) Right(s *Setting) bool { return p.move(s, p.Step) }
func (p Stepper) Enter(*Setting) bool   { return false }

// Cycle steps through Values, wrapping at both ends. A value outside the
// list moves to the first (right) or last (left) entry.
type Cycle struct {
	Values []string
}

func (p Cycle) move(s *Setting, dir int) bool {
	n := len(p.Values)
	if n == 0 {
		return false
	}

	index := -1
	for i, v := range p.Values {
		if v == s.Value {
			index = i
			break
		}
	}

	var next int
	switch {
	case index < 0 && dir > 0:
		next = 0
	case index < 0:
		next = n - 1
	default:
		next = (index + dir + n) % n
	}

	if p.Values[next] == s.Value {
		return false
	}
	s.Value = p.Values[next]
	return true
}

func (p Cycle) Left(s *Setting) bool  { return p.move(s, -1) }
func (p Cycle) Right(s *Setting) bool { return p.move(s, 1) }
func (p Cycle) Enter(*Setting) bool   { return false }

// Toggle flips between ON and OFF on left, right and enter.
type Toggle struct{}

func (Toggle) flip(s *Setting) bool {
	if IsOn(s.Value) {
		s.Value = ValueOff
	} else {
		s.Value = ValueOn
	}
	return true
}

func (p Toggle) Left(s *Setting) bool  { return p.flip(s) }
func (p Toggle) Right(s *Setting) bool { return p.flip(s) }
func (p Toggle) Enter(s *Setting) bool { return p.flip(s) }

// normalize rewrites any boolean spelling as ON or OFF.
func (Toggle) normalize(v string) string {
	if IsOn(v) {
		return ValueOn
	}
	return ValueOff
}

// IsOn reads the common spellings of a true boolean.
func IsOn(v string) bool {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case ValueOn, "TRUE", "1", "YES":
		return true
	}
	return false
}

// Trigger runs an action on Enter and ignores left and right.
type Trigger struct {
	Run func() error
}

func (Trigger) Left(*Setting) bool  { return false }
func (Trigger) Right(*Setting) bool { return false }

func (p Trigger) Enter(s *Setting) bool {
	if p.Run == nil {
		return false
	}
	if err := p.Run(); err != nil {
		internal.GetLogger().Error("Setting action failed", "key", s.Key, "error", err)
	}
	return false
}
