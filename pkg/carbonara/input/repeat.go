package input

import (
	"time"
)

// Repeat tracks held directions and emits repeat commands on a timer.
// The first repeat fires after delay, later ones every interval.
type Repeat struct {
	held           Command
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	now            func() time.Time
}

// NewRepeat creates a Repeat with 300ms delay and 50ms interval.
func NewRepeat() *Repeat {
	return NewRepeatWithTiming(300*time.Millisecond, 50*time.Millisecond)
}

func NewRepeatWithTiming(delay, interval time.Duration) *Repeat {
	return &Repeat{
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: time.Now(),
		now:            time.Now,
	}
}

// SetHeld records a press or release. Non-directional commands are ignored
// and reported as false.
func (r *Repeat) SetHeld(cmd Command, held bool) bool {
	if !cmd.IsDirectional() {
		return false
	}

	if held {
		r.held = cmd
		r.hasRepeated = false
		r.lastRepeatTime = r.now()
	} else if r.held == cmd {
		r.held = CommandNone
		r.hasRepeated = false
	}
	return true
}

// Held returns the direction currently held, or CommandNone.
func (r *Repeat) Held() Command {
	return r.held
}

// Update returns the command to repeat this frame, or CommandNone.
func (r *Repeat) Update() Command {
	now := r.now()
	if r.held == CommandNone {
		r.lastRepeatTime = now
		r.hasRepeated = false
		return CommandNone
	}

	threshold := r.repeatInterval
	if !r.hasRepeated {
		threshold = r.repeatDelay
	}

	if now.Sub(r.lastRepeatTime) >= threshold {
		r.lastRepeatTime = now
		r.hasRepeated = true
		return r.held
	}

	return CommandNone
}

// Reset clears the held direction and timing state.
func (r *Repeat) Reset() {
	r.held = CommandNone
	r.hasRepeated = false
	r.lastRepeatTime = r.now()
}
