package internal

import "time"

const (
	scrollIncrement int32 = 2
	scrollPauseTime       = 1500 * time.Millisecond
)

// TextScrollData is the horizontal auto-scroll state of a clipped label.
// Times must come from time.Now so comparisons use the monotonic clock.
type TextScrollData struct {
	NeedsScrolling      bool
	ScrollOffset        int32
	TextWidth           int32
	ContainerWidth      int32
	Direction           int
	LastDirectionChange *time.Time
	startAt             time.Time
}

// NewTextScroll prepares scroll state for a label that becomes eligible to
// scroll once it has been idle-selected for delay.
func NewTextScroll(textWidth, containerWidth int32, now time.Time, delay time.Duration) *TextScrollData {
	return &TextScrollData{
		NeedsScrolling: textWidth > containerWidth,
		TextWidth:      textWidth,
		ContainerWidth: containerWidth,
		Direction:      1,
		startAt:        now.Add(delay),
	}
}

// Active reports whether scrolling has started.
func (d *TextScrollData) Active(now time.Time) bool {
	return d.NeedsScrolling && !now.Before(d.startAt)
}

// Update advances the offset one step, bouncing at both ends with a pause.
func (d *TextScrollData) Update(now time.Time) {
	if !d.Active(now) {
		return
	}

	if d.LastDirectionChange != nil && now.Sub(*d.LastDirectionChange) < scrollPauseTime {
		return
	}

	d.ScrollOffset += int32(d.Direction) * scrollIncrement

	maxOffset := d.TextWidth - d.ContainerWidth
	if d.ScrollOffset <= 0 {
		d.ScrollOffset = 0
		if d.Direction < 0 {
			d.Direction = 1
			changed := now
			d.LastDirectionChange = &changed
		}
	} else if d.ScrollOffset >= maxOffset {
		d.ScrollOffset = maxOffset
		if d.Direction > 0 {
			d.Direction = -1
			changed := now
			d.LastDirectionChange = &changed
		}
	}
}
