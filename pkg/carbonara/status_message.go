package carbonara

import (
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/menu"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/render"
)

const statusMessageDuration = 2 * time.Second

// statusMessage is a one-line notice drawn over the footer for a short time,
// used for commands that failed without changing the screen.
type statusMessage struct {
	text  string
	until time.Time
}

func (s *statusMessage) show(text string, now time.Time) {
	s.text = text
	s.until = now.Add(statusMessageDuration)
}

func (s *statusMessage) visible(now time.Time) bool {
	return s.text != "" && now.Before(s.until)
}

func (s *statusMessage) render(r render.Renderer, style menu.Style, now time.Time) {
	if !s.visible(now) {
		return
	}

	w, h := r.Size()
	layout := style.Layout
	bar := render.Rect{X: 0, Y: h - layout.FooterHeight - layout.Margins.Bottom, W: w, H: layout.FooterHeight + layout.Margins.Bottom}

	r.FillRect(bar, style.Theme.HighlightColor)
	r.DrawText(s.text, w/2, bar.Y+layout.Margins.Bottom/2, style.Theme.HighlightedTextColor, constants.TextAlignCenter,
		w-layout.Margins.Left-layout.Margins.Right, 0)
}
