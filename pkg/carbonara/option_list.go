package carbonara

import (
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/menu"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/render"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/settings"
)

const valueGap int32 = 40

// optionList draws a settings overlay: a title, then one row per setting
// with the label on the left and the value on the right. It keeps the
// selected row on screen and scrolls labels that do not fit.
type optionList struct {
	start       int
	selectedKey string
	selectedAt  time.Time
	scroll      *internal.TextScrollData
}

func newOptionList() *optionList {
	return &optionList{}
}

// reset forgets the scroll position when a different overlay opens.
func (ol *optionList) reset() {
	ol.start = 0
	ol.selectedKey = ""
	ol.scroll = nil
}

func (ol *optionList) render(r render.Renderer, style menu.Style, title string, rows []settings.Row, now time.Time) {
	w, h := r.Size()
	theme := style.Theme
	layout := style.Layout

	r.Clear(theme.BackgroundColor)
	r.DrawText(title, layout.Margins.Left, layout.Margins.Top, theme.TextColor, constants.TextAlignLeft, 0, 0)

	selected := -1
	for i, row := range rows {
		if row.Selected {
			selected = i
			break
		}
	}

	maxVisible := layout.RowsFor(h)
	ol.scrollTo(selected, maxVisible)
	if selected >= 0 && rows[selected].Key != ol.selectedKey {
		ol.selectedKey = rows[selected].Key
		ol.selectedAt = now
		ol.scroll = nil
	}

	contentWidth := w - layout.Margins.Left - layout.Margins.Right

	for position, i := 0, ol.start; i < len(rows) && position < maxVisible; position, i = position+1, i+1 {
		row := rows[i]
		y := layout.RowY(position)
		textY := y + layout.RowHeight/4

		textColor := theme.TextColor
		if row.Selected {
			textColor = theme.HighlightedTextColor
			r.FillRect(render.Rect{X: layout.Margins.Left - 10, Y: y, W: contentWidth + 20, H: layout.RowHeight}, theme.HighlightColor)
		}

		labelWidth := contentWidth
		if row.Value != "" {
			r.DrawText(row.Value, w-layout.Margins.Right, textY, textColor, constants.TextAlignRight, 0, 0)
			labelWidth = contentWidth - r.MeasureText(row.Value) - valueGap
		}

		textWidth := r.MeasureText(row.Title)
		if textWidth <= labelWidth {
			r.DrawText(row.Title, layout.Margins.Left, textY, textColor, constants.TextAlignLeft, 0, 0)
			continue
		}

		var offset int32
		if row.Selected {
			offset = ol.labelOffset(textWidth, labelWidth, now)
		}
		r.DrawText(row.Title, layout.Margins.Left, textY, textColor, constants.TextAlignLeft, labelWidth, offset)
	}

	if len(rows) == 0 {
		r.DrawText("-", w/2, layout.RowY(0), theme.HintColor, constants.TextAlignCenter, 0, 0)
	}
}

// scrollTo moves the window so index is visible.
func (ol *optionList) scrollTo(index, maxVisible int) {
	if index < 0 {
		return
	}
	if index < ol.start {
		ol.start = index
	} else if index >= ol.start+maxVisible {
		ol.start = index - maxVisible + 1
	}
}

func (ol *optionList) labelOffset(textWidth, labelWidth int32, now time.Time) int32 {
	if ol.scroll == nil || ol.scroll.TextWidth != textWidth || ol.scroll.ContainerWidth != labelWidth {
		ol.scroll = internal.NewTextScroll(textWidth, labelWidth, ol.selectedAt, constants.ScrollDelay)
	}
	ol.scroll.Update(now)
	return ol.scroll.ScrollOffset
}
