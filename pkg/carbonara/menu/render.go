package menu

import (
	"fmt"
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/render"
)

// Style bundles what drawing needs besides the renderer.
type Style struct {
	Theme  internal.Theme
	Layout internal.Layout
}

// Render draws the menu for mode. Sections and Systems show only the
// selected item full screen; the other modes draw the page window as rows.
func (m *Menu) Render(r render.Renderer, style Style, mode Mode, now time.Time) {
	switch mode {
	case ModeSections, ModeSystems:
		m.renderFullScreen(r, style, mode, now)
	default:
		m.renderRows(r, style, mode, now)
	}
}

func (m *Menu) renderFullScreen(r render.Renderer, style Style, mode Mode, now time.Time) {
	w, h := r.Size()
	theme := style.Theme

	r.Clear(theme.BackgroundColor)

	it := m.Selected()
	if it == nil {
		return
	}
	it.render(r, m.tree, style, mode, render.Rect{W: w, H: h}, now)

	footerY := h - style.Layout.FooterHeight
	r.DrawText(fmt.Sprintf("%d/%d", m.selected+1, len(m.items)), w-style.Layout.Margins.Right, footerY,
		theme.HintColor, constants.TextAlignRight, 0, 0)
}

func (m *Menu) renderRows(r render.Renderer, style Style, mode Mode, now time.Time) {
	w, h := r.Size()
	theme := style.Theme
	layout := style.Layout

	r.Clear(theme.BackgroundColor)
	if m.Background != "" && !m.backgroundMissing {
		if bg, err := m.tree.image(m.Background); err == nil {
			r.DrawImage(bg, render.Rect{W: w, H: h})
		} else {
			m.backgroundMissing = true
			internal.GetLogger().Debug("Menu background not available", "menu", m.Title, "path", m.Background, "error", err)
		}
	}

	r.DrawText(m.Title, layout.Margins.Left, layout.Margins.Top, theme.TextColor, constants.TextAlignLeft, 0, 0)

	rowWidth := w - layout.Margins.Left - layout.Margins.Right
	if it := m.Selected(); it != nil && it.Thumbnail != "" && !it.thumbnailMissing {
		if thumb, err := m.tree.image(it.Thumbnail); err == nil {
			rowWidth = w/2 - layout.Margins.Left
			box := render.Rect{
				X: w / 2,
				Y: layout.RowY(0),
				W: w/2 - layout.Margins.Right,
				H: h - layout.RowY(0) - layout.FooterHeight - layout.Margins.Bottom,
			}
			tw, th := thumb.Size()
			r.DrawImage(thumb, render.FitRect(tw, th, box))
		}
	}

	start, end := m.Window()
	for i := start; i < end; i++ {
		row := render.Rect{X: layout.Margins.Left, Y: layout.RowY(i - start), W: rowWidth, H: layout.RowHeight}
		m.items[i].render(r, m.tree, style, mode, row, now)
	}

	if pages := m.TotalPages(); pages > 1 {
		r.DrawText(fmt.Sprintf("%d/%d", m.CurrentPage(), pages), w-layout.Margins.Right, h-layout.FooterHeight,
			theme.AccentColor, constants.TextAlignRight, 0, 0)
	}
}

// render draws the item inside area. In the full-screen modes area is the
// whole screen; otherwise it is the item's row.
func (it *Item) render(r render.Renderer, t *Tree, style Style, mode Mode, area render.Rect, now time.Time) {
	theme := style.Theme

	if mode == ModeSections || mode == ModeSystems {
		if !it.backgroundMissing {
			if bg, err := t.image(it.Background); err == nil {
				r.DrawImage(bg, area)
				return
			}
		}
		r.FillRect(area, theme.BackgroundColor)
		r.DrawText(it.Title, area.X+area.W/2, area.Y+area.H/2, theme.TextColor, constants.TextAlignCenter, 0, 0)
		return
	}

	textColor := theme.TextColor
	if it.selected {
		textColor = theme.HighlightedTextColor
		r.FillRect(render.Rect{X: area.X - 10, Y: area.Y, W: area.W + 20, H: area.H}, theme.HighlightColor)
	}

	textY := area.Y + area.H/4
	labelWidth := area.W

	if value := it.Value(); value != "" {
		valueWidth := r.MeasureText(value)
		r.DrawText(value, area.X+area.W, textY, textColor, constants.TextAlignRight, 0, 0)
		labelWidth = area.W - valueWidth - 20
	}

	title := it.Title
	if it.IsBranch() && mode == ModeRomList && it.Path != "" {
		title = constants.Folder + " " + title
	}

	textWidth := r.MeasureText(title)
	if textWidth <= labelWidth {
		r.DrawText(title, area.X, textY, textColor, constants.TextAlignLeft, 0, 0)
		return
	}

	var offset int32
	if it.selected {
		if it.scroll == nil || it.scroll.ContainerWidth != labelWidth || it.scroll.TextWidth != textWidth {
			it.scroll = internal.NewTextScroll(textWidth, labelWidth, it.selectedAt, constants.ScrollDelay)
		}
		it.scroll.Update(now)
		offset = it.scroll.ScrollOffset
	}
	r.DrawText(title, area.X, textY, textColor, constants.TextAlignLeft, labelWidth, offset)
}
