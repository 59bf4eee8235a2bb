package internal

// Padding defines spacing on all four sides of an element.
type Padding struct {
	Top    int32
	Right  int32
	Bottom int32
	Left   int32
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(value int32) Padding {
	return Padding{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}

// Layout holds row geometry shared by the list-style screens.
type Layout struct {
	Margins      Padding
	TitleHeight  int32
	FooterHeight int32
	RowHeight    int32
}

// DefaultLayout scales the base geometry to the screen height. Base values
// target a 480px tall display.
func DefaultLayout(screenHeight int32) Layout {
	scale := float32(screenHeight) / 480
	if scale <= 0 {
		scale = 1
	}
	px := func(v float32) int32 { return int32(v * scale) }

	return Layout{
		Margins:      UniformPadding(px(16)),
		TitleHeight:  px(48),
		FooterHeight: px(36),
		RowHeight:    px(42),
	}
}

// RowsFor returns how many rows fit between the title and the footer.
func (l Layout) RowsFor(screenHeight int32) int {
	available := screenHeight - l.Margins.Top - l.TitleHeight - l.FooterHeight - l.Margins.Bottom
	if l.RowHeight <= 0 || available < l.RowHeight {
		return 1
	}
	return int(available / l.RowHeight)
}

// RowY returns the top of the row displayed at position.
func (l Layout) RowY(position int) int32 {
	return l.Margins.Top + l.TitleHeight + int32(position)*l.RowHeight
}
