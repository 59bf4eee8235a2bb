package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/gookit/color"
)

// Character cell size used to map pixel coordinates onto terminal text.
const (
	termCellWidth  int32 = 10
	termCellHeight int32 = 20
)

type termItem struct {
	x, y  int32
	text  string
	color Color
}

type termImage struct {
	name string
}

func (termImage) Size() (int32, int32) { return 0, 0 }
func (termImage) Release()             {}

// TermRenderer prints each frame as lines of colored text. It is meant for
// running the launcher on a development machine without a display.
type TermRenderer struct {
	out           io.Writer
	width, height int32
	items         []termItem
	highlights    []Rect
	background    Color
	last          string
}

func NewTermRenderer(out io.Writer, width, height int32) *TermRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TermRenderer{out: out, width: width, height: height}
}

func (t *TermRenderer) Size() (int32, int32) {
	return t.width, t.height
}

func (t *TermRenderer) Clear(c Color) {
	t.items = t.items[:0]
	t.highlights = t.highlights[:0]
	t.background = c
}

// FillRect records rectangles that differ from the clear color so the rows
// under them print as highlighted.
func (t *TermRenderer) FillRect(r Rect, c Color) {
	if c == t.background || (r.W >= t.width && r.H >= t.height) {
		return
	}
	t.highlights = append(t.highlights, r)
}

func (t *TermRenderer) DrawText(text string, x, y int32, c Color, align constants.TextAlign, clip, offset int32) {
	if clip > 0 {
		runes := []rune(text)
		from := int(offset / termCellWidth)
		to := from + int(clip/termCellWidth)
		if from > len(runes) {
			from = len(runes)
		}
		if to > len(runes) {
			to = len(runes)
		}
		text = string(runes[from:to])
	}

	w := t.MeasureText(text)
	switch align {
	case constants.TextAlignCenter:
		x -= w / 2
	case constants.TextAlignRight:
		x -= w
	}

	t.items = append(t.items, termItem{x: x, y: y, text: text, color: c})
}

func (t *TermRenderer) MeasureText(text string) int32 {
	return int32(len([]rune(text))) * termCellWidth
}

func (t *TermRenderer) LoadImage(path string) (Image, error) {
	if path == "" {
		return nil, ErrNoImage
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoImage, path, err)
	}
	return termImage{name: filepath.Base(path)}, nil
}

func (t *TermRenderer) DrawImage(img Image, dst Rect) {
	ti, ok := img.(termImage)
	if !ok {
		return
	}
	t.items = append(t.items, termItem{x: dst.X, y: dst.Y, text: "[" + ti.name + "]", color: t.background})
}

func (t *TermRenderer) highlighted(y int32) bool {
	for _, h := range t.highlights {
		if y >= h.Y && y < h.Y+h.H {
			return true
		}
	}
	return false
}

// Present writes the frame, one line per text row, top to bottom. A frame
// identical to the previous one is not written again.
func (t *TermRenderer) Present() {
	sort.SliceStable(t.items, func(i, j int) bool {
		ri, rj := t.items[i].y/termCellHeight, t.items[j].y/termCellHeight
		if ri != rj {
			return ri < rj
		}
		return t.items[i].x < t.items[j].x
	})

	var b strings.Builder
	b.WriteString(strings.Repeat("-", int(t.width/termCellWidth)))
	b.WriteByte('\n')

	for i := 0; i < len(t.items); {
		row := t.items[i].y / termCellHeight
		prefix := "  "
		if t.highlighted(t.items[i].y) {
			prefix = "> "
		}
		b.WriteString(prefix)

		col := int32(0)
		for ; i < len(t.items) && t.items[i].y/termCellHeight == row; i++ {
			item := t.items[i]
			if pad := item.x/termCellWidth - col; pad > 0 {
				b.WriteString(strings.Repeat(" ", int(pad)))
				col += pad
			} else if col > 0 {
				b.WriteByte(' ')
				col++
			}
			b.WriteString(color.RGB(item.color.R, item.color.G, item.color.B).Sprint(item.text))
			col += int32(len([]rune(item.text)))
		}
		b.WriteByte('\n')
	}

	frame := b.String()
	if frame == t.last {
		return
	}
	t.last = frame
	fmt.Fprint(t.out, frame)
}

func (t *TermRenderer) Close() {}
