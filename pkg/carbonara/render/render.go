// Package render draws launcher frames. Menus and settings screens depend on
// the Renderer interface only; SDLRenderer drives the device screen and
// TermRenderer prints frames to a terminal during development.
package render

import (
	"errors"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

// ErrNoImage is returned when an image path cannot be loaded.
var ErrNoImage = errors.New("image not available")

type Color = internal.Color

type Rect struct {
	X, Y, W, H int32
}

// Image is a loaded, drawable picture. Release frees the native resource and
// is called by the image cache on eviction.
type Image interface {
	Size() (w, h int32)
	Release()
}

// Renderer is the drawing surface handed to menus each frame.
type Renderer interface {
	Size() (w, h int32)
	Clear(c Color)
	FillRect(r Rect, c Color)

	// DrawText draws text anchored at x according to align. When clip is
	// positive the text is cut to clip pixels wide, starting offset pixels
	// into the rendered line.
	DrawText(text string, x, y int32, c Color, align constants.TextAlign, clip, offset int32)
	MeasureText(text string) int32

	LoadImage(path string) (Image, error)
	DrawImage(img Image, dst Rect)

	Present()
	Close()
}

// FitRect scales a w x h image down to fit inside box, keeping its aspect
// ratio, and centers the result in box. Images are never scaled up.
func FitRect(w, h int32, box Rect) Rect {
	if w <= 0 || h <= 0 {
		return Rect{X: box.X, Y: box.Y}
	}

	if w > box.W {
		ratio := float32(box.W) / float32(w)
		w = box.W
		h = int32(float32(h) * ratio)
	}

	if h > box.H {
		ratio := float32(box.H) / float32(h)
		h = box.H
		w = int32(float32(w) * ratio)
	}

	return Rect{
		X: box.X + (box.W-w)/2,
		Y: box.Y + (box.H-h)/2,
		W: w,
		H: h,
	}
}
