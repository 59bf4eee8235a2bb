package render

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RasterizeSVG renders an SVG document to an RGBA image of w x h pixels. A
// zero width or height uses the document's view box size.
func RasterizeSVG(r io.Reader, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	if w <= 0 || h <= 0 {
		w = int(math.Ceil(icon.ViewBox.W))
		h = int(math.Ceil(icon.ViewBox.H))
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no size")
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	return rgba, nil
}

func rasterizeSVGFile(path string, w, h int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return RasterizeSVG(f, w, h)
}
