package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// SDLOptions configures the device window.
type SDLOptions struct {
	Title    string
	Window   WindowOptions
	FontPath string
	FontSize int
}

// SDLRenderer owns the SDL window, renderer and font.
type SDLRenderer struct {
	window          *sdl.Window
	renderer        *sdl.Renderer
	font            *ttf.Font
	width, height   int32
	hasVSync        bool
	lastPresentTime uint64
}

type sdlImage struct {
	texture *sdl.Texture
	w, h    int32
}

func (i *sdlImage) Size() (int32, int32) {
	return i.w, i.h
}

func (i *sdlImage) Release() {
	if i.texture != nil {
		i.texture.Destroy()
		i.texture = nil
	}
}

// NewSDLRenderer initializes SDL and opens a window covering the current
// display. In development mode the window is decorated and sized from
// WINDOW_WIDTH / WINDOW_HEIGHT.
func NewSDLRenderer(opts SDLOptions) (*SDLRenderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}

	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("ttf init: %w", err)
	}

	img.Init(img.INIT_PNG | img.INIT_JPG | img.INIT_WEBP)

	if opts.Window.IsZero() {
		opts.Window = WindowOptions{Resizable: true}
	}

	displayMode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		internal.GetInternalLogger().Error("Failed to get display mode", "error", err)
	}

	x, y := int32(0), int32(0)
	width, height := displayMode.W, displayMode.H

	if constants.IsDevMode() {
		opts.Window.Borderless = false
		x, y = 50, 50
		width = envDimension(constants.WindowWidthEnvVar, 1024)
		height = envDimension(constants.WindowHeightEnvVar, 768)
	}

	internal.GetInternalLogger().Debug("Initializing SDL window", "width", width, "height", height)

	window, err := sdl.CreateWindow(opts.Title, x, y, width, height, opts.Window.sdlFlags())
	if err != nil {
		quitSDL()
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC|sdl.RENDERER_TARGETTEXTURE)
	if err != nil {
		window.Destroy()
		quitSDL()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	renderer.SetLogicalSize(width, height)
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	font, err := ttf.OpenFont(opts.FontPath, opts.FontSize)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		quitSDL()
		return nil, fmt.Errorf("open font %s: %w", opts.FontPath, err)
	}

	return &SDLRenderer{
		window:   window,
		renderer: renderer,
		font:     font,
		width:    width,
		height:   height,
		hasVSync: vsync,
	}, nil
}

func envDimension(name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		internal.GetInternalLogger().Warn("Invalid window dimension; using default", "env", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func quitSDL() {
	img.Quit()
	ttf.Quit()
	sdl.Quit()
}

func (r *SDLRenderer) Size() (int32, int32) {
	return r.width, r.height
}

func (r *SDLRenderer) setColor(c Color) {
	r.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}

func (r *SDLRenderer) Clear(c Color) {
	r.setColor(c)
	r.renderer.Clear()
}

func (r *SDLRenderer) FillRect(rect Rect, c Color) {
	r.setColor(c)
	r.renderer.FillRect(&sdl.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H})
}

func (r *SDLRenderer) DrawText(text string, x, y int32, c Color, align constants.TextAlign, clip, offset int32) {
	if text == "" {
		return
	}

	surface, err := r.font.RenderUTF8Blended(text, sdl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
	if err != nil {
		internal.GetInternalLogger().Debug("Failed to render text", "text", text, "error", err)
		return
	}
	defer surface.Free()

	texture, err := r.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return
	}
	defer texture.Destroy()

	src := sdl.Rect{W: surface.W, H: surface.H}
	if clip > 0 && surface.W > clip {
		src.X = offset
		src.W = clip
	}

	dst := sdl.Rect{X: x, Y: y, W: src.W, H: src.H}
	switch align {
	case constants.TextAlignCenter:
		dst.X = x - src.W/2
	case constants.TextAlignRight:
		dst.X = x - src.W
	}

	r.renderer.Copy(texture, &src, &dst)
}

func (r *SDLRenderer) MeasureText(text string) int32 {
	w, _, err := r.font.SizeUTF8(text)
	if err != nil {
		return 0
	}
	return int32(w)
}

// LoadImage loads a PNG/JPEG/WebP file, or rasterizes an SVG at its own size.
func (r *SDLRenderer) LoadImage(path string) (Image, error) {
	if path == "" {
		return nil, ErrNoImage
	}

	var surface *sdl.Surface
	var err error

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		surface, err = r.svgSurface(path)
	} else {
		surface, err = img.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoImage, path, err)
	}
	defer surface.Free()

	texture, err := r.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoImage, path, err)
	}

	return &sdlImage{texture: texture, w: surface.W, h: surface.H}, nil
}

func (r *SDLRenderer) svgSurface(path string) (*sdl.Surface, error) {
	rgba, err := rasterizeSVGFile(path, 0, 0)
	if err != nil {
		return nil, err
	}

	b := rgba.Bounds()
	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(unsafe.Pointer(&rgba.Pix[0]),
		int32(b.Dx()), int32(b.Dy()), 32, int32(rgba.Stride), sdl.PIXELFORMAT_ABGR8888)
	if err != nil {
		return nil, err
	}

	// The surface borrows rgba's pixels; copy so it outlives them.
	converted, err := surface.ConvertFormat(sdl.PIXELFORMAT_ABGR8888, 0)
	surface.Free()
	return converted, err
}

func (r *SDLRenderer) DrawImage(image Image, dst Rect) {
	si, ok := image.(*sdlImage)
	if !ok || si.texture == nil {
		return
	}
	r.renderer.Copy(si.texture, nil, &sdl.Rect{X: dst.X, Y: dst.Y, W: dst.W, H: dst.H})
}

// Present swaps the render buffer and holds ~60fps frame timing when VSync
// is not available.
func (r *SDLRenderer) Present() {
	r.renderer.Present()
	if !r.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - r.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		r.lastPresentTime = sdl.GetTicks64()
	}
}

func (r *SDLRenderer) Close() {
	if r.font != nil {
		r.font.Close()
	}
	r.renderer.Destroy()
	r.window.Destroy()
	quitSDL()
}
