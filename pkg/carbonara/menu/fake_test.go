package menu

import (
	"errors"
	"path/filepath"
	"sort"
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/render"
)

type drawnText struct {
	text   string
	x, y   int32
	align  constants.TextAlign
	clip   int32
	offset int32
}

type fakeImage struct {
	path     string
	released bool
}

func (f *fakeImage) Size() (int32, int32) { return 100, 50 }
func (f *fakeImage) Release()             { f.released = true }

// recordingRenderer records draw calls instead of drawing.
type recordingRenderer struct {
	w, h   int32
	texts  []drawnText
	fills  []render.Rect
	images []string
	loads  map[string]int
	exists map[string]bool
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{w: 640, h: 480, loads: map[string]int{}, exists: map[string]bool{}}
}

func (r *recordingRenderer) Size() (int32, int32) { return r.w, r.h }
func (r *recordingRenderer) Clear(render.Color) {
	r.texts, r.fills, r.images = nil, nil, nil
}
func (r *recordingRenderer) FillRect(rect render.Rect, _ render.Color) {
	r.fills = append(r.fills, rect)
}
func (r *recordingRenderer) DrawText(text string, x, y int32, _ render.Color, align constants.TextAlign, clip, offset int32) {
	r.texts = append(r.texts, drawnText{text: text, x: x, y: y, align: align, clip: clip, offset: offset})
}
func (r *recordingRenderer) MeasureText(text string) int32 { return int32(len(text)) * 10 }
func (r *recordingRenderer) LoadImage(path string) (render.Image, error) {
	r.loads[path]++
	if !r.exists[path] {
		return nil, render.ErrNoImage
	}
	return &fakeImage{path: path}, nil
}
func (r *recordingRenderer) DrawImage(img render.Image, _ render.Rect) {
	r.images = append(r.images, img.(*fakeImage).path)
}
func (r *recordingRenderer) Present() {}
func (r *recordingRenderer) Close()   {}

func (r *recordingRenderer) drew(text string) (drawnText, bool) {
	for _, t := range r.texts {
		if t.text == text {
			return t, true
		}
	}
	return drawnText{}, false
}

func newTestTree(r *recordingRenderer) (*Tree, *observer.Registry[observer.SettingChange]) {
	changes := observer.NewRegistry[observer.SettingChange]()
	var cache *ImageCache
	if r != nil {
		cache = internal.NewImageCache(4, r.LoadImage)
	}
	tree := NewTree(cache, changes)
	tree.SetClock(func() time.Time { return time.Unix(0, 0) })
	return tree, changes
}

func menuWithEntries(t *Tree, n int) *Menu {
	m := t.NewMenu("Games", NoMenu)
	for i := 0; i < n; i++ {
		m.Add(NewEntry("game", filepath.Join("roms", "game")))
	}
	return m
}

// fakeCatalog serves folder listings from a map keyed by directory.
type fakeCatalog struct {
	folders map[string][]string
	files   map[string][]string
}

func (c fakeCatalog) ListFolders(path string) ([]string, error) {
	folders, ok := c.folders[path]
	if !ok {
		return nil, nil
	}
	sort.Strings(folders)
	return folders, nil
}

func (c fakeCatalog) ListFiles(folder string) ([]string, error) {
	if filepath.Base(folder) == "broken" {
		return nil, errors.New("permission denied")
	}
	files := c.files[folder]
	sort.Strings(files)
	return files, nil
}

type mapValues map[string]string

func (v mapValues) Lookup(key string) (string, bool) {
	s, ok := v[key]
	return s, ok
}
