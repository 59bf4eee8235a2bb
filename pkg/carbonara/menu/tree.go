package menu

import (
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/render"
)

// MenuID indexes a menu in its Tree.
type MenuID int

// NoMenu is the parent of the root and the submenu of leaves.
const NoMenu MenuID = -1

// ImageCache is the single image store shared by every menu of a tree.
type ImageCache = internal.ImageCache[render.Image]

// Tree owns all menus. Menus refer to each other by MenuID only.
type Tree struct {
	menus   []*Menu
	images  *ImageCache
	changes *observer.Registry[observer.SettingChange]
	perPage int
	now     func() time.Time
}

// NewTree creates an empty tree. images may be nil when nothing is drawn.
func NewTree(images *ImageCache, changes *observer.Registry[observer.SettingChange]) *Tree {
	return &Tree{
		images:  images,
		changes: changes,
		perPage: constants.DefaultPerPage,
		now:     time.Now,
	}
}

// SetClock replaces the monotonic time source used for selection timing.
func (t *Tree) SetClock(now func() time.Time) {
	t.now = now
}

// SetItemsPerPage changes the page size of every menu and realigns windows.
func (t *Tree) SetItemsPerPage(n int) {
	if n < 1 {
		n = 1
	}
	t.perPage = n
	for _, m := range t.menus {
		m.perPage = n
		m.realign()
	}
}

func (t *Tree) ItemsPerPage() int {
	return t.perPage
}

func (t *Tree) Images() *ImageCache {
	return t.images
}

// NewMenu appends an empty menu. The first menu created is the root.
func (t *Tree) NewMenu(title string, parent MenuID) *Menu {
	m := &Menu{
		ID:      MenuID(len(t.menus)),
		Title:   title,
		Parent:  parent,
		perPage: t.perPage,
		tree:    t,
	}
	t.menus = append(t.menus, m)
	m.Mode = ModeForDepth(t.Depth(m.ID))
	return m
}

// Menu returns the menu with id, or nil.
func (t *Tree) Menu(id MenuID) *Menu {
	if id < 0 || int(id) >= len(t.menus) {
		return nil
	}
	return t.menus[id]
}

func (t *Tree) Parent(id MenuID) MenuID {
	if m := t.Menu(id); m != nil {
		return m.Parent
	}
	return NoMenu
}

func (t *Tree) Root() *Menu {
	return t.Menu(0)
}

func (t *Tree) Len() int {
	return len(t.menus)
}

// Depth is the number of ancestors of id.
func (t *Tree) Depth(id MenuID) int {
	depth := 0
	for p := t.Parent(id); p != NoMenu; p = t.Parent(p) {
		depth++
	}
	return depth
}

// Path returns the selected index of each menu from the root down to id.
func (t *Tree) Path(id MenuID) []int {
	var path []int
	for m := t.Menu(id); m != nil; m = t.Menu(m.Parent) {
		path = append([]int{m.selected}, path...)
	}
	return path
}

// Reveal selects the launchable item with romPath and, in every ancestor,
// the branch leading to it, so that Path of the returned menu reaches the
// item. The first match in menu order wins.
func (t *Tree) Reveal(romPath string) (*Menu, bool) {
	for _, m := range t.menus {
		for i, it := range m.items {
			if !it.IsLaunchable() || it.Path != romPath {
				continue
			}
			m.SetSelectedIndex(i)

			child := m
			for parent := t.Menu(child.Parent); parent != nil; parent = t.Menu(parent.Parent) {
				for j, branch := range parent.items {
					if branch.Submenu == child.ID {
						parent.SetSelectedIndex(j)
						break
					}
				}
				child = parent
			}
			return m, true
		}
	}
	return nil, false
}

// FolderName returns the title of the menu that holds it.
func (t *Tree) FolderName(it *Item) string {
	if m := t.Menu(it.parent); m != nil {
		return m.Title
	}
	return ""
}

// Destroy releases every cached image.
func (t *Tree) Destroy() {
	if t.images != nil {
		t.images.Destroy()
	}
}

// image returns the cached image for path, loading it on a miss.
func (t *Tree) image(path string) (render.Image, error) {
	if t.images == nil || path == "" {
		return nil, render.ErrNoImage
	}
	return t.images.Load(path)
}

// resolveImages loads an item's background and thumbnail the first time it
// is selected. Failures are logged once and the image is treated as absent.
func (t *Tree) resolveImages(it *Item) {
	if it.imagesResolved {
		return
	}
	it.imagesResolved = true

	if it.Background != "" {
		if _, err := t.image(it.Background); err != nil {
			it.backgroundMissing = true
			internal.GetLogger().Debug("Background not available", "path", it.Background, "error", err)
		}
	}

	if it.Thumbnail != "" {
		if _, err := t.image(it.Thumbnail); err != nil {
			it.thumbnailMissing = true
			internal.GetLogger().Debug("Thumbnail not available", "path", it.Thumbnail, "error", err)
		}
	}
}
