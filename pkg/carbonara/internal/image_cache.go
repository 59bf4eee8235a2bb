package internal

const DefaultImageCacheSize = 24

// Releaser is anything owning a native resource that must be freed exactly once.
type Releaser interface {
	Release()
}

// ImageCache is a size-bounded store of loaded images keyed by file path.
// When full, the entry inserted first is evicted and released. Hits do not
// refresh an entry's position.
type ImageCache[T Releaser] struct {
	images  map[string]T
	order   []string // insertion order, oldest first
	maxSize int
	loader  func(path string) (T, error)
}

func NewImageCache[T Releaser](maxSize int, loader func(path string) (T, error)) *ImageCache[T] {
	if maxSize < 1 {
		maxSize = DefaultImageCacheSize
	}
	return &ImageCache[T]{
		images:  make(map[string]T),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		loader:  loader,
	}
}

func (c *ImageCache[T]) Get(path string) (T, bool) {
	img, ok := c.images[path]
	return img, ok
}

func (c *ImageCache[T]) Contains(path string) bool {
	_, ok := c.images[path]
	return ok
}

// Put stores img under path. Replacing an existing entry releases the old
// image but keeps its original insertion slot.
func (c *ImageCache[T]) Put(path string, img T) {
	if old, exists := c.images[path]; exists {
		old.Release()
		c.images[path] = img
		return
	}

	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.images[path] = img
	c.order = append(c.order, path)
}

// Load returns the cached image for path, loading and inserting it on a miss.
// Failed loads are not cached.
func (c *ImageCache[T]) Load(path string) (T, error) {
	if img, ok := c.images[path]; ok {
		return img, nil
	}

	var zero T
	if c.loader == nil {
		return zero, errNoLoader
	}

	img, err := c.loader(path)
	if err != nil {
		return zero, err
	}

	c.Put(path, img)
	return img, nil
}

func (c *ImageCache[T]) Len() int {
	return len(c.order)
}

// Keys returns the cached paths, oldest first.
func (c *ImageCache[T]) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

func (c *ImageCache[T]) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]

	if img, exists := c.images[oldest]; exists {
		img.Release()
		delete(c.images, oldest)
	}
}

// Destroy releases every cached image.
func (c *ImageCache[T]) Destroy() {
	for _, img := range c.images {
		img.Release()
	}
	c.images = make(map[string]T)
	c.order = c.order[:0]
}
