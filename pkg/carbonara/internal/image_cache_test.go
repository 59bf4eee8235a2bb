package internal

import (
	"errors"
	"testing"
)

type fakeImage struct {
	path     string
	released *int
}

func (f fakeImage) Release() {
	*f.released++
}

func newFakeLoader(loads *int, released *int) func(string) (fakeImage, error) {
	return func(path string) (fakeImage, error) {
		*loads++
		if path == "missing.png" {
			return fakeImage{}, errors.New("no such file")
		}
		return fakeImage{path: path, released: released}, nil
	}
}

func TestImageCacheEvictsOldestInsertion(t *testing.T) {
	var loads, released int
	cache := NewImageCache(2, newFakeLoader(&loads, &released))

	for _, key := range []string{"a", "b", "c"} {
		if _, err := cache.Load(key); err != nil {
			t.Fatalf("Load(%q) returned error: %v", key, err)
		}
	}

	if cache.Contains("a") {
		t.Error("expected a to be evicted")
	}
	if !cache.Contains("b") || !cache.Contains("c") {
		t.Errorf("expected b and c to remain, got %v", cache.Keys())
	}
	if released != 1 {
		t.Errorf("expected 1 release, got %d", released)
	}
}

func TestImageCacheHitDoesNotRefreshOrder(t *testing.T) {
	var loads, released int
	cache := NewImageCache(2, newFakeLoader(&loads, &released))

	cache.Load("a")
	cache.Load("b")
	cache.Load("a") // hit, must not move a to the back
	cache.Load("c")

	if cache.Contains("a") {
		t.Error("a should be evicted even after a recent hit")
	}
	if loads != 3 {
		t.Errorf("expected 3 loader calls, got %d", loads)
	}
}

func TestImageCacheFailedLoadIsNotCached(t *testing.T) {
	var loads, released int
	cache := NewImageCache(2, newFakeLoader(&loads, &released))

	if _, err := cache.Load("missing.png"); err == nil {
		t.Fatal("expected error for missing image")
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", cache.Len())
	}
}

func TestImageCachePutReplacesAndReleases(t *testing.T) {
	var released int
	cache := NewImageCache[fakeImage](3, nil)

	cache.Put("a", fakeImage{path: "a1", released: &released})
	cache.Put("a", fakeImage{path: "a2", released: &released})

	img, ok := cache.Get("a")
	if !ok || img.path != "a2" {
		t.Fatalf("expected replacement a2, got %+v (ok=%v)", img, ok)
	}
	if released != 1 {
		t.Errorf("expected old image released once, got %d", released)
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", cache.Len())
	}
}

func TestImageCacheDestroyReleasesAll(t *testing.T) {
	var loads, released int
	cache := NewImageCache(4, newFakeLoader(&loads, &released))
	cache.Load("a")
	cache.Load("b")

	cache.Destroy()

	if released != 2 {
		t.Errorf("expected 2 releases, got %d", released)
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache after Destroy, got %d", cache.Len())
	}
}
