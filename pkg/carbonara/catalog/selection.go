package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

// Selection is the remembered launch choice for one ROM.
type Selection struct {
	Section   string `json:"section"`
	Folder    string `json:"folder"`
	Rom       string `json:"rom"`
	Path      string `json:"path"`
	Core      string `json:"core"`
	Overclock string `json:"overclock,omitempty"`
	Autostart *bool  `json:"autostart,omitempty"`
}

// SelectionStore is one selection file held in memory. Records are keyed by
// ROM path and keep their file order.
type SelectionStore struct {
	path    string
	records []Selection
	index   map[string]int
}

func loadSelectionStore(path string) (*SelectionStore, error) {
	s := &SelectionStore{path: path, index: make(map[string]int)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read selections: %w", err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("failed to parse selections %s: %w", path, err)
	}

	for i, r := range s.records {
		s.index[r.Path] = i
	}
	return s, nil
}

func (s *SelectionStore) Lookup(romPath string) (Selection, bool) {
	i, ok := s.index[romPath]
	if !ok {
		return Selection{}, false
	}
	return s.records[i], true
}

// UpdateCore changes the core of an existing record. It reports whether a
// record for romPath exists.
func (s *SelectionStore) UpdateCore(romPath, core string) bool {
	i, ok := s.index[romPath]
	if !ok {
		return false
	}
	s.records[i].Core = core
	return true
}

// Update replaces the record with the same path, or appends it.
func (s *SelectionStore) Update(rec Selection) {
	if i, ok := s.index[rec.Path]; ok {
		s.records[i] = rec
		return
	}
	s.index[rec.Path] = len(s.records)
	s.records = append(s.records, rec)
}

func (s *SelectionStore) Records() []Selection {
	return append([]Selection(nil), s.records...)
}

func (s *SelectionStore) Save() error {
	records := s.records
	if records == nil {
		records = []Selection{}
	}
	if err := internal.WriteJSONAtomic(s.path, records); err != nil {
		return fmt.Errorf("failed to save selections: %w", err)
	}
	return nil
}

// SelectionCache loads each selection file once and keeps it for the life
// of the process.
type SelectionCache struct {
	stores map[string]*SelectionStore
}

func NewSelectionCache() *SelectionCache {
	return &SelectionCache{stores: make(map[string]*SelectionStore)}
}

func (c *SelectionCache) Store(path string) (*SelectionStore, error) {
	if s, ok := c.stores[path]; ok {
		return s, nil
	}

	s, err := loadSelectionStore(path)
	if err != nil {
		return nil, err
	}

	c.stores[path] = s
	return s, nil
}
