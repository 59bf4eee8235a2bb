// Package catalog reads what the launcher browses and remembers: ROM
// folders, display aliases, per-system console definitions, per-ROM
// selections and the resume state.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/zyedidia/generic/mapset"
)

// DefaultExcluded are the extensions of artwork and metadata files that
// share ROM folders.
var DefaultExcluded = []string{".txt", ".png", ".jpg", ".xml", ".db"}

// FileCatalog lists ROM folders and files.
type FileCatalog struct {
	Excluded mapset.Set[string] // lowercase extensions including the dot
}

// NewFileCatalog creates a catalog skipping files with the given extensions.
// Extensions are matched case-insensitively, with or without a leading dot.
func NewFileCatalog(excluded ...string) *FileCatalog {
	set := mapset.New[string]()
	for _, ext := range excluded {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set.Put(ext)
	}
	return &FileCatalog{Excluded: set}
}

// ListFolders returns the sorted sub-folders of path, skipping hidden folders
// and the BIOS folder.
func (c *FileCatalog) ListFolders(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var folders []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") || strings.EqualFold(name, constants.BiosFolder) {
			continue
		}
		folders = append(folders, name)
	}

	sort.Strings(folders)
	return folders, nil
}

// ListFiles returns the sorted regular files of folder, skipping dotfiles,
// the alias file and excluded extensions.
func (c *FileCatalog) ListFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".") || strings.EqualFold(name, AliasFile) {
			continue
		}
		if c.Excluded.Has(strings.ToLower(filepath.Ext(name))) {
			continue
		}
		files = append(files, name)
	}

	sort.Strings(files)
	return files, nil
}
