package catalog

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BurntSushi/toml"
)

// AliasFile is looked up in every ROM folder.
const AliasFile = "aliases.toml"

// LoadAliases reads folder/aliases.toml, a table of "file.ext" = "Display
// Name" pairs. A missing or unreadable file yields no aliases.
func LoadAliases(folder string) map[string]string {
	path := filepath.Join(folder, AliasFile)

	var aliases map[string]string
	if _, err := toml.DecodeFile(path, &aliases); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			internal.GetLogger().Warn("Failed to load aliases", "path", path, "error", err)
		}
		return nil
	}
	return aliases
}
