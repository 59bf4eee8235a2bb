package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
)

// Resume is the navigation position saved before an emulator starts.
type Resume struct {
	MenuPath []int  `json:"menuPath"`
	Mode     string `json:"mode"`
}

func SaveResume(path string, r Resume) error {
	if err := internal.WriteJSONAtomic(path, r); err != nil {
		return fmt.Errorf("failed to save resume state: %w", err)
	}
	return nil
}

// LoadResume reads the saved position. ok is false when none was saved.
func LoadResume(path string) (r Resume, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Resume{}, false, nil
		}
		return Resume{}, false, fmt.Errorf("failed to read resume state: %w", err)
	}

	if err := json.Unmarshal(data, &r); err != nil {
		return Resume{}, false, fmt.Errorf("failed to parse resume state: %w", err)
	}
	return r, true, nil
}

// ClearResume removes the saved position once it has been restored.
func ClearResume(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
