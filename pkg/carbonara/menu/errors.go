package menu

import (
	"errors"
	"fmt"
)

// ErrOptionValueNotFound is returned when a value is not one of an option
// item's choices.
var ErrOptionValueNotFound = errors.New("option value not found")

// OptionValueError names the item and value that failed to resolve.
type OptionValueError struct {
	Key   string
	Value string
}

func (e *OptionValueError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid option", e.Key, e.Value)
}

func (e *OptionValueError) Unwrap() error {
	return ErrOptionValueNotFound
}
