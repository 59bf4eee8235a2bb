package carbonara

import (
	"errors"
	"fmt"
)

// InfrastructureError represents a failure of the launcher itself (SDL
// could not start, the font is missing, the renderer failed) rather than a
// problem with the user's library or settings.
//
// These errors are fatal during Init.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "init_renderer", "load_menu")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("carbonara: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("carbonara: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
