package ui

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned by a screen the user backed out of. It is
	// ordinary navigation, not a failure.
	ErrCancelled = errors.New("operation cancelled by user")

	// ErrQuit is returned by any screen once the window has been closed.
	ErrQuit = errors.New("window closed")
)

// InfrastructureError is a failure of the screen layer itself: SDL, fonts,
// the renderer. The application cannot recover from it.
type InfrastructureError struct {
	Op  string // e.g. "init", "load_font"
	Err error
}

func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

func (e *InfrastructureError) Error() string {
	if e.Err == nil {
		return "ui: " + e.Op
	}
	return fmt.Sprintf("ui: %s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsQuit reports whether err means the window was closed.
func IsQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
