package script

import (
	"errors"
	"fmt"
)

// Errors for script execution.
var (
	// ErrScript marks every failure raised while running a scene script.
	ErrScript = errors.New("scene script failed")

	// ErrStateClosed is returned when running a closed engine.
	ErrStateClosed = errors.New("lua state is closed")
)

// Error reports a script failure. When the script was stopped by a
// rejected node placement, Placement holds the scene error.
type Error struct {
	Source    string
	Err       error
	Placement error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

// Unwrap exposes ErrScript, the Lua error and any placement error.
func (e *Error) Unwrap() []error {
	errs := []error{ErrScript, e.Err}
	if e.Placement != nil {
		errs = append(errs, e.Placement)
	}
	return errs
}
