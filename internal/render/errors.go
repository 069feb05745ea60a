package render

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTerminal indicates the output stream is not an interactive terminal.
	ErrNoTerminal = errors.New("render: output is not a terminal")

	// ErrBackendUnavailable indicates the rendering backend is not compiled in
	// or could not open its surface.
	ErrBackendUnavailable = errors.New("render: backend unavailable")
)

// BackendError reports a rendering backend that failed to initialise. It is
// fatal: callers show it once and stop setting up.
type BackendError struct {
	Backend string
	Wrapped error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Wrapped)
}

func (e *BackendError) Unwrap() error {
	return e.Wrapped
}
