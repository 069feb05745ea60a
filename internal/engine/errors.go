package engine

import "errors"

var (
	// ErrUnknownEngine indicates no factory is registered under a name.
	ErrUnknownEngine = errors.New("engine: unknown engine")
)
