//go:build !raylib

package gui

import (
	"log"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/engine"
)

// Available reports whether the raylib window loop is compiled in.
func Available() bool { return false }

// Run always fails in builds without the raylib tag.
func Run(*config.Config, engine.Factory, *log.Logger) error {
	return unavailable("built without the raylib tag")
}
