// Package gui is the raylib front end. The window loop needs the raylib
// build tag; layout and bindings here are backend-free.
package gui

import (
	"fmt"

	"github.com/san-kum/lifesim/internal/controller"
	"github.com/san-kum/lifesim/internal/coords"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
	"github.com/san-kum/lifesim/internal/rate"
	"github.com/san-kum/lifesim/internal/render"
)

// ErrBackendUnavailable is returned, wrapped in a *render.BackendError, when
// the window cannot be opened.
var ErrBackendUnavailable = render.ErrBackendUnavailable

const hudHeight = 64

func unavailable(reason string) error {
	return &render.BackendError{Backend: "raylib", Wrapped: fmt.Errorf("%w: %s", ErrBackendUnavailable, reason)}
}

// windowSize is the logical window size for g: the grid surface plus the HUD
// strip underneath.
func windowSize(g geometry.Geometry) (int, int) {
	w, h := g.SurfaceSize()
	return w, h + hudHeight
}

// gridRect is the logical extent of the grid inside a screen of the given
// logical size. On HiDPI displays the backing surface is larger than this
// rect and the coordinate mapper absorbs the difference.
func gridRect(screenW, screenH int) coords.Rect {
	return coords.Rect{Width: float64(screenW), Height: float64(max(screenH-hudHeight, 1))}
}

// cellBox returns the logical rectangle of a cell, in the same gutter layout
// the mapper assumes.
func cellBox(row, col int, g geometry.Geometry, rect coords.Rect) (x, y, w, h float32) {
	backing := coords.BackingFor(g)
	sx := rect.Width / backing.W
	sy := rect.Height / backing.H
	pitch := float64(g.CellSize + 1)
	return float32(rect.Left + (float64(col)*pitch+1)*sx),
		float32(rect.Top + (float64(row)*pitch+1)*sy),
		float32(float64(g.CellSize) * sx),
		float32(float64(g.CellSize) * sy)
}

// raster keeps the latest cell snapshot for the draw pass.
type raster struct {
	geom    geometry.Geometry
	cells   []engine.Cell
	renders int
}

func (r *raster) Render(e engine.Engine) {
	r.renders++
	r.geom = geometry.Geometry{Width: e.Width(), Height: e.Height(), CellSize: e.CellSize()}
	r.cells = e.Cells()
}

type action int

const (
	actNone action = iota
	actQuit
	actPlayPause
	actStep
	actFaster
	actSlower
	actNormal
	actRandomize
	actDenser
	actSparser
	actClear
	actInsertion
	actHFlip
	actVFlip
	actInvert
	actGeometry
)

// apply runs a key action against the controller. Quit and the geometry
// form are handled by the window loop.
func apply(ctl *controller.Controller, a action, patterns []string) {
	s := ctl.Snapshot()
	ins := s.Insertion
	switch a {
	case actPlayPause:
		ctl.TogglePlay()
	case actStep:
		ctl.Step()
	case actFaster:
		ctl.SetSpeed(s.SpeedControl + 5)
	case actSlower:
		ctl.SetSpeed(s.SpeedControl - 5)
	case actNormal:
		ctl.SetSpeed(rate.ControlNormal)
	case actRandomize:
		ctl.Randomize(s.Density)
	case actDenser:
		ctl.SetDensity(s.Density + 5)
	case actSparser:
		ctl.SetDensity(s.Density - 5)
	case actClear:
		ctl.ClearAll()
	case actInsertion:
		ctl.SetInsertion(nextInsertion(ins, patterns))
	case actHFlip:
		ins.HFlip = !ins.HFlip
		ctl.SetInsertion(ins)
	case actVFlip:
		ins.VFlip = !ins.VFlip
		ctl.SetInsertion(ins)
	case actInvert:
		ins.Invert = !ins.Invert
		ctl.SetInsertion(ins)
	}
}

func nextInsertion(cur controller.Insertion, patterns []string) controller.Insertion {
	if cur.Mode == controller.Toggle && len(patterns) > 0 {
		cur.Mode = controller.Seed
		cur.Pattern = patterns[0]
		return cur
	}
	for i, name := range patterns {
		if name == cur.Pattern && i+1 < len(patterns) {
			cur.Pattern = patterns[i+1]
			return cur
		}
	}
	cur.Mode = controller.Toggle
	return cur
}

func hudLines(s controller.State) (string, string) {
	insert := s.Insertion.Mode.String()
	if s.Insertion.Mode == controller.Seed {
		insert += " " + s.Insertion.Pattern
	}
	t := s.Telemetry
	return fmt.Sprintf("%s  speed %.0f (%s)  gen %d  %s  density %.0f%%  insert %s",
			s.Run, s.SpeedControl, s.Speed, s.Generation, s.Geometry, s.Density, insert),
		fmt.Sprintf("fps %.1f  avg %.1f  min %.1f  max %.1f", t.Latest, t.Mean, t.Min, t.Max)
}
