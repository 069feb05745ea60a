package gui

import (
	"strings"
	"testing"

	"github.com/san-kum/lifesim/internal/controller"
	"github.com/san-kum/lifesim/internal/coords"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/engine/life"
	"github.com/san-kum/lifesim/internal/geometry"
)

func newTestController(t *testing.T, g geometry.Geometry) (*controller.Controller, *raster) {
	t.Helper()
	factory, err := engine.Lookup(life.Name)
	if err != nil {
		t.Fatal(err)
	}
	r := &raster{}
	return controller.New(controller.Options{Geometry: g, Speed: 50, Density: 50}, factory, r), r
}

func TestWindowSize(t *testing.T) {
	w, h := windowSize(geometry.Geometry{Width: 10, Height: 4, CellSize: 5})
	if w != 61 || h != 25+hudHeight {
		t.Errorf("expected 61x%d, got %dx%d", 25+hudHeight, w, h)
	}
}

func TestCellBoxRoundTripsThroughMapper(t *testing.T) {
	g := geometry.Geometry{Width: 12, Height: 8, CellSize: 7}
	tests := []struct {
		name  string
		scale float64
	}{
		{"1x", 1},
		{"hidpi", 0.5},
		{"stretched", 1.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := coords.BackingFor(g)
			rect := coords.Rect{Width: b.W * tt.scale, Height: b.H * tt.scale}
			for _, want := range []coords.Cell{{Row: 0, Col: 0}, {Row: 3, Col: 5}, {Row: 7, Col: 11}} {
				x, y, w, h := cellBox(want.Row, want.Col, g, rect)
				p := coords.Point{X: float64(x + w/2), Y: float64(y + h/2)}
				if got := coords.Map(p, rect, b, g); got != want {
					t.Errorf("center of %v mapped to %v", want, got)
				}
			}
		})
	}
}

func TestGridRectLeavesRoomForHUD(t *testing.T) {
	r := gridRect(200, 100+hudHeight)
	if r.Width != 200 || r.Height != 100 {
		t.Errorf("unexpected rect %+v", r)
	}
	if gridRect(10, 10).Height < 1 {
		t.Error("rect height must stay positive")
	}
}

func TestRasterTracksEngine(t *testing.T) {
	ctl, r := newTestController(t, geometry.Geometry{Width: 6, Height: 5, CellSize: 2})
	if r.renders != 1 || len(r.cells) != 30 {
		t.Fatalf("expected initial render of 30 cells, got %d renders %d cells", r.renders, len(r.cells))
	}
	ctl.Resize(geometry.Request{Width: 9, Height: 9, CellSize: 2})
	if r.geom.Width != 9 || len(r.cells) != 81 {
		t.Errorf("raster did not follow resize: %v %d", r.geom, len(r.cells))
	}
}

func TestApplyActions(t *testing.T) {
	ctl, _ := newTestController(t, geometry.Geometry{Width: 8, Height: 8, CellSize: 2})
	patterns := life.PatternNames()

	apply(ctl, actFaster, patterns)
	apply(ctl, actFaster, patterns)
	apply(ctl, actSparser, patterns)
	apply(ctl, actInsertion, patterns)
	apply(ctl, actVFlip, patterns)
	apply(ctl, actStep, patterns)

	s := ctl.Snapshot()
	if s.SpeedControl != 60 {
		t.Errorf("expected speed 60, got %v", s.SpeedControl)
	}
	if s.Density != 45 {
		t.Errorf("expected density 45, got %v", s.Density)
	}
	if s.Insertion.Mode != controller.Seed || s.Insertion.Pattern != patterns[0] || !s.Insertion.VFlip {
		t.Errorf("unexpected insertion %+v", s.Insertion)
	}
	if s.Generation != 1 {
		t.Errorf("expected one step, got %d", s.Generation)
	}

	apply(ctl, actPlayPause, patterns)
	if !ctl.Running() {
		t.Error("expected running")
	}
	apply(ctl, actNormal, patterns)
	if ctl.Snapshot().SpeedControl != 50 {
		t.Error("expected normal speed")
	}
}

func TestNextInsertionWithoutPatterns(t *testing.T) {
	got := nextInsertion(controller.Insertion{Mode: controller.Toggle}, nil)
	if got.Mode != controller.Toggle {
		t.Errorf("engine without patterns must stay in toggle, got %v", got.Mode)
	}
}

func TestHUDLines(t *testing.T) {
	ctl, _ := newTestController(t, geometry.Geometry{Width: 8, Height: 8, CellSize: 2})
	status, fps := hudLines(ctl.Snapshot())
	if !strings.HasPrefix(status, "paused") || !strings.Contains(status, "8x8@2") {
		t.Errorf("unexpected status %q", status)
	}
	if !strings.HasPrefix(fps, "fps ") {
		t.Errorf("unexpected fps line %q", fps)
	}
}
