package coords

import (
	"math"
	"testing"

	"github.com/san-kum/lifesim/internal/geometry"
)

func TestMapUnscaled(t *testing.T) {
	g := geometry.Geometry{Width: 10, Height: 8, CellSize: 5}
	backing := BackingFor(g)
	rect := Rect{Left: 0, Top: 0, Width: backing.W, Height: backing.H}

	tests := []struct {
		p    Point
		want Cell
	}{
		{Point{0, 0}, Cell{0, 0}},
		{Point{5.9, 5.9}, Cell{0, 0}},
		{Point{6, 0}, Cell{0, 1}},
		{Point{0, 12}, Cell{2, 0}},
		{Point{59, 47}, Cell{7, 9}},
		{Point{60, 48}, Cell{7, 9}},
	}

	for _, tt := range tests {
		if got := Map(tt.p, rect, backing, g); got != tt.want {
			t.Errorf("point %v: expected %v, got %v", tt.p, tt.want, got)
		}
	}
}

func TestMapScaled(t *testing.T) {
	g := geometry.Geometry{Width: 64, Height: 64, CellSize: 5}
	backing := BackingFor(g)
	// Surface displayed at half its backing size and offset on the page.
	rect := Rect{Left: 100, Top: 50, Width: backing.W / 2, Height: backing.H / 2}

	got := Map(Point{X: 100 + 3.5, Y: 50 + 9.5}, rect, backing, g)
	// left = 7, top = 19 in backing pixels; pitch 6.
	if got != (Cell{Row: 3, Col: 1}) {
		t.Errorf("expected row 3 col 1, got %v", got)
	}
}

func TestMapClampsOutside(t *testing.T) {
	g := geometry.Geometry{Width: 20, Height: 10, CellSize: 2}
	backing := BackingFor(g)
	rect := Rect{Left: 10, Top: 10, Width: backing.W, Height: backing.H}

	tests := []struct {
		p    Point
		want Cell
	}{
		{Point{-100, -100}, Cell{0, 0}},
		{Point{1e9, 1e9}, Cell{9, 19}},
		{Point{math.NaN(), 12}, Cell{0, 0}},
	}
	for _, tt := range tests {
		if got := Map(tt.p, rect, backing, g); got != tt.want {
			t.Errorf("point %v: expected %v, got %v", tt.p, tt.want, got)
		}
	}
}

func TestMapDegenerateRect(t *testing.T) {
	g := geometry.Default()
	got := Map(Point{3, 3}, Rect{}, BackingFor(g), g)
	if got.Row < 0 || got.Row >= g.Height || got.Col < 0 || got.Col >= g.Width {
		t.Errorf("expected in-range cell, got %v", got)
	}
}

func TestMapAlwaysInRange(t *testing.T) {
	geoms := []geometry.Geometry{
		{Width: 1, Height: 1, CellSize: 1},
		{Width: 64, Height: 32, CellSize: 5},
		{Width: 768, Height: 768, CellSize: 4},
		{Width: 7, Height: 300, CellSize: 13},
	}
	rects := []Rect{
		{Left: 0, Top: 0, Width: 80, Height: 24},
		{Left: 3, Top: 2, Width: 200, Height: 60},
		{Left: 0.5, Top: 0.25, Width: 1920, Height: 1080},
	}

	for _, g := range geoms {
		backing := BackingFor(g)
		for _, r := range rects {
			for x := r.Left; x < r.Right(); x += r.Width / 37 {
				for y := r.Top; y < r.Bottom(); y += r.Height / 23 {
					c := Map(Point{x, y}, r, backing, g)
					if c.Row < 0 || c.Row >= g.Height || c.Col < 0 || c.Col >= g.Width {
						t.Fatalf("geometry %v rect %v point (%v,%v): out of range %v", g, r, x, y, c)
					}
				}
			}
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Left: 2, Top: 3, Width: 10, Height: 5}
	if !r.Contains(Point{2, 3}) {
		t.Error("expected top-left corner inside")
	}
	if r.Contains(Point{12, 3}) || r.Contains(Point{2, 8}) {
		t.Error("expected right and bottom edges outside")
	}
}
