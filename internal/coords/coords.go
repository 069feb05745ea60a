// Package coords maps pointer positions on a rendering surface to grid cells.
//
// Rows count top-down from the surface's top edge and positions outside the
// grid clamp to the nearest edge cell.
package coords

import (
	"math"

	"github.com/san-kum/lifesim/internal/geometry"
)

// Point is a pointer position in the surface's logical coordinate space.
type Point struct {
	X, Y float64
}

// Rect is the logical on-screen extent of the rendering surface.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Size is the backing pixel size of the surface.
type Size struct {
	W, H float64
}

// BackingFor returns the backing size a surface needs for g.
func BackingFor(g geometry.Geometry) Size {
	w, h := g.SurfaceSize()
	return Size{W: float64(w), H: float64(h)}
}

type Cell struct {
	Row, Col int
}

// Map converts p to a grid cell. The scale between the logical rect and the
// backing size is applied before dividing by the cell pitch. The result is
// always in range.
func Map(p Point, rect Rect, backing Size, g geometry.Geometry) Cell {
	scaleX := scale(backing.W, rect.Width)
	scaleY := scale(backing.H, rect.Height)

	left := (p.X - rect.Left) * scaleX
	top := (p.Y - rect.Top) * scaleY

	pitch := float64(g.CellSize + 1)
	return Cell{
		Row: index(top/pitch, g.Height),
		Col: index(left/pitch, g.Width),
	}
}

func scale(backing, logical float64) float64 {
	if logical <= 0 || math.IsNaN(logical) || math.IsNaN(backing) {
		return 1
	}
	return backing / logical
}

func index(v float64, n int) int {
	if n <= 0 {
		return 0
	}
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= float64(n) {
		return n - 1
	}
	return min(int(math.Floor(v)), n-1)
}
