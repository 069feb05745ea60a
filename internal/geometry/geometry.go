// Package geometry holds the grid dimensions and the rules for changing them.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// AreaBudget caps the backing surface pixel count for any grid.
	AreaBudget = 16_810_000

	MinDim      = 1
	MaxDim      = 768
	MinCellSize = 1
	MaxCellSize = 255

	DefaultWidth    = 64
	DefaultHeight   = 64
	DefaultCellSize = 5
)

// Geometry describes grid dimensions and the per-cell visual size in pixels.
// One pixel of grid line separates neighbouring cells.
type Geometry struct {
	Width    int `yaml:"width" json:"width"`
	Height   int `yaml:"height" json:"height"`
	CellSize int `yaml:"cell_size" json:"cell_size"`
}

func Default() Geometry {
	return Geometry{Width: DefaultWidth, Height: DefaultHeight, CellSize: DefaultCellSize}
}

// SurfaceSize returns the backing pixel size needed to draw the grid.
func (g Geometry) SurfaceSize() (int, int) {
	return (g.CellSize+1)*g.Width + 1, (g.CellSize+1)*g.Height + 1
}

// Area is the backing surface pixel count.
func (g Geometry) Area() int64 {
	w, h := g.SurfaceSize()
	return int64(w) * int64(h)
}

func (g Geometry) WithinBudget() bool {
	return g.Area() <= AreaBudget
}

// Valid reports whether every field is in bounds and the area fits the budget.
func (g Geometry) Valid() bool {
	return g.Width >= MinDim && g.Width <= MaxDim &&
		g.Height >= MinDim && g.Height <= MaxDim &&
		g.CellSize >= MinCellSize && g.CellSize <= MaxCellSize &&
		g.WithinBudget()
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d@%d", g.Width, g.Height, g.CellSize)
}

// Request is a requested geometry change. Fields that are NaN, infinite or
// not positive are treated as "keep the current value".
type Request struct {
	Width    float64
	Height   float64
	CellSize float64
}

// ParseRequest builds a Request from raw text input. Text that does not parse
// as a number becomes NaN.
func ParseRequest(width, height, cellSize string) Request {
	return Request{
		Width:    parseField(width),
		Height:   parseField(height),
		CellSize: parseField(cellSize),
	}
}

func parseField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Validate normalises req against cur. It returns the accepted geometry and
// true, or cur and false when the clamped result would break the area budget.
// Rejection is all-or-nothing: no field of a rejected request is applied.
func Validate(req Request, cur Geometry) (Geometry, bool) {
	next := Geometry{
		Width:    clamp(field(req.Width, cur.Width), MinDim, MaxDim),
		Height:   clamp(field(req.Height, cur.Height), MinDim, MaxDim),
		CellSize: clamp(field(req.CellSize, cur.CellSize), MinCellSize, MaxCellSize),
	}
	if !next.WithinBudget() {
		return cur, false
	}
	return next, true
}

func field(v float64, current int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return current
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
