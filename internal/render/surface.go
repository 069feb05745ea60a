// Package render draws engine state onto a surface.
package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/san-kum/lifesim/internal/coords"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
)

// Surface receives a render request after every tick batch or mutation.
type Surface interface {
	Render(e engine.Engine)
}

// CheckTerminal fails when f cannot host the terminal surface.
func CheckTerminal(f *os.File) error {
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return &BackendError{Backend: "terminal", Wrapped: ErrNoTerminal}
}

const (
	AliveGlyph = "█"
	DeadGlyph  = "·"
)

// Text renders the grid as one glyph per terminal cell. Grids larger than the
// viewport are downsampled: a glyph is alive when any cell it covers is.
type Text struct {
	left, top  int
	cols, rows int

	alive lipgloss.Style
	dead  lipgloss.Style

	lines   []string
	renders int
}

func NewText(alive, dead lipgloss.Style) *Text {
	return &Text{cols: 80, rows: 24, alive: alive, dead: dead}
}

// SetViewport sets the terminal area available to the grid.
func (t *Text) SetViewport(left, top, cols, rows int) {
	t.left, t.top = left, top
	t.cols, t.rows = max(cols, 1), max(rows, 1)
}

// Rect is the logical extent the grid occupies for g.
func (t *Text) Rect(g geometry.Geometry) coords.Rect {
	return coords.Rect{
		Left:   float64(t.left),
		Top:    float64(t.top),
		Width:  float64(min(t.cols, g.Width)),
		Height: float64(min(t.rows, g.Height)),
	}
}

func (t *Text) Render(e engine.Engine) {
	t.renders++
	g := geometry.Geometry{Width: e.Width(), Height: e.Height(), CellSize: e.CellSize()}
	cells := e.Cells()

	rect := t.Rect(g)
	rect.Left, rect.Top = 0, 0
	backing := coords.BackingFor(g)
	w, h := int(rect.Width), int(rect.Height)

	colStart := make([]int, w+1)
	for i := 0; i < w; i++ {
		colStart[i] = coords.Map(coords.Point{X: float64(i)}, rect, backing, g).Col
	}
	colStart[w] = g.Width
	rowStart := make([]int, h+1)
	for j := 0; j < h; j++ {
		rowStart[j] = coords.Map(coords.Point{Y: float64(j)}, rect, backing, g).Row
	}
	rowStart[h] = g.Height

	t.lines = t.lines[:0]
	var run strings.Builder
	for j := 0; j < h; j++ {
		var line strings.Builder
		runAlive := false
		run.Reset()
		for i := 0; i < w; i++ {
			a := anyAlive(cells, g.Width,
				rowStart[j], max(rowStart[j+1], rowStart[j]+1),
				colStart[i], max(colStart[i+1], colStart[i]+1))
			if i > 0 && a != runAlive {
				line.WriteString(t.style(runAlive).Render(run.String()))
				run.Reset()
			}
			runAlive = a
			if a {
				run.WriteString(AliveGlyph)
			} else {
				run.WriteString(DeadGlyph)
			}
		}
		line.WriteString(t.style(runAlive).Render(run.String()))
		t.lines = append(t.lines, line.String())
	}
}

func (t *Text) style(alive bool) lipgloss.Style {
	if alive {
		return t.alive
	}
	return t.dead
}

func anyAlive(cells []engine.Cell, width, r0, r1, c0, c1 int) bool {
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			idx := r*width + c
			if idx < len(cells) && cells[idx] == engine.Alive {
				return true
			}
		}
	}
	return false
}

// View returns the most recently rendered frame.
func (t *Text) View() string {
	return strings.Join(t.lines, "\n")
}

func (t *Text) Renders() int { return t.renders }

// Headless counts render requests and keeps the latest population. It backs
// the bench command and tests.
type Headless struct {
	Renders    int
	Population int
}

func (h *Headless) Render(e engine.Engine) {
	h.Renders++
	h.Population = engine.Population(e.Cells())
}
