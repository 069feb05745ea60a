// Package life is the reference engine: Conway's rule on a toroidal grid.
package life

import (
	"math/rand/v2"

	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
)

const Name = "life"

type Universe struct {
	w, h, cellSize int
	cur            []engine.Cell
	nxt            []engine.Cell
	rng            *rand.Rand
}

// New returns an empty universe sized by g.
func New(g geometry.Geometry, seed int64) *Universe {
	w, h := max(g.Width, 1), max(g.Height, 1)
	return &Universe{
		w:        w,
		h:        h,
		cellSize: max(g.CellSize, 1),
		cur:      make([]engine.Cell, w*h),
		nxt:      make([]engine.Cell, w*h),
		rng:      rand.New(rand.NewPCG(uint64(seed), 0)),
	}
}

func (u *Universe) Width() int    { return u.w }
func (u *Universe) Height() int   { return u.h }
func (u *Universe) CellSize() int { return u.cellSize }

func (u *Universe) Cells() []engine.Cell {
	out := make([]engine.Cell, len(u.cur))
	copy(out, u.cur)
	return out
}

func (u *Universe) Patterns() []string { return PatternNames() }

func (u *Universe) index(row, col int) int {
	row = (row%u.h + u.h) % u.h
	col = (col%u.w + u.w) % u.w
	return row*u.w + col
}

// Tick advances the universe by one generation.
func (u *Universe) Tick() {
	w, h := u.w, u.h
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					n += int(u.cur[u.index(row+dr, col+dc)])
				}
			}
			idx := row*w + col
			alive := u.cur[idx] == engine.Alive
			u.nxt[idx] = engine.Dead
			if (alive && (n == 2 || n == 3)) || (!alive && n == 3) {
				u.nxt[idx] = engine.Alive
			}
		}
	}
	u.cur, u.nxt = u.nxt, u.cur
}

func (u *Universe) Toggle(row, col int) {
	idx := u.index(row, col)
	u.cur[idx] ^= engine.Alive
}

// Seed stamps a pattern with its top-left corner at (row, col). The pattern's
// bounding box is cleared first. Flips mirror the pattern inside the box and
// Invert swaps live and dead cells inside it.
func (u *Universe) Seed(row, col int, name string, t engine.Transform) {
	p := Lookup(name)

	box := make([]engine.Cell, p.Rows*p.Cols)
	for _, rc := range p.Cells {
		r, c := rc[0], rc[1]
		if t.VFlip {
			r = p.Rows - 1 - r
		}
		if t.HFlip {
			c = p.Cols - 1 - c
		}
		box[r*p.Cols+c] = engine.Alive
	}

	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			v := box[r*p.Cols+c]
			if t.Invert {
				v ^= engine.Alive
			}
			u.cur[u.index(row+r, col+c)] = v
		}
	}
}

func (u *Universe) Clear() {
	for i := range u.cur {
		u.cur[i] = engine.Dead
	}
}

// Randomize makes each cell alive with probability density.
func (u *Universe) Randomize(density float64) {
	for i := range u.cur {
		u.cur[i] = engine.Dead
		if u.rng.Float64() < density {
			u.cur[i] = engine.Alive
		}
	}
}

func init() {
	engine.Register(Name, func(g geometry.Geometry, seed int64) engine.Engine {
		return New(g, seed)
	})
}
