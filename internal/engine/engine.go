// Package engine defines the contract between the interactive driver and an
// automaton implementation. The driver only ever talks to an Engine; which
// rule it runs is the implementation's business.
package engine

import (
	"fmt"
	"sort"

	"github.com/san-kum/lifesim/internal/geometry"
)

type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Transform flags applied to a seed pattern by the engine.
type Transform struct {
	HFlip  bool `yaml:"h_flip" json:"h_flip"`
	VFlip  bool `yaml:"v_flip" json:"v_flip"`
	Invert bool `yaml:"invert" json:"invert"`
}

type Engine interface {
	Width() int
	Height() int
	CellSize() int

	// Tick applies the rule once to the whole grid.
	Tick()

	// Cells returns a row-major copy of the grid owned by the caller.
	Cells() []Cell

	Toggle(row, col int)
	Seed(row, col int, pattern string, t Transform)
	Clear()
	Randomize(density float64)
}

// PatternLister is implemented by engines that publish their seed patterns.
type PatternLister interface {
	Patterns() []string
}

// Factory builds a fresh engine for g. It is used both for the first engine
// and for every resize, which always replaces the previous engine.
type Factory func(g geometry.Geometry, seed int64) Engine

var factories = map[string]Factory{}

// Register adds a factory under name. Empty names and nil factories are ignored.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	factories[name] = f
}

func Lookup(name string) (Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	return f, nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Population counts live cells.
func Population(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if c == Alive {
			n++
		}
	}
	return n
}
