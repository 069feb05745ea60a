package controller

import (
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
)

type seedCall struct {
	row, col int
	pattern  string
	t        engine.Transform
}

type fakeEngine struct {
	g         geometry.Geometry
	ticks     int
	toggles   [][2]int
	seeds     []seedCall
	clears    int
	densities []float64
}

func (f *fakeEngine) Width() int           { return f.g.Width }
func (f *fakeEngine) Height() int          { return f.g.Height }
func (f *fakeEngine) CellSize() int        { return f.g.CellSize }
func (f *fakeEngine) Tick()                { f.ticks++ }
func (f *fakeEngine) Cells() []engine.Cell { return make([]engine.Cell, f.g.Width*f.g.Height) }
func (f *fakeEngine) Toggle(row, col int)  { f.toggles = append(f.toggles, [2]int{row, col}) }
func (f *fakeEngine) Clear()               { f.clears++ }
func (f *fakeEngine) Randomize(d float64)  { f.densities = append(f.densities, d) }

func (f *fakeEngine) Seed(row, col int, pattern string, t engine.Transform) {
	f.seeds = append(f.seeds, seedCall{row, col, pattern, t})
}

// fakeFactory records every engine it builds.
type fakeFactory struct {
	built []*fakeEngine
}

func (ff *fakeFactory) New(g geometry.Geometry, seed int64) engine.Engine {
	e := &fakeEngine{g: g}
	ff.built = append(ff.built, e)
	return e
}

func (ff *fakeFactory) last() *fakeEngine { return ff.built[len(ff.built)-1] }

type countingSurface struct {
	renders int
}

func (s *countingSurface) Render(engine.Engine) { s.renders++ }

type frameLog struct {
	frames []FrameResult
}

func (l *frameLog) OnFrame(r FrameResult) { l.frames = append(l.frames, r) }
