// Package controller wires pointer and control input to an automaton engine
// and drives it from a per-frame scheduling callback.
//
// All methods are meant to be called from a single goroutine, either the
// Bubble Tea update loop or Run. Nothing here locks.
package controller

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/san-kum/lifesim/internal/coords"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
	"github.com/san-kum/lifesim/internal/rate"
	"github.com/san-kum/lifesim/internal/render"
	"github.com/san-kum/lifesim/internal/telemetry"
)

type RunState int

const (
	Paused RunState = iota
	Running
)

func (r RunState) String() string {
	if r == Running {
		return "running"
	}
	return "paused"
}

type InsertMode int

const (
	Toggle InsertMode = iota
	Seed
)

func (m InsertMode) String() string {
	if m == Seed {
		return "seed"
	}
	return "toggle"
}

// Insertion says what a pointer click does.
type Insertion struct {
	Mode    InsertMode
	Pattern string
	engine.Transform
}

type Options struct {
	Geometry  geometry.Geometry
	Speed     float64
	Density   float64
	AutoStart bool
	Window    int
	Insertion Insertion
	Seed      int64

	Logger *log.Logger
	Now    func() time.Time
}

// State is the controller's complete mutable state.
type State struct {
	Run          RunState
	Epoch        uint64
	Geometry     geometry.Geometry
	SpeedControl float64
	Speed        rate.State
	Density      float64
	Insertion    Insertion
	Generation   uint64
	Telemetry    telemetry.Stats
}

type FrameResult struct {
	Ticks      int
	Generation uint64
	Stats      telemetry.Stats
	Dropped    bool
}

// Observer is notified after every frame that ran.
type Observer interface {
	OnFrame(r FrameResult)
}

type Controller struct {
	factory   engine.Factory
	engine    engine.Engine
	surface   render.Surface
	telemetry *telemetry.Estimator
	observers []Observer

	state State
	seed  int64
	now   func() time.Time
	log   *log.Logger
}

// New builds the first engine, renders it once and applies the initial run
// state. An out-of-bounds geometry is normalised against the default.
func New(opts Options, factory engine.Factory, surface render.Surface) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	g := opts.Geometry
	if !g.Valid() {
		g, _ = geometry.Validate(geometry.Request{
			Width:    float64(g.Width),
			Height:   float64(g.Height),
			CellSize: float64(g.CellSize),
		}, geometry.Default())
	}

	c := &Controller{
		factory:   factory,
		surface:   surface,
		telemetry: telemetry.New(opts.Window, opts.Now()),
		seed:      opts.Seed,
		now:       opts.Now,
		log:       opts.Logger,
	}
	c.state = State{
		Run:          Paused,
		Geometry:     g,
		SpeedControl: clampControl(opts.Speed),
		Density:      clampPercent(opts.Density, 50),
		Insertion:    opts.Insertion,
	}
	c.state.Speed = rate.FromControl(c.state.SpeedControl, rate.NormalState())
	c.engine = factory(g, c.seed)

	c.render()
	if opts.AutoStart {
		c.Play()
	}
	return c
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

func (c *Controller) Engine() engine.Engine { return c.engine }

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	s := c.state
	s.Telemetry = c.telemetry.Stats()
	return s
}

func (c *Controller) Samples() []float64 { return c.telemetry.Samples() }

func (c *Controller) Running() bool { return c.state.Run == Running }

// Play starts scheduling and returns the epoch frames must carry. Starting
// an already running controller keeps its epoch.
func (c *Controller) Play() uint64 {
	if c.state.Run == Running {
		return c.state.Epoch
	}
	c.state.Run = Running
	c.state.Epoch++
	c.telemetry.Reset(c.now())
	c.log.Printf("running epoch=%d speed=%s", c.state.Epoch, c.state.Speed)
	return c.state.Epoch
}

// Pause stops scheduling. Any frame callback already issued for the current
// epoch is dropped when it arrives.
func (c *Controller) Pause() {
	if c.state.Run == Paused {
		return
	}
	c.state.Run = Paused
	c.log.Printf("paused generation=%d", c.state.Generation)
}

func (c *Controller) TogglePlay() {
	if c.state.Run == Running {
		c.Pause()
		return
	}
	c.Play()
}

func (c *Controller) Epoch() uint64 { return c.state.Epoch }

// Frame is the per-frame scheduling callback. It runs the number of ticks the
// rate scheduler asks for and renders. Frames for another epoch, or arriving
// while paused, are dropped without touching any state.
func (c *Controller) Frame(now time.Time, epoch uint64) FrameResult {
	if c.state.Run != Running || epoch != c.state.Epoch {
		return FrameResult{Dropped: true, Generation: c.state.Generation}
	}

	stats := c.telemetry.Record(now)
	ticks, next := rate.Decide(c.state.Speed)
	c.state.Speed = next
	for i := 0; i < ticks; i++ {
		c.engine.Tick()
	}
	c.state.Generation += uint64(ticks)
	c.render()

	r := FrameResult{Ticks: ticks, Generation: c.state.Generation, Stats: stats}
	for _, o := range c.observers {
		o.OnFrame(r)
	}
	return r
}

// Step runs exactly one tick and renders, whatever the run state.
func (c *Controller) Step() {
	c.engine.Tick()
	c.state.Generation++
	c.render()
}

// Click maps a pointer position to a cell and toggles it or seeds the
// configured pattern there.
func (c *Controller) Click(p coords.Point, rect coords.Rect, backing coords.Size) coords.Cell {
	cell := coords.Map(p, rect, backing, c.state.Geometry)
	ins := c.state.Insertion
	if ins.Mode == Seed {
		c.engine.Seed(cell.Row, cell.Col, ins.Pattern, ins.Transform)
	} else {
		c.engine.Toggle(cell.Row, cell.Col)
	}
	c.render()
	return cell
}

// Resize validates req and, when accepted, replaces the engine with a fresh
// one of the new geometry. A rejected request changes nothing.
func (c *Controller) Resize(req geometry.Request) (geometry.Geometry, bool) {
	next, ok := geometry.Validate(req, c.state.Geometry)
	if !ok {
		c.log.Printf("resize rejected: %+v exceeds area budget, keeping %s", req, c.state.Geometry)
		return c.state.Geometry, false
	}
	c.engine = c.factory(next, c.seed)
	c.state.Geometry = next
	c.state.Generation = 0
	c.log.Printf("resized to %s", next)
	c.render()
	return next, true
}

// Randomize repopulates the grid. percent is a 0..100 control value; NaN
// keeps the current density.
func (c *Controller) Randomize(percent float64) {
	c.SetDensity(percent)
	c.engine.Randomize(c.state.Density / 100)
	c.render()
}

func (c *Controller) ClearAll() {
	c.engine.Clear()
	c.render()
}

func (c *Controller) SetDensity(percent float64) {
	c.state.Density = clampPercent(percent, c.state.Density)
}

func (c *Controller) SetSpeed(v float64) {
	c.state.SpeedControl = clampControl(v)
	c.state.Speed = rate.FromControl(c.state.SpeedControl, c.state.Speed)
}

func (c *Controller) SetInsertion(ins Insertion) {
	c.state.Insertion = ins
}

func (c *Controller) render() {
	if c.surface != nil {
		c.surface.Render(c.engine)
	}
}

func clampControl(v float64) float64 {
	if math.IsNaN(v) {
		return rate.ControlNormal
	}
	return math.Max(rate.ControlMin, math.Min(rate.ControlMax, v))
}

func clampPercent(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Max(0, math.Min(100, v))
}
