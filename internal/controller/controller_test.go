package controller

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/coords"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
	"github.com/san-kum/lifesim/internal/rate"
)

var _ = Describe("Controller", func() {
	var (
		factory *fakeFactory
		surface *countingSurface
		clock   time.Time
		opts    Options
	)

	now := func() time.Time { return clock }

	BeforeEach(func() {
		factory = &fakeFactory{}
		surface = &countingSurface{}
		clock = time.Unix(1000, 0)
		opts = Options{
			Geometry: geometry.Geometry{Width: 20, Height: 10, CellSize: 5},
			Speed:    rate.ControlNormal,
			Density:  50,
			Window:   30,
			Now:      now,
		}
	})

	newController := func() *Controller {
		return New(opts, factory.New, surface)
	}

	Describe("startup", func() {
		It("renders once and waits when auto-start is off", func() {
			c := newController()
			Expect(c.Running()).To(BeFalse())
			Expect(surface.renders).To(Equal(1))
			Expect(factory.built).To(HaveLen(1))
			Expect(factory.last().g).To(Equal(opts.Geometry))
		})

		It("starts running when auto-start is on", func() {
			opts.AutoStart = true
			c := newController()
			Expect(c.Running()).To(BeTrue())
			Expect(c.Epoch()).To(Equal(uint64(1)))
		})

		It("normalises an out-of-budget geometry", func() {
			opts.Geometry = geometry.Geometry{Width: 2000, Height: 2000, CellSize: 200}
			c := newController()
			Expect(c.Snapshot().Geometry.Valid()).To(BeTrue())
		})
	})

	Describe("frames", func() {
		It("drops frames while paused", func() {
			c := newController()
			r := c.Frame(clock.Add(time.Second), c.Epoch())
			Expect(r.Dropped).To(BeTrue())
			Expect(factory.last().ticks).To(Equal(0))
			Expect(surface.renders).To(Equal(1))
		})

		It("runs one tick per frame at normal speed and renders each frame", func() {
			c := newController()
			epoch := c.Play()
			for i := 1; i <= 5; i++ {
				clock = clock.Add(16 * time.Millisecond)
				r := c.Frame(clock, epoch)
				Expect(r.Dropped).To(BeFalse())
				Expect(r.Ticks).To(Equal(1))
			}
			Expect(factory.last().ticks).To(Equal(5))
			Expect(c.Snapshot().Generation).To(Equal(uint64(5)))
			Expect(surface.renders).To(Equal(6))
		})

		It("runs ten ticks per frame at full speed", func() {
			c := newController()
			c.SetSpeed(100)
			epoch := c.Play()
			r := c.Frame(clock.Add(time.Millisecond), epoch)
			Expect(r.Ticks).To(Equal(10))
			Expect(factory.last().ticks).To(Equal(10))
		})

		It("runs one tick every ten frames at the slowest speed", func() {
			c := newController()
			c.SetSpeed(0)
			epoch := c.Play()
			for i := 0; i < 30; i++ {
				clock = clock.Add(time.Millisecond)
				c.Frame(clock, epoch)
			}
			Expect(factory.last().ticks).To(Equal(3))
			Expect(surface.renders).To(Equal(31))
		})

		It("ignores a frame from a cancelled epoch after pause and play", func() {
			c := newController()
			old := c.Play()
			c.Pause()
			current := c.Play()
			Expect(current).NotTo(Equal(old))

			Expect(c.Frame(clock.Add(time.Millisecond), old).Dropped).To(BeTrue())
			Expect(c.Frame(clock.Add(2*time.Millisecond), current).Dropped).To(BeFalse())
			Expect(factory.last().ticks).To(Equal(1))
		})

		It("feeds telemetry and observers", func() {
			log := &frameLog{}
			c := newController()
			c.AddObserver(log)
			epoch := c.Play()
			for i := 0; i < 3; i++ {
				clock = clock.Add(20 * time.Millisecond)
				c.Frame(clock, epoch)
			}
			Expect(log.frames).To(HaveLen(3))
			stats := c.Snapshot().Telemetry
			Expect(stats.Samples).To(Equal(3))
			Expect(stats.Latest).To(BeNumerically("~", 50, 1e-9))
			Expect(c.Samples()).To(HaveLen(3))
		})
	})

	Describe("pointer clicks", func() {
		var (
			rect    coords.Rect
			backing coords.Size
		)

		BeforeEach(func() {
			backing = coords.BackingFor(opts.Geometry)
			rect = coords.Rect{Left: 0, Top: 0, Width: backing.W, Height: backing.H}
		})

		It("toggles the mapped cell and renders", func() {
			c := newController()
			cell := c.Click(coords.Point{X: 13, Y: 7}, rect, backing)
			Expect(cell).To(Equal(coords.Cell{Row: 1, Col: 2}))
			Expect(factory.last().toggles).To(Equal([][2]int{{1, 2}}))
			Expect(surface.renders).To(Equal(2))
		})

		It("seeds the configured pattern with its transforms", func() {
			c := newController()
			ins := Insertion{Mode: Seed, Pattern: "glider", Transform: engine.Transform{HFlip: true, Invert: true}}
			c.Apply(SetInsertion{Insertion: ins})
			c.Apply(Click{Point: coords.Point{X: 1e6, Y: 1e6}, Rect: rect, Backing: backing})

			Expect(factory.last().toggles).To(BeEmpty())
			Expect(factory.last().seeds).To(Equal([]seedCall{{
				row: 9, col: 19, pattern: "glider",
				t: engine.Transform{HFlip: true, Invert: true},
			}}))
		})

		It("does not change the run state", func() {
			c := newController()
			c.Click(coords.Point{X: 1, Y: 1}, rect, backing)
			Expect(c.Running()).To(BeFalse())
			c.Play()
			c.Click(coords.Point{X: 1, Y: 1}, rect, backing)
			Expect(c.Running()).To(BeTrue())
		})
	})

	Describe("resize", func() {
		It("replaces the engine on an accepted request", func() {
			c := newController()
			g, ok := c.Resize(geometry.Request{Width: 100, Height: 100, CellSize: 5})
			Expect(ok).To(BeTrue())
			Expect(g).To(Equal(geometry.Geometry{Width: 100, Height: 100, CellSize: 5}))
			Expect(factory.built).To(HaveLen(2))
			Expect(factory.last().g).To(Equal(g))
			Expect(c.Engine()).To(BeIdenticalTo(factory.last()))
			Expect(surface.renders).To(Equal(2))
		})

		It("keeps everything when the request breaks the budget", func() {
			c := newController()
			before := c.Snapshot()
			g, ok := c.Resize(geometry.Request{Width: 800, Height: 800, CellSize: 10})
			Expect(ok).To(BeFalse())
			Expect(g).To(Equal(before.Geometry))
			Expect(c.Snapshot().Geometry).To(Equal(before.Geometry))
			Expect(factory.built).To(HaveLen(1))
			Expect(surface.renders).To(Equal(1))
		})

		It("keeps current values for invalid fields", func() {
			c := newController()
			g, ok := c.Resize(geometry.Request{Width: math.NaN(), Height: 30, CellSize: -1})
			Expect(ok).To(BeTrue())
			Expect(g).To(Equal(geometry.Geometry{Width: 20, Height: 30, CellSize: 5}))
		})
	})

	Describe("population controls", func() {
		It("randomizes with the percentage divided by 100", func() {
			c := newController()
			c.Randomize(30)
			c.Randomize(250)
			c.Randomize(math.NaN())
			Expect(factory.last().densities).To(Equal([]float64{0.3, 1, 1}))
			Expect(surface.renders).To(Equal(4))
		})

		It("clears everything", func() {
			c := newController()
			c.Apply(ClearAll{})
			Expect(factory.last().clears).To(Equal(1))
			Expect(surface.renders).To(Equal(2))
		})

		It("steps once while paused", func() {
			c := newController()
			c.Apply(Step{})
			Expect(factory.last().ticks).To(Equal(1))
			Expect(c.Running()).To(BeFalse())
		})
	})

	Describe("Run", func() {
		It("drains each inbox in order and stops when they close", func() {
			c := newController()
			frames := make(chan time.Time, 4)
			control := make(chan Event, 4)

			control <- SetSpeed{Value: 100}
			control <- PlayPause{}
			close(control)
			Expect(c.Run(context.Background(), Inbox{Control: control})).To(Succeed())
			Expect(c.Running()).To(BeTrue())

			for i := 1; i <= 3; i++ {
				frames <- clock.Add(time.Duration(i) * time.Millisecond)
			}
			close(frames)
			Expect(c.Run(context.Background(), Inbox{Frames: frames})).To(Succeed())
			Expect(factory.last().ticks).To(Equal(30))
		})

		It("returns the context error on cancellation", func() {
			c := newController()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			frames := make(chan time.Time)
			Expect(c.Run(ctx, Inbox{Frames: frames})).To(MatchError(context.Canceled))
		})
	})
})
