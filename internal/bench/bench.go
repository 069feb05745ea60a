// Package bench drives controllers headless for a fixed number of frames and
// collects their telemetry.
package bench

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/controller"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/render"
	"github.com/san-kum/lifesim/internal/storage"
)

var ErrNoFrames = errors.New("bench: frame count must be positive")

type Options struct {
	Config  *config.Config
	Factory engine.Factory
	Frames  int

	// Paced spaces frames at Config.TPS. Unpaced runs feed frames as fast
	// as the controller drains them.
	Paced bool

	Logger    *log.Logger
	Observers []controller.Observer
}

type Result struct {
	Seed       int64
	Frames     []storage.Frame
	State      controller.State
	Samples    []float64
	Population int
	Elapsed    time.Duration
}

// Metadata describes the result for the session store.
func (r *Result) Metadata(engineName string) storage.SessionMetadata {
	return storage.SessionMetadata{
		Engine:      engineName,
		Seed:        r.Seed,
		Geometry:    r.State.Geometry,
		Speed:       r.State.SpeedControl,
		Density:     r.State.Density,
		Generations: r.State.Generation,
		Population:  r.Population,
		Elapsed:     r.Elapsed.Seconds(),
		Telemetry:   r.State.Telemetry,
	}
}

// Run randomizes a fresh grid, starts the controller and feeds it Frames
// frame callbacks through its event loop. On cancellation the partial result
// is returned together with the context error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Frames < 1 {
		return nil, ErrNoFrames
	}
	cfg := opts.Config
	co := cfg.ControllerOptions()
	co.Logger = opts.Logger
	co.AutoStart = false

	surface := &render.Headless{}
	ctl := controller.New(co, opts.Factory, surface)
	ctl.Randomize(cfg.Density)

	rec := &storage.Recorder{}
	ctl.AddObserver(rec)
	for _, o := range opts.Observers {
		ctl.AddObserver(o)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ticks := make(chan time.Time)
	go feed(ctx, ticks, opts.Frames, paceFor(opts.Paced, cfg.TPS))

	start := time.Now()
	ctl.Play()
	err := ctl.Run(ctx, controller.Inbox{Frames: ticks})
	if err == nil {
		// the feeder stops early on cancellation and closes its channel
		err = ctx.Err()
	}

	return &Result{
		Seed:       cfg.Seed,
		Frames:     rec.Frames,
		State:      ctl.Snapshot(),
		Samples:    ctl.Samples(),
		Population: surface.Population,
		Elapsed:    time.Since(start),
	}, err
}

func paceFor(paced bool, tps int) time.Duration {
	if !paced || tps < 1 {
		return 0
	}
	return time.Second / time.Duration(tps)
}

func feed(ctx context.Context, out chan<- time.Time, n int, interval time.Duration) {
	defer close(out)
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for i := 0; i < n; i++ {
		now := time.Now()
		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case now = <-tick:
			}
		}
		select {
		case out <- now:
		case <-ctx.Done():
			return
		}
	}
}

// Ensemble runs independent sessions concurrently, one per seed starting at
// Config.Seed. Each session owns its controller; observers are not shared.
func Ensemble(ctx context.Context, opts Options, runs int) ([]*Result, error) {
	results := make([]*Result, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := *opts.Config
			cfg.Seed = opts.Config.Seed + int64(idx)
			o := opts
			o.Config = &cfg
			o.Observers = nil

			results[idx], errs[idx] = Run(ctx, o)
		}(i)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
