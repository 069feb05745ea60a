// Package telemetry estimates frame rate over a bounded window of recent frames.
package telemetry

import (
	"math"
	"time"
)

const DefaultWindow = 100

// Stats summarises the samples currently held by an Estimator.
type Stats struct {
	Latest  float64 `json:"latest"`
	Mean    float64 `json:"mean"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Samples int     `json:"samples"`
}

type Estimator struct {
	capacity int
	samples  []float64
	last     time.Time
	stats    Stats
}

// New returns an Estimator holding at most capacity samples. start seeds the
// previous-frame timestamp, so the first recorded rate is measured from it.
func New(capacity int, start time.Time) *Estimator {
	if capacity < 1 {
		capacity = DefaultWindow
	}
	return &Estimator{
		capacity: capacity,
		samples:  make([]float64, 0, capacity),
		last:     start,
	}
}

func (e *Estimator) Capacity() int { return e.capacity }

// Record registers a frame at now and returns the statistics of the window.
// A frame that does not advance the clock moves the timestamp but adds no
// sample.
func (e *Estimator) Record(now time.Time) Stats {
	delta := now.Sub(e.last)
	e.last = now
	if delta <= 0 {
		return e.stats
	}

	fps := 1000 / (float64(delta) / float64(time.Millisecond))
	e.samples = append(e.samples, fps)
	if len(e.samples) > e.capacity {
		copy(e.samples, e.samples[1:])
		e.samples = e.samples[:e.capacity]
	}

	e.stats = summarize(e.samples)
	e.stats.Latest = fps
	return e.stats
}

func (e *Estimator) Stats() Stats { return e.stats }

// Samples returns a copy of the window, oldest first.
func (e *Estimator) Samples() []float64 {
	out := make([]float64, len(e.samples))
	copy(out, e.samples)
	return out
}

// Reset empties the window and restarts timing from start.
func (e *Estimator) Reset(start time.Time) {
	e.samples = e.samples[:0]
	e.last = start
	e.stats = Stats{}
}

func summarize(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, v := range samples {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	mean := sum / float64(len(samples))
	// Accumulated rounding can push the mean just outside the extremes.
	mean = math.Max(lo, math.Min(hi, mean))
	return Stats{Mean: mean, Min: lo, Max: hi, Samples: len(samples)}
}
