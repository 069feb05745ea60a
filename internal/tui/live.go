package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/lifesim/internal/controller"
)

// LiveReporter prints a one-line progress readout for headless runs. It is a
// controller.Observer and throttles itself to rate lines per second.
type LiveReporter struct {
	out       io.Writer
	rate      int
	lastFrame time.Time
	now       func() time.Time
	lines     int
}

func NewLiveReporter(out io.Writer, rate int) *LiveReporter {
	return &LiveReporter{out: out, rate: max(rate, 1), now: time.Now}
}

func (r *LiveReporter) OnFrame(f controller.FrameResult) {
	now := r.now()
	if !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < time.Second/time.Duration(r.rate) {
		return
	}
	r.lastFrame = now
	r.lines++
	fmt.Fprintf(r.out, "\r  gen %-8d fps %6.1f  avg %6.1f  min %6.1f  max %6.1f",
		f.Generation, f.Stats.Latest, f.Stats.Mean, f.Stats.Min, f.Stats.Max)
}

// Done ends the progress line.
func (r *LiveReporter) Done() {
	if r.lines > 0 {
		fmt.Fprintln(r.out)
	}
}
