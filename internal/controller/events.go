package controller

import (
	"context"
	"time"

	"github.com/san-kum/lifesim/internal/coords"
	"github.com/san-kum/lifesim/internal/geometry"
)

// Event is a control-surface input.
type Event interface {
	isEvent()
}

type (
	PlayPause    struct{}
	Step         struct{}
	ClearAll     struct{}
	SetSpeed     struct{ Value float64 }
	SetDensity   struct{ Percent float64 }
	Randomize    struct{ Percent float64 }
	Resize       struct{ Request geometry.Request }
	SetInsertion struct{ Insertion Insertion }
)

// Click is a pointer press on the rendering surface.
type Click struct {
	Point   coords.Point
	Rect    coords.Rect
	Backing coords.Size
}

func (PlayPause) isEvent()    {}
func (Step) isEvent()         {}
func (ClearAll) isEvent()     {}
func (SetSpeed) isEvent()     {}
func (SetDensity) isEvent()   {}
func (Randomize) isEvent()    {}
func (Resize) isEvent()       {}
func (SetInsertion) isEvent() {}
func (Click) isEvent()        {}

// Apply dispatches ev to the matching handler.
func (c *Controller) Apply(ev Event) {
	switch ev := ev.(type) {
	case PlayPause:
		c.TogglePlay()
	case Step:
		c.Step()
	case ClearAll:
		c.ClearAll()
	case SetSpeed:
		c.SetSpeed(ev.Value)
	case SetDensity:
		c.SetDensity(ev.Percent)
	case Randomize:
		c.Randomize(ev.Percent)
	case Resize:
		c.Resize(ev.Request)
	case SetInsertion:
		c.SetInsertion(ev.Insertion)
	case Click:
		c.Click(ev.Point, ev.Rect, ev.Backing)
	}
}

// Inbox has one channel per input source. A nil channel is never read.
type Inbox struct {
	Frames  <-chan time.Time
	Pointer <-chan Click
	Control <-chan Event
}

// Run is the headless event loop. Each inbox is drained in arrival order on
// the calling goroutine; frames while paused are dropped. Run returns when
// ctx is done or every inbox has been closed.
func (c *Controller) Run(ctx context.Context, in Inbox) error {
	frames, pointer, control := in.Frames, in.Pointer, in.Control
	for frames != nil || pointer != nil || control != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			c.Frame(now, c.state.Epoch)
		case ev, ok := <-pointer:
			if !ok {
				pointer = nil
				continue
			}
			c.Apply(ev)
		case ev, ok := <-control:
			if !ok {
				control = nil
				continue
			}
			c.Apply(ev)
		}
	}
	return nil
}
