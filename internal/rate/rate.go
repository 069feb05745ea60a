// Package rate decides how many engine ticks each scheduled frame runs.
//
// The speed control is a value in [0, 100]. The middle band runs one tick per
// frame, the top band runs several ticks per frame and the bottom band runs one
// tick every few frames. Tick semantics never change, only their frequency.
package rate

import (
	"fmt"
	"math"
)

const (
	ControlMin    = 0.0
	ControlMax    = 100.0
	ControlNormal = 50.0

	// SlowBelow is the highest control value that selects slow motion.
	SlowBelow = 45.0
	// FastFrom is the lowest control value that selects fast forward.
	FastFrom = 56.0
)

type Mode int

const (
	Normal Mode = iota
	FastForward
	SlowMotion
)

func (m Mode) String() string {
	switch m {
	case FastForward:
		return "fast"
	case SlowMotion:
		return "slow"
	default:
		return "normal"
	}
}

// State is the scheduler's only memory. SlowCounter is meaningful in
// SlowMotion only and stays within [1, Factor].
type State struct {
	Mode        Mode
	Factor      int
	SlowCounter int
}

func NormalState() State {
	return State{Mode: Normal, Factor: 1, SlowCounter: 1}
}

// FromControl maps a speed control value onto a scheduler state. prev is used
// to carry the slow-motion counter across factor changes.
func FromControl(v float64, prev State) State {
	if math.IsNaN(v) {
		v = ControlNormal
	}
	v = math.Max(ControlMin, math.Min(ControlMax, v))

	switch {
	case v >= FastFrom:
		return State{Mode: FastForward, Factor: FastFactor(v), SlowCounter: 1}
	case v <= SlowBelow:
		f := SlowFactor(v)
		c := 1
		if prev.Mode == SlowMotion {
			c = min(max(prev.SlowCounter, 1), f)
		}
		return State{Mode: SlowMotion, Factor: f, SlowCounter: c}
	default:
		return NormalState()
	}
}

// FastFactor is ceil((v-50)/50*10), at least 1. The expression is reduced to
// a single division so integral results stay exact.
func FastFactor(v float64) int {
	return max(1, int(math.Ceil((v-ControlNormal)/5)))
}

// SlowFactor is ceil(10 - v/50*10), at least 1.
func SlowFactor(v float64) int {
	return max(1, int(math.Ceil((ControlNormal-v)/5)))
}

// Decide returns the number of ticks to run for this frame and the state to
// use on the next one. It must be called exactly once per frame.
func Decide(s State) (int, State) {
	switch s.Mode {
	case FastForward:
		return max(s.Factor, 1), s
	case SlowMotion:
		f := max(s.Factor, 1)
		if s.SlowCounter >= f {
			s.SlowCounter = 1
			return 1, s
		}
		s.SlowCounter++
		return 0, s
	default:
		return 1, s
	}
}

func (s State) String() string {
	switch s.Mode {
	case FastForward:
		return fmt.Sprintf("%dx", s.Factor)
	case SlowMotion:
		if s.Factor <= 1 {
			return "1x"
		}
		return fmt.Sprintf("1/%dx", s.Factor)
	default:
		return "1x"
	}
}
