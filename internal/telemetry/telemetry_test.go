package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestRecordSteadyRate(t *testing.T) {
	start := time.Unix(0, 0)
	e := New(10, start)

	now := start
	var s Stats
	for i := 0; i < 5; i++ {
		now = now.Add(20 * time.Millisecond)
		s = e.Record(now)
	}

	if math.Abs(s.Latest-50) > 1e-9 {
		t.Errorf("expected latest 50fps, got %f", s.Latest)
	}
	if math.Abs(s.Mean-50) > 1e-9 || s.Min != s.Max {
		t.Errorf("expected flat window, got %+v", s)
	}
	if s.Samples != 5 {
		t.Errorf("expected 5 samples, got %d", s.Samples)
	}
}

func TestWindowEvictsOldest(t *testing.T) {
	start := time.Unix(0, 0)
	e := New(3, start)

	now := start
	deltas := []time.Duration{10, 20, 40, 50, 100}
	for _, d := range deltas {
		now = now.Add(d * time.Millisecond)
		e.Record(now)
	}

	got := e.Samples()
	want := []float64{25, 20, 10}
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}

	s := e.Stats()
	if s.Min != 10 || s.Max != 25 {
		t.Errorf("expected min 10 max 25, got %+v", s)
	}
}

func TestStatsOrderingHolds(t *testing.T) {
	start := time.Unix(0, 0)
	e := New(30, start)

	now := start
	for i := 0; i < 500; i++ {
		d := time.Duration(1+(i*7919)%97) * time.Millisecond / 3
		now = now.Add(d)
		s := e.Record(now)
		if len(e.Samples()) > e.Capacity() {
			t.Fatalf("window exceeded capacity: %d", len(e.Samples()))
		}
		if !(s.Min <= s.Mean && s.Mean <= s.Max) {
			t.Fatalf("ordering broken at frame %d: %+v", i, s)
		}
	}
}

func TestNonAdvancingClockAddsNoSample(t *testing.T) {
	start := time.Unix(0, 0)
	e := New(5, start)

	first := e.Record(start.Add(10 * time.Millisecond))
	again := e.Record(start.Add(10 * time.Millisecond))
	if again != first {
		t.Errorf("expected unchanged stats, got %+v vs %+v", again, first)
	}
	if n := len(e.Samples()); n != 1 {
		t.Errorf("expected 1 sample, got %d", n)
	}
}

func TestDefaultCapacity(t *testing.T) {
	e := New(0, time.Now())
	if e.Capacity() != DefaultWindow {
		t.Errorf("expected capacity %d, got %d", DefaultWindow, e.Capacity())
	}
}

func TestReset(t *testing.T) {
	start := time.Unix(0, 0)
	e := New(5, start)
	e.Record(start.Add(time.Second))
	e.Reset(start.Add(2 * time.Second))

	if len(e.Samples()) != 0 || e.Stats() != (Stats{}) {
		t.Errorf("expected empty estimator after reset")
	}
	s := e.Record(start.Add(2*time.Second + 500*time.Millisecond))
	if math.Abs(s.Latest-2) > 1e-9 {
		t.Errorf("expected 2fps after reset, got %f", s.Latest)
	}
}
