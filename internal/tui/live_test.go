package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/lifesim/internal/controller"
	"github.com/san-kum/lifesim/internal/telemetry"
)

func TestLiveReporterThrottles(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(0, 0)
	r := NewLiveReporter(&buf, 10)
	r.now = func() time.Time { return clock }

	for i := 0; i < 20; i++ {
		r.OnFrame(controller.FrameResult{Generation: uint64(i), Stats: telemetry.Stats{Latest: 60}})
		clock = clock.Add(10 * time.Millisecond)
	}
	r.Done()

	// 200ms at 10 lines/s
	if got := strings.Count(buf.String(), "\r"); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Done should end the line")
	}
}
