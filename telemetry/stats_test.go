package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/solwind/field"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeMultiplierStats(t *testing.T) {
	values := []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0}
	mean, p10, p50, p90 := ComputeMultiplierStats(values)

	if math.Abs(mean-1.125) > 0.001 {
		t.Errorf("mean = %v, want 1.125", mean)
	}
	if math.Abs(p50-1.125) > 0.001 {
		t.Errorf("p50 = %v, want 1.125", p50)
	}
	if p10 >= p50 || p50 >= p90 {
		t.Errorf("percentiles not ordered: p10=%v p50=%v p90=%v", p10, p50, p90)
	}
}

func TestComputeMultiplierStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeMultiplierStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("empty input should yield zeros, got %v %v %v %v", mean, p10, p50, p90)
	}
}

func TestComputeMultiplierStatsUnsortedInput(t *testing.T) {
	values := []float64{2.0, 0.25, 1.0}
	_, _, p50, _ := ComputeMultiplierStats(values)
	if math.Abs(p50-1.0) > 0.001 {
		t.Errorf("p50 = %v, want 1.0", p50)
	}
	// Input order must be preserved.
	if values[0] != 2.0 || values[2] != 1.0 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestCollectorFlushAndReset(t *testing.T) {
	// 1 second window at 50fps: 50 ticks per window.
	c := NewCollector(1.0, 20.0)

	for i := 0; i < 10; i++ {
		c.RecordSampleEmitted()
	}
	c.RecordRespawns(7)
	c.RecordRespawns(3)
	c.RecordDetectorFrame(true)
	c.RecordDetectorFrame(false)
	c.RecordBoundary(field.StateAlert)
	c.RecordBoundary(field.StateCalm)
	c.RecordBoundary(field.StateCalm)
	c.RecordMultiplier(1.0)
	c.RecordMultiplier(2.0)

	stats := c.Flush(50, 1000.0, 42)

	if stats.SamplesEmitted != 10 {
		t.Errorf("SamplesEmitted = %d, want 10", stats.SamplesEmitted)
	}
	if stats.Respawns != 10 {
		t.Errorf("Respawns = %d, want 10", stats.Respawns)
	}
	if stats.DetectorFrames != 2 || stats.TwoHandFrames != 1 {
		t.Errorf("detector frames = %d/%d, want 2/1", stats.DetectorFrames, stats.TwoHandFrames)
	}
	if stats.AlertFrames != 1 || stats.CalmFrames != 2 {
		t.Errorf("boundary frames = %d/%d, want 1/2", stats.AlertFrames, stats.CalmFrames)
	}
	if math.Abs(stats.MultiplierMean-1.5) > 0.001 {
		t.Errorf("MultiplierMean = %v, want 1.5", stats.MultiplierMean)
	}
	if stats.CursorIndex != 42 {
		t.Errorf("CursorIndex = %d, want 42", stats.CursorIndex)
	}
	if stats.WallTimeSec != 1.0 {
		t.Errorf("WallTimeSec = %v, want 1.0", stats.WallTimeSec)
	}

	// Counters reset; the next window starts clean.
	next := c.Flush(100, 2000.0, 0)
	if next.SamplesEmitted != 0 || next.Respawns != 0 || next.DetectorFrames != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 50 {
		t.Errorf("WindowStartTick = %d, want 50", next.WindowStartTick)
	}
}

func TestShouldFlush(t *testing.T) {
	c := NewCollector(1.0, 20.0)

	if c.ShouldFlush(49) {
		t.Error("flushed before the window elapsed")
	}
	if !c.ShouldFlush(50) {
		t.Error("did not flush at the window boundary")
	}

	c.Flush(50, 1000.0, 0)
	if c.ShouldFlush(99) {
		t.Error("second window flushed early")
	}
	if !c.ShouldFlush(100) {
		t.Error("second window did not flush")
	}
}
