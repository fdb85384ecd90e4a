package telemetry

import "github.com/pthm-cable/solwind/field"

// Collector accumulates per-frame events within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32

	windowStartTick int32
	windowStartMs   float64

	// Event counters for current window
	samplesEmitted int
	respawns       int
	detectorFrames int
	twoHandFrames  int
	alertFrames    int
	calmFrames     int
	multipliers    []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in wall seconds
// frameMs: milliseconds per frame (used for tick-to-time conversion)
func NewCollector(windowDurationSec, frameMs float64) *Collector {
	ticksPerWindow := int32(windowDurationSec * 1000.0 / frameMs)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
	}
}

// RecordSampleEmitted records one playback emission.
func (c *Collector) RecordSampleEmitted() {
	c.samplesEmitted++
}

// RecordRespawns records the respawn count of one simulation step.
func (c *Collector) RecordRespawns(n int) {
	c.respawns += n
}

// RecordDetectorFrame records a fresh landmark frame, noting whether it
// carried two valid hands.
func (c *Collector) RecordDetectorFrame(twoHands bool) {
	c.detectorFrames++
	if twoHands {
		c.twoHandFrames++
	}
}

// RecordBoundary records the boundary classification of one frame.
func (c *Collector) RecordBoundary(state field.State) {
	if state == field.StateAlert {
		c.alertFrames++
	} else {
		c.calmFrames++
	}
}

// RecordMultiplier records the playback multiplier in effect this frame.
func (c *Collector) RecordMultiplier(m float64) {
	c.multipliers = append(c.multipliers, m)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, hostMs float64, cursorIndex int) WindowStats {
	mean, p10, p50, p90 := ComputeMultiplierStats(c.multipliers)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		WallTimeSec:     hostMs / 1000.0,
		SamplesEmitted:  c.samplesEmitted,
		CursorIndex:     cursorIndex,
		Respawns:        c.respawns,
		DetectorFrames:  c.detectorFrames,
		TwoHandFrames:   c.twoHandFrames,
		MultiplierMean:  mean,
		MultiplierP10:   p10,
		MultiplierP50:   p50,
		MultiplierP90:   p90,
		AlertFrames:     c.alertFrames,
		CalmFrames:      c.calmFrames,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStartMs = hostMs
	c.samplesEmitted = 0
	c.respawns = 0
	c.detectorFrames = 0
	c.twoHandFrames = 0
	c.alertFrames = 0
	c.calmFrames = 0
	c.multipliers = c.multipliers[:0]

	return stats
}
