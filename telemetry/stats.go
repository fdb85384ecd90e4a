package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	WallTimeSec     float64 `csv:"wall_time"`

	// Playback
	SamplesEmitted int `csv:"samples_emitted"`
	CursorIndex    int `csv:"cursor_index"`

	// Particles
	Respawns int `csv:"respawns"`

	// Gesture input
	DetectorFrames int     `csv:"detector_frames"`
	TwoHandFrames  int     `csv:"two_hand_frames"`
	MultiplierMean float64 `csv:"multiplier_mean"`
	MultiplierP10  float64 `csv:"multiplier_p10"`
	MultiplierP50  float64 `csv:"multiplier_p50"`
	MultiplierP90  float64 `csv:"multiplier_p90"`

	// Boundary classification
	AlertFrames int `csv:"alert_frames"`
	CalmFrames  int `csv:"calm_frames"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeMultiplierStats calculates mean and percentiles from the
// playback multipliers observed in a window.
func ComputeMultiplierStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("wall_time", s.WallTimeSec),
		slog.Int("samples_emitted", s.SamplesEmitted),
		slog.Int("cursor_index", s.CursorIndex),
		slog.Int("respawns", s.Respawns),
		slog.Int("detector_frames", s.DetectorFrames),
		slog.Int("two_hand_frames", s.TwoHandFrames),
		slog.Float64("multiplier_mean", s.MultiplierMean),
		slog.Float64("multiplier_p10", s.MultiplierP10),
		slog.Float64("multiplier_p50", s.MultiplierP50),
		slog.Float64("multiplier_p90", s.MultiplierP90),
		slog.Int("alert_frames", s.AlertFrames),
		slog.Int("calm_frames", s.CalmFrames),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
