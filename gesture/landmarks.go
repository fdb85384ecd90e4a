// Package gesture interprets hand-landmark detections into the control
// signal that drives playback speed and particle scaling.
package gesture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// The detector delivers a fixed topology of 21 landmarks per hand.
const (
	LandmarkCount = 21
	WristIndex    = 0
)

// fingertipIndices are the five fingertip landmarks, thumb to pinky.
var fingertipIndices = [5]int{4, 8, 12, 16, 20}

// Hand is one detected hand: an ordered list of landmark points with
// x/y normalized to roughly [0,1].
type Hand []r3.Vec

// Valid reports whether the hand carries the full landmark topology.
// Partial detections are skipped rather than interpreted.
func (h Hand) Valid() bool {
	return len(h) == LandmarkCount
}

// Openness measures how extended the fingers are: the sum of 2D
// wrist-to-fingertip distances, normalized by divisor and clamped to
// [0,1]. Depth (z) is ignored; it is the least stable detector axis.
func (h Hand) Openness(divisor float64) float64 {
	wrist := h[WristIndex]
	var sum float64
	for _, i := range fingertipIndices {
		sum += math.Hypot(h[i].X-wrist.X, h[i].Y-wrist.Y)
	}
	return clamp01(sum / divisor)
}

// Span returns the 3D distance between two hands' wrist landmarks.
func Span(a, b Hand) float64 {
	return r3.Norm(r3.Sub(a[WristIndex], b[WristIndex]))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
