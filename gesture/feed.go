package gesture

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// The external detector streams newline-delimited JSON frames:
//
//	{"hands":[[{"x":0.51,"y":0.42,"z":-0.01}, ... 21 points], ...]}
//
// Zero, one, or two hands per frame.
type landmarkPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type frameRecord struct {
	Hands [][]landmarkPoint `json:"hands"`
}

// Feed pumps detector frames from a reader into a Slot. It runs until
// the reader is exhausted or fails; the detector's capture cadence is
// its own, independent of the render loop.
type Feed struct {
	slot *Slot
}

// NewFeed creates a feed writing into slot.
func NewFeed(slot *Slot) *Feed {
	return &Feed{slot: slot}
}

// Run consumes frames from r until EOF. Malformed lines are skipped;
// a broken detector must never take the visualization down.
func (f *Feed) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	dropped := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec frameRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			dropped++
			if dropped == 1 || dropped%100 == 0 {
				slog.Warn("dropping malformed landmark frame", "error", err, "dropped", dropped)
			}
			continue
		}

		hands := make([]Hand, 0, len(rec.Hands))
		for _, pts := range rec.Hands {
			h := make(Hand, len(pts))
			for i, p := range pts {
				h[i] = r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
			}
			hands = append(hands, h)
		}
		f.slot.Put(hands)
	}

	if err := scanner.Err(); err != nil {
		slog.Warn("landmark feed closed", "error", err)
	}
}
