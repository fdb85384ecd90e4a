package renderer

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/solwind/field"
	"github.com/pthm-cable/solwind/gesture"
)

// HUD draws the live field readout and session status text.
type HUD struct{}

// NewHUD creates a HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the readout for the current sample, gesture state, and
// boundary classification. Absent measurements show a placeholder so
// "no data" never reads as a measured zero.
func (h *HUD) Draw(sample *field.Sample, state field.State, sig gesture.Signal, tick int32, paused bool) {
	rl.DrawText(fmt.Sprintf("Tick: %d", tick), 10, 10, 20, rl.White)
	rl.DrawText(h.clockLine(sample), 10, 35, 20, rl.White)

	rl.DrawText(fmt.Sprintf("Bx: %s  By: %s", component(sampleBx(sample)), component(sampleBy(sample))), 10, 60, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("Bz: %s  Bt: %s", component(sampleBz(sample)), component(sampleBt(sample))), 10, 85, 20, rl.RayWhite)

	rl.DrawText(state.String(), 10, 110, 20, stateColor(state))

	rl.DrawText(fmt.Sprintf("Speed: %.2fx  Hands: %d", sig.PlaybackMultiplier, sig.HandCount), 10, 135, 20, rl.White)
	if sig.HandCount == 2 {
		rl.DrawText(fmt.Sprintf("Scale: %.2f  Expand: %.2f", sig.ParticleScale, sig.ParticleExpansion), 10, 160, 20, rl.White)
	}

	if paused {
		rl.DrawText("PAUSED", 10, 185, 20, rl.Yellow)
	}
}

// clockLine formats the active sample's timestamp as a UTC date-time,
// falling back to wall-clock UTC when no valid timestamp is available.
func (h *HUD) clockLine(sample *field.Sample) string {
	if sample != nil && sample.HasTime() {
		return sample.Time().Format("2006-01-02 15:04:05") + " UTC"
	}
	return time.Now().UTC().Format("2006-01-02 15:04:05") + " UTC (live)"
}

// component formats one field component, with a placeholder for absent
// measurements.
func component(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.2f nT", *v)
}

func sampleBx(s *field.Sample) *float64 {
	if s == nil {
		return nil
	}
	return s.Bx
}

func sampleBy(s *field.Sample) *float64 {
	if s == nil {
		return nil
	}
	return s.By
}

func sampleBz(s *field.Sample) *float64 {
	if s == nil {
		return nil
	}
	return s.Bz
}

func sampleBt(s *field.Sample) *float64 {
	if s == nil {
		return nil
	}
	return s.Bt
}
