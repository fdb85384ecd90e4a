package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/solwind/field"
)

// BoundaryRenderer draws the deflection shell around the body, colored
// and faded by the current boundary classification.
type BoundaryRenderer struct {
	shellRadius float32
	bodyRadius  float32
}

// NewBoundaryRenderer creates a boundary renderer for the given shell
// and exclusion radii.
func NewBoundaryRenderer(shellRadius, exclusionRadius float32) *BoundaryRenderer {
	return &BoundaryRenderer{shellRadius: shellRadius, bodyRadius: exclusionRadius}
}

// stateColor maps the classification to its display color.
func stateColor(state field.State) rl.Color {
	if state == field.StateAlert {
		return rl.Color{R: 255, G: 80, B: 80, A: 255}
	}
	return rl.Color{R: 90, G: 200, B: 250, A: 255}
}

// Draw renders the body and its shell. Must run between rl.BeginMode3D
// and rl.EndMode3D.
func (r *BoundaryRenderer) Draw(state field.State, opacity float64) {
	center := rl.Vector3{}
	color := stateColor(state)

	rl.DrawSphere(center, r.bodyRadius*0.6, rl.Color{R: 30, G: 40, B: 60, A: 255})
	rl.DrawSphereWires(center, r.shellRadius, 12, 16, rl.Fade(color, float32(opacity)))
}
