// Package renderer draws the particle field and readout surfaces.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/solwind/components"
	"github.com/pthm-cable/solwind/systems"
)

// StreakRenderer draws each particle as a short streak along its
// direction of travel.
type StreakRenderer struct {
	baseLength float32

	baseColor rl.Color
	baseHSV   rl.Vector3
}

// NewStreakRenderer creates a streak renderer with the given base
// streak extent and particle color.
func NewStreakRenderer(baseLength float32, base rl.Color) *StreakRenderer {
	r := &StreakRenderer{baseLength: baseLength}
	r.SetBaseColor(base)
	return r
}

// SetBaseColor updates the base particle color. Kinetics are untouched;
// only the streak tint changes.
func (r *StreakRenderer) SetBaseColor(c rl.Color) {
	r.baseColor = c
	r.baseHSV = rl.ColorToHSV(c)
}

// BaseColor returns the current base particle color.
func (r *StreakRenderer) BaseColor() rl.Color {
	return r.baseColor
}

// Draw renders all particles. Must run between rl.BeginMode3D and
// rl.EndMode3D.
func (r *StreakRenderer) Draw(pf *systems.ParticleField, params systems.RenderParams) {
	halfLen := r.baseLength * params.Scale * params.Expansion * params.LengthFactor * 0.5
	tilt := params.TiltBias

	pf.Each(func(pos *components.Position, vel *components.Velocity, tint *components.Tint) {
		dx, dy, dz := travelDirection(vel, tilt)

		start := rl.Vector3{X: pos.X - dx*halfLen, Y: pos.Y - dy*halfLen, Z: pos.Z - dz*halfLen}
		end := rl.Vector3{X: pos.X + dx*halfLen, Y: pos.Y + dy*halfLen, Z: pos.Z + dz*halfLen}

		rl.DrawLine3D(start, end, r.tintedColor(tint.HueShift))
	})
}

// travelDirection returns the unit orientation for a particle: its
// velocity direction with the sample-driven tilt bias folded into the
// vertical component.
func travelDirection(vel *components.Velocity, tilt float32) (x, y, z float32) {
	x, y, z = vel.X, vel.Y, vel.Z
	if m := magnitude(x, y, z); m > 0 {
		x, y, z = x/m, y/m, z/m
	} else {
		// Stationary particles still face the inward flow
		x, y, z = -1, 0, 0
	}

	y += tilt
	if m := magnitude(x, y, z); m > 0 {
		x, y, z = x/m, y/m, z/m
	}
	return x, y, z
}

// tintedColor applies the per-particle hue jitter to the base color.
func (r *StreakRenderer) tintedColor(hueShift float32) rl.Color {
	if hueShift == 0 {
		return r.baseColor
	}
	h := r.baseHSV.X + hueShift
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	c := rl.ColorFromHSV(h, r.baseHSV.Y, r.baseHSV.Z)
	c.A = r.baseColor.A
	return c
}

func magnitude(x, y, z float32) float32 {
	return rl.Vector3Length(rl.Vector3{X: x, Y: y, Z: z})
}
