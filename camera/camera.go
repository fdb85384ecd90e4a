// Package camera provides an orbit camera for viewing the particle volume.
package camera

import "math"

// Orbit is a camera that circles a fixed target point. Yaw and pitch
// are in radians; distance is in world units.
type Orbit struct {
	Yaw      float32
	Pitch    float32
	Distance float32

	// Target is the look-at point (the modeled body sits at the origin).
	TargetX, TargetY, TargetZ float32

	// Constraints
	MinDistance, MaxDistance float32
	MaxPitch                 float32

	// Defaults for Reset
	homeYaw, homePitch, homeDistance float32
}

// New creates an orbit camera at the given distance, looking at the origin.
func New(distance float32) *Orbit {
	return &Orbit{
		Distance:     distance,
		MinDistance:  distance * 0.25,
		MaxDistance:  distance * 4,
		MaxPitch:     float32(math.Pi/2) * 0.95,
		homeDistance: distance,
	}
}

// Rotate adjusts yaw and pitch. Pitch is clamped short of the poles to
// keep the view matrix well defined.
func (c *Orbit) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
}

// Zoom scales the orbit distance; factor > 1 moves the camera out.
func (c *Orbit) Zoom(factor float32) {
	c.Distance *= factor
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Reset returns the camera to its home orientation and distance.
func (c *Orbit) Reset() {
	c.Yaw = c.homeYaw
	c.Pitch = c.homePitch
	c.Distance = c.homeDistance
}

// Position returns the camera's world position for the current orbit.
func (c *Orbit) Position() (x, y, z float32) {
	cosPitch := float32(math.Cos(float64(c.Pitch)))
	x = c.TargetX + c.Distance*cosPitch*float32(math.Cos(float64(c.Yaw)))
	y = c.TargetY + c.Distance*float32(math.Sin(float64(c.Pitch)))
	z = c.TargetZ + c.Distance*cosPitch*float32(math.Sin(float64(c.Yaw)))
	return x, y, z
}
