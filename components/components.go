// Package components defines ECS components for the particle arena.
package components

// Position is a particle's world position.
type Position struct {
	X, Y, Z float32
}

// Velocity is a particle's velocity.
type Velocity struct {
	X, Y, Z float32
}

// Tint holds per-particle color variation, rolled at spawn. Kinetics
// never read it.
type Tint struct {
	HueShift float32 // degrees, +/- around the base color hue
}
