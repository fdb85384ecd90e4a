// Package systems implements the particle-flow simulation over the ECS
// particle arena.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/solwind/components"
	"github.com/pthm-cable/solwind/config"
	"github.com/pthm-cable/solwind/field"
	"github.com/pthm-cable/solwind/gesture"
)

// RenderParams are the per-frame pure outputs the renderer consumes
// alongside particle transforms. None of them feed back into kinetics.
type RenderParams struct {
	TiltBias     float32 // pitch offset applied to travel direction; sign follows bz
	LengthFactor float32 // streak extent multiplier derived from bt
	Scale        float32 // two-hand span scale
	Expansion    float32 // closed-hands expansion
}

// ParticleField owns the fixed arena of particle slots and integrates
// them once per frame. Slots are created once and only ever respawned;
// the entity handle per slot is stable for the whole session.
type ParticleField struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Tint]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Tint]

	// Individual component mappers for slot lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	tintMap *ecs.Map1[components.Tint]

	// Arena: slot index -> entity
	entities []ecs.Entity

	rng    *rand.Rand
	cfg    *config.Config
	params RenderParams

	respawned int
}

// NewParticleField builds the arena with cfg.Particles.Count slots.
// The random source drives spawn placement only; inject a seeded one
// for reproducible runs.
func NewParticleField(cfg *config.Config, rng *rand.Rand) *ParticleField {
	world := ecs.NewWorld()

	f := &ParticleField{
		world: world,
		rng:   rng,
		cfg:   cfg,
		mapper: ecs.NewMap3[
			components.Position,
			components.Velocity,
			components.Tint,
		](world),
		filter: ecs.NewFilter3[
			components.Position,
			components.Velocity,
			components.Tint,
		](world),
		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		tintMap: ecs.NewMap1[components.Tint](world),
		params:  RenderParams{LengthFactor: float32(cfg.Render.LengthMin), Scale: 1, Expansion: 1},
	}

	f.entities = make([]ecs.Entity, 0, cfg.Particles.Count)
	for i := 0; i < cfg.Particles.Count; i++ {
		pos := f.initialPosition()
		vel := components.Velocity{}
		tint := components.Tint{}
		f.rollVelocity(&vel)
		f.rollTint(&tint)
		f.entities = append(f.entities, f.mapper.NewEntity(&pos, &vel, &tint))
	}

	return f
}

// Step advances every particle by one frame: integrate, deflect at the
// shell, respawn slots that left the valid volume, then derive the
// frame's render params from the current sample.
func (f *ParticleField) Step(sig gesture.Signal, sample *field.Sample) {
	d := &f.cfg.Derived
	step := float32(sig.PlaybackMultiplier * sig.ParticleExpansion)

	shell := d.ShellRadius32
	exclusion := d.Exclusion32
	pushGain := d.PushGain32
	perturb := d.VelPerturb32
	farNegX := d.FarNegX32
	lateral := d.LateralBound32

	f.respawned = 0

	query := f.filter.Query()
	for query.Next() {
		pos, vel, tint := query.Get()

		pos.X += vel.X * step
		pos.Y += vel.Y * step
		pos.Z += vel.Z * step

		dist := magnitude3(pos.X, pos.Y, pos.Z)

		// Deflection shell: push outward along the radial normal, with
		// a small lateral velocity kick so particles don't sit on the
		// boundary.
		if dist < shell && dist > 0 {
			nx := pos.X / dist
			ny := pos.Y / dist
			nz := pos.Z / dist
			push := (shell - dist) * pushGain

			pos.X += nx * push
			pos.Y += ny * push
			pos.Z += nz * push

			vel.Y += ny * perturb
			vel.Z += nz * perturb
		}

		if pos.X < farNegX || dist < exclusion || absf(pos.Y) > lateral || absf(pos.Z) > lateral {
			f.respawn(pos, vel, tint)
			f.respawned++
		}
	}

	f.params = f.deriveParams(sig, sample)
}

// deriveParams maps the current sample and signal to render-only
// outputs. Absent measurements read as zero.
func (f *ParticleField) deriveParams(sig gesture.Signal, sample *field.Sample) RenderParams {
	r := &f.cfg.Render

	var bz, bt float64
	if sample != nil {
		bz = sample.BzValue()
		bt = sample.BtValue()
	}

	return RenderParams{
		TiltBias: float32(bz * r.TiltGain),
		LengthFactor: clampFloat(float32(bt*r.LengthGain),
			float32(r.LengthMin), float32(r.LengthMax)),
		Scale:     float32(sig.ParticleScale),
		Expansion: float32(sig.ParticleExpansion),
	}
}

// respawn resets a slot to the source region. The slot keeps its
// entity; only position, velocity, and tint are re-rolled.
func (f *ParticleField) respawn(pos *components.Position, vel *components.Velocity, tint *components.Tint) {
	d := &f.cfg.Derived
	pos.X = d.SourceXMin32 + f.rng.Float32()*(d.SourceXMax32-d.SourceXMin32)
	pos.Y = (f.rng.Float32()*2 - 1) * d.SourceLateral32
	pos.Z = (f.rng.Float32()*2 - 1) * d.SourceLateral32
	f.rollVelocity(vel)
	f.rollTint(tint)
}

// initialPosition places a fresh slot anywhere in the valid volume so
// the field looks full at startup, avoiding the exclusion sphere.
func (f *ParticleField) initialPosition() components.Position {
	d := &f.cfg.Derived
	for {
		p := components.Position{
			X: d.FarNegX32 + f.rng.Float32()*(d.SourceXMax32-d.FarNegX32),
			Y: (f.rng.Float32()*2 - 1) * d.SourceLateral32,
			Z: (f.rng.Float32()*2 - 1) * d.SourceLateral32,
		}
		if magnitude3(p.X, p.Y, p.Z) > d.Exclusion32 {
			return p
		}
	}
}

// rollVelocity draws the inward drift plus lateral jitter.
func (f *ParticleField) rollVelocity(vel *components.Velocity) {
	d := &f.cfg.Derived
	vel.X = d.DriftMin32 + f.rng.Float32()*(d.DriftMax32-d.DriftMin32)
	vel.Y = (f.rng.Float32()*2 - 1) * d.LateralJitter32
	vel.Z = (f.rng.Float32()*2 - 1) * d.LateralJitter32
}

func (f *ParticleField) rollTint(tint *components.Tint) {
	d := &f.cfg.Derived
	tint.HueShift = (f.rng.Float32()*2 - 1) * d.HueJitter32
}

// Count returns the fixed slot count.
func (f *ParticleField) Count() int {
	return len(f.entities)
}

// Params returns the render params derived in the last Step.
func (f *ParticleField) Params() RenderParams {
	return f.params
}

// RespawnedLastStep returns how many slots respawned in the last Step.
func (f *ParticleField) RespawnedLastStep() int {
	return f.respawned
}

// Slot returns the kinematic state of one slot by index.
func (f *ParticleField) Slot(i int) (components.Position, components.Velocity) {
	e := f.entities[i]
	return *f.posMap.Get(e), *f.velMap.Get(e)
}

// Each visits every particle in slot order-independent arena order.
// The callback must not retain the pointers past the call.
func (f *ParticleField) Each(fn func(pos *components.Position, vel *components.Velocity, tint *components.Tint)) {
	query := f.filter.Query()
	for query.Next() {
		pos, vel, tint := query.Get()
		fn(pos, vel, tint)
	}
}
