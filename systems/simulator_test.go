package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/solwind/components"
	"github.com/pthm-cable/solwind/config"
	"github.com/pthm-cable/solwind/field"
	"github.com/pthm-cable/solwind/gesture"
)

func testConfig(t *testing.T, count int) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Particles.Count = count
	return cfg
}

func testField(t *testing.T, count int) *ParticleField {
	t.Helper()
	return NewParticleField(testConfig(t, count), rand.New(rand.NewSource(42)))
}

func neutralSignal() gesture.Signal {
	return gesture.Signal{PlaybackMultiplier: 1.0, ParticleScale: 1.0, ParticleExpansion: 1.0}
}

// setSlot overwrites one slot's kinematic state directly.
func setSlot(f *ParticleField, i int, pos components.Position, vel components.Velocity) {
	*f.posMap.Get(f.entities[i]) = pos
	*f.velMap.Get(f.entities[i]) = vel
}

func approx32(got, want float32, tol float64) bool {
	return math.Abs(float64(got-want)) <= tol
}

func TestNewParticleFieldPopulatesArena(t *testing.T) {
	f := testField(t, 200)
	d := &f.cfg.Derived

	if f.Count() != 200 {
		t.Fatalf("Count = %d, want 200", f.Count())
	}

	for i := 0; i < f.Count(); i++ {
		pos, vel := f.Slot(i)

		dist := magnitude3(pos.X, pos.Y, pos.Z)
		if dist <= d.Exclusion32 {
			t.Errorf("slot %d spawned inside the exclusion sphere (dist %v)", i, dist)
		}
		if pos.X < d.FarNegX32 || pos.X > d.SourceXMax32 {
			t.Errorf("slot %d x = %v outside volume", i, pos.X)
		}
		if absf(pos.Y) > d.SourceLateral32 || absf(pos.Z) > d.SourceLateral32 {
			t.Errorf("slot %d lateral = (%v, %v) outside source extent", i, pos.Y, pos.Z)
		}
		if vel.X < d.DriftMin32 || vel.X > d.DriftMax32 {
			t.Errorf("slot %d drift = %v outside [%v, %v]", i, vel.X, d.DriftMin32, d.DriftMax32)
		}
	}
}

func TestStepIntegratesVelocity(t *testing.T) {
	f := testField(t, 1)
	setSlot(f, 0, components.Position{X: 8, Y: 0, Z: 0}, components.Velocity{X: -0.05})

	f.Step(neutralSignal(), nil)

	pos, _ := f.Slot(0)
	if !approx32(pos.X, 7.95, 1e-5) {
		t.Errorf("pos.X = %v, want 7.95", pos.X)
	}
}

func TestStepScalesWithSignal(t *testing.T) {
	f := testField(t, 1)
	setSlot(f, 0, components.Position{X: 8, Y: 0, Z: 0}, components.Velocity{X: -0.05})

	sig := neutralSignal()
	sig.PlaybackMultiplier = 2.0
	sig.ParticleExpansion = 1.5
	f.Step(sig, nil)

	// Effective step is multiplier * expansion = 3.
	pos, _ := f.Slot(0)
	if !approx32(pos.X, 8-0.05*3, 1e-5) {
		t.Errorf("pos.X = %v, want %v", pos.X, 8-0.05*3)
	}
}

func TestDeflectionPushesOutward(t *testing.T) {
	f := testField(t, 1)
	d := &f.cfg.Derived

	// Inside the shell on the y axis, stationary so only the shell acts.
	setSlot(f, 0, components.Position{X: 0, Y: 2, Z: 0}, components.Velocity{})
	f.Step(neutralSignal(), nil)

	pos, vel := f.Slot(0)
	wantPush := (d.ShellRadius32 - 2) * d.PushGain32
	if !approx32(pos.Y, 2+wantPush, 1e-5) {
		t.Errorf("pos.Y = %v, want %v", pos.Y, 2+wantPush)
	}
	if !approx32(vel.Y, d.VelPerturb32, 1e-6) {
		t.Errorf("vel.Y = %v, want perturb %v", vel.Y, d.VelPerturb32)
	}
	// The kick is lateral only.
	if vel.X != 0 {
		t.Errorf("vel.X = %v, want unchanged 0", vel.X)
	}
}

func TestRespawnOnExclusion(t *testing.T) {
	f := testField(t, 1)
	setSlot(f, 0, components.Position{X: 1.0, Y: 0, Z: 0}, components.Velocity{})

	f.Step(neutralSignal(), nil)

	if f.RespawnedLastStep() != 1 {
		t.Fatalf("RespawnedLastStep = %d, want 1", f.RespawnedLastStep())
	}
	assertInSourceRegion(t, f, 0)
}

func TestRespawnOnFarEscape(t *testing.T) {
	f := testField(t, 1)
	setSlot(f, 0, components.Position{X: -12.5, Y: 0, Z: 0}, components.Velocity{})

	f.Step(neutralSignal(), nil)

	if f.RespawnedLastStep() != 1 {
		t.Fatalf("RespawnedLastStep = %d, want 1", f.RespawnedLastStep())
	}
	assertInSourceRegion(t, f, 0)
}

func TestRespawnOnLateralEscape(t *testing.T) {
	f := testField(t, 1)
	setSlot(f, 0, components.Position{X: 0, Y: 11, Z: 0}, components.Velocity{})

	f.Step(neutralSignal(), nil)

	if f.RespawnedLastStep() != 1 {
		t.Fatalf("RespawnedLastStep = %d, want 1", f.RespawnedLastStep())
	}
	assertInSourceRegion(t, f, 0)
}

// assertInSourceRegion checks the respawn postcondition: positive-x
// source region, outside the exclusion sphere, inward drift.
func assertInSourceRegion(t *testing.T, f *ParticleField, i int) {
	t.Helper()
	d := &f.cfg.Derived

	pos, vel := f.Slot(i)
	if pos.X < d.SourceXMin32 || pos.X > d.SourceXMax32 {
		t.Errorf("respawn x = %v outside [%v, %v]", pos.X, d.SourceXMin32, d.SourceXMax32)
	}
	if absf(pos.Y) > d.SourceLateral32 || absf(pos.Z) > d.SourceLateral32 {
		t.Errorf("respawn lateral = (%v, %v) outside source extent", pos.Y, pos.Z)
	}
	if magnitude3(pos.X, pos.Y, pos.Z) <= d.Exclusion32 {
		t.Error("respawned inside the exclusion sphere")
	}
	if vel.X < d.DriftMin32 || vel.X > d.DriftMax32 {
		t.Errorf("respawn drift = %v outside [%v, %v]", vel.X, d.DriftMin32, d.DriftMax32)
	}
}

func TestSlotCountStable(t *testing.T) {
	f := testField(t, 128)

	for i := 0; i < 50; i++ {
		f.Step(neutralSignal(), nil)
	}
	if f.Count() != 128 {
		t.Errorf("Count drifted to %d after stepping", f.Count())
	}

	// Every slot is still within the valid volume or just respawned into it.
	visited := 0
	f.Each(func(pos *components.Position, vel *components.Velocity, tint *components.Tint) {
		visited++
	})
	if visited != 128 {
		t.Errorf("Each visited %d slots, want 128", visited)
	}
}

func TestDeriveParamsFromSample(t *testing.T) {
	f := testField(t, 1)
	bz := -3.0
	bt := 20.0

	f.Step(neutralSignal(), &field.Sample{Bz: &bz, Bt: &bt})

	p := f.Params()
	if !approx32(p.TiltBias, float32(-3.0*0.05), 1e-6) {
		t.Errorf("TiltBias = %v, want %v", p.TiltBias, -3.0*0.05)
	}
	// bt 20 maps past the cap.
	if p.LengthFactor != 3.0 {
		t.Errorf("LengthFactor = %v, want 3.0", p.LengthFactor)
	}
}

func TestDeriveParamsClampsLow(t *testing.T) {
	f := testField(t, 1)
	bt := 1.0

	f.Step(neutralSignal(), &field.Sample{Bt: &bt})

	// bt 1 maps to 0.2, floored at the minimum.
	if p := f.Params(); p.LengthFactor != 1.0 {
		t.Errorf("LengthFactor = %v, want 1.0", p.LengthFactor)
	}
}

func TestDeriveParamsNilSample(t *testing.T) {
	f := testField(t, 1)

	sig := neutralSignal()
	sig.ParticleScale = 1.7
	sig.ParticleExpansion = 1.2
	f.Step(sig, nil)

	p := f.Params()
	if p.TiltBias != 0 {
		t.Errorf("TiltBias = %v, want 0 with no sample", p.TiltBias)
	}
	if p.LengthFactor != 1.0 {
		t.Errorf("LengthFactor = %v, want floor 1.0", p.LengthFactor)
	}
	if !approx32(p.Scale, 1.7, 1e-6) || !approx32(p.Expansion, 1.2, 1e-6) {
		t.Errorf("Scale/Expansion = %v/%v, want 1.7/1.2", p.Scale, p.Expansion)
	}
}
