// Package scene wires the gesture, playback, particle, and boundary
// components into the per-frame update tick.
package scene

import (
	"io"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/solwind/camera"
	"github.com/pthm-cable/solwind/config"
	"github.com/pthm-cable/solwind/field"
	"github.com/pthm-cable/solwind/gesture"
	"github.com/pthm-cable/solwind/renderer"
	"github.com/pthm-cable/solwind/systems"
	"github.com/pthm-cable/solwind/telemetry"
)

// Options configures scene construction.
type Options struct {
	Seed           int64
	DataPath       string    // field sample file (.json or .csv); empty = no field coupling
	LandmarkReader io.Reader // NDJSON detector stream; nil = no gesture input
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
}

type loadResult struct {
	store *field.Store
	err   error
}

// Scene owns the full frame pipeline and its collaborator surfaces.
type Scene struct {
	cfg *config.Config
	rng *rand.Rand

	// Data playback
	store     *field.Store
	playback  *field.Playback
	evaluator field.Evaluator
	loadCh    chan loadResult
	loaded    bool

	// Gesture input
	slot        *gesture.Slot
	interpreter *gesture.Interpreter
	signal      gesture.Signal

	// Particles
	particles *systems.ParticleField

	// Boundary classification of the current frame
	state   field.State
	opacity float64

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	// Rendering (nil in headless mode)
	streaks    *renderer.StreakRenderer
	boundaryR  *renderer.BoundaryRenderer
	hud        *renderer.HUD
	colorPanel *renderer.ColorPanel
	cam        *camera.Orbit

	tick     int32
	paused   bool
	headless bool
	hostMs   float64 // synthetic clock for headless runs
}

// New creates a scene and kicks off the asynchronous field-data load.
// The scene does not step until the load completes or definitively
// fails; on failure it runs without field coupling for the session.
func New(opts Options) *Scene {
	cfg := config.Cfg()

	s := &Scene{
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		evaluator:   field.NewEvaluator(cfg.Boundary.AlertOpacity, cfg.Boundary.CalmOpacity),
		slot:        &gesture.Slot{},
		signal:      gesture.DefaultSignal(),
		interpreter: gesture.NewInterpreter(cfg.Gesture),
		loadCh:      make(chan loadResult, 1),
		logStats:    opts.LogStats,
		headless:    opts.Headless,
		state:       field.StateCalm,
		opacity:     cfg.Boundary.CalmOpacity,
	}

	s.particles = systems.NewParticleField(cfg, s.rng)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	s.collector = telemetry.NewCollector(statsWindow, cfg.Derived.FrameMs)
	s.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else {
		s.output = output
		if err := s.output.WriteConfig(cfg); err != nil {
			slog.Warn("failed to write config snapshot", "error", err)
		}
	}

	// Field data loads in the background; playback starts once it
	// arrives (or fails).
	if opts.DataPath == "" {
		s.loadCh <- loadResult{store: field.NewStore(nil)}
	} else {
		go func(path string) {
			store, err := field.Load(path)
			s.loadCh <- loadResult{store: store, err: err}
		}(opts.DataPath)
	}

	// Detector frames stream on their own cadence into the slot.
	if opts.LandmarkReader != nil {
		go gesture.NewFeed(s.slot).Run(opts.LandmarkReader)
	}

	if !opts.Headless {
		base := rl.Color{R: cfg.Render.BaseColorR, G: cfg.Render.BaseColorG, B: cfg.Render.BaseColorB, A: 255}
		s.streaks = renderer.NewStreakRenderer(float32(cfg.Render.StreakLength), base)
		s.boundaryR = renderer.NewBoundaryRenderer(cfg.Derived.ShellRadius32, cfg.Derived.Exclusion32)
		s.hud = renderer.NewHUD()
		s.colorPanel = renderer.NewColorPanel(cfg.Derived.ScreenW32-200, 10, base)
		s.cam = camera.New(float32(cfg.Particles.SourceXMax) * 1.5)
	}

	return s
}

// Update runs one windowed frame: input, then the simulation tick
// against the raylib wall clock.
func (s *Scene) Update() {
	s.handleInput()
	s.perf.RecordFrame()
	s.step(rl.GetTime() * 1000.0)
}

// UpdateHeadless runs one tick against a synthetic clock so headless
// runs are reproducible regardless of host speed.
func (s *Scene) UpdateHeadless() {
	s.hostMs += s.cfg.Derived.FrameMs
	s.step(s.hostMs)
}

// step is the core frame tick: gesture -> playback -> particles ->
// boundary -> telemetry. All components run synchronously; there is no
// concurrent writer to particle state.
func (s *Scene) step(hostMs float64) {
	if !s.finishLoad() {
		return
	}
	if s.paused {
		return
	}

	s.perf.StartTick()

	// Gesture: reinterpret only when a fresh detection arrived;
	// otherwise the previous signal stays in effect.
	s.perf.StartPhase(telemetry.PhaseGesture)
	if hands, fresh := s.slot.Take(); fresh {
		s.signal = s.interpreter.Interpret(hands)
		s.collector.RecordDetectorFrame(s.signal.HandCount == 2)
	}

	s.perf.StartPhase(telemetry.PhasePlayback)
	if _, emitted := s.playback.Advance(hostMs, s.signal.PlaybackMultiplier); emitted {
		s.collector.RecordSampleEmitted()
	}
	current := s.playback.Current()

	s.perf.StartPhase(telemetry.PhaseParticles)
	s.particles.Step(s.signal, current)
	s.collector.RecordRespawns(s.particles.RespawnedLastStep())

	s.perf.StartPhase(telemetry.PhaseBoundary)
	s.state, s.opacity = s.evaluator.Evaluate(current)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.collector.RecordMultiplier(s.signal.PlaybackMultiplier)
	s.collector.RecordBoundary(s.state)
	if s.collector.ShouldFlush(s.tick) {
		s.flushTelemetry(hostMs)
	}

	s.perf.EndTick()
	s.tick++
}

// finishLoad polls the async store load. Returns true once the session
// has a store (possibly empty) and playback exists.
func (s *Scene) finishLoad() bool {
	if s.loaded {
		return true
	}

	select {
	case res := <-s.loadCh:
		if res.err != nil {
			slog.Error("field data load failed, continuing without field coupling", "error", res.err)
			s.store = field.NewStore(nil)
		} else {
			s.store = res.store
			slog.Info("field data loaded", "samples", s.store.Len())
		}
		s.playback = field.NewPlayback(s.store, s.cfg.Playback.BaseIntervalMs, s.cfg.Playback.MinMultiplier)
		s.loaded = true
		return true
	default:
		return false
	}
}

// flushTelemetry closes the current stats window.
func (s *Scene) flushTelemetry(hostMs float64) {
	stats := s.collector.Flush(s.tick, hostMs, s.playback.Index())
	perfStats := s.perf.Stats()

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Warn("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, s.tick); err != nil {
		slog.Warn("failed to write perf", "error", err)
	}
}

// CurrentSample returns the sample the visualization is displaying, or
// nil before the first emission.
func (s *Scene) CurrentSample() *field.Sample {
	if s.playback == nil {
		return nil
	}
	return s.playback.Current()
}

// BoundaryState returns the current classification and intensity.
func (s *Scene) BoundaryState() (field.State, float64) {
	return s.state, s.opacity
}

// Signal returns the control signal in effect.
func (s *Scene) Signal() gesture.Signal {
	return s.signal
}

// Loaded reports whether the field-data load has resolved.
func (s *Scene) Loaded() bool {
	return s.loaded
}

// Tick returns the current frame tick.
func (s *Scene) Tick() int32 {
	return s.tick
}

// Unload releases session resources.
func (s *Scene) Unload() {
	if err := s.output.Close(); err != nil {
		slog.Warn("failed to close output", "error", err)
	}
}
