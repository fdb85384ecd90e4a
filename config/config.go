// Package config provides configuration loading and access for the visualization.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualization configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Shell     ShellConfig     `yaml:"shell"`
	Playback  PlaybackConfig  `yaml:"playback"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ParticlesConfig holds particle arena parameters.
// The slot count is fixed at startup; slots are respawned, never freed.
type ParticlesConfig struct {
	Count int `yaml:"count"`

	// Source region for spawns/respawns: a positive-x slab with
	// symmetric lateral extents.
	SourceXMin    float64 `yaml:"source_x_min"`
	SourceXMax    float64 `yaml:"source_x_max"`
	SourceLateral float64 `yaml:"source_lateral"`

	// Velocity at spawn: inward (negative-x) drift plus lateral jitter.
	DriftMin      float64 `yaml:"drift_min"`
	DriftMax      float64 `yaml:"drift_max"`
	LateralJitter float64 `yaml:"lateral_jitter"`

	// Cull bounds; leaving them triggers a respawn.
	FarNegX      float64 `yaml:"far_neg_x"`
	LateralBound float64 `yaml:"lateral_bound"`

	// Per-particle hue jitter amplitude in degrees.
	HueJitter float64 `yaml:"hue_jitter"`
}

// ShellConfig holds the deflection-shell parameters around the body.
type ShellConfig struct {
	Radius          float64 `yaml:"radius"`           // outer deflection shell
	ExclusionRadius float64 `yaml:"exclusion_radius"` // inner respawn boundary
	PushGain        float64 `yaml:"push_gain"`        // repulsion strength k
	VelocityPerturb float64 `yaml:"velocity_perturb"` // y/z velocity kick c
}

// PlaybackConfig holds data playback pacing parameters.
type PlaybackConfig struct {
	BaseIntervalMs float64 `yaml:"base_interval_ms"`
	MinMultiplier  float64 `yaml:"min_multiplier"` // divisor floor
}

// GestureConfig holds gesture interpretation parameters.
type GestureConfig struct {
	OpennessDivisor float64 `yaml:"openness_divisor"`
	FistThreshold   float64 `yaml:"fist_threshold"`
	FistMultiplier  float64 `yaml:"fist_multiplier"`
	MultiplierBase  float64 `yaml:"multiplier_base"`
	MultiplierGain  float64 `yaml:"multiplier_gain"`
	ScaleMin        float64 `yaml:"scale_min"`
	ScaleMax        float64 `yaml:"scale_max"`
	ExpansionGain   float64 `yaml:"expansion_gain"`
}

// BoundaryConfig holds Calm/Alert intensity parameters.
type BoundaryConfig struct {
	AlertOpacity float64 `yaml:"alert_opacity"`
	CalmOpacity  float64 `yaml:"calm_opacity"`
}

// RenderConfig holds pure-output rendering parameters.
type RenderConfig struct {
	TiltGain     float64 `yaml:"tilt_gain"`   // bz -> pitch bias (radians per nT)
	LengthGain   float64 `yaml:"length_gain"` // bt -> streak length factor
	LengthMin    float64 `yaml:"length_min"`
	LengthMax    float64 `yaml:"length_max"`
	StreakLength float64 `yaml:"streak_length"` // base streak extent in world units
	BaseColorR   uint8   `yaml:"base_color_r"`
	BaseColorG   uint8   `yaml:"base_color_g"`
	BaseColorB   uint8   `yaml:"base_color_b"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
// Hot-path values are precomputed as float32.
type DerivedConfig struct {
	ScreenW32       float32
	ScreenH32       float32
	ShellRadius32   float32
	Exclusion32     float32
	PushGain32      float32
	VelPerturb32    float32
	FarNegX32       float32
	LateralBound32  float32
	SourceXMin32    float32
	SourceXMax32    float32
	SourceLateral32 float32
	DriftMin32      float32
	DriftMax32      float32
	LateralJitter32 float32
	HueJitter32     float32
	FrameMs         float64 // milliseconds per frame at target FPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.ShellRadius32 = float32(c.Shell.Radius)
	c.Derived.Exclusion32 = float32(c.Shell.ExclusionRadius)
	c.Derived.PushGain32 = float32(c.Shell.PushGain)
	c.Derived.VelPerturb32 = float32(c.Shell.VelocityPerturb)
	c.Derived.FarNegX32 = float32(c.Particles.FarNegX)
	c.Derived.LateralBound32 = float32(c.Particles.LateralBound)
	c.Derived.SourceXMin32 = float32(c.Particles.SourceXMin)
	c.Derived.SourceXMax32 = float32(c.Particles.SourceXMax)
	c.Derived.SourceLateral32 = float32(c.Particles.SourceLateral)
	c.Derived.DriftMin32 = float32(c.Particles.DriftMin)
	c.Derived.DriftMax32 = float32(c.Particles.DriftMax)
	c.Derived.LateralJitter32 = float32(c.Particles.LateralJitter)
	c.Derived.HueJitter32 = float32(c.Particles.HueJitter)

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameMs = 1000.0 / float64(fps)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
