package gesture

import "github.com/pthm-cable/solwind/config"

// Signal is the per-frame control signal consumed by playback and the
// particle simulator.
type Signal struct {
	Openness           float64 // mean finger extension across detected hands, [0,1]
	PlaybackMultiplier float64 // always > 0
	ParticleScale      float64 // [scale_min, scale_max]; 1.0 when fewer than two hands
	ParticleExpansion  float64 // >= 1.0; 1.0 when fewer than two hands
	HandCount          int
}

// DefaultSignal is the idle signal before any detection arrives.
func DefaultSignal() Signal {
	return Signal{
		Openness:           1.0,
		PlaybackMultiplier: 1.0,
		ParticleScale:      1.0,
		ParticleExpansion:  1.0,
	}
}

// Interpreter converts detected hands into a Signal. It keeps the last
// signal so that frames without any valid hand hold the playback
// multiplier steady instead of snapping back to a default.
type Interpreter struct {
	cfg    config.GestureConfig
	signal Signal
}

// NewInterpreter creates an interpreter with the given tuning.
func NewInterpreter(cfg config.GestureConfig) *Interpreter {
	return &Interpreter{cfg: cfg, signal: DefaultSignal()}
}

// Signal returns the current control signal without reinterpreting.
func (it *Interpreter) Signal() Signal {
	return it.signal
}

// Interpret maps zero, one, or two hands to a control signal. Hands
// with a partial landmark set are skipped. Repeated calls with the same
// input yield the same signal.
func (it *Interpreter) Interpret(hands []Hand) Signal {
	valid := hands[:0:0]
	for _, h := range hands {
		if h.Valid() {
			valid = append(valid, h)
		}
	}

	sig := it.signal
	sig.HandCount = len(valid)

	if len(valid) == 0 {
		// No detection: scaling idles, the multiplier holds.
		sig.ParticleScale = 1.0
		sig.ParticleExpansion = 1.0
		it.signal = sig
		return sig
	}

	var sum float64
	for _, h := range valid {
		sum += h.Openness(it.cfg.OpennessDivisor)
	}
	openness := sum / float64(len(valid))
	sig.Openness = openness
	sig.PlaybackMultiplier = it.multiplier(openness)

	if len(valid) == 2 {
		span := clamp01(Span(valid[0], valid[1]))
		sig.ParticleScale = it.cfg.ScaleMin + span*(it.cfg.ScaleMax-it.cfg.ScaleMin)
		sig.ParticleExpansion = 1.0 + (1.0-openness)*it.cfg.ExpansionGain
	} else {
		sig.ParticleScale = 1.0
		sig.ParticleExpansion = 1.0
	}

	it.signal = sig
	return sig
}

// multiplier maps openness to the playback multiplier: a closed fist
// pins playback at a slow fixed rate, otherwise the rate scales
// linearly with openness.
func (it *Interpreter) multiplier(openness float64) float64 {
	if openness < it.cfg.FistThreshold {
		return it.cfg.FistMultiplier
	}
	return it.cfg.MultiplierBase + it.cfg.MultiplierGain*openness
}
