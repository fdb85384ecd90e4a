package field

// State is the discrete magnetosphere boundary classification derived
// from the Bz component of the current sample.
type State uint8

const (
	// StateCalm: northward or zero Bz, field lines stay closed.
	StateCalm State = iota
	// StateAlert: southward Bz, reconnection-favorable conditions.
	StateAlert
)

// String returns the display label for the state.
func (s State) String() string {
	if s == StateAlert {
		return "ALERT"
	}
	return "CALM"
}

// Evaluator maps a sample to a boundary state and a visual intensity.
// Pure; holds only the configured opacities.
type Evaluator struct {
	AlertOpacity float64
	CalmOpacity  float64
}

// NewEvaluator creates an evaluator with the given intensities.
func NewEvaluator(alertOpacity, calmOpacity float64) Evaluator {
	return Evaluator{AlertOpacity: alertOpacity, CalmOpacity: calmOpacity}
}

// Evaluate classifies the sample: bz >= 0 is Calm, bz < 0 is Alert.
// A nil sample or absent bz reads as zero, so Calm.
func (e Evaluator) Evaluate(s *Sample) (State, float64) {
	if s == nil || s.BzValue() >= 0 {
		return StateCalm, e.CalmOpacity
	}
	return StateAlert, e.AlertOpacity
}
