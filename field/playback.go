package field

// Playback owns the cursor into a Store and paces emissions against
// host wall-clock time. The playback multiplier scales the emission
// rate: higher multiplier, shorter interval between samples.
type Playback struct {
	store *Store

	index      int
	lastEmitMs float64
	paused     bool
	current    *Sample

	baseIntervalMs float64
	minMultiplier  float64
}

// NewPlayback creates a scheduler over store. baseIntervalMs is the
// emission interval at multiplier 1; minMultiplier floors the divisor
// so a zero or negative multiplier can never blow up the interval math.
func NewPlayback(store *Store, baseIntervalMs, minMultiplier float64) *Playback {
	if baseIntervalMs <= 0 {
		baseIntervalMs = 50
	}
	if minMultiplier <= 0 {
		minMultiplier = 0.01
	}
	return &Playback{
		store:          store,
		baseIntervalMs: baseIntervalMs,
		minMultiplier:  minMultiplier,
	}
}

// Advance is called once per frame with the host time in milliseconds.
// It emits the sample under the cursor and steps the cursor (wrapping
// at the end of the store) when enough time has elapsed for the given
// multiplier. Returns the emitted sample and true on emission.
func (p *Playback) Advance(hostMs, multiplier float64) (*Sample, bool) {
	if p.paused || p.store.Len() == 0 {
		return nil, false
	}

	if multiplier < p.minMultiplier {
		multiplier = p.minMultiplier
	}
	effectiveMs := p.baseIntervalMs / multiplier

	if hostMs-p.lastEmitMs <= effectiveMs {
		return nil, false
	}

	s := p.store.At(p.index)
	p.index = (p.index + 1) % p.store.Len()
	p.lastEmitMs = hostMs
	p.current = s
	return s, true
}

// Current returns the most recently emitted sample, or nil before the
// first emission (or forever, with an empty store).
func (p *Playback) Current() *Sample {
	return p.current
}

// Index returns the cursor position of the next emission.
func (p *Playback) Index() int {
	return p.index
}

// SetPaused pauses or resumes emission. While paused, Advance is a
// no-op and the cursor holds its position.
func (p *Playback) SetPaused(paused bool) {
	p.paused = paused
}

// Paused reports whether playback is paused.
func (p *Playback) Paused() bool {
	return p.paused
}
