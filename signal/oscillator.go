package signal

import "github.com/skywave-radio/radiocore/dspmath"

// LocalOscillator tracks phase exactly via index*phase_advance rather than
// by repeated addition, so floating point error never accumulates sample
// over sample. The phase is periodically re-anchored once it exceeds 2*pi:
// the whole-turn part is folded into the start phase and the index resets
// to 0, bounding the magnitude (and thus the rounding error) of the
// multiplication that computes each sample's phase.
type LocalOscillator struct {
	sampleRate        dspmath.Real
	frequency         dspmath.Real
	phaseAdvance      dspmath.Real
	startPhase        dspmath.Real
	index             int64
}

// NewLocalOscillator builds an oscillator at the given frequency (Hz) and
// sample rate (Hz).
func NewLocalOscillator(frequencyHz, sampleRateHz dspmath.Real) *LocalOscillator {
	lo := &LocalOscillator{sampleRate: sampleRateHz}
	lo.SetFrequency(frequencyHz)
	return lo
}

// SetFrequency reconfigures the oscillator frequency, preserving phase
// continuity at the current sample position.
func (lo *LocalOscillator) SetFrequency(frequencyHz dspmath.Real) {
	// Re-anchor at the current phase before changing the per-sample advance,
	// so continuity holds across the frequency change.
	lo.startPhase = lo.Phase()
	lo.index = 0
	lo.frequency = frequencyHz
	lo.phaseAdvance = dspmath.TwoPi * frequencyHz / lo.sampleRate
}

// Phase returns the current phase in radians, re-anchoring the internal
// state if the accumulated phase has drifted past one full turn.
func (lo *LocalOscillator) Phase() dspmath.Real {
	phase := lo.startPhase + dspmath.Real(lo.index)*lo.phaseAdvance
	if phase > dspmath.TwoPi || phase < -dspmath.TwoPi {
		phase = dspmath.Modulo(phase, dspmath.TwoPi)
		lo.startPhase = phase
		lo.index = 0
		return phase
	}
	return phase
}

// Advance moves the oscillator forward by one sample.
func (lo *LocalOscillator) Advance() {
	lo.index++
	lo.Phase()
}

// Sin returns sin(Phase()) and advances the oscillator by one sample.
func (lo *LocalOscillator) Sin() dspmath.Real {
	v := dspmath.Sin(lo.Phase())
	lo.Advance()
	return v
}

// Cos returns cos(Phase()) and advances the oscillator by one sample.
func (lo *LocalOscillator) Cos() dspmath.Real {
	v := dspmath.Cos(lo.Phase())
	lo.Advance()
	return v
}

// IQ returns cos(Phase()) + i*sin(Phase()) and advances by one sample.
func (lo *LocalOscillator) IQ() complex64 {
	s, c := dspmath.SinCos(lo.Phase())
	lo.Advance()
	return complex(c, s)
}

// OffsetPhase adds the given radians to the oscillator's start phase,
// wrapped modulo pi (not 2*pi), and restarts the sample index from there.
func (lo *LocalOscillator) OffsetPhase(radians dspmath.Real) {
	lo.startPhase = dspmath.Modulo(lo.startPhase+radians, dspmath.Pi)
	lo.index = 0
}

// Reset reinitializes phase tracking to 0 without changing frequency.
func (lo *LocalOscillator) Reset() {
	lo.startPhase = 0
	lo.index = 0
}
