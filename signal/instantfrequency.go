package signal

import "github.com/skywave-radio/radiocore/dspmath"

// InstantFrequency differentiates a running phase sequence, wrapping the
// per-sample phase delta into [-pi, pi) before scaling it into Hz. This is
// the discriminator behind NFM/WFM demodulation: feed it InstantPhase(iq)
// each sample and it returns the instantaneous frequency deviation.
type InstantFrequency struct {
	sampleRate dspmath.Real
	prevPhase  dspmath.Real
	hasPhase   bool
}

// NewInstantFrequency builds a discriminator for the given sample rate.
func NewInstantFrequency(sampleRate dspmath.Real) *InstantFrequency {
	return &InstantFrequency{sampleRate: sampleRate}
}

// Push feeds the next instantaneous phase sample (radians) and returns the
// instantaneous frequency in Hz.
func (f *InstantFrequency) Push(phase dspmath.Real) dspmath.Real {
	if !f.hasPhase {
		f.prevPhase = phase
		f.hasPhase = true
		return 0
	}

	diff := dspmath.WrapPhase(phase - f.prevPhase)
	f.prevPhase = phase

	return diff * f.sampleRate / dspmath.TwoPi
}

// Reset clears the phase memory.
func (f *InstantFrequency) Reset() {
	f.hasPhase = false
	f.prevPhase = 0
}
