package signal

import "github.com/skywave-radio/radiocore/dspmath"

// FreqShifter mixes a complex input stream against an internal local
// oscillator, moving whatever content sits at the configured shift
// frequency down to DC. This is the building block the signal path uses to
// bring a tuned channel to baseband before demodulation.
type FreqShifter struct {
	lo *LocalOscillator
}

// NewFreqShifter builds a shifter that brings content at shiftHz (in the
// sample spectrum) to DC, at the given sample rate.
func NewFreqShifter(shiftHz, sampleRateHz dspmath.Real) *FreqShifter {
	return &FreqShifter{lo: NewLocalOscillator(shiftHz, sampleRateHz)}
}

// SetShift reconfigures the mixing frequency.
func (f *FreqShifter) SetShift(shiftHz dspmath.Real) {
	f.lo.SetFrequency(shiftHz)
}

// Push mixes one complex sample, moving the configured frequency to DC.
func (f *FreqShifter) Push(sample complex64) complex64 {
	phasor := f.lo.IQ()
	return sample * complex(real(phasor), -imag(phasor))
}

// Process mixes an entire span, writing len(in) outputs to out (which may
// alias in).
func (f *FreqShifter) Process(in, out []complex64) {
	for i, s := range in {
		out[i] = f.Push(s)
	}
}

// Reset clears oscillator phase tracking.
func (f *FreqShifter) Reset() {
	f.lo.Reset()
}
