// Package cw implements continuous-wave (Morse) demodulation: the complex
// baseband signal is mixed with a local oscillator at the configured tone
// frequency and the real part of the product is taken as audio, turning a
// tuned carrier on/off into an audible tone on/off.
package cw

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
)

// Options configures a CW demodulator.
type Options struct {
	SampleRateHz   dspmath.Real
	ToneFrequencyHz dspmath.Real
}

// Demodulator demodulates a CW signal sample by sample.
type Demodulator struct {
	lo *signal.LocalOscillator
}

// NewDemodulator builds a CW demodulator.
func NewDemodulator(opt Options) *Demodulator {
	return &Demodulator{lo: signal.NewLocalOscillator(opt.ToneFrequencyHz, opt.SampleRateHz)}
}

// SetToneFrequency reconfigures the beat-frequency tone.
func (d *Demodulator) SetToneFrequency(freqHz dspmath.Real) {
	d.lo.SetFrequency(freqHz)
}

// Push demodulates one complex baseband sample into an audio sample.
func (d *Demodulator) Push(sample complex64) dspmath.Real {
	mixed := sample * d.lo.IQ()
	return real(mixed)
}

// Process demodulates an entire span.
func (d *Demodulator) Process(in []complex64, out []dspmath.Real) {
	for i, s := range in {
		out[i] = d.Push(s)
	}
}

// Reset clears oscillator phase tracking.
func (d *Demodulator) Reset() {
	d.lo.Reset()
}
