// Package nfm implements narrowband FM demodulation: the output is the
// instantaneous frequency deviation of the complex baseband signal, scaled
// down by the configured peak deviation so full-scale deviation maps to
// full-scale audio.
package nfm

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
)

// Demodulator demodulates an NFM signal sample by sample.
type Demodulator struct {
	discriminator     *signal.InstantFrequency
	angularDeviation dspmath.Real
}

// NewDemodulator builds an NFM demodulator at the given sample rate (Hz)
// and peak frequency deviation (Hz), conventionally 5000 Hz for
// narrowband FM voice.
func NewDemodulator(sampleRateHz, peakDeviationHz dspmath.Real) *Demodulator {
	return &Demodulator{
		discriminator:    signal.NewInstantFrequency(sampleRateHz),
		angularDeviation: peakDeviationHz,
	}
}

// SetAngularDeviation reconfigures the peak deviation used to scale the
// discriminator output to unity.
func (d *Demodulator) SetAngularDeviation(deviationHz dspmath.Real) {
	d.angularDeviation = deviationHz
}

// Push demodulates one complex baseband sample into an audio sample.
func (d *Demodulator) Push(sample complex64) dspmath.Real {
	phase := signal.InstantPhase(sample)
	freq := d.discriminator.Push(phase)
	if d.angularDeviation == 0 {
		return 0
	}
	return freq / d.angularDeviation
}

// Process demodulates an entire span.
func (d *Demodulator) Process(in []complex64, out []dspmath.Real) {
	for i, s := range in {
		out[i] = d.Push(s)
	}
}

// Reset clears discriminator phase memory.
func (d *Demodulator) Reset() {
	d.discriminator.Reset()
}
