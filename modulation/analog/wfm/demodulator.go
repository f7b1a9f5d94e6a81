// Package wfm implements wideband (broadcast) FM demodulation. It shares
// its discriminator with nfm but defaults to the 75 kHz peak deviation used
// by broadcast FM and is kept as a distinct type so a signal path can carry
// both an NFM and a WFM demodulator with different assumptions about input
// bandwidth. No de-emphasis is applied.
package wfm

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
)

// DefaultPeakDeviationHz is the broadcast FM peak deviation.
const DefaultPeakDeviationHz dspmath.Real = 75000

// Demodulator demodulates a WFM signal sample by sample.
type Demodulator struct {
	discriminator    *signal.InstantFrequency
	angularDeviation dspmath.Real
}

// NewDemodulator builds a WFM demodulator at the given sample rate (Hz),
// defaulting to DefaultPeakDeviationHz.
func NewDemodulator(sampleRateHz dspmath.Real) *Demodulator {
	return &Demodulator{
		discriminator:    signal.NewInstantFrequency(sampleRateHz),
		angularDeviation: DefaultPeakDeviationHz,
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
