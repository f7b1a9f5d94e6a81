// Package am implements amplitude demodulation: the output is the envelope
// magnitude of the complex baseband signal, DC-blocked by a slow EMA so the
// carrier's average level doesn't ride along with the audio.
package am

import "github.com/skywave-radio/radiocore/dspmath"

// Demodulator demodulates an AM signal sample by sample.
type Demodulator struct {
	dcBlockRate dspmath.Real
	dcLevel     dspmath.Real
	hasDC       bool
}

// NewDemodulator builds an AM demodulator. dcBlockRate controls how fast
// the DC blocker's running mean tracks the envelope's average (smaller is
// slower, and a slower tracker leaves less low-frequency audio content
// clipped off by the block).
func NewDemodulator(dcBlockRate dspmath.Real) *Demodulator {
	return &Demodulator{dcBlockRate: dcBlockRate}
}

// Push demodulates one complex baseband sample into an audio sample.
func (d *Demodulator) Push(sample complex64) dspmath.Real {
	envelope := dspmath.Sqrt(real(sample)*real(sample) + imag(sample)*imag(sample))

	if !d.hasDC {
		d.dcLevel = envelope
		d.hasDC = true
	} else {
		d.dcLevel = dspmath.Lerp(d.dcLevel, envelope, d.dcBlockRate)
	}

	return envelope - d.dcLevel
}

// Process demodulates an entire span.
func (d *Demodulator) Process(in []complex64, out []dspmath.Real) {
	for i, s := range in {
		out[i] = d.Push(s)
	}
}

// Reset clears DC tracking state.
func (d *Demodulator) Reset() {
	d.hasDC = false
	d.dcLevel = 0
}
