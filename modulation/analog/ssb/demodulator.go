// Package ssb implements single-sideband demodulation via the phasing
// method: a 121-tap Hamming-windowed Hilbert transformer filters the
// (negated) quadrature arm of the incoming complex baseband signal, a
// matched pure delay keeps the in-phase arm time aligned, and the two are
// summed or differenced depending on which sideband is wanted.
package ssb

import (
	"github.com/skywave-radio/radiocore/signal"
	"github.com/skywave-radio/radiocore/window"
)

// Sideband selects which sideband the demodulator extracts.
type Sideband int

const (
	Upper Sideband = iota
	Lower
)

const hilbertTaps = 121

// Demodulator demodulates an SSB signal sample by sample.
type Demodulator struct {
	sideband Sideband
	hilbert  *signal.FIR[float32]
	delay    *signal.IntegerDelay
}

// NewDemodulator builds an SSB demodulator for the given sideband.
func NewDemodulator(sideband Sideband) *Demodulator {
	h := window.GenerateWindowedHilbertTransformer(window.Options{Type: window.Hamming}, hilbertTaps)
	return &Demodulator{
		sideband: sideband,
		hilbert:  signal.NewFIR(h),
		delay:    signal.NewIntegerDelay((hilbertTaps - 1) / 2),
	}
}

// SetSideband reconfigures which sideband is extracted.
func (d *Demodulator) SetSideband(sideband Sideband) {
	d.sideband = sideband
}

// Push demodulates one complex baseband sample into an audio sample.
//
// i tracks the real arm through a pure delay matched to the Hilbert
// transformer's group delay; q runs the negated imaginary arm through the
// transformer itself. Upper sideband cancels the image at i - q; lower
// sideband cancels it at i + q.
func (d *Demodulator) Push(sample complex64) float32 {
	i := d.delay.Push(real(sample))
	q := d.hilbert.Push(-imag(sample))

	if d.sideband == Upper {
		return i - q
	}
	return i + q
}

// Process demodulates an entire span.
func (d *Demodulator) Process(in []complex64, out []float32) {
	for idx, s := range in {
		out[idx] = d.Push(s)
	}
}

// Reset clears the Hilbert transformer and delay history.
func (d *Demodulator) Reset() {
	d.hilbert.Reset()
	d.delay.Reset()
}
