package signal

import "github.com/skywave-radio/radiocore/window"

// AnalyticalSignal constructs the analytic (single-sideband) representation
// of a real input by pairing an odd-length windowed Hilbert transformer
// (the quadrature arm) with a pure integer delay matched to the
// transformer's group delay (the in-phase arm), so I and Q stay time
// aligned.
type AnalyticalSignal struct {
	hilbert *FIR[float32]
	delay   *IntegerDelay
}

// NewAnalyticalSignal builds an analytic signal generator from an odd
// number of Hilbert transformer taps, windowed with a Hamming window.
func NewAnalyticalSignal(numTaps int) *AnalyticalSignal {
	return NewAnalyticalSignalWithWindow(numTaps, window.Options{Type: window.Hamming})
}

// NewAnalyticalSignalWithWindow builds an analytic signal generator using
// an explicit window (e.g. a Kaiser window sized for a target stopband
// attenuation), for callers that need sharper control over the
// transformer's transition band than the default Hamming window gives.
func NewAnalyticalSignalWithWindow(numTaps int, opt window.Options) *AnalyticalSignal {
	if numTaps%2 == 0 {
		numTaps++
	}
	h := window.GenerateWindowedHilbertTransformer(opt, numTaps)
	return &AnalyticalSignal{
		hilbert: NewFIR(h),
		delay:   NewIntegerDelay((numTaps - 1) / 2),
	}
}

// Push returns the complex analytic signal sample for a real input sample.
func (a *AnalyticalSignal) Push(sample float32) complex64 {
	i := a.delay.Push(sample)
	q := a.hilbert.Push(sample)
	return complex(i, q)
}

// Delay is the group delay, in samples, introduced by this transform.
func (a *AnalyticalSignal) Delay() int { return a.delay.GetDelay() }

// Reset clears both arms' history.
func (a *AnalyticalSignal) Reset() {
	a.hilbert.Reset()
	a.delay.Reset()
}
