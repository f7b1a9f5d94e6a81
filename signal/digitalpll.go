package signal

import "github.com/skywave-radio/radiocore/dspmath"

// DigitalPLL recovers a data bit clock from a binary signal using a free
// running counter that overflows at the data baud rate: every overflow is a
// bit boundary. A Bresenham-style fixed point accumulator (a signed 32-bit
// counter advanced by a precomputed per-sample increment) avoids drift from
// repeated float accumulation. Whenever the input signal transitions sign,
// the counter value itself is multiplied by `inertia`, pulling it towards
// zero so the next overflow moves towards the middle of the following bit.
type DigitalPLL struct {
	counterAdvance int32
	counter        int32
	inertia         dspmath.Real
	prevSample      dspmath.Real
	prevCounter     int32
}

// DigitalPLLOptions configures a DigitalPLL.
type DigitalPLLOptions struct {
	DataBaud   dspmath.Real
	SampleRate dspmath.Real
	Inertia    dspmath.Real
}

// NewDigitalPLL builds a bit clock recovery PLL.
func NewDigitalPLL(opt DigitalPLLOptions) *DigitalPLL {
	pll := &DigitalPLL{inertia: opt.Inertia}
	pll.counterAdvance = int32(float64(1<<32) * float64(opt.DataBaud) / float64(opt.SampleRate))
	return pll
}

// Push feeds one signal sample (already sliced to a sign-carrying decision
// value, e.g. +-1) and reports whether this sample is a bit boundary (the
// moment to sample the data line).
func (pll *DigitalPLL) Push(sample dspmath.Real) (bitBoundary bool) {
	pll.prevCounter = pll.counter
	pll.counter += pll.counterAdvance

	if pll.counter < pll.prevCounter {
		bitBoundary = true
	}

	if pll.prevSample != 0 && sample != 0 && (pll.prevSample < 0) != (sample < 0) {
		pll.counter = int32(dspmath.Real(pll.counter) * pll.inertia)
	}
	pll.prevSample = sample

	return bitBoundary
}

// Reset clears the counter and edge memory.
func (pll *DigitalPLL) Reset() {
	pll.counter = 0
	pll.prevCounter = 0
	pll.prevSample = 0
}
