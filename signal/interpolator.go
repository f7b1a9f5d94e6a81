package signal

import "github.com/skywave-radio/radiocore/window"

// Interpolator raises the sample rate by an integer ratio using a polyphase
// decomposition of a windowed-sinc low-pass kernel (20*ratio+1 taps,
// Blackman window, cutoff at 0.5/ratio): one component filter per phase,
// each holding every ratio-th tap, so that producing ratio output samples
// per input sample never touches a tap weighted by zero.
type Interpolator[T Sample] struct {
	ratio     int
	polyphase []*FIR[T]
}

// NewInterpolator builds an interpolator for the given integer ratio.
func NewInterpolator[T Sample](ratio int) *Interpolator[T] {
	it := &Interpolator[T]{ratio: ratio}
	it.build()
	return it
}

func (it *Interpolator[T]) build() {
	if it.ratio <= 1 {
		it.polyphase = nil
		return
	}
	numTaps := 20*it.ratio + 1
	cutoff := 0.5 / float32(it.ratio)
	h := window.DesignLowPassFilter(window.Options{Type: window.Blackman}, numTaps, cutoff)

	it.polyphase = make([]*FIR[T], it.ratio)
	for m := 0; m < it.ratio; m++ {
		var phase []float32
		for n := m; n < len(h); n += it.ratio {
			phase = append(phase, float32(it.ratio)*h[n])
		}
		it.polyphase[m] = newFIRFromReal[T](phase)
	}
}

// Ratio returns the configured interpolation ratio.
func (it *Interpolator[T]) Ratio() int { return it.ratio }

// SetRatio reconfigures the interpolator for a new ratio, rebuilding the
// polyphase filter bank.
func (it *Interpolator[T]) SetRatio(ratio int) {
	it.ratio = ratio
	it.build()
}

// CalcNeededOutputBufferSize returns the output buffer size needed to
// process numInputSamples: one more than the numInputSamples*ratio samples
// Process writes (numInputSamples itself when ratio <= 1).
func (it *Interpolator[T]) CalcNeededOutputBufferSize(numInputSamples int) int {
	if it.ratio <= 1 {
		return numInputSamples
	}
	return numInputSamples*it.ratio + 1
}

// Process interpolates in, writing len(in)*ratio samples to out.
func (it *Interpolator[T]) Process(in []T, out []T) []T {
	if it.ratio <= 1 {
		n := copy(out, in)
		return out[:n]
	}

	count := 0
	for _, sample := range in {
		for m := 0; m < it.ratio; m++ {
			out[count] = it.polyphase[m].Push(sample)
			count++
		}
	}
	return out[:count]
}

// Reset clears the polyphase filter bank history.
func (it *Interpolator[T]) Reset() {
	for _, f := range it.polyphase {
		f.Reset()
	}
}
