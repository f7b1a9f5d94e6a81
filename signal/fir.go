// Package signal implements the streaming DSP building blocks of the radio
// pipeline: FIR filtering, decimation and interpolation, the Hilbert
// transform, instantaneous phase/frequency extraction, oscillators and tone
// generators, AGC, edge detection and bit-clock recovery. Every type
// here is a push-style transducer: samples go in one at a time (or as a
// span), filtered samples come out the same way, and nothing allocates on
// the steady-state path.
package signal

import (
	"github.com/skywave-radio/radiocore/container"
	"github.com/skywave-radio/radiocore/dspmath"
)

// Sample is the set of element types signal transducers operate over.
type Sample interface {
	~float32 | ~complex64
}

// ComplexKernel lifts a set of real filter coefficients into complex64
// taps, for use with FIR[complex64].
func ComplexKernel(h []dspmath.Real) []complex64 {
	out := make([]complex64, len(h))
	for i, v := range h {
		out[i] = complex(v, 0)
	}
	return out
}

// newFIRFromReal builds a FIR[T] from real-valued filter coefficients,
// dispatching the per-tap conversion to whichever concrete sample type T
// is instantiated as. Kept private: callers that know their sample type
// should call NewFIR directly (float32) or NewFIR(ComplexKernel(h))
// (complex64); this helper exists for generic code, such as the decimator
// and interpolator, that designs filters generically over Sample.
func newFIRFromReal[T Sample](h []dspmath.Real) *FIR[T] {
	kernel := make([]T, len(h))
	for i, v := range h {
		switch p := any(&kernel[i]).(type) {
		case *float32:
			*p = v
		case *complex64:
			*p = complex(v, 0)
		}
	}
	return NewFIR(kernel)
}

// FIR is a finite impulse response filter over a sliding window of the
// configured kernel. The kernel is stored reversed so the inner loop is a
// straight dot product against the window contents in chronological order.
type FIR[T Sample] struct {
	kernel []T
	window *container.DoubleRing[T]
}

// NewFIR builds a filter from the given kernel (coefficients in natural,
// not reversed, order). T must match the kernel's element type: use
// float32 taps directly for a real filter, or ComplexKernel for a complex
// one.
func NewFIR[T Sample](kernel []T) *FIR[T] {
	f := &FIR[T]{
		kernel: make([]T, len(kernel)),
		window: container.NewDoubleRing[T](len(kernel)),
	}
	n := len(kernel)
	for i, c := range kernel {
		f.kernel[n-1-i] = c
	}
	return f
}

// Size returns the number of taps in the kernel.
func (f *FIR[T]) Size() int { return len(f.kernel) }

// Delay is the group delay, in samples, of a linear-phase FIR of this size.
func (f *FIR[T]) Delay() int { return (len(f.kernel) - 1) / 2 }

// Push filters a single sample and returns the corresponding output sample.
func (f *FIR[T]) Push(sample T) T {
	window := f.window.Push(sample)
	var acc T
	for i, c := range f.kernel {
		acc += c * window[i]
	}
	return acc
}

// Process filters an entire span, writing len(in) outputs to out (which may
// alias in), and returns the written subspan of out.
func (f *FIR[T]) Process(in, out []T) []T {
	for i, s := range in {
		out[i] = f.Push(s)
	}
	return out[:len(in)]
}

// Reset clears the filter's history back to zero.
func (f *FIR[T]) Reset() {
	f.window.Reset()
}
