// Package dspmath provides small numeric primitives shared by the window,
// signal, modulation and protocol packages: trig helpers, the bounded
// Interval type, pixel color tuples, running averages and a frequency/
// duration pair used by tone generators.
package dspmath

// Real is the floating point precision used throughout the DSP pipeline.
// float32 keeps memory traffic and cache pressure low for long streaming
// buffers, matching the throughput-oriented design of the signal path.
type Real = float32

// Complex is the complex counterpart of Real, used for IQ samples.
type Complex = complex64

const (
	Pi     Real = 3.14159265358979323846
	TwoPi  Real = 2 * Pi
	HalfPi Real = Pi / 2
)
