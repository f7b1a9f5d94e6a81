// Package window implements the classic window functions and the
// windowed-sinc filter design routines built on top of them: low-pass,
// band-pass, fractional-delay, Hilbert, raised-cosine and root-raised-cosine
// kernels, plus the Kaiser length/beta heuristics used to size them from a
// target stopband attenuation.
package window

import (
	"math"

	"github.com/skywave-radio/radiocore/dspmath"
)

// Type enumerates the supported window shapes.
type Type int

const (
	Boxcar Type = iota
	Triangular
	Hann
	Hamming
	OptimalHamming
	Blackman
	Cosine
	Kaiser
)

// Options configures window generation. Beta only matters for Kaiser.
type Options struct {
	Type Type
	Beta dspmath.Real
}

// Weight evaluates the window of the given order (order = length-1) at tap
// index n, for n in [0, order].
func Weight(opt Options, n, order int) dspmath.Real {
	if order == 0 {
		return 1
	}
	fn := dspmath.Real(n)
	forder := dspmath.Real(order)

	switch opt.Type {
	case Boxcar:
		return 1

	case Triangular:
		return 1 - 2*dspmath.Abs(fn-forder/2)/forder

	case Hann:
		s := dspmath.Sin(dspmath.Pi * fn / forder)
		return s * s

	case Hamming:
		return hammingWeight(fn, forder, 0.54, 0.46)

	case OptimalHamming:
		return hammingWeight(fn, forder, 0.53836, 0.46164)

	case Blackman:
		a0, a1, a2 := dspmath.Real(0.42), dspmath.Real(0.5), dspmath.Real(0.08)
		return a0 - a1*dspmath.Cos(dspmath.TwoPi*fn/forder) + a2*dspmath.Cos(2*dspmath.TwoPi*fn/forder)

	case Cosine:
		return dspmath.Sin(dspmath.Pi * (fn + 0.5) / (forder + 1))

	case Kaiser:
		a := (fn - forder/2) / (forder / 2)
		num := dspmath.BesselI0(opt.Beta * dspmath.Sqrt(1-a*a))
		den := dspmath.BesselI0(opt.Beta)
		return num / den
	}

	return 1
}

func hammingWeight(n, order dspmath.Real, a0, a1 dspmath.Real) dspmath.Real {
	return a0 - a1*dspmath.Cos(dspmath.TwoPi*n/order)
}

// Generate fills a kernel of numTaps taps (order = numTaps-1) with the raw
// window weights, with no normalization applied.
func Generate(opt Options, numTaps int) []dspmath.Real {
	order := numTaps - 1
	out := make([]dspmath.Real, numTaps)
	for n := 0; n < numTaps; n++ {
		out[n] = Weight(opt, n, order)
	}
	return out
}

// EstimateNormalizedTransitionBandwidth approximates the normalized
// transition bandwidth achievable by a windowed-sinc filter of the given
// size, used to size filters from a target transition width.
func EstimateNormalizedTransitionBandwidth(filterSize int) dspmath.Real {
	return 4 / dspmath.Real(filterSize)
}

// EstimateFilterSizeForTransitionBandwidth is the inverse of
// EstimateNormalizedTransitionBandwidth: the number of taps needed for a
// windowed-sinc filter to achieve the given transition bandwidth (in Hz)
// at the given sample rate.
func EstimateFilterSizeForTransitionBandwidth(transitionBandwidthHz, sampleRate dspmath.Real) int {
	normalized := transitionBandwidthHz / sampleRate
	return int(4/normalized + 0.5)
}

// CalculateKaiserBeta derives the Kaiser window shape parameter from a
// target stopband attenuation in dB, using the standard three-branch
// piecewise approximation (Oppenheim & Schafer).
func CalculateKaiserBeta(attenuationDB dspmath.Real) dspmath.Real {
	switch {
	case attenuationDB > 50:
		return 0.1102 * (attenuationDB - 8.7)
	case attenuationDB >= 21:
		return 0.5842*dspmath.Real(math.Pow(float64(attenuationDB-21), 0.4)) + 0.07886*(attenuationDB-21)
	default:
		return 0
	}
}

// CalculateKaiserSize estimates the number of taps needed for a Kaiser
// window filter to achieve the given stopband attenuation (via its beta
// parameter) over the given normalized transition bandwidth (transition
// width in Hz divided by the sample rate; the conversion to the angular
// width the Kaiser formula wants happens internally).
func CalculateKaiserSize(attenuationDB, normalizedTransitionBandwidth dspmath.Real) int {
	n := (attenuationDB-8)/(2.285*dspmath.TwoPi*normalizedTransitionBandwidth) + 1
	size := int(n + 0.5)
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	return size
}
