package window

import "github.com/skywave-radio/radiocore/dspmath"

// DesignLowPassFilter builds a windowed-sinc low-pass FIR kernel with the
// given number of taps (must be odd, giving an integer center tap) and
// normalized cutoff frequency (0, 0.5], scaled so the kernel has unity gain
// at DC.
func DesignLowPassFilter(opt Options, numTaps int, cutoff dspmath.Real) []dspmath.Real {
	h := make([]dspmath.Real, numTaps)
	center := dspmath.Real(numTaps-1) / 2
	w := Generate(opt, numTaps)
	for n := 0; n < numTaps; n++ {
		x := dspmath.Real(n) - center
		h[n] = 2 * cutoff * dspmath.Sinc(2*cutoff*x) * w[n]
	}
	ScaleFilterToUnityGainAtFrequency(h, 0)
	return h
}

// DesignBandPassFilter builds a windowed-sinc band-pass FIR kernel covering
// [lowCutoff, highCutoff] (normalized, 0 < low < high <= 0.5), scaled to
// unity gain at the band center frequency. numTaps must be odd.
func DesignBandPassFilter(opt Options, numTaps int, lowCutoff, highCutoff dspmath.Real) []dspmath.Real {
	h := make([]dspmath.Real, numTaps)
	center := dspmath.Real(numTaps-1) / 2
	w := Generate(opt, numTaps)
	for n := 0; n < numTaps; n++ {
		x := dspmath.Real(n) - center
		h[n] = (2*highCutoff*dspmath.Sinc(2*highCutoff*x) - 2*lowCutoff*dspmath.Sinc(2*lowCutoff*x)) * w[n]
	}
	centerFreq := (lowCutoff + highCutoff) / 2
	ScaleFilterToUnityGainAtFrequency(h, centerFreq)
	return h
}

// DesignFractionalDelayFilter builds a windowed-sinc kernel which delays its
// input by (numTaps-1)/2 + fractionalSamples samples, where fractionalSamples
// is in [0, 1).
func DesignFractionalDelayFilter(opt Options, numTaps int, fractionalSamples dspmath.Real) []dspmath.Real {
	h := make([]dspmath.Real, numTaps)
	center := dspmath.Real(numTaps-1) / 2
	w := Generate(opt, numTaps)
	for n := 0; n < numTaps; n++ {
		x := dspmath.Real(n) - center
		h[n] = dspmath.Sinc(x-fractionalSamples) * w[n]
	}
	ScaleFilterToUnityGainAtFrequency(h, 0)
	return h
}

// GenerateWindowedHilbertTransformer builds an odd-length windowed Hilbert
// transformer kernel, whose ideal (unwindowed) impulse response is
// 2/(pi*n) * sin^2(pi*n/2) for n != 0, and 0 at n == 0.
func GenerateWindowedHilbertTransformer(opt Options, numTaps int) []dspmath.Real {
	if numTaps%2 == 0 {
		numTaps++
	}
	h := make([]dspmath.Real, numTaps)
	center := (numTaps - 1) / 2
	w := Generate(opt, numTaps)
	for n := 0; n < numTaps; n++ {
		k := n - center
		h[n] = hilbertWeight(dspmath.Real(k)) * w[n]
	}
	return h
}

func hilbertWeight(n dspmath.Real) dspmath.Real {
	if n == 0 {
		return 0
	}
	s := dspmath.Sin(dspmath.HalfPi * n)
	return (2 / (dspmath.Pi * n)) * s * s
}

// CalculateFilterGainAtDC is the sum of all filter taps, the filter's
// response at frequency 0.
func CalculateFilterGainAtDC(h []dspmath.Real) dspmath.Real {
	var sum dspmath.Real
	for _, v := range h {
		sum += v
	}
	return sum
}

// CalculateFilterGain evaluates the filter's frequency response magnitude
// at the given normalized frequency: the magnitude of the complex tap sum
// sum(h[n] * exp(-j*2*pi*frequency*n)).
func CalculateFilterGain(h []dspmath.Real, frequency dspmath.Real) dspmath.Real {
	var real, imag dspmath.Real
	for n, v := range h {
		theta := dspmath.TwoPi * frequency * dspmath.Real(n)
		s, c := dspmath.SinCos(theta)
		real += v * c
		imag -= v * s
	}
	return dspmath.Sqrt(real*real + imag*imag)
}

// ScaleFilterToUnityGainAtFrequency rescales h in place so its gain at the
// given normalized frequency is exactly 1.
func ScaleFilterToUnityGainAtFrequency(h []dspmath.Real, frequency dspmath.Real) {
	gain := CalculateFilterGain(h, frequency)
	if gain == 0 {
		return
	}
	for i := range h {
		h[i] /= gain
	}
}
