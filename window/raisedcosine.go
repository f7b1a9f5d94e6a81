package window

import "github.com/skywave-radio/radiocore/dspmath"

// RCWeight evaluates the raised-cosine pulse shape at time t (in samples),
// with the symbol period given in samples-per-symbol and roll-off beta in
// (0, 1]. Handles the two removable singularities (t == 0 and
// t == +-sps/(2*beta)) with their analytic limits.
func RCWeight(t, sps, beta dspmath.Real) dspmath.Real {
	if t == 0 {
		return 1
	}

	denom := 2 * beta * t / sps
	if beta > 0 {
		// Singular point where the denominator of the main formula is 0.
		if dspmath.Abs(denom-1) < 1e-6 || dspmath.Abs(denom+1) < 1e-6 {
			return (dspmath.Pi / 4) * dspmath.Sinc(1/(2*beta))
		}
	}

	sinc := dspmath.Sinc(t / sps)
	cosTerm := dspmath.Cos(dspmath.Pi * beta * t / sps)
	denomFactor := 1 - denom*denom
	return sinc * cosTerm / denomFactor
}

// RRCWeight evaluates the root-raised-cosine pulse shape at time t (in
// samples), symbol period sps, roll-off beta in (0, 1]. Handles the
// removable singularities at t == 0 and t == +-sps/(4*beta).
func RRCWeight(t, sps, beta dspmath.Real) dspmath.Real {
	if t == 0 {
		return (1 / sps) * (1 + beta*(4/dspmath.Pi-1))
	}

	if beta > 0 {
		quarter := sps / (4 * beta)
		if dspmath.Abs(dspmath.Abs(t)-quarter) < 1e-6 {
			inner := (1 + 2/dspmath.Pi) * dspmath.Sin(dspmath.Pi/(4*beta))
			outer := (1 - 2/dspmath.Pi) * dspmath.Cos(dspmath.Pi/(4*beta))
			return (beta / (sps * dspmath.Sqrt(2))) * (inner + outer)
		}
	}

	piT := dspmath.Pi * t / sps
	num := dspmath.Sin(piT*(1-beta)) + 4*beta*t/sps*dspmath.Cos(piT*(1+beta))
	den := piT * (1 - (4*beta*t/sps)*(4*beta*t/sps)) * sps
	return num / den
}

// DesignLowpassRCFilter builds an odd-length raised-cosine FIR kernel
// spanning numTaps samples at the given samples-per-symbol rate and
// roll-off, scaled to unity gain at DC.
func DesignLowpassRCFilter(numTaps int, sps, beta dspmath.Real) []dspmath.Real {
	if numTaps%2 == 0 {
		numTaps++
	}
	h := make([]dspmath.Real, numTaps)
	center := dspmath.Real(numTaps-1) / 2
	for n := 0; n < numTaps; n++ {
		t := dspmath.Real(n) - center
		h[n] = RCWeight(t, sps, beta)
	}
	ScaleFilterToUnityGainAtFrequency(h, 0)
	return h
}

// DesignLowpassRRCFilter builds an odd-length root-raised-cosine FIR kernel,
// the matched filter used by the FSK symbol demodulator, scaled to unity
// gain at DC.
func DesignLowpassRRCFilter(numTaps int, sps, beta dspmath.Real) []dspmath.Real {
	if numTaps%2 == 0 {
		numTaps++
	}
	h := make([]dspmath.Real, numTaps)
	center := dspmath.Real(numTaps-1) / 2
	for n := 0; n < numTaps; n++ {
		t := dspmath.Real(n) - center
		h[n] = RRCWeight(t, sps, beta)
	}
	ScaleFilterToUnityGainAtFrequency(h, 0)
	return h
}
