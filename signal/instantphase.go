package signal

import "github.com/skywave-radio/radiocore/dspmath"

// InstantPhase extracts the instantaneous phase of a complex sample,
// atan2(imag, real), a stateless building block used directly by the FM
// demodulators and as the input stage to InstantFrequency.
func InstantPhase(sample complex64) dspmath.Real {
	return dspmath.ArcTan2(imag(sample), real(sample))
}
