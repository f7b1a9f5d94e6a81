package signal

import (
	"math/rand"

	"github.com/skywave-radio/radiocore/dspmath"
)

// AWGNNoiseInjector adds Gaussian white noise at a configured standard
// deviation to a real sample stream. It exists for test harnesses that
// want to exercise a demodulator's robustness under noise; nothing in the
// production signal path uses it.
type AWGNNoiseInjector struct {
	stddev dspmath.Real
	rng    *rand.Rand
}

// NewAWGNNoiseInjector builds a noise injector with the given standard
// deviation, seeded deterministically for reproducible tests.
func NewAWGNNoiseInjector(stddev dspmath.Real, seed int64) *AWGNNoiseInjector {
	return &AWGNNoiseInjector{stddev: stddev, rng: rand.New(rand.NewSource(seed))}
}

// Push adds one Gaussian noise sample to the input.
func (n *AWGNNoiseInjector) Push(sample dspmath.Real) dspmath.Real {
	return sample + dspmath.Real(n.rng.NormFloat64())*n.stddev
}

// Process adds noise to an entire span, writing len(in) outputs to out
// (which may alias in).
func (n *AWGNNoiseInjector) Process(in, out []dspmath.Real) {
	for i, s := range in {
		out[i] = n.Push(s)
	}
}
