package ssb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skywave-radio/radiocore/signal"
)

// pushTone feeds an analytic tone at the given (possibly negative)
// frequency and returns the demodulated RMS amplitude over the settled
// half.
func pushTone(d *Demodulator, frequencyHz float64) float64 {
	const sampleRate = 8000
	const numSamples = 8000

	lo := signal.NewLocalOscillator(float32(frequencyHz), sampleRate)
	var sumSq float64
	for n := 0; n < numSamples; n++ {
		out := d.Push(lo.IQ())
		if n >= numSamples/2 {
			sumSq += float64(out) * float64(out)
		}
	}
	return math.Sqrt(sumSq / (numSamples / 2))
}

func TestSidebandSelection(t *testing.T) {
	// The phasing method cancels one rotation direction of the incoming
	// phasor and doubles the other. With the quadrature negation baked
	// into the demodulator (its input convention is cos/-sin), the upper
	// sideband selector passes the negatively rotating phasor.
	pass := pushTone(NewDemodulator(Upper), -1000)
	reject := pushTone(NewDemodulator(Upper), 1000)

	assert.Greater(t, pass, 1.0)
	assert.Less(t, reject, 0.1)
}

func TestSidebandsAreComplementary(t *testing.T) {
	// Whatever Upper rejects, Lower passes, and vice versa.
	assert.Greater(t, pushTone(NewDemodulator(Lower), 1000), 1.0)
	assert.Less(t, pushTone(NewDemodulator(Lower), -1000), 0.1)
}

func TestSetSideband(t *testing.T) {
	d := NewDemodulator(Upper)
	d.SetSideband(Lower)
	assert.Greater(t, pushTone(d, 1000), 0.5)
}
