package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skywave-radio/radiocore/dspmath"
)

func TestAnalyticalSignalQuadrature(t *testing.T) {
	const (
		sampleRate = 8000
		toneHz     = 1000
		numTaps    = 127
	)

	a := NewAnalyticalSignal(numTaps)
	assert.Equal(t, (numTaps-1)/2, a.Delay())

	numSamples := 4000
	out := make([]complex64, numSamples)
	for n := 0; n < numSamples; n++ {
		x := dspmath.Cos(dspmath.TwoPi * toneHz * dspmath.Real(n) / sampleRate)
		out[n] = a.Push(x)
	}

	// After the transformer settles, cos(wn) must come out as the
	// analytic e^{jwn} (delayed by the group delay): unit magnitude and a
	// quadrature imaginary arm.
	for n := numSamples / 2; n < numSamples; n++ {
		mag := math.Hypot(float64(real(out[n])), float64(imag(out[n])))
		assert.InDelta(t, 1, mag, 0.02, "sample %d", n)

		phase := 2 * math.Pi * toneHz * float64(n-a.Delay()) / sampleRate
		assert.InDelta(t, math.Cos(phase), float64(real(out[n])), 0.02, "sample %d", n)
		assert.InDelta(t, math.Sin(phase), float64(imag(out[n])), 0.02, "sample %d", n)
	}
}

func TestIntegerDelay(t *testing.T) {
	d := NewIntegerDelay(3)
	assert.Equal(t, 3, d.GetDelay())

	in := []float32{1, 2, 3, 4, 5, 6}
	want := []float32{0, 0, 0, 1, 2, 3}
	for i, s := range in {
		assert.Equal(t, want[i], d.Push(s), "sample %d", i)
	}
}

func TestIntegerDelayZero(t *testing.T) {
	d := NewIntegerDelay(0)
	assert.Equal(t, float32(7), d.Push(7))
}

func TestIntegerDelayReset(t *testing.T) {
	d := NewIntegerDelay(2)
	d.Push(1)
	d.Push(2)
	d.Reset()
	assert.Equal(t, float32(0), d.Push(9))
	assert.Equal(t, float32(0), d.Push(9))
	assert.Equal(t, float32(9), d.Push(9))
}
