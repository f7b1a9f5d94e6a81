package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/skywave-radio/radiocore/dspmath"
)

func TestDecimatorRatioOneIsIdentity(t *testing.T) {
	d := NewDecimator[float32](1)

	in := []float32{1, 2, 3, 4, 5}
	out := make([]float32, len(in))
	got := d.Process(in, out)

	assert.Equal(t, in, got)
}

func TestDecimatorOutputCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ratio := rapid.IntRange(2, 16).Draw(t, "ratio")
		numChunks := rapid.IntRange(1, 5).Draw(t, "numChunks")

		d := NewDecimator[float32](ratio)

		totalIn := 0
		totalOut := 0
		for i := 0; i < numChunks; i++ {
			chunkLen := rapid.IntRange(0, 100).Draw(t, "chunkLen")
			in := make([]float32, chunkLen)
			out := make([]float32, d.CalcNeededOutputBufferSize(chunkLen))
			totalOut += len(d.Process(in, out))
			totalIn += chunkLen
		}

		// One output per full window of ratio accumulated inputs:
		// floor(totalIn/ratio) outputs regardless of chunking.
		assert.Equal(t, totalIn/ratio, totalOut)
	})
}

// goertzelMagnitude measures the spectral magnitude of x at frequency hz.
func goertzelMagnitude(x []float32, hz, sampleRate float64) float64 {
	var sumR, sumI float64
	for n, v := range x {
		s, c := dspmath.SinCos(dspmath.Real(2 * 3.14159265358979 * hz * float64(n) / sampleRate))
		sumR += float64(v) * float64(c)
		sumI -= float64(v) * float64(s)
	}
	norm := 2 / float64(len(x))
	return norm * (sumR*sumR + sumI*sumI)
}

func TestDecimatorKeepsInBandTone(t *testing.T) {
	const (
		inputRate = 240000
		ratio     = 25
		toneHz    = 1000
		numIn     = 25000
	)

	in := make([]float32, numIn)
	for n := range in {
		in[n] = dspmath.Sin(dspmath.TwoPi * toneHz * dspmath.Real(n) / inputRate)
	}

	d := NewDecimator[float32](ratio)
	out := make([]float32, d.CalcNeededOutputBufferSize(numIn))
	got := d.Process(in, out)
	assert.Len(t, got, numIn/ratio)

	// Skip the filter warm-up, then verify the tone survived decimation:
	// its power at the output rate dwarfs a probe elsewhere in the band.
	settled := got[100:]
	outputRate := float64(inputRate) / ratio
	tonePower := goertzelMagnitude(settled, toneHz, outputRate)
	probePower := goertzelMagnitude(settled, 3000, outputRate)

	assert.Greater(t, tonePower, 100*probePower)
	assert.Greater(t, tonePower, 0.1)
}

func TestDecimatorSetRatioResets(t *testing.T) {
	d := NewDecimator[float32](4)
	in := make([]float32, 6)
	out := make([]float32, d.CalcNeededOutputBufferSize(len(in)))
	d.Process(in, out)

	d.SetRatio(3)
	assert.Equal(t, 3, d.Ratio())

	// After a ratio change the phase counter restarts: a full window of
	// 3 samples accumulates before the next output.
	got := d.Process(make([]float32, 3), out)
	assert.Len(t, got, 1)
}
