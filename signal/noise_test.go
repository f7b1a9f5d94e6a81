package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skywave-radio/radiocore/dspmath"
)

func TestAWGNNoiseInjectorStatistics(t *testing.T) {
	const (
		stddev     = 0.5
		numSamples = 50000
	)
	injector := NewAWGNNoiseInjector(stddev, 1)

	var sum, sumSq float64
	for i := 0; i < numSamples; i++ {
		noise := float64(injector.Push(0))
		sum += noise
		sumSq += noise * noise
	}

	mean := sum / numSamples
	measuredStddev := math.Sqrt(sumSq/numSamples - mean*mean)
	assert.InDelta(t, 0, mean, 0.02)
	assert.InDelta(t, stddev, measuredStddev, 0.02)
}

func TestAWGNNoiseInjectorIsReproducible(t *testing.T) {
	a := NewAWGNNoiseInjector(0.1, 42)
	b := NewAWGNNoiseInjector(0.1, 42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Push(1), b.Push(1))
	}
}

func TestAWGNNoiseInjectorProcess(t *testing.T) {
	injector := NewAWGNNoiseInjector(0.25, 7)

	in := make([]dspmath.Real, 64)
	for i := range in {
		in[i] = 1
	}
	out := make([]dspmath.Real, len(in))
	injector.Process(in, out)

	for _, v := range out {
		assert.NotEqual(t, dspmath.Real(0), v)
	}
}
