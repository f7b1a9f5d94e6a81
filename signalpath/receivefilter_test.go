package signalpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
)

func TestReceiveFilterNoDecimationForWideBand(t *testing.T) {
	f := NewReceiveFilter(ReceiveFilterOptions{
		SampleRate:     48000,
		Bandwidth:      30000,
		TransitionBand: 1500,
	})

	assert.Equal(t, 1, f.DecimationRatio())
	assert.InDelta(t, 30000, float64(f.Bandwidth()), 1)
	assert.Equal(t, 100, f.CalcNeededOutputBufferSize(100))
}

func TestReceiveFilterNarrowBandUsesDownFirUp(t *testing.T) {
	f := NewReceiveFilter(ReceiveFilterOptions{
		SampleRate:     240000,
		Bandwidth:      3000,
		TransitionBand: 150,
	})

	assert.Greater(t, f.DecimationRatio(), 1)
	assert.LessOrEqual(t, f.DecimationRatio(), 25)
	assert.Greater(t, f.KernelSize(), 1)
}

func TestReceiveFilterReconfigureIsIdempotent(t *testing.T) {
	opt := ReceiveFilterOptions{SampleRate: 48000, Bandwidth: 12000, TransitionBand: 600}
	f := NewReceiveFilter(opt)

	// Push some samples, reconfigure with identical options: state (and
	// therefore the output stream) must be unaffected.
	in := make([]complex64, 64)
	out := make([]complex64, f.CalcNeededOutputBufferSize(len(in)))
	for i := range in {
		in[i] = complex(dspmath.Sin(dspmath.Real(i)), 0)
	}
	f.Process(in, out)

	kernelBefore := f.KernelSize()
	f.Configure(opt)
	assert.Equal(t, kernelBefore, f.KernelSize())

	ref := NewReceiveFilter(opt)
	refOut := make([]complex64, ref.CalcNeededOutputBufferSize(len(in)))
	f2 := NewReceiveFilter(opt)
	f2Out := make([]complex64, f2.CalcNeededOutputBufferSize(len(in)))
	ref.Process(in, refOut)
	f2.Configure(opt)
	f2.Process(in, f2Out)
	assert.Equal(t, refOut, f2Out)
}

func TestReceiveFilterPassesInBandTone(t *testing.T) {
	const sampleRate = 48000
	f := NewReceiveFilter(ReceiveFilterOptions{
		SampleRate:     sampleRate,
		Bandwidth:      12000,
		TransitionBand: 600,
	})

	lo := signal.NewLocalOscillator(2000, sampleRate)
	numSamples := 8192
	in := make([]complex64, numSamples)
	for i := range in {
		in[i] = lo.IQ()
	}
	out := make([]complex64, f.CalcNeededOutputBufferSize(numSamples))
	got := f.Process(in, out)

	var sumSq float64
	for _, v := range got[len(got)/2:] {
		sumSq += float64(real(v))*float64(real(v)) + float64(imag(v))*float64(imag(v))
	}
	rms := math.Sqrt(sumSq / float64(len(got)/2))
	assert.InDelta(t, 1, rms, 0.05)
}

func TestReceiveFilterRejectsOutOfBandTone(t *testing.T) {
	const sampleRate = 48000
	f := NewReceiveFilter(ReceiveFilterOptions{
		SampleRate:     sampleRate,
		Bandwidth:      12000,
		TransitionBand: 600,
	})

	lo := signal.NewLocalOscillator(15000, sampleRate)
	numSamples := 8192
	in := make([]complex64, numSamples)
	for i := range in {
		in[i] = lo.IQ()
	}
	out := make([]complex64, f.CalcNeededOutputBufferSize(numSamples))
	got := f.Process(in, out)

	var sumSq float64
	for _, v := range got[len(got)/2:] {
		sumSq += float64(real(v))*float64(real(v)) + float64(imag(v))*float64(imag(v))
	}
	rms := math.Sqrt(sumSq / float64(len(got)/2))
	assert.Less(t, rms, 0.05)
}
