package signalpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/modulation/analog"
	"github.com/skywave-radio/radiocore/signal"
)

func newTestOptions(modulationType analog.Type) Options {
	options := DefaultOptions(96000, 48000, modulationType)
	// Short ramps keep the soft-start region out of the way of the
	// assertions below.
	options.Audio.SoftStartupTime = 0.01
	options.Audio.SoftConfigureTime = 0.01
	return options
}

func TestSignalPathRejectsBadRates(t *testing.T) {
	options := DefaultOptions(44100, 48000, analog.TypeAM)
	_, err := NewSignalPath(options)
	assert.Error(t, err)
}

func TestSignalPathSampleRates(t *testing.T) {
	path, err := NewSignalPath(newTestOptions(analog.TypeNFM))
	require.NoError(t, err)

	assert.Equal(t, 96000, path.InputSampleRate())
	assert.Equal(t, 48000, path.AFSampleRate())
	assert.Zero(t, 96000%path.IFSampleRate())
}

func TestSignalPathDemodulatesAMTone(t *testing.T) {
	const (
		inputRate = 96000
		audioHz   = 1000
	)

	path, err := NewSignalPath(newTestOptions(analog.TypeAM))
	require.NoError(t, err)

	var af []dspmath.Real
	path.AddAFSink(NewSinkFunc(func(samples []dspmath.Real) {
		af = append(af, samples...)
	}))

	var ifCount int
	ifSink := NewSinkFunc(func(samples []complex64) { ifCount += len(samples) })
	path.AddIFSink(ifSink)

	// AM carrier at DC: envelope 1 + 0.5*sin(wt), zero phase rotation.
	numSamples := 96000
	iq := make([]complex64, 4096)
	pushed := 0
	for pushed < numSamples {
		n := len(iq)
		for i := range iq {
			envelope := 1 + 0.5*dspmath.Sin(dspmath.TwoPi*audioHz*dspmath.Real(pushed+i)/inputRate)
			iq[i] = complex(envelope, 0)
		}
		path.PushSamples(iq)
		pushed += n
	}

	assert.Equal(t, pushed/(path.InputSampleRate()/path.AFSampleRate()), len(af))
	assert.Greater(t, ifCount, 0)

	// The demodulated audio must contain the modulating tone: compare
	// energy at the tone against a quiet probe frequency.
	settled := af[len(af)/2:]
	tone := goertzel(settled, audioHz, 48000)
	probe := goertzel(settled, 3456, 48000)
	assert.Greater(t, tone, 100*probe)
}

func goertzel(x []dspmath.Real, hz, sampleRate float64) float64 {
	var sumR, sumI float64
	for n, v := range x {
		angle := 2 * math.Pi * hz * float64(n) / sampleRate
		sumR += float64(v) * math.Cos(angle)
		sumI -= float64(v) * math.Sin(angle)
	}
	norm := 2 / float64(len(x))
	return norm * (sumR*sumR + sumI*sumI)
}

func TestSignalPathSoftStartRampsFromZero(t *testing.T) {
	options := newTestOptions(analog.TypeAM)
	options.Audio.SoftStartupTime = 1

	path, err := NewSignalPath(options)
	require.NoError(t, err)

	var af []dspmath.Real
	path.AddAFSink(NewSinkFunc(func(samples []dspmath.Real) {
		af = append(af, samples...)
	}))

	lo := signal.NewLocalOscillator(1000, 96000)
	iq := make([]complex64, 4096)
	for i := range iq {
		iq[i] = complex(1+0.5*lo.Sin(), 0)
	}
	path.PushSamples(iq)

	require.NotEmpty(t, af)
	assert.InDelta(t, 0, float64(af[0]), 1e-3)
}

func TestSignalPathSinkRemoval(t *testing.T) {
	path, err := NewSignalPath(newTestOptions(analog.TypeAM))
	require.NoError(t, err)

	count := 0
	sink := NewSinkFunc(func(samples []dspmath.Real) { count += len(samples) })
	path.AddAFSink(sink)

	path.PushSamples(make([]complex64, 2048))
	afterFirst := count
	assert.Greater(t, afterFirst, 0)

	path.RemoveAFSink(sink)
	path.PushSamples(make([]complex64, 2048))
	assert.Equal(t, afterFirst, count)
}

func TestSignalPathReconfigureModulationResetsSoftStart(t *testing.T) {
	options := newTestOptions(analog.TypeAM)
	path, err := NewSignalPath(options)
	require.NoError(t, err)

	// Run past the startup ramps.
	for i := 0; i < 20; i++ {
		path.PushSamples(make([]complex64, 4096))
	}

	var af []dspmath.Real
	path.AddAFSink(NewSinkFunc(func(samples []dspmath.Real) {
		af = append(af, samples...)
	}))

	options.Demodulator.ModulationType = analog.TypeNFM
	options.Audio.SoftConfigureTime = 1
	require.NoError(t, path.Configure(options))

	lo := signal.NewLocalOscillator(500, 96000)
	iq := make([]complex64, 4096)
	for i := range iq {
		iq[i] = lo.IQ()
	}
	path.PushSamples(iq)

	require.NotEmpty(t, af)
	// The soft-configure volume restarts from zero on a modulation
	// change.
	assert.InDelta(t, 0, float64(af[0]), 1e-3)
}
