package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skywave-radio/radiocore/dspmath"
)

func collectTone(g *Generator, tone dspmath.FreqDuration) []dspmath.Real {
	var out []dspmath.Real
	g.PushTone(tone, func(s dspmath.Real) { out = append(out, s) })
	return out
}

func TestGeneratorToneDuration(t *testing.T) {
	g := NewGenerator(48000)

	// 10 ms at 48 kHz is 480 samples; allow one sample of slack for the
	// overshoot carrying.
	out := collectTone(g, dspmath.NewFreqDuration(1000, 10))
	assert.InDelta(t, 480, len(out), 1)
}

func TestGeneratorCarriesOvershootAcrossTones(t *testing.T) {
	const sampleRate = 8000
	g := NewGenerator(sampleRate)

	// Each tone is 10.0625 ms = 80.5 samples; over many segments the
	// total sample count must track total time, not accumulate error.
	const numTones = 40
	const durationMS = 10.0625
	total := 0
	for i := 0; i < numTones; i++ {
		total += len(collectTone(g, dspmath.NewFreqDuration(500, durationMS)))
	}

	wantTotal := int(durationMS * numTones * sampleRate / 1000)
	assert.InDelta(t, wantTotal, total, 2)
}

func TestGeneratorPhaseContinuity(t *testing.T) {
	const sampleRate = 48000
	g := NewGenerator(sampleRate)

	first := collectTone(g, dspmath.NewFreqDuration(1000, 20))
	second := collectTone(g, dspmath.NewFreqDuration(1500, 20))

	// The junction between tones must not jump by more than one sample's
	// worth of phase advance at the higher frequency.
	last := first[len(first)-1]
	next := second[0]
	maxStep := dspmath.TwoPi * 1500 / sampleRate
	assert.InDelta(t, float64(last), float64(next), float64(maxStep)+1e-3)
}

func TestGeneratorFadeToZeroEndsAtZero(t *testing.T) {
	g := NewGenerator(48000)
	collectTone(g, dspmath.NewFreqDuration(700, 13.3))

	var fade []dspmath.Real
	g.FadeToZero(func(s dspmath.Real) { fade = append(fade, s) })

	if len(fade) == 0 {
		// The tone happened to end at a zero crossing already.
		return
	}
	assert.InDelta(t, 0, float64(fade[len(fade)-1]), 1e-5)
}

func TestGeneratorAmplitudeBounded(t *testing.T) {
	g := NewGenerator(44100)
	out := collectTone(g, dspmath.NewFreqDuration(2300, 100))
	for _, s := range out {
		assert.LessOrEqual(t, float64(dspmath.Abs(s)), 1.0)
	}
}
