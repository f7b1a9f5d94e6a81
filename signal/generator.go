package signal

import "github.com/skywave-radio/radiocore/dspmath"

// Generator emits amplitude samples for a sequence of (frequency, duration)
// tones, keeping phase continuous across tone boundaries and carrying over
// any timing overshoot (a tone's duration need not be an exact multiple of
// the sample period) into the next tone. This is the building block behind
// the SSTV VIS header, PD scanline sync tones and the APT sync pattern
// encoders.
type Generator struct {
	sampleRate     dspmath.Real
	prevPhase      dspmath.Real
	hasPhase       bool
	timeOffsetMS   dspmath.Real
	prevFrequency  dspmath.Real
}

// NewGenerator builds a tone generator at the given sample rate (Hz).
func NewGenerator(sampleRateHz dspmath.Real) *Generator {
	return &Generator{sampleRate: sampleRateHz}
}

// PushTone generates the amplitude samples for one tone and calls emit for
// each one, in order.
func (g *Generator) PushTone(tone dspmath.FreqDuration, emit func(sample dspmath.Real)) {
	sampleDurationMS := 1000 / g.sampleRate
	phaseAdvance := dspmath.TwoPi * tone.FrequencyHz / g.sampleRate

	if !g.hasPhase {
		g.prevPhase = -phaseAdvance
		g.hasPhase = true
	}

	lastPhase := g.prevPhase
	for index := 0; ; index++ {
		timeMS := g.timeOffsetMS + dspmath.Real(index)*sampleDurationMS
		if timeMS >= tone.DurationMS {
			g.timeOffsetMS = timeMS - tone.DurationMS
			break
		}

		phase := g.prevPhase + dspmath.Real(index+1)*phaseAdvance
		phase = dspmath.Modulo(phase, dspmath.TwoPi)
		lastPhase = phase

		emit(dspmath.Sin(phase))
	}

	g.prevPhase = lastPhase
	g.prevFrequency = tone.FrequencyHz
}

// FadeToZero continues generating samples at the last pushed tone's
// frequency, up to sampleRate samples, until it crosses zero, emits exactly
// one zero sample and resets phase memory. Used to avoid a hard amplitude
// discontinuity (a click) at the end of a transmission.
func (g *Generator) FadeToZero(emit func(sample dspmath.Real)) {
	phaseAdvance := dspmath.TwoPi * g.prevFrequency / g.sampleRate
	lastAmplitude := dspmath.Sin(g.prevPhase)

	if dspmath.Abs(lastAmplitude) < 1e-6 {
		return
	}

	maxSamples := int(g.sampleRate)
	for index := 1; index <= maxSamples; index++ {
		phase := g.prevPhase + dspmath.Real(index+1)*phaseAdvance
		phase = dspmath.Modulo(phase, dspmath.TwoPi)
		amplitude := dspmath.Sin(phase)

		if lastAmplitude*amplitude < 0 {
			emit(0)
			break
		}

		emit(amplitude)

		if dspmath.Abs(amplitude) < 1e-6 {
			break
		}
		lastAmplitude = amplitude
	}

	g.prevPhase = 0
}

// Reset clears phase continuity tracking.
func (g *Generator) Reset() {
	g.hasPhase = false
	g.prevPhase = 0
	g.timeOffsetMS = 0
	g.prevFrequency = 0
}
