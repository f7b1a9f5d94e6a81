// Package fsk implements Bell-202 style binary FSK demodulation: a bandpass
// prefilter isolates the tone pair, two tone correlators track the mark and
// space amplitudes, their difference is sliced by a hysteresis comparator,
// and a digital PLL recovers the bit clock from the resulting square wave.
package fsk

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
	"github.com/skywave-radio/radiocore/window"
)

// Tones names the two tone frequencies a binary FSK channel alternates
// between.
type Tones struct {
	MarkHz  dspmath.Real
	SpaceHz dspmath.Real
}

// BellTones are the Bell-202 tone pair used by 1200 baud APRS.
var BellTones = Tones{MarkHz: 1200, SpaceHz: 2200}

// Options configures a Demodulator.
type Options struct {
	Tones      Tones
	SampleRateHz dspmath.Real
	DataBaud   dspmath.Real

	PrefilterTransitionBandwidthHz dspmath.Real
	PrefilterFrequencyExtentHz     dspmath.Real

	HysteresisThreshold dspmath.Real
	PLLInertia          dspmath.Real
}

// DefaultOptions returns Bell-202 1200 baud defaults for the given sample
// rate.
func DefaultOptions(sampleRateHz dspmath.Real) Options {
	return Options{
		Tones:                          BellTones,
		SampleRateHz:                   sampleRateHz,
		DataBaud:                       1200,
		PrefilterTransitionBandwidthHz: 70,
		PrefilterFrequencyExtentHz:     190,
		HysteresisThreshold:            0.02,
		PLLInertia:                     0.75,
	}
}

// Demodulator demodulates a Bell-202 style FSK bitstream, sample by sample.
type Demodulator struct {
	opt Options

	prefilter *signal.FIR[float32]

	mark  *symbolDemodulator
	space *symbolDemodulator

	hysteresis *signal.DigitalHysteresis
	pll        *signal.DigitalPLL

	lastDecision bool
}

// NewDemodulator builds an FSK demodulator.
func NewDemodulator(opt Options) *Demodulator {
	low := opt.Tones.MarkHz
	high := opt.Tones.SpaceHz
	if low > high {
		low, high = high, low
	}
	lowCutoff := (low - opt.PrefilterFrequencyExtentHz) / opt.SampleRateHz
	highCutoff := (high + opt.PrefilterFrequencyExtentHz) / opt.SampleRateHz
	if lowCutoff < 0.001 {
		lowCutoff = 0.001
	}

	const attenuationDB = 40
	transitionBW := opt.PrefilterTransitionBandwidthHz / opt.SampleRateHz
	numTaps := window.CalculateKaiserSize(attenuationDB, transitionBW)
	beta := window.CalculateKaiserBeta(attenuationDB)

	h := window.DesignBandPassFilter(window.Options{Type: window.Kaiser, Beta: beta}, numTaps, lowCutoff, highCutoff)

	return &Demodulator{
		opt:        opt,
		prefilter:  signal.NewFIR(h),
		mark:       newSymbolDemodulator(opt.Tones.MarkHz, opt.SampleRateHz, opt.DataBaud),
		space:      newSymbolDemodulator(opt.Tones.SpaceHz, opt.SampleRateHz, opt.DataBaud),
		hysteresis: signal.NewDigitalHysteresis(0, opt.HysteresisThreshold),
		pll: signal.NewDigitalPLL(signal.DigitalPLLOptions{
			DataBaud:   opt.DataBaud,
			SampleRate: opt.SampleRateHz,
			Inertia:    opt.PLLInertia,
		}),
	}
}

// Push feeds one audio sample and reports whether this sample landed on a
// bit boundary and, if so, what bit value the PLL sampled there.
func (d *Demodulator) Push(sample dspmath.Real) (bit bool, bitReady bool) {
	filtered := d.prefilter.Push(sample)

	markAmplitude := d.mark.push(filtered)
	spaceAmplitude := d.space.push(filtered)

	demodulated := markAmplitude - spaceAmplitude
	decision := d.hysteresis.Push(demodulated)

	pllSample := dspmath.Real(-1)
	if decision {
		pllSample = 1
	}
	boundary := d.pll.Push(pllSample)

	d.lastDecision = decision
	return decision, boundary
}

// Reset clears all internal filter and tracking state.
func (d *Demodulator) Reset() {
	d.prefilter.Reset()
	d.mark.reset()
	d.space.reset()
	d.hysteresis.Reset()
	d.pll.Reset()
}
