package sstv

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
	"github.com/skywave-radio/radiocore/window"
)

// maxLumaFrequency bounds the tone range any PD mode's pixel tones occupy
// (all PD modes share 1500/2300 Hz black/white frequencies).
const maxLumaFrequency = 2300

// Prefilter turns raw audio samples into instantaneous frequency samples:
// bandpass around the SSTV tone range, take the analytic signal, then
// differentiate phase and low-pass the result to suppress the ringing a
// sharp tone transition otherwise leaves in the frequency estimate.
type Prefilter struct {
	bandpass        *signal.FIR[float32]
	analyticalSignal *signal.AnalyticalSignal
	instantFrequency *signal.InstantFrequency
	frequencyFilter  *signal.FIR[float32]
}

// NewPrefilter builds a prefilter for sampleRate using empirically tuned
// defaults.
func NewPrefilter(sampleRate dspmath.Real) *Prefilter {
	const (
		prefilterTransitionBandwidth = 412
		prefilterFrequencyExtent     = 50
		hilbertAttenuation           = 90
		freqFilterTransitionBW       = 334
		freqFilterCutoff             = 1200
	)

	minFrequency := dspmath.Real(1100) - prefilterFrequencyExtent
	maxFrequency := dspmath.Real(maxLumaFrequency) + prefilterFrequencyExtent

	bandpassTaps := window.EstimateFilterSizeForTransitionBandwidth(prefilterTransitionBandwidth, sampleRate) | 1
	bandpass := signal.NewFIR(window.DesignBandPassFilter(
		window.Options{Type: window.Hamming}, bandpassTaps, minFrequency/sampleRate, maxFrequency/sampleRate))

	hilbertTransitionFreq := dspmath.Real(maxLumaFrequency) + 100
	beta := window.CalculateKaiserBeta(hilbertAttenuation)
	dw := hilbertTransitionFreq / sampleRate
	hilbertTaps := window.CalculateKaiserSize(hilbertAttenuation, dw) | 1

	freqFilterTaps := window.EstimateFilterSizeForTransitionBandwidth(freqFilterTransitionBW, sampleRate) | 1
	freqFilter := signal.NewFIR(window.DesignLowPassFilter(
		window.Options{Type: window.Hamming}, freqFilterTaps, freqFilterCutoff/sampleRate))

	return &Prefilter{
		bandpass:         bandpass,
		analyticalSignal: signal.NewAnalyticalSignalWithWindow(hilbertTaps, window.Options{Type: window.Kaiser, Beta: beta}),
		instantFrequency: signal.NewInstantFrequency(sampleRate),
		frequencyFilter:  freqFilter,
	}
}

// Push turns one raw audio sample into one instantaneous frequency sample.
func (p *Prefilter) Push(sample dspmath.Real) dspmath.Real {
	clean := p.bandpass.Push(sample)
	analytic := p.analyticalSignal.Push(clean)
	phase := signal.InstantPhase(analytic)
	frequency := p.instantFrequency.Push(phase)
	return p.frequencyFilter.Push(frequency)
}
