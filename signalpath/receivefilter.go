package signalpath

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
	"github.com/skywave-radio/radiocore/window"
)

// maxReceiveFilterDecimation bounds the down-fir-up ratio; going higher
// starts to show resampling artifacts in the passband.
const maxReceiveFilterDecimation = 25

// ReceiveFilterOptions configures a ReceiveFilter.
type ReceiveFilterOptions struct {
	// SampleRate of the signal this filter operates on, in Hz.
	SampleRate dspmath.Real

	// Bandwidth passed through around DC, in Hz.
	Bandwidth dspmath.Real

	// TransitionBand between passband and stopband, in Hz.
	TransitionBand dspmath.Real
}

// ReceiveFilter is the channel-selecting low-pass filter applied at the IF
// stage before demodulation. The band of interest is expected to be
// centered around DC, so a real-coefficient low-pass with cutoff at half
// the bandwidth suffices.
//
// When the sample rate is much higher than the bandwidth, the filter runs a
// down-fir-up scheme: decimate by an internally chosen ratio, filter at the
// reduced rate (where the same transition band needs far fewer taps), then
// interpolate back.
type ReceiveFilter struct {
	configured ReceiveFilterOptions

	filterBandwidth      dspmath.Real
	filterTransitionBand dspmath.Real

	fir *signal.FIR[complex64]

	decimationRatio int
	decimator       *signal.Decimator[complex64]
	interpolator    *signal.Interpolator[complex64]

	downsampleBuffer []complex64
}

// NewReceiveFilter builds and configures a receive filter.
func NewReceiveFilter(opt ReceiveFilterOptions) *ReceiveFilter {
	f := &ReceiveFilter{
		decimationRatio: 1,
		decimator:       signal.NewDecimator[complex64](1),
		interpolator:    signal.NewInterpolator[complex64](1),
	}
	f.Configure(opt)
	return f
}

// Configure (re)configures the filter. Re-submitting the configuration the
// filter already runs is a no-op, so the signal path can call this on every
// reconfigure without losing filter history.
func (f *ReceiveFilter) Configure(opt ReceiveFilterOptions) {
	if f.fir != nil && opt == f.configured {
		return
	}
	f.configured = opt

	f.decimationRatio = receiveFilterDecimationRatio(opt)
	f.decimator.SetRatio(f.decimationRatio)
	f.interpolator.SetRatio(f.decimationRatio)

	filterSampleRate := opt.SampleRate / dspmath.Real(f.decimationRatio)

	numTaps := window.EstimateFilterSizeForTransitionBandwidth(opt.TransitionBand, filterSampleRate) | 1

	// Cutoff is half the bandwidth since the band is centered around DC,
	// clamped to the reduced Nyquist rate so extreme configurations stay
	// mathematically sound.
	cutoff := opt.Bandwidth / 2
	if limit := filterSampleRate / 2; cutoff > limit {
		cutoff = limit
	}

	h := window.DesignLowPassFilter(window.Options{Type: window.Hamming}, numTaps, cutoff/filterSampleRate)
	f.fir = signal.NewFIR(signal.ComplexKernel(h))

	f.filterBandwidth = cutoff * 2
	f.filterTransitionBand = opt.TransitionBand
}

// receiveFilterDecimationRatio picks the down-fir-up ratio: enough to bring
// the filter's working rate near four times the cutoff (margin above
// Nyquist), clamped to [1, maxReceiveFilterDecimation].
func receiveFilterDecimationRatio(opt ReceiveFilterOptions) int {
	cutoff := opt.Bandwidth / 2
	minSampleRate := cutoff * 4

	if opt.SampleRate <= minSampleRate {
		return 1
	}

	ratio := int(opt.SampleRate/minSampleRate + 0.5)
	if ratio < 1 {
		ratio = 1
	}
	if ratio > maxReceiveFilterDecimation {
		ratio = maxReceiveFilterDecimation
	}
	return ratio
}

// CalcNeededOutputBufferSize returns the maximum number of output samples
// that processing numInputSamples could produce.
func (f *ReceiveFilter) CalcNeededOutputBufferSize(numInputSamples int) int {
	if f.decimationRatio == 1 {
		return numInputSamples
	}
	decimated := f.decimator.CalcNeededOutputBufferSize(numInputSamples)
	return f.interpolator.CalcNeededOutputBufferSize(decimated)
}

// Process filters in into out (which may alias in and must have capacity of
// at least CalcNeededOutputBufferSize(len(in))), returning the slice of
// samples written. With a decimation ratio above 1 the output may hold
// slightly fewer or more samples than the input as the resampler phases
// drift through their cycles.
func (f *ReceiveFilter) Process(in, out []complex64) []complex64 {
	if f.decimationRatio == 1 {
		f.fir.Process(in, out[:len(in)])
		return out[:len(in)]
	}

	needed := f.decimator.CalcNeededOutputBufferSize(len(in))
	if cap(f.downsampleBuffer) < needed {
		f.downsampleBuffer = make([]complex64, needed)
	}

	downsampled := f.decimator.Process(in, f.downsampleBuffer[:needed])
	f.fir.Process(downsampled, downsampled)
	return f.interpolator.Process(downsampled, out)
}

// DecimationRatio returns the internally chosen down-fir-up ratio.
func (f *ReceiveFilter) DecimationRatio() int { return f.decimationRatio }

// Bandwidth returns the actual (possibly clamped) filter bandwidth in Hz.
func (f *ReceiveFilter) Bandwidth() dspmath.Real { return f.filterBandwidth }

// TransitionBand returns the actual transition band in Hz.
func (f *ReceiveFilter) TransitionBand() dspmath.Real { return f.filterTransitionBand }

// KernelSize returns the number of taps in the filter kernel.
func (f *ReceiveFilter) KernelSize() int { return f.fir.Size() }

// Reset clears the filter and resampler history.
func (f *ReceiveFilter) Reset() {
	f.fir.Reset()
	f.decimator.Reset()
	f.interpolator.Reset()
}
