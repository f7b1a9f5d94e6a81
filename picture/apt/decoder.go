package apt

import (
	"github.com/skywave-radio/radiocore/container"
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/result"
	"github.com/skywave-radio/radiocore/signal"
	"github.com/skywave-radio/radiocore/window"
)

// DecoderOptions configures a Decoder. The defaults are tuned for clean
// recordings; noisy passes mostly benefit from a narrower prefilter.
type DecoderOptions struct {
	// SampleRate of the incoming audio samples, in Hz.
	SampleRate dspmath.Real

	// PrefilterTransitionBandwidthHz sizes the band-pass that isolates the
	// sub-carrier (the passband itself is the baud rate wide, centered on
	// the sub-carrier).
	PrefilterTransitionBandwidthHz dspmath.Real

	// HilbertAttenuationDB and HilbertTransitionFrequencyHz size the
	// Kaiser-windowed Hilbert transformer of the envelope detector.
	HilbertAttenuationDB         dspmath.Real
	HilbertTransitionFrequencyHz dspmath.Real

	// AGC response times, measured in multiples of a line duration. Fast
	// charge, slow discharge: the discharge default covers the full wedge
	// calibration area so telemetry doesn't pump the gain.
	AGCChargeNumLines    dspmath.Real
	AGCDischargeNumLines dspmath.Real

	// Hysteresis turns pixel intensities into sync-pattern bits without
	// chattering around the threshold.
	HysteresisThreshold dspmath.Real
	HysteresisWindow    dspmath.Real
}

// DefaultDecoderOptions returns DecoderOptions with every tunable at its
// default, for the given sample rate.
func DefaultDecoderOptions(sampleRate dspmath.Real) DecoderOptions {
	return DecoderOptions{
		SampleRate:                     sampleRate,
		PrefilterTransitionBandwidthHz: 70,
		HilbertAttenuationDB:           90,
		HilbertTransitionFrequencyHz:   BaudRate,
		AGCChargeNumLines:              0.0005,
		AGCDischargeNumLines:           64,
		HysteresisThreshold:            0.5,
		HysteresisWindow:               0.1,
	}
}

// Decoder demodulates APT lines from an audio stream. It is an AM envelope
// detector centered on the sub-carrier: band-pass, AGC, analytic signal,
// magnitude; one pixel is sampled per baud interval, and a sliding window
// of hysteresis-sliced pixel bits is matched against the Sync A pattern to
// anchor each line.
type Decoder struct {
	prefilter        *signal.FIR[float32]
	agc              *signal.EMAAGC
	analyticalSignal *signal.AnalyticalSignal
	hysteresis       *signal.DigitalHysteresis

	timePerSample dspmath.Real
	timePerPixel  dspmath.Real

	timeWithinPixel dspmath.Real

	linePixels    [NumPixelsPerLine]uint8
	numLinePixels int

	syncBits   *container.Ring[uint8]
	syncPixels *container.Ring[uint8]
}

// NewDecoder builds an APT decoder.
func NewDecoder(opt DecoderOptions) *Decoder {
	d := &Decoder{
		timePerSample: 1 / opt.SampleRate,
		timePerPixel:  1 / BaudRate,
		syncBits:      container.NewRing[uint8](len(SyncA)),
		syncPixels:    container.NewRing[uint8](len(SyncA)),
	}
	d.configurePrefilter(opt)
	d.configureAnalyticalSignal(opt)
	d.configureAGC(opt)
	d.hysteresis = signal.NewDigitalHysteresis(opt.HysteresisThreshold, opt.HysteresisWindow)
	return d
}

func (d *Decoder) configurePrefilter(opt DecoderOptions) {
	numTaps := window.EstimateFilterSizeForTransitionBandwidth(
		opt.PrefilterTransitionBandwidthHz, opt.SampleRate) | 1

	low := (SubCarrierFrequencyHz - BaudRate/2) / opt.SampleRate
	high := (SubCarrierFrequencyHz + BaudRate/2) / opt.SampleRate
	h := window.DesignBandPassFilter(window.Options{Type: window.Hamming}, numTaps, low, high)
	d.prefilter = signal.NewFIR(h)
}

func (d *Decoder) configureAnalyticalSignal(opt DecoderOptions) {
	beta := window.CalculateKaiserBeta(opt.HilbertAttenuationDB)
	dw := opt.HilbertTransitionFrequencyHz / opt.SampleRate
	numTaps := window.CalculateKaiserSize(opt.HilbertAttenuationDB, dw) | 1
	d.analyticalSignal = signal.NewAnalyticalSignalWithWindow(numTaps, window.Options{Type: window.Kaiser, Beta: beta})
}

func (d *Decoder) configureAGC(opt DecoderOptions) {
	samplesPerLine := opt.SampleRate * d.timePerPixel * NumPixelsPerLine
	chargeRate := 2 / (samplesPerLine*opt.AGCChargeNumLines + 1)
	dischargeRate := 2 / (samplesPerLine*opt.AGCDischargeNumLines + 1)
	d.agc = signal.NewEMAAGC(chargeRate, dischargeRate)
}

// Push feeds one audio sample and returns whatever events it produced.
func (d *Decoder) Push(audioSample dspmath.Real) DecodeResult {
	// Every sample runs the full filter chain so state stays warm; only
	// one sample per baud interval is turned into a pixel.
	prefiltered := d.prefilter.Push(audioSample)
	analytic := d.analyticalSignal.Push(d.agc.Push(prefiltered))

	d.timeWithinPixel += d.timePerSample
	if d.timeWithinPixel < d.timePerPixel {
		return emptyDecodeResult()
	}
	d.timeWithinPixel -= d.timePerPixel

	amplitude := dspmath.Sqrt(real(analytic)*real(analytic) + imag(analytic)*imag(analytic))
	pixelFloat := dspmath.Clamp(amplitude, 0, 1)
	pixelInt := uint8(pixelFloat * 255)

	d.linePixels[d.numLinePixels] = pixelInt
	d.numLinePixels++

	bit := uint8(0)
	if d.hysteresis.Push(pixelFloat) {
		bit = 1
	}
	d.syncBits.Push(bit)
	d.syncPixels.Push(pixelInt)

	var events []Event

	if d.isLineSyncDetected() {
		d.resynchronizeCurrentLine()
		events = append(events, Event{Kind: EventLineSynchronization})
	}

	if d.numLinePixels == NumPixelsPerLine {
		events = append(events, Event{Kind: EventLine, Pixels: d.linePixels[:]})
		d.numLinePixels = 0
	}

	return result.OK(events)
}

// isLineSyncDetected reports whether the sliding bit window currently holds
// exactly the Sync A pattern.
func (d *Decoder) isLineSyncDetected() bool {
	if d.syncBits.Size() != len(SyncA) {
		return false
	}
	for i, want := range SyncA {
		if d.syncBits.At(i) != want {
			return false
		}
	}
	return true
}

// resynchronizeCurrentLine restarts the line under assembly so it begins
// with the just-matched synchronization pixels.
func (d *Decoder) resynchronizeCurrentLine() {
	for i := 0; i < d.syncPixels.Size(); i++ {
		d.linePixels[i] = d.syncPixels.At(i)
	}
	d.numLinePixels = d.syncPixels.Size()
}
