package signalpath

import (
	"sync"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/modulation/analog"
	"github.com/skywave-radio/radiocore/signal"
)

// InputOptions configures the IQ input stage of a SignalPath.
type InputOptions struct {
	// SampleRate of the incoming IQ samples, in Hz.
	SampleRate int

	// FrequencyShift is where the station of interest sits in the input
	// IQ sample spectrum, in Hz relative to the capture center. The path
	// moves that frequency to DC before filtering and demodulating.
	FrequencyShift dspmath.Real
}

// ReceiveFilterPathOptions configures the receive filter as seen from the
// signal path: the bandwidth of interest plus two shaping factors.
type ReceiveFilterPathOptions struct {
	// Bandwidth of the receive filter, in Hz.
	Bandwidth dspmath.Real

	// BandwidthAccuracy (0, 1] loosens the decimation schedule: allowing
	// the filter band to be off by a few percent can keep the IF rate at a
	// divisor of the input rate and save a large constant factor of
	// per-sample work.
	BandwidthAccuracy dspmath.Real

	// TransitionBandFactor sizes the filter's transition band as a
	// fraction of the bandwidth.
	TransitionBandFactor dspmath.Real
}

// AudioOptions configures the audio output stage.
type AudioOptions struct {
	// SampleRate of the audio output, in Hz. Must evenly divide the input
	// sample rate.
	SampleRate int

	AGCChargeRate    dspmath.Real
	AGCDischargeRate dspmath.Real

	// SoftStartupTime ramps the audio volume from 0 on the first boot of
	// the path; SoftConfigureTime does the same whenever the modulation
	// type changes. Both in seconds. The ramps mask the pop the AGC would
	// otherwise produce while re-adapting.
	SoftStartupTime   dspmath.Real
	SoftConfigureTime dspmath.Real
}

// Options is the full configuration of a SignalPath.
type Options struct {
	Input         InputOptions
	ReceiveFilter ReceiveFilterPathOptions
	Demodulator   DemodulatorOptions
	Audio         AudioOptions
}

// DefaultOptions returns Options with every tunable at its conventional
// default for the given rates and modulation type.
func DefaultOptions(inputSampleRate, audioSampleRate int, modulationType analog.Type) Options {
	return Options{
		Input: InputOptions{SampleRate: inputSampleRate},
		ReceiveFilter: ReceiveFilterPathOptions{
			Bandwidth:            12000,
			BandwidthAccuracy:    0.95,
			TransitionBandFactor: 0.05,
		},
		Demodulator: DefaultDemodulatorOptions(modulationType),
		Audio: AudioOptions{
			SampleRate:        audioSampleRate,
			AGCChargeRate:     0.007,
			AGCDischargeRate:  0.00003,
			SoftStartupTime:   1,
			SoftConfigureTime: 0.1,
		},
	}
}

// SignalPath is the composed receive chain:
//
//	IQ in -> frequency shift -> decimate to IF -> receive filter ->
//	      -> IF sinks -> demodulate -> decimate to AF -> AGC ->
//	      -> soft-start gain -> AF sinks
//
// The input frequency shifter also folds in a bandwidth offset that centers
// the sideband of interest around DC (nonzero only for SSB), so a
// real-coefficient low-pass suffices as the receive filter; a second
// shifter cancels the offset after filtering.
//
// All configuration and processing is serialized behind an internal mutex,
// so the path may be reconfigured from a different goroutine than the one
// pushing samples. Everything else in this module is single-owner.
type SignalPath struct {
	mu sync.Mutex

	iqFrequencyShifter *signal.FreqShifter
	ifDecimator        *signal.Decimator[complex64]
	receiveFilter      *ReceiveFilter
	ifFrequencyShifter *signal.FreqShifter
	demodulator        demodulator
	afDecimator        *signal.Decimator[dspmath.Real]
	agc                *signal.EMAAGC

	softStartVolume     dspmath.Real
	softStartWeight     dspmath.Real
	softConfigureVolume dspmath.Real
	softConfigureWeight dspmath.Real

	ifSinks sinkCollection[complex64]
	afSinks sinkCollection[dspmath.Real]

	iqBuffer []complex64
	ifBuffer []complex64
	afBuffer []dspmath.Real

	inputSampleRate int
	ifSampleRate    int
	afSampleRate    int

	configured bool
}

// NewSignalPath builds and configures a signal path. The input sample rate
// must be an integer multiple of the audio sample rate.
func NewSignalPath(options Options) (*SignalPath, error) {
	p := &SignalPath{
		ifDecimator:  signal.NewDecimator[complex64](1),
		afDecimator:  signal.NewDecimator[dspmath.Real](1),
		agc:          signal.NewEMAAGC(0.007, 0.00003),
		softConfigureVolume: 1,
	}
	if err := p.Configure(options); err != nil {
		return nil, err
	}
	return p, nil
}

// Configure reconfigures the whole path. Safe to call while another
// goroutine is pushing samples; the two are serialized.
func (p *SignalPath) Configure(options Options) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.configured || p.demodulator.modulationType != options.Demodulator.ModulationType {
		p.resetSoftAudioStart()
	}

	if err := p.configureDecimation(options); err != nil {
		return err
	}
	p.configureFrequencyShifters(options)
	p.configureReceiveFilter(options)
	p.demodulator.configure(options.Demodulator, dspmath.Real(p.ifSampleRate))
	p.configureAudioOutput(options)

	if !p.configured {
		p.configured = true
		p.softStartVolume = 0
	}
	return nil
}

func (p *SignalPath) configureDecimation(options Options) error {
	ratios, err := CalculateStageRatios(
		options.Input.SampleRate,
		options.Audio.SampleRate,
		float32(options.ReceiveFilter.Bandwidth*options.ReceiveFilter.BandwidthAccuracy))
	if err != nil {
		return err
	}

	p.inputSampleRate = options.Input.SampleRate
	p.afSampleRate = options.Audio.SampleRate
	p.ifSampleRate = options.Input.SampleRate / ratios.IQToIF

	p.ifDecimator.SetRatio(ratios.IQToIF)
	p.afDecimator.SetRatio(ratios.IFToAF)
	return nil
}

// bandwidthOffsetToCenter is the shift that moves the sideband of interest
// to be centered around DC: 0 for double-sideband types, -+bandwidth/2 for
// USB/LSB.
func bandwidthOffsetToCenter(options Options) dspmath.Real {
	band := analog.BandwidthIntervalAroundCenter(
		options.Demodulator.ModulationType, options.ReceiveFilter.Bandwidth)
	return -(band.Lower + band.Upper) / 2
}

func (p *SignalPath) configureFrequencyShifters(options Options) {
	offset := bandwidthOffsetToCenter(options)

	inputShift := options.Input.FrequencyShift + offset
	if p.iqFrequencyShifter == nil {
		p.iqFrequencyShifter = signal.NewFreqShifter(inputShift, dspmath.Real(p.inputSampleRate))
	} else {
		p.iqFrequencyShifter.SetShift(inputShift)
	}

	if p.ifFrequencyShifter == nil {
		p.ifFrequencyShifter = signal.NewFreqShifter(-offset, dspmath.Real(p.ifSampleRate))
	} else {
		p.ifFrequencyShifter.SetShift(-offset)
	}
}

func (p *SignalPath) configureReceiveFilter(options Options) {
	opt := ReceiveFilterOptions{
		SampleRate:     dspmath.Real(p.ifSampleRate),
		Bandwidth:      options.ReceiveFilter.Bandwidth,
		TransitionBand: options.ReceiveFilter.Bandwidth * options.ReceiveFilter.TransitionBandFactor,
	}
	if p.receiveFilter == nil {
		p.receiveFilter = NewReceiveFilter(opt)
	} else {
		p.receiveFilter.Configure(opt)
	}
}

func (p *SignalPath) configureAudioOutput(options Options) {
	p.agc.Configure(options.Audio.AGCChargeRate, options.Audio.AGCDischargeRate)

	afRate := dspmath.Real(options.Audio.SampleRate)
	p.softStartWeight = 1 / (options.Audio.SoftStartupTime * afRate)
	p.softConfigureWeight = 1 / (options.Audio.SoftConfigureTime * afRate)
}

func (p *SignalPath) resetSoftAudioStart() {
	p.softConfigureVolume = 0
	p.agc.Reset()
}

// ResetSoftAudioStart resets the AGC and forces the audio volume to ramp
// back up from zero.
func (p *SignalPath) ResetSoftAudioStart() {
	p.mu.Lock()
	p.resetSoftAudioStart()
	p.mu.Unlock()
}

// AddIFSink attaches a sink observing filtered IQ samples at the IF rate.
// The path references the sink; detach it before discarding.
func (p *SignalPath) AddIFSink(sink Sink[complex64]) {
	p.mu.Lock()
	p.ifSinks.add(sink)
	p.mu.Unlock()
}

// RemoveIFSink detaches a previously attached IF sink.
func (p *SignalPath) RemoveIFSink(sink Sink[complex64]) {
	p.mu.Lock()
	p.ifSinks.remove(sink)
	p.mu.Unlock()
}

// AddAFSink attaches a sink observing demodulated audio samples at the AF
// rate, after AGC and the soft-start gain.
func (p *SignalPath) AddAFSink(sink Sink[dspmath.Real]) {
	p.mu.Lock()
	p.afSinks.add(sink)
	p.mu.Unlock()
}

// RemoveAFSink detaches a previously attached AF sink.
func (p *SignalPath) RemoveAFSink(sink Sink[dspmath.Real]) {
	p.mu.Lock()
	p.afSinks.remove(sink)
	p.mu.Unlock()
}

// PushSamples runs a span of input IQ samples through the whole path,
// pushing the intermediate and audio results to the attached sinks. Work
// buffers grow to the largest span seen and are reused afterwards.
func (p *SignalPath) PushSamples(inputIQSamples []complex64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	decimatedIFSize := p.ifDecimator.CalcNeededOutputBufferSize(len(inputIQSamples))
	filteredIFSize := p.receiveFilter.CalcNeededOutputBufferSize(decimatedIFSize)
	ifBufferSize := decimatedIFSize
	if filteredIFSize > ifBufferSize {
		ifBufferSize = filteredIFSize
	}

	p.iqBuffer = growTo(p.iqBuffer, len(inputIQSamples))
	p.ifBuffer = growTo(p.ifBuffer, ifBufferSize)
	p.afBuffer = growTo(p.afBuffer, ifBufferSize)

	shifted := p.iqBuffer[:len(inputIQSamples)]
	p.iqFrequencyShifter.Process(inputIQSamples, shifted)

	ifSamples := p.ifDecimator.Process(shifted, p.ifBuffer)
	filtered := p.receiveFilter.Process(ifSamples, p.ifBuffer)

	// Undo the sideband-centering offset before demodulation.
	p.ifFrequencyShifter.Process(filtered, filtered)

	p.ifSinks.pushSamples(filtered)

	demodulated := p.demodulator.process(filtered, p.afBuffer)
	afSamples := p.afDecimator.Process(demodulated, demodulated)

	for i, sample := range afSamples {
		afSamples[i] = p.agc.Push(sample) * p.softStartVolume * p.softConfigureVolume

		if p.softStartVolume < 1 {
			p.softStartVolume += p.softStartWeight
			if p.softStartVolume > 1 {
				p.softStartVolume = 1
			}
		}
		if p.softConfigureVolume < 1 {
			p.softConfigureVolume += p.softConfigureWeight
			if p.softConfigureVolume > 1 {
				p.softConfigureVolume = 1
			}
		}
	}

	p.afSinks.pushSamples(afSamples)
}

// InputSampleRate returns the configured input IQ sample rate.
func (p *SignalPath) InputSampleRate() int { return p.inputSampleRate }

// IFSampleRate returns the computed intermediate frequency sample rate.
func (p *SignalPath) IFSampleRate() int { return p.ifSampleRate }

// AFSampleRate returns the configured audio output sample rate.
func (p *SignalPath) AFSampleRate() int { return p.afSampleRate }

// ReceiveFilterInfo reports the actual receive filter configuration: its
// bandwidth and transition band in Hz, kernel size in taps, and internal
// down-fir-up decimation ratio.
func (p *SignalPath) ReceiveFilterInfo() (bandwidth, transitionBand dspmath.Real, kernelSize, decimationRatio int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.receiveFilter.Bandwidth(), p.receiveFilter.TransitionBand(),
		p.receiveFilter.KernelSize(), p.receiveFilter.DecimationRatio()
}

// growTo grows buf to at least size elements, reusing the existing backing
// array where possible. Buffers only ever grow.
func growTo[T any](buf []T, size int) []T {
	if cap(buf) >= size {
		return buf[:cap(buf)]
	}
	return make([]T, size)
}
