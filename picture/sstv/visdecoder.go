package sstv

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/result"
	"github.com/skywave-radio/radiocore/signal"
	"github.com/skywave-radio/radiocore/window"
)

// VISResult is the VIS decoder's own result type: a decoded 8-bit VIS code
// on success, result.KindUnavailable while still pattern matching.
type VISResult = result.Result[uint8]

func visUnavailable() VISResult {
	return result.Fail[uint8](result.KindUnavailable, "VIS code not complete")
}

// visState is the VIS decoder's pattern-matching state machine:
//
//	waitLeader1 -> sampleLeader1 -> waitBreak -> sampleBreak ->
//	waitLeader2 -> sampleLeader2 -> waitLeaderEdge -> sampleCode
type visState int

const (
	visWaitLeaderAfterReset visState = iota
	visWaitLeaderAfterBreak
	visSampleLeader
	visWaitBreak
	visSampleBreak
	visWaitLeaderEdge
	visSampleCode
)

// VISDecoderOptions configures a VISDecoder. The defaults are empirically
// tuned against clean 44.1 kHz recordings.
type VISDecoderOptions struct {
	SampleRate dspmath.Real

	PrefilterTransitionBandwidth dspmath.Real // default 280 Hz
	PrefilterFrequencyCutoff     dspmath.Real // default 300 Hz

	FrequencyTolerance      dspmath.Real // default 50 Hz
	TransitionMilliseconds  dspmath.Real // default 4 ms
	PLLInertia              dspmath.Real // default 0.75
	EdgeSampleWeight        dspmath.Real // default 0.25
	EdgeSampleSlowWeight    dspmath.Real // default 0.025
	EdgeThreshold           dspmath.Real // default 180
}

// DefaultVISDecoderOptions returns VISDecoderOptions with every tunable at
// its default, for the given sample rate.
func DefaultVISDecoderOptions(sampleRate dspmath.Real) VISDecoderOptions {
	return VISDecoderOptions{
		SampleRate:                   sampleRate,
		PrefilterTransitionBandwidth: 280,
		PrefilterFrequencyCutoff:     300,
		FrequencyTolerance:           50,
		TransitionMilliseconds:       4,
		PLLInertia:                   0.75,
		EdgeSampleWeight:             0.25,
		EdgeSampleSlowWeight:         0.025,
		EdgeThreshold:                180,
	}
}

// VISDecoder pattern-matches a VIS header out of a stream of pre-filtered
// instantaneous frequency samples.
type VISDecoder struct {
	prefilter *signal.FIR[float32]
	delayMS   int

	leaderInterval    dspmath.Interval[dspmath.Real]
	breakInterval     dspmath.Interval[dspmath.Real]
	startBitInterval  dspmath.Interval[dspmath.Real]
	bitZeroInterval   dspmath.Interval[dspmath.Real]
	bitOneInterval    dspmath.Interval[dspmath.Real]
	stopBitInterval   dspmath.Interval[dspmath.Real]

	numExpectedLeaderSamples int
	numExpectedBreakSamples  int
	numTransitionSamples     int

	pll              *signal.DigitalPLL
	codeSampleWeight dspmath.Real

	edgeDetector *signal.EdgeDetector

	state                 visState
	numSamplesInState     int
	numDecodedLeaderTones int

	averagedFrequency dspmath.Real
	numDecodedBits    int
	decodedCode       int
	numOnesInCode     int
	skipNextBit       bool
}

// NewVISDecoder builds and configures a VIS decoder.
func NewVISDecoder(opt VISDecoderOptions) *VISDecoder {
	d := &VISDecoder{}
	d.configurePrefilter(opt)
	d.configureTolerances(opt)
	d.configureDataSampler(opt)
	d.edgeDetector = signal.NewEdgeDetector(opt.EdgeSampleWeight, opt.EdgeSampleSlowWeight, opt.EdgeThreshold, false, true)
	d.Reset()
	return d
}

func (d *VISDecoder) configurePrefilter(opt VISDecoderOptions) {
	transitionBW := opt.PrefilterTransitionBandwidth / opt.SampleRate
	numTaps := window.CalculateKaiserSize(53, transitionBW) | 1
	d.delayMS = int(dspmath.Real(numTaps-1) / 2 * 1000 / opt.SampleRate)

	cutoff := opt.PrefilterFrequencyCutoff / opt.SampleRate
	h := window.DesignLowPassFilter(window.Options{Type: window.Hamming}, numTaps, cutoff)
	d.prefilter = signal.NewFIR(h)
}

func (d *VISDecoder) configureTolerances(opt VISDecoderOptions) {
	tol := opt.FrequencyTolerance
	d.leaderInterval = dspmath.NewPointInterval(visLeaderTone.FrequencyHz).Expanded(tol)
	d.breakInterval = dspmath.NewPointInterval(visBreakTone.FrequencyHz).Expanded(tol)
	d.startBitInterval = dspmath.NewPointInterval(visStartBit.FrequencyHz).Expanded(tol)
	d.bitZeroInterval = dspmath.NewPointInterval(visBitValueZero.FrequencyHz).Expanded(tol)
	d.bitOneInterval = dspmath.NewPointInterval(visBitValueOne.FrequencyHz).Expanded(tol)
	d.stopBitInterval = dspmath.NewPointInterval(visStopBit.FrequencyHz).Expanded(tol)

	samplesPerMS := opt.SampleRate / 1000
	d.numExpectedLeaderSamples = int((visLeaderTone.DurationMS - opt.TransitionMilliseconds) * samplesPerMS)
	d.numExpectedBreakSamples = int((visBreakTone.DurationMS - opt.TransitionMilliseconds) * samplesPerMS)
	d.numTransitionSamples = int(opt.TransitionMilliseconds * 2 * samplesPerMS)
}

func (d *VISDecoder) configureDataSampler(opt VISDecoderOptions) {
	// VIS baud is 33.3 periodic; scale both rates by 3 so the fixed-point
	// PLL advance is computed from an exact integer baud.
	d.pll = signal.NewDigitalPLL(signal.DigitalPLLOptions{
		DataBaud:   100,
		SampleRate: opt.SampleRate * 3,
		Inertia:    opt.PLLInertia,
	})

	bitDurationSamples := visBitDurationMS / 1000 * opt.SampleRate
	d.codeSampleWeight = 100 / bitDurationSamples
}

// GetDelayInMilliseconds returns this decoder's processing delay, measured
// from the prefilter's group delay, so the caller can offset a downstream
// line clock to the same reference point.
func (d *VISDecoder) GetDelayInMilliseconds() int { return d.delayMS }

// Reset returns the decoder to its initial pattern-matching state.
func (d *VISDecoder) Reset() {
	d.state = visWaitLeaderAfterReset
	d.numDecodedLeaderTones = 0
}

// Push feeds one (pre-prefilter) frequency sample.
func (d *VISDecoder) Push(sample dspmath.Real) VISResult {
	frequency := d.prefilter.Push(sample)
	_, falling := d.edgeDetector.Push(frequency)

	switch d.state {
	case visWaitLeaderAfterReset:
		return d.handleWaitLeaderAfterReset(frequency)
	case visWaitLeaderAfterBreak:
		return d.handleWaitLeaderAfterBreak(frequency)
	case visSampleLeader:
		return d.handleSampleLeader(frequency)
	case visWaitBreak:
		return d.handleWaitBreak(frequency)
	case visSampleBreak:
		return d.handleSampleBreak(frequency)
	case visWaitLeaderEdge:
		return d.handleWaitLeaderEdge(falling)
	case visSampleCode:
		return d.handleSampleCode(frequency)
	}

	return visUnavailable()
}

func (d *VISDecoder) handleWaitLeaderAfterReset(frequency dspmath.Real) VISResult {
	if !d.leaderInterval.Contains(frequency) {
		d.Reset()
		return visUnavailable()
	}
	d.switchToSampleLeader()
	return visUnavailable()
}

func (d *VISDecoder) switchToWaitLeaderAfterBreak() {
	d.state = visWaitLeaderAfterBreak
	d.numSamplesInState = 0
}

func (d *VISDecoder) handleWaitLeaderAfterBreak(frequency dspmath.Real) VISResult {
	if d.leaderInterval.Contains(frequency) {
		d.switchToSampleLeader()
		return visUnavailable()
	}
	d.numSamplesInState++
	if d.numSamplesInState > d.numTransitionSamples {
		d.Reset()
	}
	return visUnavailable()
}

func (d *VISDecoder) switchToSampleLeader() {
	d.state = visSampleLeader
	d.numSamplesInState = 0
}

func (d *VISDecoder) handleSampleLeader(frequency dspmath.Real) VISResult {
	if !d.leaderInterval.Contains(frequency) {
		d.Reset()
		return visUnavailable()
	}

	d.numSamplesInState++
	if d.numSamplesInState < d.numExpectedLeaderSamples {
		return visUnavailable()
	}

	d.numDecodedLeaderTones++
	switch d.numDecodedLeaderTones {
	case 1:
		d.switchToWaitBreak()
	case 2:
		d.switchToWaitLeaderEdge()
	}
	return visUnavailable()
}

func (d *VISDecoder) switchToWaitBreak() {
	d.state = visWaitBreak
	d.numSamplesInState = 0
}

func (d *VISDecoder) handleWaitBreak(frequency dspmath.Real) VISResult {
	if d.breakInterval.Contains(frequency) {
		d.switchToSampleBreak()
		return visUnavailable()
	}
	d.numSamplesInState++
	if d.numSamplesInState > d.numTransitionSamples {
		d.Reset()
		return visUnavailable()
	}
	return visUnavailable()
}

func (d *VISDecoder) switchToSampleBreak() {
	d.state = visSampleBreak
	d.numSamplesInState = 0
}

func (d *VISDecoder) handleSampleBreak(frequency dspmath.Real) VISResult {
	if !d.breakInterval.Contains(frequency) {
		d.Reset()
		return visUnavailable()
	}
	d.numSamplesInState++
	if d.numSamplesInState < d.numExpectedBreakSamples {
		return visUnavailable()
	}
	d.switchToWaitLeaderAfterBreak()
	return visUnavailable()
}

func (d *VISDecoder) switchToWaitLeaderEdge() {
	d.state = visWaitLeaderEdge
	d.numSamplesInState = 0
}

func (d *VISDecoder) handleWaitLeaderEdge(falling bool) VISResult {
	if falling {
		d.switchToSampleCode()
		return visUnavailable()
	}
	d.numSamplesInState++
	if d.numSamplesInState > d.numTransitionSamples {
		d.Reset()
	}
	return visUnavailable()
}

func (d *VISDecoder) switchToSampleCode() {
	d.state = visSampleCode
	d.numSamplesInState = 0
	d.skipNextBit = false
	d.numDecodedBits = 0
	d.decodedCode = 0
	d.numOnesInCode = 0
	d.averagedFrequency = visStartBit.FrequencyHz
	d.pll.Reset()
}

type visBitValue int

const (
	visBitUnknown visBitValue = iota - 1
	visBitZero
	visBitOne
	visBitStartStop
)

func (d *VISDecoder) handleSampleCode(frequency dspmath.Real) VISResult {
	d.averagedFrequency = dspmath.Lerp(d.averagedFrequency, frequency, d.codeSampleWeight)

	if !d.pll.Push(0) {
		return visUnavailable()
	}

	if d.skipNextBit {
		d.Reset()
		return result.OK(uint8(d.decodedCode))
	}

	bit := visBitUnknown
	switch {
	case d.bitZeroInterval.Contains(d.averagedFrequency):
		bit = visBitZero
	case d.bitOneInterval.Contains(d.averagedFrequency):
		bit = visBitOne
	case d.startBitInterval.Contains(d.averagedFrequency), d.stopBitInterval.Contains(d.averagedFrequency):
		bit = visBitStartStop
	}

	d.numDecodedBits++

	if d.numDecodedBits == 1 {
		if bit != visBitStartStop {
			d.Reset()
		}
		return visUnavailable()
	}

	// 10 is start bit, 7 code bits, 1 parity bit, 1 stop bit.
	if d.numDecodedBits == 10 {
		if bit != visBitStartStop {
			d.Reset()
		}
		d.skipNextBit = true
		d.pll.Reset()
		return visUnavailable()
	}

	if bit != visBitZero && bit != visBitOne {
		return visUnavailable()
	}

	intBit := int(bit)

	// 9 is 1 start bit, 7 code bits, 1 parity bit; parity must be even.
	if d.numDecodedBits == 9 {
		if (d.numOnesInCode & 1) != intBit {
			d.Reset()
		}
		return visUnavailable()
	}

	d.decodedCode |= intBit << (d.numDecodedBits - 2)
	d.numOnesInCode += intBit

	return visUnavailable()
}
