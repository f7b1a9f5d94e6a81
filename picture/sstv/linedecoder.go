package sstv

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/result"
)

const (
	maxImageWidth        = 800
	maxNumPixelsPerLine  = 4 * maxImageWidth
	defaultPixelAverageW = dspmath.Real(0.85)
)

type lineDecoderState int

const (
	lineDecoderWaitForSyncEvent lineDecoderState = iota
	lineDecoderDecodeLine
)

// LineDecoder decodes scanlines once externally triggered by either a VIS
// code (OnVerticalSync, which also selects the mode) or a horizontal sync
// detection (OnLineSync). It samples a pixel's luma at the trailing edge
// of its tone duration, averaging frequency with an EMA so a brief
// transition at a tone boundary doesn't bleed into the sampled value.
type LineDecoder struct {
	sampleRate             dspmath.Real
	timeMSPerSample        dspmath.Real
	pixelAverageWeight     dspmath.Real

	modeSpec ModeSpec

	totalSyncTimeMS dspmath.Real
	totalLineTimeMS dspmath.Real

	state lineDecoderState

	numLineSamples        int
	lineStartOffsetMS     dspmath.Real
	numDecodedLines       int
	pixelsDecodeStarted   bool
	numDecodedPixelsInLine int

	linePixelsLuma   [maxNumPixelsPerLine]dspmath.Real
	pixelFreqAverage dspmath.Real
	nextPixelSampleT dspmath.Real
}

// NewLineDecoder builds a line decoder at sampleRate, initially configured
// for mode (ModeUnknown is valid; the decoder stays idle until a sync
// event selects a real mode).
func NewLineDecoder(sampleRate dspmath.Real, mode Mode) *LineDecoder {
	d := &LineDecoder{
		sampleRate:         sampleRate,
		timeMSPerSample:    1000 / sampleRate,
		pixelAverageWeight: defaultPixelAverageW,
	}
	d.SetMode(mode)
	d.Reset()
	return d
}

// SetMode reconfigures the decoder for a new mode spec.
func (d *LineDecoder) SetMode(mode Mode) {
	d.modeSpec = GetModeSpec(mode)
	d.totalSyncTimeMS = d.modeSpec.LineSync.DurationMS + d.modeSpec.LinePorch.DurationMS
	d.totalLineTimeMS = d.totalSyncTimeMS + d.modeSpec.LinePixelsDurationMS()
}

// Reset returns the decoder to waiting for a sync event.
func (d *LineDecoder) Reset() {
	d.state = lineDecoderWaitForSyncEvent
}

// OnVerticalSync informs the decoder that a VIS code was decoded, which
// also selects the mode. lineTimeOffsetMS is how far into the line-sync
// pulse the VIS decoder is at the moment it fires, to compensate for its
// own processing delay.
func (d *LineDecoder) OnVerticalSync(visCode uint8, lineTimeOffsetMS dspmath.Real) {
	mode := GetModeFromVISCode(visCode)
	if mode == ModeUnknown {
		return
	}
	d.SetMode(mode)
	d.state = lineDecoderWaitForSyncEvent
	d.switchOrSyncToDecodeLine(lineTimeOffsetMS)
}

// OnLineSync informs the decoder that horizontal line synchronization was
// detected at the current sample.
func (d *LineDecoder) OnLineSync() {
	d.switchOrSyncToDecodeLine(d.modeSpec.LineSync.DurationMS)
}

func (d *LineDecoder) switchOrSyncToDecodeLine(lineTimeOffsetMS dspmath.Real) {
	if d.state == lineDecoderWaitForSyncEvent {
		d.state = lineDecoderDecodeLine
		d.numDecodedLines = 0
	}

	d.lineStartOffsetMS = lineTimeOffsetMS
	d.numLineSamples = 0
	d.pixelsDecodeStarted = false
}

// Push feeds one frequency sample.
func (d *LineDecoder) Push(frequency dspmath.Real) DecodeResult {
	switch d.state {
	case lineDecoderWaitForSyncEvent:
		return emptyDecodeResult()
	case lineDecoderDecodeLine:
		return d.handleDecodeLine(frequency)
	}
	return emptyDecodeResult()
}

func (d *LineDecoder) handleDecodeLine(frequency dspmath.Real) DecodeResult {
	var events []Event

	d.numLineSamples++
	currentLineTime := d.lineStartOffsetMS + d.timeMSPerSample*dspmath.Real(d.numLineSamples)

	d.pixelFreqAverage = dspmath.Lerp(d.pixelFreqAverage, frequency, d.pixelAverageWeight)

	switch {
	case d.pixelsDecodeStarted:
		if d.numDecodedPixelsInLine < d.modeSpec.NumPixelsPerLine && currentLineTime >= d.nextPixelSampleT {
			d.linePixelsLuma[d.numDecodedPixelsInLine] = FrequencyToLuma(d.modeSpec, d.pixelFreqAverage)
			d.numDecodedPixelsInLine++
			d.nextPixelSampleT = d.totalSyncTimeMS + dspmath.Real(d.numDecodedPixelsInLine+1)*d.modeSpec.PixelDurationMS
		}

	case currentLineTime >= d.totalSyncTimeMS:
		d.pixelsDecodeStarted = true
		d.numDecodedPixelsInLine = 0
		d.nextPixelSampleT = d.totalSyncTimeMS + d.modeSpec.PixelDurationMS
		d.pixelFreqAverage = frequency
	}

	if currentLineTime > d.totalLineTimeMS {
		if d.numDecodedLines == 0 {
			events = append(events, Event{Kind: EventImagePixelsBegin, Mode: d.modeSpec.Mode})
		}

		events = append(events, d.decodePixelLuma()...)
		d.numDecodedLines++

		if d.numDecodedLines == d.modeSpec.NumLines {
			events = append(events, Event{Kind: EventImagePixelsEnd})
			d.Reset()
			return result.OK(events)
		}

		d.numLineSamples = 0
		d.lineStartOffsetMS = currentLineTime - d.totalLineTimeMS
		d.pixelsDecodeStarted = false
	}

	return result.OK(events)
}

func (d *LineDecoder) decodePixelLuma() []Event {
	switch d.modeSpec.LineEncoding {
	case LineEncodingYCCAverageCrCb:
		return d.decodeYCbCrAverageCrCb()
	default:
		return nil
	}
}

func (d *LineDecoder) decodeYCbCrAverageCrCb() []Event {
	width := d.modeSpec.ImageWidth

	line1 := make([]dspmath.Color3[uint8], width)
	for x := 0; x < width; x++ {
		y := d.linePixelsLuma[x+width*0]
		cb := d.linePixelsLuma[x+width*2]
		cr := d.linePixelsLuma[x+width*1]
		rgb := dspmath.YCbCrToRGB(y, cb, cr)
		line1[x] = dspmath.Color3[uint8]{R: dspmath.ToByte(rgb.R), G: dspmath.ToByte(rgb.G), B: dspmath.ToByte(rgb.B)}
	}

	line2 := make([]dspmath.Color3[uint8], width)
	for x := 0; x < width; x++ {
		y := d.linePixelsLuma[x+width*3]
		cb := d.linePixelsLuma[x+width*2]
		cr := d.linePixelsLuma[x+width*1]
		rgb := dspmath.YCbCrToRGB(y, cb, cr)
		line2[x] = dspmath.Color3[uint8]{R: dspmath.ToByte(rgb.R), G: dspmath.ToByte(rgb.G), B: dspmath.ToByte(rgb.B)}
	}

	return []Event{
		{Kind: EventImagePixelsRow, Row: line1},
		{Kind: EventImagePixelsRow, Row: line2},
	}
}
