package sstv

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/result"
)

// Decoder is the top-level SSTV decoder: it prefilters raw audio into
// instantaneous frequency samples, looks for a VIS header to identify the
// mode, and decodes the picture that follows, falling back to the picture
// decoder's own line-sync search when no VIS header is heard (e.g. the
// receiver tuned in mid-transmission).
type Decoder struct {
	prefilter      *Prefilter
	visDecoder     *VISDecoder
	pictureDecoder *PictureDecoder
}

// NewDecoder builds a decoder at sampleRate. initialMode seeds the picture
// decoder before any VIS code is seen; ModeUnknown is valid and simply
// leaves the picture decoder idle until OnVerticalSync fires.
func NewDecoder(sampleRate dspmath.Real, initialMode Mode) *Decoder {
	return &Decoder{
		prefilter:      NewPrefilter(sampleRate),
		visDecoder:     NewVISDecoder(DefaultVISDecoderOptions(sampleRate)),
		pictureDecoder: NewPictureDecoder(sampleRate, initialMode),
	}
}

// Push feeds one raw audio sample and returns whatever events it produced.
func (d *Decoder) Push(sample dspmath.Real) DecodeResult {
	frequency := d.prefilter.Push(sample)

	var events []Event

	visResult := d.visDecoder.Push(frequency)
	if visCode, ok := visResult.Value(); ok {
		d.pictureDecoder.OnVerticalSync(visCode, dspmath.Real(d.visDecoder.GetDelayInMilliseconds()))
		events = append(events, Event{Kind: EventDecodedVISCode, VISCode: visCode})
	}

	pictureResult := d.pictureDecoder.Push(frequency)
	if !pictureResult.IsOK() {
		return pictureResult
	}

	return Combine(result.OK(events), pictureResult)
}
