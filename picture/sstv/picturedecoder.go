package sstv

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/result"
)

// PictureDecoder composes LineSync and LineDecoder: it can synchronize to
// a transmission either from an external VIS decode or by finding the
// horizontal line-sync tone on its own.
type PictureDecoder struct {
	lineSync    *LineSync
	lineDecoder *LineDecoder
}

// NewPictureDecoder builds a picture decoder for mode at sampleRate.
func NewPictureDecoder(sampleRate dspmath.Real, mode Mode) *PictureDecoder {
	return &PictureDecoder{
		lineSync:    NewLineSync(mode, sampleRate),
		lineDecoder: NewLineDecoder(sampleRate, mode),
	}
}

// Push feeds one frequency sample, forwarding it to both the line-sync
// detector and the line decoder and combining their events.
func (p *PictureDecoder) Push(frequency dspmath.Real) DecodeResult {
	var syncEvents []Event
	p.lineSync.Push(frequency, func() {
		p.lineDecoder.OnLineSync()
		syncEvents = append(syncEvents, Event{Kind: EventLineSynchronization})
	})

	lineResult := p.lineDecoder.Push(frequency)
	return Combine(emptyResultOK(syncEvents), lineResult)
}

// OnVerticalSync informs the decoder that a VIS code was decoded upstream,
// selecting the mode and synchronizing the line decoder's time cursor.
func (p *PictureDecoder) OnVerticalSync(visCode uint8, lineTimeOffsetMS dspmath.Real) {
	p.lineDecoder.OnVerticalSync(visCode, lineTimeOffsetMS)
}

func emptyResultOK(events []Event) DecodeResult {
	return result.OK(events)
}
