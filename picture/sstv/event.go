package sstv

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/result"
)

// EventKind tags which variant an Event holds.
type EventKind int

const (
	EventDecodedVISCode EventKind = iota
	EventLineSynchronization
	EventImagePixelsBegin
	EventImagePixelsRow
	EventImagePixelsEnd
)

// Event is a tagged union of everything a decoder can emit for one input
// sample. At most 4 accumulate in a single DecodeResult, matching the
// handful of things that can coincide on one sample (e.g. the final pixel
// row of a line and the end-of-picture marker).
type Event struct {
	Kind EventKind

	VISCode uint8 // EventDecodedVISCode
	Mode    Mode  // EventImagePixelsBegin

	// Row holds one decoded output image row (ImagePixelsRow); the PD
	// encoding emits two rows (from a shared chroma average) per
	// transmitted scanline.
	Row []dspmath.Color3[uint8]
}

// DecodeResult is the Result type returned by the picture-level decoders
// (LineDecoder, PictureDecoder): a list of Events on success.
type DecodeResult = result.Result[[]Event]

func emptyDecodeResult() DecodeResult {
	return result.OK[[]Event](nil)
}

// Combine concatenates two partial decode results into one, per the
// plumbing's rule that either error propagates and the other's
// already-decoded events stay attached as a partial value.
func Combine(a, b DecodeResult) DecodeResult {
	return result.Combine([]DecodeResult{a, b})
}
