package sstv

import (
	"fmt"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
)

// Encoder is the top-level SSTV encoder: it renders the VOX preamble, the
// VIS header for the message's mode, and the picture scanlines into a
// single phase-continuous stream of amplitude samples.
type Encoder struct {
	generator *signal.Generator
}

// NewEncoder builds an encoder emitting samples at sampleRate Hz.
func NewEncoder(sampleRate dspmath.Real) *Encoder {
	return &Encoder{generator: signal.NewGenerator(sampleRate)}
}

// Encode emits the full transmission for message via emit, one amplitude
// sample at a time, and fades the carrier to zero at the end.
func (e *Encoder) Encode(message Message, emit func(sample dspmath.Real)) error {
	spec := GetModeSpec(message.Mode)
	if spec.Mode == ModeUnknown {
		return fmt.Errorf("unsupported SSTV mode")
	}

	tone := func(t dspmath.FreqDuration) {
		e.generator.PushTone(t, emit)
	}

	EncodeVOX(tone)
	EncodeVIS(spec.VISCode, tone)
	if err := EncodePicture(message, tone); err != nil {
		return err
	}

	e.generator.FadeToZero(emit)
	return nil
}
