package apt

import (
	"fmt"

	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
)

// Encoder turns a Message into the amplitude samples of an APT
// transmission: every pixel value amplitude-modulates one baud interval of
// the sub-carrier tone.
type Encoder struct {
	generator    *signal.Generator
	fullScaleBit dspmath.FreqDuration
}

// NewEncoder builds an encoder emitting samples at sampleRate Hz.
func NewEncoder(sampleRate dspmath.Real) *Encoder {
	return &Encoder{
		generator:    signal.NewGenerator(sampleRate),
		fullScaleBit: dspmath.NewFreqDuration(SubCarrierFrequencyHz, 1000/BaudRate),
	}
}

// Encode emits the full transmission for message via emit, one amplitude
// sample at a time, and fades the carrier to zero at the end.
func (e *Encoder) Encode(message Message, emit func(sample dspmath.Real)) error {
	if message.ImageA.Width != ImageWidth || message.ImageB.Width != ImageWidth {
		return fmt.Errorf("image width must be %d pixels", ImageWidth)
	}
	if message.ImageA.Height != message.ImageB.Height {
		return fmt.Errorf("channel A and B images must have the same height")
	}

	for row := 0; row < message.ImageA.Height; row++ {
		e.encodeSync(SyncA, emit)
		e.encodeConstant(SpaceWidth, emit)
		e.encodeImageRow(message.ImageA, row, emit)
		e.encodeConstant(TelemetryWidth, emit)

		e.encodeSync(SyncB, emit)
		e.encodeConstant(SpaceWidth, emit)
		e.encodeImageRow(message.ImageB, row, emit)
		e.encodeConstant(TelemetryWidth, emit)
	}

	e.generator.FadeToZero(emit)
	return nil
}

func (e *Encoder) encodeSync(pattern []uint8, emit func(sample dspmath.Real)) {
	for _, bit := range pattern {
		value := uint8(0)
		if bit != 0 {
			value = 255
		}
		e.encodeValue(value, emit)
	}
}

// encodeConstant fills a Space or Telemetry field with full-scale white.
func (e *Encoder) encodeConstant(width int, emit func(sample dspmath.Real)) {
	for i := 0; i < width; i++ {
		e.encodeValue(255, emit)
	}
}

func (e *Encoder) encodeImageRow(im Image, row int, emit func(sample dspmath.Real)) {
	for x := 0; x < ImageWidth; x++ {
		e.encodeValue(im.At(x, row), emit)
	}
}

// encodeValue amplitude-modulates one pixel duration of the sub-carrier.
func (e *Encoder) encodeValue(value uint8, emit func(sample dspmath.Real)) {
	amplitude := dspmath.Real(value) / 255
	e.generator.PushTone(e.fullScaleBit, func(sample dspmath.Real) {
		emit(sample * amplitude)
	})
}
