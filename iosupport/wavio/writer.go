package wavio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/skywave-radio/radiocore/dspmath"
)

// Writer streams normalized [-1, 1] float32 frames into a PCM WAV file.
type Writer struct {
	encoder *wav.Encoder

	numChannels int
	scale       dspmath.Real
	format      *audio.Format
}

// NewWriter wraps ws as a PCM WAV sink. bitDepth must be 16, 24 or 32;
// numChannels 1 or 2.
func NewWriter(ws io.WriteSeeker, sampleRate, bitDepth, numChannels int) (*Writer, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	if numChannels != 1 && numChannels != 2 {
		return nil, fmt.Errorf("unsupported channel count %d", numChannels)
	}

	return &Writer{
		encoder:     wav.NewEncoder(ws, sampleRate, bitDepth, numChannels, 1),
		numChannels: numChannels,
		scale:       dspmath.Real(int64(1)<<(bitDepth-1)) - 1,
		format:      &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
	}, nil
}

// WriteSamples appends interleaved frames, clamping each sample to the
// [-1, 1] range before quantization. len(samples) must be a multiple of
// the channel count.
func (w *Writer) WriteSamples(samples []dspmath.Real) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(dspmath.Clamp(s, -1, 1) * w.scale)
	}
	return w.encoder.Write(&audio.IntBuffer{
		Format:         w.format,
		SourceBitDepth: w.encoder.BitDepth,
		Data:           data,
	})
}

// Close finalizes the WAV header. The Writer is unusable afterwards.
func (w *Writer) Close() error {
	return w.encoder.Close()
}
