// Package wavio adapts the go-audio WAV codec to the float32 sample spans
// the DSP pipeline works in. It owns no signal processing; the tools use it
// to stream one channel of a recording in and to write demodulated audio
// back out.
package wavio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/skywave-radio/radiocore/dspmath"
)

// readChunkFrames is how many frames are pulled from the decoder at a time.
const readChunkFrames = 4096

// Reader streams one channel of a PCM WAV file as normalized [-1, 1]
// float32 samples.
type Reader struct {
	decoder *wav.Decoder

	channel     int
	numChannels int
	scale       dspmath.Real

	buf     *audio.IntBuffer
	pending []int
}

// NewReader wraps rs as a streaming sample source for the given 1-based
// channel index.
func NewReader(rs io.ReadSeeker, channel int) (*Reader, error) {
	decoder := wav.NewDecoder(rs)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("seeking to PCM data: %w", err)
	}

	numChannels := int(decoder.NumChans)
	if channel < 1 || channel > numChannels {
		return nil, fmt.Errorf("channel %d out of range, file has %d channel(s)", channel, numChannels)
	}

	return &Reader{
		decoder:     decoder,
		channel:     channel,
		numChannels: numChannels,
		scale:       1 / dspmath.Real(int64(1)<<(decoder.BitDepth-1)),
		buf: &audio.IntBuffer{
			Format: decoder.Format(),
			Data:   make([]int, readChunkFrames*numChannels),
		},
	}, nil
}

// SampleRate returns the file's sample rate in Hz.
func (r *Reader) SampleRate() int { return int(r.decoder.SampleRate) }

// NumChannels returns the number of channels in the file.
func (r *Reader) NumChannels() int { return r.numChannels }

// Read fills out with samples of the selected channel, returning the
// number of samples written. Returns io.EOF (with n == 0) once the stream
// is exhausted.
func (r *Reader) Read(out []dspmath.Real) (int, error) {
	written := 0
	for written < len(out) {
		if len(r.pending) < r.numChannels {
			n, err := r.decoder.PCMBuffer(r.buf)
			if err != nil {
				return written, err
			}
			if n == 0 {
				if written == 0 {
					return 0, io.EOF
				}
				return written, nil
			}
			r.pending = r.buf.Data[:n]
		}

		for written < len(out) && len(r.pending) >= r.numChannels {
			out[written] = dspmath.Real(r.pending[r.channel-1]) * r.scale
			r.pending = r.pending[r.numChannels:]
			written++
		}
	}
	return written, nil
}

// ReadIQ fills out with complex samples built from the first two channels
// of the file (I from channel 1, Q from channel 2), returning the number of
// samples written. Returns io.EOF (with n == 0) once the stream is
// exhausted. The file must have at least two channels.
func (r *Reader) ReadIQ(out []complex64) (int, error) {
	if r.numChannels < 2 {
		return 0, fmt.Errorf("IQ input requires a two-channel file, have %d channel(s)", r.numChannels)
	}

	written := 0
	for written < len(out) {
		if len(r.pending) < r.numChannels {
			n, err := r.decoder.PCMBuffer(r.buf)
			if err != nil {
				return written, err
			}
			if n == 0 {
				if written == 0 {
					return 0, io.EOF
				}
				return written, nil
			}
			r.pending = r.buf.Data[:n]
		}

		for written < len(out) && len(r.pending) >= r.numChannels {
			i := dspmath.Real(r.pending[0]) * r.scale
			q := dspmath.Real(r.pending[1]) * r.scale
			out[written] = complex(i, q)
			r.pending = r.pending[r.numChannels:]
			written++
		}
	}
	return written, nil
}
