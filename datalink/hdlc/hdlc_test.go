package hdlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// transmit runs data through the encoder (flag, stuffed body, flag) and
// returns the raw channel bits.
func transmit(data []byte) []bool {
	encoder := NewEncoder()
	var bits []bool
	emit := func(bit bool) { bits = append(bits, bit) }

	encoder.EncodeFlag(emit)
	encoder.EncodeFrame(data, emit)
	encoder.EncodeFlag(emit)
	return bits
}

// receive pushes bits into a decoder and returns every completed frame.
func receive(decoder *Decoder, bits []bool) [][]byte {
	var frames [][]byte
	for _, bit := range bits {
		if decoder.PushBit(bit) == EventFrameEnd {
			frames = append(frames, append([]byte(nil), decoder.FrameBytes...))
		}
	}
	return frames
}

func TestRoundTripSimpleFrame(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45}

	frames := receive(NewDecoder(), transmit(data))
	require.Len(t, frames, 1)
	assert.Equal(t, data, frames[0])
}

func TestRoundTripAllOnesByte(t *testing.T) {
	// 0xFF forces a stuffed zero mid-byte; it must round-trip untouched.
	data := []byte{0xFF}

	frames := receive(NewDecoder(), transmit(data))
	require.Len(t, frames, 1)
	assert.Equal(t, data, frames[0])
}

func TestRoundTripLongOnesRun(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0x7F, 0xFE}

	frames := receive(NewDecoder(), transmit(data))
	require.Len(t, frames, 1)
	assert.Equal(t, data, frames[0])
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 300).Draw(t, "data")

		frames := receive(NewDecoder(), transmit(data))
		if assert.Len(t, frames, 1) {
			assert.Equal(t, data, frames[0])
		}
	})
}

func TestBackToBackFrames(t *testing.T) {
	encoder := NewEncoder()
	var bits []bool
	emit := func(bit bool) { bits = append(bits, bit) }

	first := []byte{0xAA, 0x55}
	second := []byte{0xFF, 0x00, 0x0F}

	encoder.EncodeFlag(emit)
	encoder.EncodeFrame(first, emit)
	encoder.EncodeFlag(emit)
	encoder.EncodeFrame(second, emit)
	encoder.EncodeFlag(emit)

	frames := receive(NewDecoder(), bits)
	require.Len(t, frames, 2)
	assert.Equal(t, first, frames[0])
	assert.Equal(t, second, frames[1])
}

func TestDecoderIgnoresNoiseBeforeFirstFlag(t *testing.T) {
	data := []byte{0x42}

	noise := []bool{true, false, true, true, false, false, true, false, true}
	bits := append(noise, transmit(data)...)

	frames := receive(NewDecoder(), bits)
	require.Len(t, frames, 1)
	assert.Equal(t, data, frames[0])
}

func TestEncoderStuffsAfterFiveOnes(t *testing.T) {
	encoder := NewEncoder()
	var bits []bool
	encoder.EncodeFrame([]byte{0xFF}, func(bit bool) { bits = append(bits, bit) })

	// 8 data bits plus one stuffed zero after the fifth one.
	assert.Len(t, bits, 9)
	assert.Equal(t, []bool{true, true, true, true, true, false, true, true, true}, bits)
}
