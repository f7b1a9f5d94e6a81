package fsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywave-radio/radiocore/datalink/ax25"
	"github.com/skywave-radio/radiocore/datalink/hdlc"
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
)

const testSampleRate = 48000

// afskModulate renders channel bits as a Bell-202 AFSK waveform with NRZI
// on top: a 1 keeps the current tone, a 0 switches it.
func afskModulate(bits []bool) []dspmath.Real {
	opt := DefaultOptions(testSampleRate)
	bitDurationMS := 1000 / opt.DataBaud

	generator := signal.NewGenerator(testSampleRate)
	var samples []dspmath.Real
	emit := func(s dspmath.Real) { samples = append(samples, s) }

	currentTone := opt.Tones.MarkHz
	for _, bit := range bits {
		if !bit {
			if currentTone == opt.Tones.MarkHz {
				currentTone = opt.Tones.SpaceHz
			} else {
				currentTone = opt.Tones.MarkHz
			}
		}
		generator.PushTone(dspmath.NewFreqDuration(currentTone, bitDurationMS), emit)
	}
	generator.FadeToZero(emit)
	return samples
}

// demodulateBits runs audio through the demodulator and NRZI-decodes the
// PLL-latched tone decisions back into channel bits.
func demodulateBits(samples []dspmath.Real) []bool {
	d := NewDemodulator(DefaultOptions(testSampleRate))

	var bits []bool
	prevTone := false
	for _, s := range samples {
		tone, ready := d.Push(s)
		if !ready {
			continue
		}
		bits = append(bits, tone == prevTone)
		prevTone = tone
	}
	return bits
}

func TestDemodulatorDecodesAFSKFrame(t *testing.T) {
	message := ax25.Message{
		Destination: ax25.Address{Callsign: "APRS"},
		Source:      ax25.Address{Callsign: "N0CALL", SSID: 7},
		Control:     0x03,
		PID:         ax25.NoLayer3PID,
		Information: []byte("The quick brown fox"),
	}

	// A run of flags before the frame gives the PLL and the AGCs time to
	// settle, exactly like a real transmitter's TX delay.
	encoder := hdlc.NewEncoder()
	var channelBits []bool
	emit := func(bit bool) { channelBits = append(channelBits, bit) }
	for i := 0; i < 40; i++ {
		encoder.EncodeFlag(emit)
	}
	encoder.EncodeFrame(ax25.Encode(message), emit)
	for i := 0; i < 4; i++ {
		encoder.EncodeFlag(emit)
	}

	audio := afskModulate(channelBits)
	decodedBits := demodulateBits(audio)

	deframer := hdlc.NewDecoder()
	var frames [][]byte
	for _, bit := range decodedBits {
		if deframer.PushBit(bit) == hdlc.EventFrameEnd {
			frames = append(frames, append([]byte(nil), deframer.FrameBytes...))
		}
	}
	require.NotEmpty(t, frames, "no HDLC frame recovered from the AFSK audio")

	decoded := ax25.Decode(frames[len(frames)-1])
	got, ok := decoded.Value()
	require.True(t, ok, "AX.25 decode failed: %v", decoded.Err())
	assert.Equal(t, "N0CALL", got.Source.Callsign)
	assert.Equal(t, 7, got.Source.SSID)
	assert.Equal(t, message.Information, got.Information)
}

func TestDemodulatorBitRate(t *testing.T) {
	// 200 alternating NRZI bits at 1200 baud: the PLL must latch close to
	// one decision per bit period.
	bits := make([]bool, 200)
	for i := range bits {
		bits[i] = i%2 == 0
	}

	decoded := demodulateBits(afskModulate(bits))
	assert.InDelta(t, len(bits), len(decoded), 10)
}

func TestDefaultOptions(t *testing.T) {
	opt := DefaultOptions(44100)
	assert.Equal(t, dspmath.Real(1200), opt.Tones.MarkHz)
	assert.Equal(t, dspmath.Real(2200), opt.Tones.SpaceHz)
	assert.Equal(t, dspmath.Real(1200), opt.DataBaud)
	assert.Equal(t, dspmath.Real(44100), opt.SampleRateHz)
}
