package sstv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skywave-radio/radiocore/dspmath"
)

func TestModeSpecRegistry(t *testing.T) {
	for mode, wantVIS := range map[Mode]uint8{
		ModePD90:  0x63,
		ModePD120: 0x5f,
		ModePD160: 0x62,
		ModePD180: 0x60,
		ModePD240: 0x61,
		ModePD290: 0x5e,
	} {
		spec := GetModeSpec(mode)
		assert.Equal(t, mode, spec.Mode)
		assert.Equal(t, wantVIS, spec.VISCode, "mode %s", mode)
		assert.Equal(t, mode, GetModeFromVISCode(wantVIS))

		assert.Equal(t, 4*spec.ImageWidth, spec.NumPixelsPerLine, "mode %s", mode)
		assert.Equal(t, spec.ImageHeight/2, spec.NumLines, "mode %s", mode)
		assert.Equal(t, 3, spec.NumChannels)
		assert.Equal(t, LineEncodingYCCAverageCrCb, spec.LineEncoding)
		assert.Equal(t, dspmath.Real(1500), spec.BlackFrequency)
		assert.Equal(t, dspmath.Real(2300), spec.WhiteFrequency)
		assert.Greater(t, spec.PixelDurationMS, dspmath.Real(0))
	}
}

func TestUnknownModeAndVISCode(t *testing.T) {
	assert.Equal(t, ModeUnknown, GetModeSpec(ModeUnknown).Mode)
	assert.Equal(t, ModeUnknown, GetModeFromVISCode(0x44))
}

func TestModeSpecLineTiming(t *testing.T) {
	spec := GetModeSpec(ModePD120)

	wantPixels := spec.PixelDurationMS * dspmath.Real(spec.NumPixelsPerLine)
	assert.InDelta(t, float64(wantPixels), float64(spec.LinePixelsDurationMS()), 1e-3)

	total := spec.LineSync.DurationMS + spec.LinePorch.DurationMS + wantPixels
	assert.InDelta(t, float64(total), float64(spec.TotalLineTimeMS()), 1e-3)
}

func TestVISEvenParity(t *testing.T) {
	assert.Equal(t, uint8(0), evenParity(0x00))
	assert.Equal(t, uint8(1), evenParity(0x01))
	assert.Equal(t, uint8(0), evenParity(0x03))
	// PD120: 0x5f has six set bits in its low 7.
	assert.Equal(t, uint8(0), evenParity(0x5f))
	// PD290: 0x5e has five set bits in its low 7.
	assert.Equal(t, uint8(1), evenParity(0x5e))
}
