package pngio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywave-radio/radiocore/dspmath"
)

func TestGrayRoundTrip(t *testing.T) {
	const width, height = 16, 4
	pixels := make([]uint8, width*height)
	for i := range pixels {
		pixels[i] = uint8(i * 4)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteGray(&buf, pixels, width, height))

	got, gotW, gotH, err := ReadGray(&buf)
	require.NoError(t, err)
	assert.Equal(t, width, gotW)
	assert.Equal(t, height, gotH)
	assert.Equal(t, pixels, got)
}

func TestRGBRoundTrip(t *testing.T) {
	const width, height = 8, 3
	pixels := make([]dspmath.Color3[uint8], width*height)
	for i := range pixels {
		pixels[i] = dspmath.Color3[uint8]{R: uint8(i * 10), G: uint8(255 - i*10), B: uint8(i)}
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRGB(&buf, pixels, width, height))

	got, gotW, gotH, err := ReadRGB(&buf)
	require.NoError(t, err)
	assert.Equal(t, width, gotW)
	assert.Equal(t, height, gotH)
	assert.Equal(t, pixels, got)
}

func TestWriteRejectsSizeMismatch(t *testing.T) {
	assert.Error(t, WriteGray(&bytes.Buffer{}, make([]uint8, 10), 4, 4))
	assert.Error(t, WriteRGB(&bytes.Buffer{}, make([]dspmath.Color3[uint8], 10), 4, 4))
}

func TestReadRejectsGarbage(t *testing.T) {
	_, _, _, err := ReadGray(bytes.NewReader([]byte("not a png")))
	assert.Error(t, err)
}
