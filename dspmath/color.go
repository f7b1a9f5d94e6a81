package dspmath

// Color1, Color3 and Color4 are small fixed-size pixel tuples generic over
// the channel's storage type, used interchangeably for 8-bit image I/O and
// float32 intermediate colorspace math (YCbCr averaging in the SSTV line
// decoder, RGB assembly for PNG output).
type channel interface {
	uint8 | float32
}

type Color1[T channel] struct {
	V T
}

type Color3[T channel] struct {
	R, G, B T
}

type Color4[T channel] struct {
	R, G, B, A T
}

// YCbCrToRGB converts a single YCbCr sample (all channels normalized to
// [0, 1]) to normalized RGB using the ITU-R BT.601 full-range matrix, the
// convention used by the SSTV PD line encoding.
func YCbCrToRGB(y, cb, cr Real) Color3[Real] {
	cbShifted := cb - 0.5
	crShifted := cr - 0.5

	r := y + 1.402*crShifted
	g := y - 0.344136*cbShifted - 0.714136*crShifted
	b := y + 1.772*cbShifted

	return Color3[Real]{
		R: Clamp(r, 0, 1),
		G: Clamp(g, 0, 1),
		B: Clamp(b, 0, 1),
	}
}

// RGBToYCbCr is the inverse of YCbCrToRGB, used by the SSTV picture encoder
// to turn a source RGB image into the channel triplet the line encoder
// transmits.
func RGBToYCbCr(c Color3[Real]) (y, cb, cr Real) {
	y = 0.299*c.R + 0.587*c.G + 0.114*c.B
	cb = 0.5 + (-0.168736*c.R - 0.331264*c.G + 0.5*c.B)
	cr = 0.5 + (0.5*c.R - 0.418688*c.G - 0.081312*c.B)
	return y, cb, cr
}

// ToByte quantizes a normalized [0, 1] real value to an 8-bit channel.
func ToByte(v Real) uint8 {
	return uint8(Clamp(v, 0, 1)*255 + 0.5)
}

// FromByte expands an 8-bit channel back to a normalized [0, 1] real value.
func FromByte(v uint8) Real {
	return Real(v) / 255
}
