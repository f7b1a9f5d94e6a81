package sstv

import (
	"fmt"

	"github.com/skywave-radio/radiocore/dspmath"
)

// EncodePicture emits the scanline tones for message's pixels: per
// transmitted line, the line sync and porch followed by the four pixel
// blocks of the PD encoding (Y of the even row, averaged Cr, averaged Cb,
// Y of the odd row). VOX and VIS are handled by the caller.
func EncodePicture(message Message, emit func(tone dspmath.FreqDuration)) error {
	spec := GetModeSpec(message.Mode)
	if spec.Mode == ModeUnknown {
		return fmt.Errorf("unsupported SSTV mode")
	}
	if message.Width < spec.ImageWidth || message.Height < spec.ImageHeight {
		return fmt.Errorf("image is %dx%d, mode %s requires at least %dx%d",
			message.Width, message.Height, spec.Mode, spec.ImageWidth, spec.ImageHeight)
	}

	switch spec.LineEncoding {
	case LineEncodingYCCAverageCrCb:
		encodeYCbCrAverageCrCb(spec, message, emit)
		return nil
	default:
		return fmt.Errorf("unsupported line encoding")
	}
}

func encodeYCbCrAverageCrCb(spec ModeSpec, message Message, emit func(tone dspmath.FreqDuration)) {
	pixelTone := func(luma dspmath.Real) dspmath.FreqDuration {
		return dspmath.NewFreqDuration(LumaToFrequency(spec, luma), spec.PixelDurationMS)
	}

	ycc := func(x, y int) (dspmath.Real, dspmath.Real, dspmath.Real) {
		c := message.At(x, y)
		rgb := dspmath.Color3[dspmath.Real]{
			R: dspmath.FromByte(c.R),
			G: dspmath.FromByte(c.G),
			B: dspmath.FromByte(c.B),
		}
		return dspmath.RGBToYCbCr(rgb)
	}

	for y := 0; y < spec.ImageHeight; y += 2 {
		emit(spec.LineSync)
		emit(spec.LinePorch)

		for x := 0; x < spec.ImageWidth; x++ {
			luma, _, _ := ycc(x, y)
			emit(pixelTone(luma))
		}
		for x := 0; x < spec.ImageWidth; x++ {
			_, _, cr0 := ycc(x, y)
			_, _, cr1 := ycc(x, y+1)
			emit(pixelTone((cr0 + cr1) / 2))
		}
		for x := 0; x < spec.ImageWidth; x++ {
			_, cb0, _ := ycc(x, y)
			_, cb1, _ := ycc(x, y+1)
			emit(pixelTone((cb0 + cb1) / 2))
		}
		for x := 0; x < spec.ImageWidth; x++ {
			luma, _, _ := ycc(x, y+1)
			emit(pixelTone(luma))
		}
	}
}
