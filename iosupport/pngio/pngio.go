// Package pngio reads and writes the images the picture codecs exchange:
// 8-bit grayscale rasters for APT and 8-bit RGB rasters for SSTV, as
// row-major byte buffers with an explicit width.
package pngio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/skywave-radio/radiocore/dspmath"
)

// WriteGray encodes a row-major 8-bit grayscale raster as PNG. len(pixels)
// must be width*height.
func WriteGray(w io.Writer, pixels []uint8, width, height int) error {
	if len(pixels) != width*height {
		return fmt.Errorf("have %d pixels, need %d for %dx%d", len(pixels), width*height, width, height)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:], pixels[y*width:(y+1)*width])
	}
	return png.Encode(w, img)
}

// WriteRGB encodes a row-major 8-bit RGB raster as PNG. len(pixels) must be
// width*height.
func WriteRGB(w io.Writer, pixels []dspmath.Color3[uint8], width, height int) error {
	if len(pixels) != width*height {
		return fmt.Errorf("have %d pixels, need %d for %dx%d", len(pixels), width*height, width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return png.Encode(w, img)
}

// ReadGray decodes any registered image format into a row-major grayscale
// raster, converting color inputs by luma.
func ReadGray(r io.Reader) (pixels []uint8, width, height int, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, err
	}
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			pixels[y*width+x] = g.Y
		}
	}
	return pixels, width, height, nil
}

// ReadRGB decodes any registered image format into a row-major RGB raster.
func ReadRGB(r io.Reader) (pixels []dspmath.Color3[uint8], width, height int, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, err
	}
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]dspmath.Color3[uint8], width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			pixels[y*width+x] = dspmath.Color3[uint8]{R: c.R, G: c.G, B: c.B}
		}
	}
	return pixels, width, height, nil
}
