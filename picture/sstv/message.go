package sstv

import "github.com/skywave-radio/radiocore/dspmath"

// Message is one SSTV transmission: a picture mode plus the row-major RGB
// pixels to transmit. The image must be at least as large as the mode's
// image dimensions.
type Message struct {
	Mode   Mode
	Pixels []dspmath.Color3[uint8]
	Width  int
	Height int
}

// At returns the pixel at (x, y); black if out of bounds.
func (m Message) At(x, y int) dspmath.Color3[uint8] {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return dspmath.Color3[uint8]{}
	}
	return m.Pixels[y*m.Width+x]
}
