// Package apt implements the NOAA Automatic Picture Transmission weather
// satellite format: an AM-modulated 2400 Hz sub-carrier carrying two
// interleaved grayscale images with per-line synchronization patterns.
package apt

import "github.com/skywave-radio/radiocore/dspmath"

// Transmission constants of the APT format. One transmitted line is 2080
// pixels: Sync A, Space A, Image A, Telemetry A, then the same four fields
// for channel B.
const (
	// SubCarrierFrequencyHz is the AM sub-carrier the pixel intensities
	// modulate.
	SubCarrierFrequencyHz dspmath.Real = 2400

	// BaudRate is the pixel rate: 4160 pixels (words) per second.
	BaudRate dspmath.Real = 4160

	// NumPixelsPerLine is the full transmitted line width, both channels
	// and all per-channel fields included.
	NumPixelsPerLine = 2080

	// ImageWidth is the per-channel image width in pixels.
	ImageWidth = 909

	// SpaceWidth and TelemetryWidth are the constant-luma filler fields
	// bracketing each channel's image.
	SpaceWidth     = 47
	TelemetryWidth = 45
)

// SyncA is the channel A line synchronization pattern: seven cycles of a
// 1040 Hz square wave, one pattern element per transmitted pixel.
var SyncA = []uint8{
	0, 0, 0, 0,
	1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0,
	1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0,
}

// SyncB is the channel B line synchronization pattern: seven cycles of an
// 832 Hz pulse train.
var SyncB = []uint8{
	0, 0, 0, 0,
	1, 1, 1, 0, 0, 1, 1, 1, 0, 0, 1, 1, 1, 0, 0,
	1, 1, 1, 0, 0, 1, 1, 1, 0, 0, 1, 1, 1, 0, 0,
	1, 1, 1, 0, 0,
}
