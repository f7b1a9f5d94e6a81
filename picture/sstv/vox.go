package sstv

import "github.com/skywave-radio/radiocore/dspmath"

// voxTones is the VOX preamble: an alternating tone pattern transmitted
// before the VIS header to trip voice-operated transmit circuits and alert
// the receiving operator.
var voxTones = []dspmath.FreqDuration{
	{FrequencyHz: 1900, DurationMS: 100},
	{FrequencyHz: 1500, DurationMS: 100},
	{FrequencyHz: 1900, DurationMS: 100},
	{FrequencyHz: 1500, DurationMS: 100},
	{FrequencyHz: 2300, DurationMS: 100},
	{FrequencyHz: 1500, DurationMS: 100},
	{FrequencyHz: 2300, DurationMS: 100},
	{FrequencyHz: 1500, DurationMS: 100},
}

// EncodeVOX emits the VOX preamble tones.
func EncodeVOX(emit func(tone dspmath.FreqDuration)) {
	for _, tone := range voxTones {
		emit(tone)
	}
}
