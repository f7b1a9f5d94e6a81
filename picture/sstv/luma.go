package sstv

import "github.com/skywave-radio/radiocore/dspmath"

// FrequencyToLuma maps a tone frequency to a normalized [0, 1] luma value
// using the mode's black/white frequency pair, saturating outside that
// range. LumaToFrequency is its mutual inverse, used by the line encoder.
func FrequencyToLuma(spec ModeSpec, frequency dspmath.Real) dspmath.Real {
	span := spec.WhiteFrequency - spec.BlackFrequency
	return dspmath.Clamp((frequency-spec.BlackFrequency)/span, 0, 1)
}

// LumaToFrequency is the inverse of FrequencyToLuma.
func LumaToFrequency(spec ModeSpec, luma dspmath.Real) dspmath.Real {
	span := spec.WhiteFrequency - spec.BlackFrequency
	return spec.BlackFrequency + dspmath.Clamp(luma, 0, 1)*span
}
