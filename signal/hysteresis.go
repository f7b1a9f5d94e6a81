package signal

import "github.com/skywave-radio/radiocore/dspmath"

// Hysteresis suppresses chatter around a level by only updating its output
// once the input has moved fully outside a window centered on that level;
// while the input sits inside the window the last value that exited it (or
// the level itself, initially) is held.
type Hysteresis struct {
	level  dspmath.Real
	width  dspmath.Real
	output dspmath.Real
}

// NewHysteresis builds a hysteresis filter with the window
// [level-width/2, level+width/2].
func NewHysteresis(level, width dspmath.Real) *Hysteresis {
	return &Hysteresis{level: level, width: width, output: level}
}

// Push feeds one sample and returns the held output.
func (h *Hysteresis) Push(sample dspmath.Real) dspmath.Real {
	lower := h.level - h.width/2
	upper := h.level + h.width/2
	if sample < lower || sample > upper {
		h.output = sample
	}
	return h.output
}

// Reset returns the held output to the configured level.
func (h *Hysteresis) Reset() {
	h.output = h.level
}

// DigitalHysteresis wraps Hysteresis to produce a boolean decision: whether
// the held value is above the configured level. Used by the FSK demodulator
// to turn a continuous mark/space amplitude difference into a clean digital
// symbol before the PLL samples it.
type DigitalHysteresis struct {
	hysteresis *Hysteresis
	level      dspmath.Real
}

// NewDigitalHysteresis builds a digital hysteresis decision filter.
func NewDigitalHysteresis(level, width dspmath.Real) *DigitalHysteresis {
	return &DigitalHysteresis{hysteresis: NewHysteresis(level, width), level: level}
}

// Push feeds one sample and returns whether the held value is above level.
func (d *DigitalHysteresis) Push(sample dspmath.Real) bool {
	return d.hysteresis.Push(sample) > d.level
}

// Reset resets the underlying hysteresis filter.
func (d *DigitalHysteresis) Reset() {
	d.hysteresis.Reset()
}
