package signal

import "github.com/skywave-radio/radiocore/container"

// IntegerDelay is a pure sample delay line: it outputs whatever sample was
// pushed `delay` pushes ago, starting from a zero-filled history. This is
// the in-phase arm of AnalyticalSignal, kept as a standalone building block
// because it is also useful to align taps between unrelated branches of a
// signal path (e.g. when mixing a delayed IF against a filtered copy of
// itself).
type IntegerDelay struct {
	ring *container.Ring[float32]
}

// NewIntegerDelay builds a delay line of the given length in samples.
func NewIntegerDelay(delay int) *IntegerDelay {
	if delay < 0 {
		delay = 0
	}
	d := &IntegerDelay{ring: container.NewRing[float32](delay)}
	d.Reset()
	return d
}

// GetDelay returns the configured delay in samples.
func (d *IntegerDelay) GetDelay() int { return d.ring.Capacity() }

// Push pushes a new sample and returns the sample delayed by GetDelay()
// samples.
func (d *IntegerDelay) Push(sample float32) float32 {
	if d.ring.Capacity() == 0 {
		return sample
	}
	// The ring is kept full, so every push evicts exactly the sample
	// pushed GetDelay() pushes ago.
	evicted, _ := d.ring.Push(sample)
	return evicted
}

// Reset clears the delay line's history back to zero.
func (d *IntegerDelay) Reset() {
	d.ring.Reset()
	for i := 0; i < d.ring.Capacity(); i++ {
		d.ring.Push(0)
	}
}
