package signal

import "github.com/skywave-radio/radiocore/dspmath"

// EdgeDetector reports rising and/or falling edges in a noisy signal by
// tracking two EMAs at different speeds (a fast-responding "clean" sample
// and a slow-responding baseline) and watching their difference cross a
// threshold. Each crossing latches until the difference falls back within
// the threshold, so a single noisy edge is reported exactly once rather
// than chattering.
type EdgeDetector struct {
	fastRate         dspmath.Real
	slowRate         dspmath.Real
	risingThreshold  dspmath.Real
	fallingThreshold dspmath.Real

	fast dspmath.Real
	slow dspmath.Real

	risingLatched  bool
	fallingLatched bool

	detectRising  bool
	detectFalling bool
}

// NewEdgeDetector builds an edge detector with a single threshold shared
// by both edge directions. detectRising/detectFalling select which edge
// directions are reported by Push.
func NewEdgeDetector(fastRate, slowRate, threshold dspmath.Real, detectRising, detectFalling bool) *EdgeDetector {
	return NewAsymmetricEdgeDetector(fastRate, slowRate, threshold, threshold, detectRising, detectFalling)
}

// NewAsymmetricEdgeDetector builds an edge detector whose rising and
// falling thresholds differ, used where a caller wants a lower bar for one
// direction to catch a transition masked by a shared tone on the other
// side (e.g. the SSTV line sync detector's trailing-edge cancellation).
func NewAsymmetricEdgeDetector(fastRate, slowRate, risingThreshold, fallingThreshold dspmath.Real, detectRising, detectFalling bool) *EdgeDetector {
	return &EdgeDetector{
		fastRate:         fastRate,
		slowRate:         slowRate,
		risingThreshold:  risingThreshold,
		fallingThreshold: fallingThreshold,
		detectRising:     detectRising,
		detectFalling:    detectFalling,
	}
}

// Push feeds one sample and reports whether a rising and/or falling edge
// fired on this sample.
func (e *EdgeDetector) Push(sample dspmath.Real) (rising, falling bool) {
	e.fast = dspmath.Lerp(e.fast, sample, e.fastRate)
	e.slow = dspmath.Lerp(e.slow, sample, e.slowRate)
	delta := e.fast - e.slow

	if e.detectRising {
		if delta > e.risingThreshold {
			if !e.risingLatched {
				rising = true
			}
			e.risingLatched = true
		} else {
			e.risingLatched = false
		}
	}

	if e.detectFalling {
		if delta < -e.fallingThreshold {
			if !e.fallingLatched {
				falling = true
			}
			e.fallingLatched = true
		} else {
			e.fallingLatched = false
		}
	}

	return rising, falling
}

// Reset clears the tracked EMAs and latch state.
func (e *EdgeDetector) Reset() {
	e.fast = 0
	e.slow = 0
	e.risingLatched = false
	e.fallingLatched = false
}
