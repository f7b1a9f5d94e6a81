package sstv

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
)

const (
	lineSyncFrequencyTolerance     = 50
	lineSyncTransitionMilliseconds = 4
	lineSyncEdgeSampleWeight       = 0.25
	lineSyncEdgeSampleSlowWeight   = 0.025
	lineSyncRisingThreshold        = 80
	// The falling threshold is lower than the rising one so a trailing
	// edge from the VIS start bit (confused with line sync) still cancels
	// the match.
	lineSyncFallingThreshold = 30
)

type lineSyncState int

const (
	lineSyncWaitForTone lineSyncState = iota
	lineSyncSampleTone
	lineSyncWaitForEdge
)

// LineSync detects the PD family's horizontal line-synchronization tone
// (1200 Hz, nominally 20 ms) and invokes a callback on the rising edge that
// follows it, without imposing an upper bound on the tone's duration (the
// VIS stop bit shares the same frequency, so a longer-than-nominal run is
// expected whenever the VIS header wasn't separately decoded).
type LineSync struct {
	edgeDetector *signal.EdgeDetector

	syncInterval          dspmath.Interval[dspmath.Real]
	numExpectedSyncSamples int

	state             lineSyncState
	numSamplesInState int
}

// NewLineSync builds a line-sync detector for mode at sampleRate.
func NewLineSync(mode Mode, sampleRate dspmath.Real) *LineSync {
	spec := GetModeSpec(mode)

	s := &LineSync{
		edgeDetector: signal.NewAsymmetricEdgeDetector(
			lineSyncEdgeSampleWeight, lineSyncEdgeSampleSlowWeight,
			lineSyncRisingThreshold, lineSyncFallingThreshold,
			true, true),
	}

	s.syncInterval = dspmath.NewPointInterval(spec.LineSync.FrequencyHz).Expanded(lineSyncFrequencyTolerance)
	samplesPerMS := sampleRate / 1000
	s.numExpectedSyncSamples = int((spec.LineSync.DurationMS - lineSyncTransitionMilliseconds) * samplesPerMS)

	s.Reset()
	return s
}

// Reset returns the detector to waiting for the sync tone.
func (s *LineSync) Reset() {
	s.state = lineSyncWaitForTone
}

// Push feeds one frequency sample and calls onSync if this sample
// completes a line synchronization.
func (s *LineSync) Push(frequency dspmath.Real, onSync func()) {
	rising, falling := s.edgeDetector.Push(frequency)

	switch s.state {
	case lineSyncWaitForTone:
		if s.syncInterval.Contains(frequency) {
			s.state = lineSyncSampleTone
			s.numSamplesInState = 0
		}

	case lineSyncSampleTone:
		if !s.syncInterval.Contains(frequency) {
			s.Reset()
			return
		}
		if s.numSamplesInState < s.numExpectedSyncSamples {
			s.numSamplesInState++
			return
		}
		s.state = lineSyncWaitForEdge

	case lineSyncWaitForEdge:
		if falling {
			s.Reset()
			return
		}
		if rising {
			onSync()
			s.Reset()
		}
	}
}
