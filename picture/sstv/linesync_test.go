package sstv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skywave-radio/radiocore/dspmath"
)

func pushSyncSpan(s *LineSync, frequencyHz, durationMS, sampleRate dspmath.Real, fired *int) {
	numSamples := int(durationMS * sampleRate / 1000)
	for i := 0; i < numSamples; i++ {
		s.Push(frequencyHz, func() { *fired++ })
	}
}

func TestLineSyncDetectsSyncTone(t *testing.T) {
	const sampleRate = 44100
	s := NewLineSync(ModePD120, sampleRate)

	fired := 0
	// Porch level, then the full 20 ms sync tone, then back to the porch:
	// the detector fires once, on the trailing rising edge.
	pushSyncSpan(s, 1500, 50, sampleRate, &fired)
	assert.Zero(t, fired)

	pushSyncSpan(s, 1200, 20, sampleRate, &fired)
	assert.Zero(t, fired)

	pushSyncSpan(s, 1500, 10, sampleRate, &fired)
	assert.Equal(t, 1, fired)
}

func TestLineSyncIgnoresShortPulse(t *testing.T) {
	const sampleRate = 44100
	s := NewLineSync(ModePD120, sampleRate)

	fired := 0
	pushSyncSpan(s, 1500, 50, sampleRate, &fired)
	// A 5 ms dip is far short of the 20 ms sync tone.
	pushSyncSpan(s, 1200, 5, sampleRate, &fired)
	pushSyncSpan(s, 1500, 30, sampleRate, &fired)

	assert.Zero(t, fired)
}

func TestLineSyncToleratesLongTone(t *testing.T) {
	// The VIS stop bit shares the sync frequency, so an over-long tone
	// must still resolve on its trailing edge.
	const sampleRate = 44100
	s := NewLineSync(ModePD120, sampleRate)

	fired := 0
	pushSyncSpan(s, 1200, 60, sampleRate, &fired)
	assert.Zero(t, fired)
	pushSyncSpan(s, 1500, 10, sampleRate, &fired)
	assert.Equal(t, 1, fired)
}
