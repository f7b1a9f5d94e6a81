package signalpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStageRatiosNarrowBandwidth(t *testing.T) {
	// Bandwidth below the audio rate: decimate all the way down in one
	// stage.
	ratios, err := CalculateStageRatios(240000, 48000, 12000)
	require.NoError(t, err)
	assert.Equal(t, StageRatios{IQToIF: 5, IFToAF: 1}, ratios)
}

func TestCalculateStageRatiosWideBandwidth(t *testing.T) {
	// 250 kHz WFM out of 6 Msps: the IF stage settles on the smallest
	// multiple of the audio rate that contains the bandwidth and divides
	// the input rate.
	ratios, err := CalculateStageRatios(6000000, 48000, 250000)
	require.NoError(t, err)

	ifRate := 48000 * ratios.IFToAF
	assert.GreaterOrEqual(t, ifRate, 250000)
	assert.Zero(t, 6000000%ifRate)
	assert.Equal(t, 6000000/ifRate, ratios.IQToIF)

	// No smaller IF multiple both contains the band and divides evenly.
	for k := 2; k < ratios.IFToAF; k++ {
		rate := 48000 * k
		assert.True(t, rate < 250000 || 6000000%rate != 0, "k=%d", k)
	}
}

func TestCalculateStageRatiosProductIsTotal(t *testing.T) {
	for _, tc := range []struct {
		iq, af    int
		bandwidth float32
	}{
		{96000, 48000, 12000},
		{240000, 48000, 200000},
		{2400000, 48000, 250000},
		{48000, 48000, 12000},
	} {
		ratios, err := CalculateStageRatios(tc.iq, tc.af, tc.bandwidth)
		require.NoError(t, err)
		assert.Equal(t, tc.iq/tc.af, ratios.IQToIF*ratios.IFToAF,
			"iq=%d af=%d bw=%v", tc.iq, tc.af, tc.bandwidth)
	}
}

func TestCalculateStageRatiosRejectsNonIntegerTotal(t *testing.T) {
	_, err := CalculateStageRatios(44100, 48000, 12000)
	assert.Error(t, err)

	_, err = CalculateStageRatios(96000, 0, 12000)
	assert.Error(t, err)
}
