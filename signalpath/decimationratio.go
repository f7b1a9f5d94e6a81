// Package signalpath composes the signal and modulation packages into a
// complete tuned receive chain: decimate from the input (IQ) sample rate
// down to an intermediate frequency rate, filter, demodulate, then decimate
// the demodulated audio to the output rate.
package signalpath

import "fmt"

// StageRatios splits the total decimation from the input IQ sample rate
// down to the audio output rate into two cascaded stages.
type StageRatios struct {
	// IQToIF is the decimation ratio from the input sample rate to the
	// intermediate frequency stage, where the receive filter and the
	// demodulator run.
	IQToIF int

	// IFToAF is the decimation ratio from the IF stage to the audio
	// output.
	IFToAF int
}

// CalculateStageRatios picks the stage decimation ratios for the given
// configuration. The ratios minimize the IF sample rate, so the receive
// filter and demodulator run as cheaply as possible, while keeping the IF
// rate high enough to contain the receive filter bandwidth.
//
// Only integer ratios are supported: the input sample rate must be an
// integer multiple of the audio sample rate.
func CalculateStageRatios(iqSampleRate, afSampleRate int, receiveFilterBandwidth float32) (StageRatios, error) {
	if afSampleRate <= 0 || iqSampleRate%afSampleRate != 0 {
		return StageRatios{}, fmt.Errorf(
			"input sample rate %d is not an integer multiple of audio sample rate %d",
			iqSampleRate, afSampleRate)
	}

	iqToAF := iqSampleRate / afSampleRate

	// The audio rate itself is enough to contain the filter band: decimate
	// all the way down in one stage and let the receive filter use its own
	// down-fir-up scheme if the bandwidth is very narrow. Not going below
	// the audio sample rate also leaves demodulators like CW room for
	// their frequency shift.
	if receiveFilterBandwidth < float32(afSampleRate) {
		return StageRatios{IQToIF: iqToAF, IFToAF: 1}, nil
	}

	// Scan for the lowest IF rate that still contains the filter bandwidth
	// and divides the input rate evenly.
	for ifToAF := 2; ifToAF <= iqToAF; ifToAF++ {
		ifSampleRate := afSampleRate * ifToAF
		if float32(ifSampleRate) < receiveFilterBandwidth {
			continue
		}
		if iqSampleRate%ifSampleRate != 0 {
			continue
		}
		return StageRatios{IQToIF: iqSampleRate / ifSampleRate, IFToAF: ifToAF}, nil
	}

	// No usable mid-point: demodulate at the input rate and decimate the
	// audio afterwards.
	return StageRatios{IQToIF: 1, IFToAF: iqToAF}, nil
}
