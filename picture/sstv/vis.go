package sstv

import "github.com/skywave-radio/radiocore/dspmath"

// VIS (Vertical Interval Signaling) is the mode-identifying preamble sent
// before every SSTV picture: two 1900 Hz leader tones bracketing a 1200 Hz
// break, then a 10-bit code (start, 7 data bits LSB-first, even parity,
// stop) at 30 ms/bit.
var (
	visLeaderTone = dspmath.NewFreqDuration(1900, 300)
	visBreakTone  = dspmath.NewFreqDuration(1200, 10)

	visBitDurationMS = dspmath.Real(30)

	visStartBit    = dspmath.NewFreqDuration(1200, 30)
	visBitValueOne  = dspmath.NewFreqDuration(1100, 30)
	visBitValueZero = dspmath.NewFreqDuration(1300, 30)
	visStopBit     = dspmath.NewFreqDuration(1200, 30)
)

// evenParity reports the even-parity bit for the low 7 bits of code: the
// parity bit that makes the total number of 1 bits across code and parity
// even.
func evenParity(code uint8) uint8 {
	var ones int
	for i := 0; i < 7; i++ {
		if code&(1<<i) != 0 {
			ones++
		}
	}
	return uint8(ones & 1)
}
