package sstv

import "github.com/skywave-radio/radiocore/dspmath"

// EncodeVIS emits the VIS header for the given code as a sequence of
// (frequency, duration) tones: both leader tones with their break, the
// start bit, 7 code bits LSB-first, even parity, and the stop bit. The MSB
// of code is ignored and replaced by the computed parity, per the SSTV
// protocol.
func EncodeVIS(code uint8, emit func(tone dspmath.FreqDuration)) {
	emit(visLeaderTone)
	emit(visBreakTone)
	emit(visLeaderTone)

	emit(visStartBit)

	for i := 0; i < 7; i++ {
		if code&(1<<i) != 0 {
			emit(visBitValueOne)
		} else {
			emit(visBitValueZero)
		}
	}

	if evenParity(code) != 0 {
		emit(visBitValueOne)
	} else {
		emit(visBitValueZero)
	}

	emit(visStopBit)
}
