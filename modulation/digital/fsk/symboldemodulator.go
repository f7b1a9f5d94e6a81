package fsk

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/signal"
	"github.com/skywave-radio/radiocore/window"
)

// rrcRollOff is the root-raised-cosine matched filter roll-off. 0.41
// matches the excess bandwidth of the Bell-202 tone spacing.
const rrcRollOff dspmath.Real = 0.41

// symbolDemodulator tracks how strongly the input matches a single FSK
// tone: quadrature-mix the input down with a local oscillator at the tone
// frequency (so the estimate is independent of the tone's phase), low-pass
// both arms to strip the mixing images and the opposite tone's beat, take
// the magnitude, and shape it with an RRC matched filter. An asymmetric
// AGC normalizes the result so the top-level mark/space comparison is
// insensitive to absolute signal level.
type symbolDemodulator struct {
	lo *signal.LocalOscillator

	iFilter *signal.FIR[float32]
	qFilter *signal.FIR[float32]

	matched *signal.FIR[float32]
	agc     *signal.EMAAGC
}

func newSymbolDemodulator(toneHz, sampleRateHz, dataBaud dspmath.Real) *symbolDemodulator {
	// The arm low-pass must pass the symbol envelope (~baud/2) while
	// rejecting the beat against the other tone of the pair (1 kHz away
	// for Bell-202).
	cutoff := dataBaud / 2 / sampleRateHz
	numTaps := window.EstimateFilterSizeForTransitionBandwidth(dataBaud/2, sampleRateHz) | 1
	armKernel := window.DesignLowPassFilter(window.Options{Type: window.Hamming}, numTaps, cutoff)

	samplesPerSymbol := sampleRateHz / dataBaud
	matchedTaps := int(samplesPerSymbol*4) | 1
	matchedKernel := window.DesignLowpassRRCFilter(matchedTaps, samplesPerSymbol, rrcRollOff)

	return &symbolDemodulator{
		lo:      signal.NewLocalOscillator(toneHz, sampleRateHz),
		iFilter: signal.NewFIR(armKernel),
		qFilter: signal.NewFIR(armKernel),
		matched: signal.NewFIR(matchedKernel),
		agc:     signal.NewEMAAGC(0.1, 0.0001),
	}
}

// push returns an amplitude estimate in roughly [0, 1] for how strongly
// the input matches this symbol demodulator's tone.
func (s *symbolDemodulator) push(sample float32) dspmath.Real {
	carrier := s.lo.IQ()

	i := s.iFilter.Push(sample * real(carrier))
	q := s.qFilter.Push(sample * imag(carrier))
	magnitude := dspmath.Sqrt(i*i + q*q)

	shaped := s.matched.Push(magnitude)
	return s.agc.Push(shaped)
}

func (s *symbolDemodulator) reset() {
	s.lo.Reset()
	s.iFilter.Reset()
	s.qFilter.Reset()
	s.matched.Reset()
	s.agc.Reset()
}
