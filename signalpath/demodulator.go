package signalpath

import (
	"github.com/skywave-radio/radiocore/dspmath"
	"github.com/skywave-radio/radiocore/modulation/analog"
	"github.com/skywave-radio/radiocore/modulation/analog/am"
	"github.com/skywave-radio/radiocore/modulation/analog/cw"
	"github.com/skywave-radio/radiocore/modulation/analog/nfm"
	"github.com/skywave-radio/radiocore/modulation/analog/ssb"
	"github.com/skywave-radio/radiocore/modulation/analog/wfm"
)

// DemodulatorOptions selects a modulation type and carries the per-type
// tunables. The sample rate fields are filled in by the signal path from
// its computed IF rate; callers only pick the type and, optionally, the
// type-specific knobs.
type DemodulatorOptions struct {
	ModulationType analog.Type

	// AMDCBlockRate is the AM envelope DC blocker's EMA rate.
	AMDCBlockRate dspmath.Real

	// NFMDeviationHz is the narrowband FM peak deviation.
	NFMDeviationHz dspmath.Real

	// WFMDeviationHz is the wideband FM peak deviation.
	WFMDeviationHz dspmath.Real

	// CWToneHz is the audible beat tone CW reception is mixed to.
	CWToneHz dspmath.Real
}

// DefaultDemodulatorOptions returns DemodulatorOptions with every tunable
// at its conventional default for the given modulation type.
func DefaultDemodulatorOptions(modulationType analog.Type) DemodulatorOptions {
	return DemodulatorOptions{
		ModulationType: modulationType,
		AMDCBlockRate:  0.0001,
		NFMDeviationHz: 5000,
		WFMDeviationHz: wfm.DefaultPeakDeviationHz,
		CWToneHz:       600,
	}
}

// demodulator dispatches IF samples to the demodulator selected by the
// configured modulation type. Every configure call builds fresh instances
// of all six demodulators.
type demodulator struct {
	modulationType analog.Type

	am  *am.Demodulator
	nfm *nfm.Demodulator
	wfm *wfm.Demodulator
	usb *ssb.Demodulator
	lsb *ssb.Demodulator
	cw  *cw.Demodulator
}

func (d *demodulator) configure(opt DemodulatorOptions, ifSampleRate dspmath.Real) {
	d.modulationType = opt.ModulationType

	d.am = am.NewDemodulator(opt.AMDCBlockRate)
	d.nfm = nfm.NewDemodulator(ifSampleRate, opt.NFMDeviationHz)
	d.wfm = wfm.NewDemodulator(ifSampleRate)
	d.wfm.SetAngularDeviation(opt.WFMDeviationHz)
	d.usb = ssb.NewDemodulator(ssb.Upper)
	d.lsb = ssb.NewDemodulator(ssb.Lower)
	d.cw = cw.NewDemodulator(cw.Options{SampleRateHz: ifSampleRate, ToneFrequencyHz: opt.CWToneHz})
}

// process demodulates in into out (which must hold at least len(in)
// samples) and returns the written slice.
func (d *demodulator) process(in []complex64, out []dspmath.Real) []dspmath.Real {
	out = out[:len(in)]
	switch d.modulationType {
	case analog.TypeAM:
		d.am.Process(in, out)
	case analog.TypeNFM:
		d.nfm.Process(in, out)
	case analog.TypeWFM:
		d.wfm.Process(in, out)
	case analog.TypeUSB:
		d.usb.Process(in, out)
	case analog.TypeLSB:
		d.lsb.Process(in, out)
	case analog.TypeCW:
		d.cw.Process(in, out)
	default:
		for i := range out {
			out[i] = 0
		}
	}
	return out
}
