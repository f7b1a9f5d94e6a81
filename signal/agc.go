package signal

import "github.com/skywave-radio/radiocore/dspmath"

// EMAAGC is an asymmetric exponential-moving-average automatic gain
// controller: the tracked charge level rises towards a louder sample at
// chargeRate but decays towards a quieter one at the (typically much
// slower) dischargeRate, so the gain does not chase short transients down
// but still responds quickly to a surge in level. Output is the input
// normalized by the tracked charge.
type EMAAGC struct {
	chargeRate    dspmath.Real
	dischargeRate dspmath.Real
	charge        dspmath.Real
}

// NewEMAAGC builds an AGC with the given charge/discharge rates, each in
// (0, 1].
func NewEMAAGC(chargeRate, dischargeRate dspmath.Real) *EMAAGC {
	return &EMAAGC{chargeRate: chargeRate, dischargeRate: dischargeRate}
}

// Configure updates the charge/discharge rates in place.
func (a *EMAAGC) Configure(chargeRate, dischargeRate dspmath.Real) {
	a.chargeRate = chargeRate
	a.dischargeRate = dischargeRate
}

// Push normalizes one sample by the tracked charge level, updating the
// charge level towards the sample's magnitude.
func (a *EMAAGC) Push(sample dspmath.Real) dspmath.Real {
	abs := dspmath.Abs(sample)
	if abs > a.charge {
		a.charge = dspmath.Lerp(a.charge, abs, a.chargeRate)
	} else {
		a.charge = dspmath.Lerp(a.charge, abs, a.dischargeRate)
	}

	if a.charge == 0 {
		return 0
	}
	return sample / a.charge
}

// Process normalizes an entire span, writing len(in) outputs to out (which
// may alias in).
func (a *EMAAGC) Process(in, out []dspmath.Real) {
	for i, s := range in {
		out[i] = a.Push(s)
	}
}

// Charge returns the currently tracked charge (envelope) level.
func (a *EMAAGC) Charge() dspmath.Real { return a.charge }

// Reset clears the tracked charge level back to 0.
func (a *EMAAGC) Reset() {
	a.charge = 0
}
