package dspmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestModulo(t *testing.T) {
	assert.InDelta(t, 1, Modulo(7, 3), 1e-6)
	assert.InDelta(t, 2, Modulo(-7, 3), 1e-6)
	assert.InDelta(t, 0, Modulo(6, 3), 1e-6)
}

func TestModuloStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := Real(rapid.Float64Range(-1e4, 1e4).Draw(t, "x"))
		m := Real(rapid.Float64Range(0.1, 100).Draw(t, "m"))

		r := Modulo(x, m)
		assert.GreaterOrEqual(t, r, Real(0))
		assert.Less(t, r, m)
	})
}

func TestWrapPhase(t *testing.T) {
	assert.InDelta(t, 0, WrapPhase(TwoPi), 1e-5)
	assert.InDelta(t, -Pi+0.1, WrapPhase(Pi+0.1), 1e-5)
	assert.InDelta(t, 0.5, WrapPhase(0.5), 1e-6)
	assert.InDelta(t, -0.5, WrapPhase(-0.5), 1e-6)
}

func TestSinc(t *testing.T) {
	assert.Equal(t, Real(1), Sinc(0))
	assert.InDelta(t, 0, Sinc(1), 1e-6)
	assert.InDelta(t, 0, Sinc(2), 1e-6)
	assert.InDelta(t, 2/math.Pi, Sinc(0.5), 1e-5)
}

func TestBesselI0(t *testing.T) {
	// Reference values from Abramowitz & Stegun.
	assert.InDelta(t, 1, BesselI0(0), 1e-6)
	assert.InDelta(t, 1.26607, BesselI0(1), 1e-4)
	assert.InDelta(t, 11.30192, BesselI0(4), 1e-3)
}

func TestClampLerp(t *testing.T) {
	assert.Equal(t, Real(2), Clamp(5, 0, 2))
	assert.Equal(t, Real(0), Clamp(-5, 0, 2))
	assert.Equal(t, Real(1), Clamp(1, 0, 2))
	assert.InDelta(t, 1.5, Lerp(1, 2, 0.5), 1e-6)
}
