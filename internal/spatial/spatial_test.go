package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrolab/swe1d/internal/swe"
)

func sineField(n int) (swe.Field, swe.Field, float64) {
	// f = sin(kx) on [-10, 10), the traveling-wave surface shape
	k := math.Pi / 10
	dx := 20.0 / float64(n)
	f := make(swe.Field, n)
	df := make(swe.Field, n)
	for i := 0; i < n; i++ {
		x := -10 + dx*float64(i)
		f[i] = math.Sin(k * x)
		df[i] = k * math.Cos(k*x)
	}
	return f, df, dx
}

func maxError(got, want swe.Field) float64 {
	worst := 0.0
	for i := range got {
		if e := math.Abs(got[i] - want[i]); e > worst {
			worst = e
		}
	}
	return worst
}

func allOperators() map[string]swe.Differencer {
	return map[string]swe.Differencer{
		"upwind":  NewUpwind1(),
		"central": NewCentral2(),
		"weno":    NewWENO5(),
	}
}

func TestFlatFieldHasZeroDerivative(t *testing.T) {
	for name, op := range allOperators() {
		f := make(swe.Field, 64)
		for i := range f {
			f[i] = 1.0
		}
		d := op.Derivative(f, 0.2)
		require.Len(t, d, 64, name)
		for i, v := range d {
			assert.Zerof(t, v, "%s: nonzero derivative %g at cell %d", name, v, i)
		}
	}
}

func TestPeriodicShiftInvariance(t *testing.T) {
	// Differentiating a cyclically shifted field must give the cyclically
	// shifted derivative: the wrap cells carry no special treatment.
	f, _, dx := sineField(40)
	const shift = 7

	for name, op := range allOperators() {
		shifted := make(swe.Field, len(f))
		for i := range f {
			shifted[i] = f[swe.Wrap(i, shift, len(f))]
		}

		d := op.Derivative(f, dx)
		ds := op.Derivative(shifted, dx)
		for i := range d {
			assert.InDeltaf(t, d[swe.Wrap(i, shift, len(f))], ds[i], 1e-12,
				"%s: wraparound breaks shift invariance at cell %d", name, i)
		}
	}
}

func TestDerivativeSumsToZero(t *testing.T) {
	// On a periodic domain the discrete derivative of any field telescopes
	// to zero, which is what makes the driver conserve mass.
	f, _, dx := sineField(100)
	for i := range f {
		f[i] += 0.25 * math.Sin(7*float64(i)) // roughen it
	}

	for name, op := range allOperators() {
		d := op.Derivative(f, dx)
		assert.InDeltaf(t, 0, d.Sum(), 1e-10, "%s: derivative does not telescope", name)
	}
}

func TestAccuracyOnSmoothWave(t *testing.T) {
	coarse := make(map[string]float64)
	fine := make(map[string]float64)

	for _, n := range []int{100, 200} {
		f, df, dx := sineField(n)
		for name, op := range allOperators() {
			err := maxError(op.Derivative(f, dx), df)
			if n == 100 {
				coarse[name] = err
			} else {
				fine[name] = err
			}
		}
	}

	// first order: halving dx roughly halves the error
	ratio := coarse["upwind"] / fine["upwind"]
	assert.Greater(t, ratio, 1.7, "upwind converging slower than first order")
	assert.Less(t, ratio, 2.5, "upwind converging faster than first order")

	// second order: roughly 4x
	ratio = coarse["central"] / fine["central"]
	assert.Greater(t, ratio, 3.3, "central converging slower than second order")
	assert.Less(t, ratio, 4.8, "central converging faster than second order")

	// fifth order: halving dx cuts the error by roughly 32x
	ratio = coarse["weno"] / fine["weno"]
	assert.Greater(t, ratio, 25.0, "weno lost its fifth-order convergence")
	assert.Less(t, ratio, 45.0, "weno converging implausibly fast")
	assert.Less(t, fine["weno"], fine["central"]/4, "weno no more accurate than central")
}

func TestCentralMatchesTextbookStencil(t *testing.T) {
	f := swe.Field{3, 1, 4, 1, 5, 9, 2, 6}
	dx := 0.5
	d := NewCentral2().Derivative(f, dx)

	n := len(f)
	for i := 0; i < n; i++ {
		want := (f[(i+1)%n] - f[(i-1+n)%n]) / (2 * dx)
		assert.InDelta(t, want, d[i], 1e-15)
	}
}

func TestUpwindMatchesBackwardStencil(t *testing.T) {
	f := swe.Field{2, 7, 1, 8, 2, 8}
	dx := 0.25
	d := NewUpwind1().Derivative(f, dx)

	n := len(f)
	for i := 0; i < n; i++ {
		want := (f[i] - f[(i-1+n)%n]) / dx
		assert.InDelta(t, want, d[i], 1e-15)
	}
}
