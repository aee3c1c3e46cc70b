package spatial

import "github.com/hydrolab/swe1d/internal/swe"

// epsWeight keeps the nonlinear weights finite on perfectly smooth data.
const epsWeight = 1e-6

// Ideal (linear) weights of the three candidate stencils; blending the
// candidates with exactly these recovers the full five-point, fifth-order
// interpolant (Jiang–Shu).
const (
	ideal0 = 1.0 / 10.0
	ideal1 = 6.0 / 10.0
	ideal2 = 3.0 / 10.0
)

// parallelChunk is the cell count below which a reconstruction pass stays
// on one goroutine.
const parallelChunk = 512

// WENO5 reconstructs the face value at i+1/2 from three overlapping
// left-biased 3-point stencils, blended by smoothness-weighted convex
// combination, then differences the faces back to a cell derivative:
//
//	d[i] = (f̂[i+1/2] - f̂[i-1/2]) / dx
//
// Fifth-order accurate in smooth regions; near a discontinuity the weight
// of the crossing stencil collapses, suppressing oscillation.
//
// A WENO5 value reuses its face scratch buffer between calls and is not
// safe for concurrent use.
type WENO5 struct {
	pool *swe.FieldPool
}

func NewWENO5() *WENO5 { return &WENO5{} }

func (w *WENO5) Derivative(f swe.Field, dx float64) swe.Field {
	n := len(f)
	if w.pool == nil || w.pool.Size() != n {
		w.pool = swe.NewFieldPool(n)
	}
	faces := w.pool.Get()
	defer w.pool.Put(faces)

	swe.ParallelFor(n, parallelChunk, func(start, end int) {
		for i := start; i < end; i++ {
			faces[i] = reconstruct(
				f[swe.Wrap(i, -2, n)],
				f[swe.Wrap(i, -1, n)],
				f[i],
				f[swe.Wrap(i, 1, n)],
				f[swe.Wrap(i, 2, n)],
			)
		}
	})

	d := make(swe.Field, n)
	inv := 1.0 / dx
	for i := 0; i < n; i++ {
		d[i] = (faces[i] - faces[swe.Wrap(i, -1, n)]) * inv
	}
	return d
}

// reconstruct blends the three candidate third-order face values for the
// stencil {i-2 .. i+2} into the WENO estimate at i+1/2.
func reconstruct(fm2, fm1, f0, fp1, fp2 float64) float64 {
	w0, w1, w2 := nonlinearWeights(
		smoothness(fm2, fm1, f0, fm2-4*fm1+3*f0),
		smoothness(fm1, f0, fp1, fm1-fp1),
		smoothness(f0, fp1, fp2, 3*f0-4*fp1+fp2),
	)

	c0 := (2*fm2 - 7*fm1 + 11*f0) / 6
	c1 := (-fm1 + 5*f0 + 2*fp1) / 6
	c2 := (2*f0 + 5*fp1 - fp2) / 6
	return w0*c0 + w1*c1 + w2*c2
}

// smoothness is the Jiang–Shu indicator: curvature plus slope terms, both
// squared, so any oscillation within the 3-point stencil inflates it.
func smoothness(a, b, c, slope float64) float64 {
	curv := a - 2*b + c
	return 13.0/12.0*curv*curv + 0.25*slope*slope
}

// nonlinearWeights turns the smoothness indicators into a convex
// combination: each ideal weight is damped by (ε+β)⁻² and the three are
// renormalized to sum to one.
func nonlinearWeights(b0, b1, b2 float64) (w0, w1, w2 float64) {
	a0 := ideal0 / ((epsWeight + b0) * (epsWeight + b0))
	a1 := ideal1 / ((epsWeight + b1) * (epsWeight + b1))
	a2 := ideal2 / ((epsWeight + b2) * (epsWeight + b2))
	sum := a0 + a1 + a2
	return a0 / sum, a1 / sum, a2 / sum
}
