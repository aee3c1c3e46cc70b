// Package integrators provides the explicit time-integration schemes.
// Each advances the coupled (h, hu) pair by one step with identical stage
// coefficients for both fields, calling the flux evaluator one to four
// times per step.
package integrators

import "github.com/hydrolab/swe1d/internal/swe"

// advance returns s + c·(dh, dhu) as a fresh state, preserving the
// functional-update discipline: stages never write into their input.
func advance(s swe.State, dh, dhu swe.Field, c float64) swe.State {
	n := s.Len()
	out := swe.NewState(n)
	for i := 0; i < n; i++ {
		out.H[i] = s.H[i] + c*dh[i]
		out.HU[i] = s.HU[i] + c*dhu[i]
	}
	return out
}
