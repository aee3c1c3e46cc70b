package integrators

import "github.com/hydrolab/swe1d/internal/swe"

// RK2 is the explicit midpoint scheme: the slope at t+dt/2 replaces the
// slope at t, buying second order for one extra RHS evaluation.
type RK2 struct{}

func NewRK2() *RK2 { return &RK2{} }

func (r *RK2) Step(fx *swe.Flux, s swe.State, dx, dt float64, sd swe.Differencer) swe.State {
	k1h, k1q := fx.Eval(s, dx, sd)
	mid := advance(s, k1h, k1q, 0.5*dt)

	k2h, k2q := fx.Eval(mid, dx, sd)
	return advance(s, k2h, k2q, dt)
}
