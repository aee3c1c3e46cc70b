package integrators

import "github.com/hydrolab/swe1d/internal/swe"

// RK4 is the classic four-stage Runge–Kutta scheme with 1:2:2:1 weights.
// Fourth-order accurate at four RHS evaluations per step.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(fx *swe.Flux, s swe.State, dx, dt float64, sd swe.Differencer) swe.State {
	n := s.Len()

	k1h, k1q := fx.Eval(s, dx, sd)
	k2h, k2q := fx.Eval(advance(s, k1h, k1q, 0.5*dt), dx, sd)
	k3h, k3q := fx.Eval(advance(s, k2h, k2q, 0.5*dt), dx, sd)
	k4h, k4q := fx.Eval(advance(s, k3h, k3q, dt), dx, sd)

	out := swe.NewState(n)
	c := dt / 6.0
	for i := 0; i < n; i++ {
		out.H[i] = s.H[i] + c*(k1h[i]+2*k2h[i]+2*k3h[i]+k4h[i])
		out.HU[i] = s.HU[i] + c*(k1q[i]+2*k2q[i]+2*k3q[i]+k4q[i])
	}
	return out
}
