package integrators

import "github.com/hydrolab/swe1d/internal/swe"

// RK3 is the three-stage strong-stability-preserving scheme (Shu–Osher):
//
//	u1     = u + dt·f(u)
//	u2     = ¾·u + ¼·u1 + ¼·dt·f(u1)
//	u_next = ⅓·u + ⅔·u2 + ⅔·dt·f(u2)
//
// Each stage is a convex combination of Euler steps, which is what keeps
// the WENO limiter's non-oscillatory property through the time update.
type RK3 struct{}

func NewRK3() *RK3 { return &RK3{} }

func (r *RK3) Step(fx *swe.Flux, s swe.State, dx, dt float64, sd swe.Differencer) swe.State {
	n := s.Len()

	k1h, k1q := fx.Eval(s, dx, sd)
	u1 := advance(s, k1h, k1q, dt)

	k2h, k2q := fx.Eval(u1, dx, sd)
	u2 := swe.NewState(n)
	for i := 0; i < n; i++ {
		u2.H[i] = 0.75*s.H[i] + 0.25*u1.H[i] + 0.25*dt*k2h[i]
		u2.HU[i] = 0.75*s.HU[i] + 0.25*u1.HU[i] + 0.25*dt*k2q[i]
	}

	k3h, k3q := fx.Eval(u2, dx, sd)
	out := swe.NewState(n)
	third := 1.0 / 3.0
	for i := 0; i < n; i++ {
		out.H[i] = third*s.H[i] + 2*third*u2.H[i] + 2*third*dt*k3h[i]
		out.HU[i] = third*s.HU[i] + 2*third*u2.HU[i] + 2*third*dt*k3q[i]
	}
	return out
}
