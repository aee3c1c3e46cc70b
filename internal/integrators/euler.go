package integrators

import "github.com/hydrolab/swe1d/internal/swe"

// Euler is the forward Euler scheme: one RHS evaluation per step,
// y_next = y + dt·f(y). First-order accurate; the baseline everything
// else is measured against.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(fx *swe.Flux, s swe.State, dx, dt float64, sd swe.Differencer) swe.State {
	dh, dhu := fx.Eval(s, dx, sd)
	return advance(s, dh, dhu, dt)
}
