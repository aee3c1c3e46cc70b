package swe

import "math"

// DefaultGravity is the standard acceleration of gravity in m/s².
const DefaultGravity = 9.81

// Flux assembles the two coupled right-hand-side derivatives of the
// shallow-water system from the current state:
//
//	dh/dt  = -d(hu)/dx
//	dhu/dt = -d(hu²/h + ½·g·h²)/dx
//
// It is the single seam through which every accuracy/stability trade-off
// enters the run: both the spatial scheme and the physics live behind it.
type Flux struct {
	Gravity float64
}

func NewFlux() *Flux {
	return &Flux{Gravity: DefaultGravity}
}

// Eval computes (dh/dt, dhu/dt) using sd for both spatial derivatives.
// The division by h is deliberately unguarded: a dried cell produces a
// non-finite value that propagates into the next state rather than being
// clamped, so callers see the breakdown instead of wrong physics.
func (fx *Flux) Eval(s State, dx float64, sd Differencer) (dh, dhu Field) {
	n := s.Len()
	mom := make(Field, n)
	for i := 0; i < n; i++ {
		h, q := s.H[i], s.HU[i]
		mom[i] = q*q/h + 0.5*fx.Gravity*h*h
	}

	dh = sd.Derivative(s.HU, dx)
	dhu = sd.Derivative(mom, dx)
	for i := 0; i < n; i++ {
		dh[i] = -dh[i]
		dhu[i] = -dhu[i]
	}
	return dh, dhu
}

// MaxWaveSpeed returns the fastest characteristic speed √(g·h) + |u| over
// the domain, the quantity the CFL bound is taken against.
func (fx *Flux) MaxWaveSpeed(s State) float64 {
	max := 0.0
	for i := range s.H {
		c := math.Sqrt(fx.Gravity*s.H[i]) + math.Abs(s.HU[i]/s.H[i])
		if c > max {
			max = c
		}
	}
	return max
}
