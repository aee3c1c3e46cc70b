package metrics

import "github.com/hydrolab/swe1d/internal/swe"

// Courant records the largest Courant number (√(g·h)+|u|)·dt/dx reached
// during a run. Values creeping toward 1 mean the fixed dt is about to
// stop being safe for the explicit schemes.
type Courant struct {
	flux *swe.Flux
	dx   float64
	dt   float64
	max  float64
}

func NewCourant(fx *swe.Flux, dx, dt float64) *Courant {
	return &Courant{flux: fx, dx: dx, dt: dt}
}

func (m *Courant) Name() string { return "max_courant" }

func (m *Courant) Observe(s swe.State, t float64) {
	c := m.flux.MaxWaveSpeed(s) * m.dt / m.dx
	if c > m.max {
		m.max = c
	}
}

func (m *Courant) Value() float64 { return m.max }

func (m *Courant) Reset() { m.max = 0 }
