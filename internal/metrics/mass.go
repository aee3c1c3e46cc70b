// Package metrics provides per-step diagnostics for shallow-water runs.
// Each metric reduces the whole run to a single number reported alongside
// the results.
package metrics

import (
	"math"

	"github.com/hydrolab/swe1d/internal/swe"
)

// TotalMass tracks the worst relative drift of the total water volume
// from its initial value. The periodic domain has no boundary flux, so
// any drift is numerical.
type TotalMass struct {
	dx       float64
	initial  float64
	maxDrift float64
	seen     bool
}

func NewTotalMass(dx float64) *TotalMass { return &TotalMass{dx: dx} }

func (m *TotalMass) Name() string { return "mass_drift" }

func (m *TotalMass) Observe(s swe.State, t float64) {
	mass := s.H.Sum() * m.dx
	if !m.seen {
		m.initial = mass
		m.seen = true
		return
	}
	if m.initial == 0 {
		return
	}
	drift := math.Abs(mass-m.initial) / math.Abs(m.initial)
	if drift > m.maxDrift {
		m.maxDrift = drift
	}
}

func (m *TotalMass) Value() float64 { return m.maxDrift }

func (m *TotalMass) Reset() { *m = TotalMass{dx: m.dx} }

// TotalMomentum tracks the worst absolute drift of total momentum. The
// initial total is often zero (fluid at rest), so the drift is absolute
// rather than relative.
type TotalMomentum struct {
	dx       float64
	initial  float64
	maxDrift float64
	seen     bool
}

func NewTotalMomentum(dx float64) *TotalMomentum { return &TotalMomentum{dx: dx} }

func (m *TotalMomentum) Name() string { return "momentum_drift" }

func (m *TotalMomentum) Observe(s swe.State, t float64) {
	p := s.HU.Sum() * m.dx
	if !m.seen {
		m.initial = p
		m.seen = true
		return
	}
	drift := math.Abs(p - m.initial)
	if drift > m.maxDrift {
		m.maxDrift = drift
	}
}

func (m *TotalMomentum) Value() float64 { return m.maxDrift }

func (m *TotalMomentum) Reset() { *m = TotalMomentum{dx: m.dx} }

// MinHeight records the shallowest water column seen over the whole run,
// an early warning for drying before the solver blows up.
type MinHeight struct {
	min  float64
	seen bool
}

func NewMinHeight() *MinHeight { return &MinHeight{} }

func (m *MinHeight) Name() string { return "min_height" }

func (m *MinHeight) Observe(s swe.State, t float64) {
	for _, h := range s.H {
		if !m.seen || h < m.min {
			m.min = h
			m.seen = true
		}
	}
}

func (m *MinHeight) Value() float64 { return m.min }

func (m *MinHeight) Reset() { *m = MinHeight{} }
