package swe

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is a per-cell scalar quantity, index-aligned with the grid.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total of the field, the discrete analogue of the
// conserved integral (up to a factor of dx).
func (f Field) Sum() float64 {
	return floats.Sum(f)
}

func (f Field) Max() float64 {
	return floats.Max(f)
}

// State is the conserved pair advanced by the integrators: water column
// height H and momentum HU. Integrators never mutate a State in place;
// every step produces a fresh one.
type State struct {
	H  Field
	HU Field
}

func NewState(n int) State {
	return State{H: make(Field, n), HU: make(Field, n)}
}

func (s State) Len() int { return len(s.H) }

func (s State) Clone() State {
	return State{H: s.H.Clone(), HU: s.HU.Clone()}
}

func (s State) IsValid() bool {
	return s.H.IsValid() && s.HU.IsValid()
}

// Snapshot tags a State with the simulated time at which it was taken.
// Ownership passes to the consumer on emission.
type Snapshot struct {
	State State
	Time  float64
}

// Differencer approximates the spatial derivative of a cell-centered field
// under periodic wraparound. The result has the same length as f.
type Differencer interface {
	Derivative(f Field, dx float64) Field
}

// Integrator advances the coupled state by one explicit step, using the
// flux evaluator as a black-box right-hand side. Stability is the caller's
// concern; no CFL check happens here.
type Integrator interface {
	Step(fx *Flux, s State, dx, dt float64, sd Differencer) State
}

// Metric observes the state once per step and reduces it to one number.
type Metric interface {
	Name() string
	Observe(s State, t float64)
	Value() float64
	Reset()
}
