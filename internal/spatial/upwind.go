package spatial

import "github.com/hydrolab/swe1d/internal/swe"

// Upwind1 is the first-order upwind difference with a fixed left-to-right
// winding: the face value at i+1/2 is the cell value itself, so the
// derivative reduces to (f[i] - f[i-1]) / dx. The winding is a property of
// the scheme choice, not of the data. O(dx) accurate.
type Upwind1 struct{}

func NewUpwind1() *Upwind1 { return &Upwind1{} }

func (u *Upwind1) Derivative(f swe.Field, dx float64) swe.Field {
	n := len(f)
	d := make(swe.Field, n)
	inv := 1.0 / dx
	for i := 0; i < n; i++ {
		d[i] = (f[i] - f[swe.Wrap(i, -1, n)]) * inv
	}
	return d
}
