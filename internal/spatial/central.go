package spatial

import "github.com/hydrolab/swe1d/internal/swe"

// Central2 is the second-order central difference
// (f[i+1] - f[i-1]) / (2·dx) with periodic wraparound. Non-dissipative;
// the scheme of the canonical reference configuration.
type Central2 struct{}

func NewCentral2() *Central2 { return &Central2{} }

func (c *Central2) Derivative(f swe.Field, dx float64) swe.Field {
	n := len(f)
	d := make(swe.Field, n)
	inv := 1.0 / (2.0 * dx)
	for i := 0; i < n; i++ {
		d[i] = (f[swe.Wrap(i, 1, n)] - f[swe.Wrap(i, -1, n)]) * inv
	}
	return d
}
