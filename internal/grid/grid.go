// Package grid describes the uniform periodic discretisation the solver
// runs on.
package grid

import (
	"fmt"

	"github.com/hydrolab/swe1d/internal/swe"
)

// Grid is an immutable uniform discretisation of [-HalfLength, HalfLength)
// with cell N wrapping back to cell 0. X holds the cell-center coordinates.
type Grid struct {
	N          int
	Dx         float64
	HalfLength float64
	X          []float64
}

// NewUniform builds the grid for a domain of the given half width. The
// rightmost cell sits at HalfLength-Dx so the periodic image of cell 0
// is never duplicated.
func NewUniform(halfLength float64, n int) (*Grid, error) {
	if n < 4 {
		return nil, fmt.Errorf("%w: got %d", swe.ErrGridTooSmall, n)
	}
	if halfLength <= 0 {
		return nil, fmt.Errorf("%w: half length %g", swe.ErrBadDomain, halfLength)
	}

	dx := 2 * halfLength / float64(n)
	x := make([]float64, n)
	for i := range x {
		x[i] = -halfLength + dx*float64(i)
	}

	return &Grid{N: n, Dx: dx, HalfLength: halfLength, X: x}, nil
}
