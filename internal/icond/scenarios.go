// Package icond generates the built-in initial conditions. Each scenario
// is a deterministic closed-form function of the cell coordinates.
package icond

import (
	"fmt"
	"math"

	"github.com/hydrolab/swe1d/internal/swe"
)

// Scenario names accepted by Generate.
const (
	Hump     = "hump"     // gaussian hump in height, fluid at rest
	DamBreak = "dambreak" // step discontinuity in height, fluid at rest
	Wave     = "wave"     // sinusoidal surface riding on a uniform current
	Rock     = "rock"     // flat surface disturbed by an impulsive momentum bump
)

// Names lists the scenarios in a stable order.
func Names() []string {
	return []string{Hump, DamBreak, Wave, Rock}
}

// Generate evaluates the chosen scenario on the given cell coordinates.
// An unrecognized name is a configuration error.
func Generate(x []float64, scenario string) (swe.State, error) {
	n := len(x)
	s := swe.NewState(n)

	switch scenario {
	case Hump:
		for i, xi := range x {
			s.H[i] = 1 + 0.3*math.Exp(-xi*xi)
		}

	case DamBreak:
		for i, xi := range x {
			s.H[i] = 1
			if math.Abs(xi) < 2.5 {
				s.H[i] = 1.2
			}
		}

	case Wave:
		for i, xi := range x {
			s.H[i] = 1 + 0.1*math.Sin(xi/10*math.Pi)
			s.HU[i] = 3 * s.H[i]
		}

	case Rock:
		for i, xi := range x {
			s.H[i] = 1
			s.HU[i] = 0.5 * math.Sin(xi/10*math.Pi)
		}

	default:
		return swe.State{}, fmt.Errorf("%w: %q", swe.ErrUnknownScenario, scenario)
	}

	return s, nil
}
