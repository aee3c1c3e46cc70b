// Package experiment maps the user-facing names of schemes and scenarios
// onto their constructors, so the CLI and config layer never import the
// numerics packages directly.
package experiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hydrolab/swe1d/internal/grid"
	"github.com/hydrolab/swe1d/internal/integrators"
	"github.com/hydrolab/swe1d/internal/metrics"
	"github.com/hydrolab/swe1d/internal/spatial"
	"github.com/hydrolab/swe1d/internal/swe"
)

type Registry struct {
	differencers map[string]func() swe.Differencer
	integrators  map[string]func() swe.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		differencers: make(map[string]func() swe.Differencer),
		integrators:  make(map[string]func() swe.Integrator),
	}

	r.differencers["upwind"] = func() swe.Differencer { return spatial.NewUpwind1() }
	r.differencers["central"] = func() swe.Differencer { return spatial.NewCentral2() }
	r.differencers["weno"] = func() swe.Differencer { return spatial.NewWENO5() }

	r.integrators["euler"] = func() swe.Integrator { return integrators.NewEuler() }
	r.integrators["rk2"] = func() swe.Integrator { return integrators.NewRK2() }
	r.integrators["rk3"] = func() swe.Integrator { return integrators.NewRK3() }
	r.integrators["rk4"] = func() swe.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) Differencer(name string) (swe.Differencer, error) {
	fn, ok := r.differencers[name]
	if !ok {
		return nil, fmt.Errorf("unknown spatial scheme %q (available: %s)",
			name, strings.Join(r.DifferencerNames(), ", "))
	}
	return fn(), nil
}

func (r *Registry) Integrator(name string) (swe.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator %q (available: %s)",
			name, strings.Join(r.IntegratorNames(), ", "))
	}
	return fn(), nil
}

func (r *Registry) DifferencerNames() []string { return sortedKeys(r.differencers) }
func (r *Registry) IntegratorNames() []string  { return sortedKeys(r.integrators) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics is the diagnostic set attached to every run: conservation
// drift for both fields, the shallowest cell, and the peak Courant number.
func DefaultMetrics(fx *swe.Flux, g *grid.Grid, dt float64) []swe.Metric {
	return []swe.Metric{
		metrics.NewTotalMass(g.Dx),
		metrics.NewTotalMomentum(g.Dx),
		metrics.NewMinHeight(),
		metrics.NewCourant(fx, g.Dx, dt),
	}
}
