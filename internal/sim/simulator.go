// Package sim drives a shallow-water run: fixed-dt stepping over a periodic
// grid with snapshot emission at a frame-rate cadence.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/hydrolab/swe1d/internal/grid"
	"github.com/hydrolab/swe1d/internal/swe"
)

// Config holds the time-stepping parameters of a run. Spatial parameters
// live on the grid.
type Config struct {
	// Dt is the fixed step size. Zero asks the driver to derive one from
	// the initial state via SuggestDt.
	Dt float64
	// Duration is the simulated time span. The run takes
	// floor(Duration/Dt) steps; a trailing fraction of a step is dropped.
	Duration float64
	// FPS is the snapshot cadence in frames per simulated second. Zero
	// means initial and final snapshots only.
	FPS int
	// ValidateState aborts the run with ErrUnstable as soon as a step
	// produces NaN or Inf.
	ValidateState bool
}

// SnapshotFunc receives each emitted frame. The state is a private copy;
// the consumer may keep it. A non-nil error aborts the run.
type SnapshotFunc func(swe.Snapshot) error

// Result summarizes a completed run.
type Result struct {
	Final            swe.State
	FinalTime        float64
	StepsTaken       int
	SnapshotsEmitted int
	Metrics          map[string]float64
}

type Simulator struct {
	flux       *swe.Flux
	integrator swe.Integrator
	diff       swe.Differencer
	metrics    []swe.Metric
}

func New(fx *swe.Flux, ig swe.Integrator, sd swe.Differencer) *Simulator {
	return &Simulator{
		flux:       fx,
		integrator: ig,
		diff:       sd,
		metrics:    make([]swe.Metric, 0),
	}
}

func (s *Simulator) AddMetric(m swe.Metric) { s.metrics = append(s.metrics, m) }

// DefaultCourant is the fraction of the linear stability limit used when
// the caller leaves Dt unset.
const DefaultCourant = 0.1

// SuggestDt derives a step size from the fastest characteristic of the
// initial state: courant·dx/max(√(g·h)+|u|).
func (s *Simulator) SuggestDt(g *grid.Grid, x0 swe.State, courant float64) float64 {
	c := s.flux.MaxWaveSpeed(x0)
	if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return courant * g.Dx / c
}

// Run advances x0 over cfg.Duration and feeds snapshots to emit (which may
// be nil). The initial state is always emitted at t=0, interior frames at
// each 1/FPS crossing tagged with the actual step time, and the final
// state exactly once.
func (s *Simulator) Run(ctx context.Context, g *grid.Grid, x0 swe.State, cfg Config, emit SnapshotFunc) (*Result, error) {
	if cfg.Dt == 0 {
		cfg.Dt = s.SuggestDt(g, x0, DefaultCourant)
	}
	if err := validate(g, x0, cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}

	interval := math.Inf(1)
	if cfg.FPS > 0 {
		interval = 1.0 / float64(cfg.FPS)
	}
	// Absorbs accumulated float drift so a step landing a hair short of a
	// frame boundary still counts as crossing it.
	eps := 1e-9 * cfg.Dt

	lastEmit := math.Inf(-1)
	send := func(x swe.State, t float64) error {
		if emit != nil {
			if err := emit(swe.Snapshot{State: x.Clone(), Time: t}); err != nil {
				return fmt.Errorf("emit snapshot at t=%g: %w", t, err)
			}
		}
		result.SnapshotsEmitted++
		lastEmit = t
		return nil
	}

	x := x0.Clone()
	t := 0.0
	if err := send(x, t); err != nil {
		return nil, err
	}
	nextOut := interval

	steps := int(cfg.Duration / cfg.Dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}

		x = s.integrator.Step(s.flux, x, g.Dx, cfg.Dt, s.diff)
		t = float64(i+1) * cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return result, &swe.StepError{Step: i, Time: t, Wrapped: swe.ErrUnstable}
		}

		if t+eps >= nextOut {
			if err := send(x, t); err != nil {
				return nil, err
			}
			for nextOut <= t+eps {
				nextOut += interval
			}
		}
	}

	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	if t != lastEmit {
		if err := send(x, t); err != nil {
			return nil, err
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = x
	result.FinalTime = t
	result.StepsTaken = steps
	return result, nil
}

func validate(g *grid.Grid, x0 swe.State, cfg Config) error {
	if x0.Len() != g.N {
		return fmt.Errorf("initial state has %d cells, grid has %d: %w", x0.Len(), g.N, swe.ErrStateMismatch)
	}
	if len(x0.HU) != len(x0.H) {
		return fmt.Errorf("height and momentum lengths differ (%d vs %d): %w", len(x0.H), len(x0.HU), swe.ErrStateMismatch)
	}
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) {
		return fmt.Errorf("dt must be positive, got %g: %w", cfg.Dt, swe.ErrBadTimeStep)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) {
		return fmt.Errorf("duration must be positive, got %g: %w", cfg.Duration, swe.ErrBadTimeStep)
	}
	if cfg.FPS < 0 {
		return fmt.Errorf("fps must be non-negative, got %d: %w", cfg.FPS, swe.ErrBadTimeStep)
	}
	return nil
}
