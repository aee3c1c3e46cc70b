package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hydrolab/swe1d/internal/grid"
	"github.com/hydrolab/swe1d/internal/icond"
	"github.com/hydrolab/swe1d/internal/integrators"
	"github.com/hydrolab/swe1d/internal/spatial"
	"github.com/hydrolab/swe1d/internal/swe"
)

func humpSetup(t *testing.T, n int) (*grid.Grid, swe.State) {
	t.Helper()
	g, err := grid.NewUniform(10, n)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	x0, err := icond.Generate(g.X, icond.Hump)
	if err != nil {
		t.Fatalf("initial condition: %v", err)
	}
	return g, x0
}

func collect(snaps *[]swe.Snapshot) SnapshotFunc {
	return func(s swe.Snapshot) error {
		*snaps = append(*snaps, s)
		return nil
	}
}

func TestRun_SnapshotCadence(t *testing.T) {
	g, x0 := humpSetup(t, 50)
	s := New(swe.NewFlux(), integrators.NewEuler(), spatial.NewCentral2())

	var snaps []swe.Snapshot
	cfg := Config{Dt: 0.01, Duration: 1.0, FPS: 10}
	result, err := s.Run(context.Background(), g, x0, cfg, collect(&snaps))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// One frame per 0.1s crossing plus the initial state.
	if len(snaps) != 11 {
		t.Errorf("expected 11 snapshots, got %d", len(snaps))
	}
	if result.SnapshotsEmitted != len(snaps) {
		t.Errorf("result reports %d emissions, callback saw %d", result.SnapshotsEmitted, len(snaps))
	}
	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}

	if snaps[0].Time != 0 {
		t.Errorf("first snapshot at t=%g, want 0", snaps[0].Time)
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Time <= snaps[i-1].Time {
			t.Errorf("snapshot times not increasing at %d: %g then %g", i, snaps[i-1].Time, snaps[i].Time)
		}
		if snaps[i].Time > cfg.Duration+1e-9 {
			t.Errorf("snapshot %d past duration: t=%g", i, snaps[i].Time)
		}
	}
	if got := snaps[len(snaps)-1].Time; math.Abs(got-result.FinalTime) > 1e-12 {
		t.Errorf("last snapshot at t=%g, final time %g", got, result.FinalTime)
	}
}

func TestRun_FinalEmittedOnceWhenOffCadence(t *testing.T) {
	g, x0 := humpSetup(t, 50)
	s := New(swe.NewFlux(), integrators.NewEuler(), spatial.NewCentral2())

	var snaps []swe.Snapshot
	// 9 steps of 0.1 cover 0.9 of the 0.95 requested; the trailing
	// fraction is dropped and the final state lands between frames.
	cfg := Config{Dt: 0.1, Duration: 0.95, FPS: 2}
	result, err := s.Run(context.Background(), g, x0, cfg, collect(&snaps))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 9 {
		t.Errorf("expected 9 steps, got %d", result.StepsTaken)
	}
	if math.Abs(result.FinalTime-0.9) > 1e-12 {
		t.Errorf("final time %g, want 0.9", result.FinalTime)
	}
	last := snaps[len(snaps)-1]
	if math.Abs(last.Time-0.9) > 1e-12 {
		t.Errorf("last snapshot at t=%g, want 0.9", last.Time)
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Time == snaps[i-1].Time {
			t.Errorf("duplicate snapshot at t=%g", snaps[i].Time)
		}
	}
}

func TestRun_ZeroFPSEmitsEndpointsOnly(t *testing.T) {
	g, x0 := humpSetup(t, 50)
	s := New(swe.NewFlux(), integrators.NewRK2(), spatial.NewCentral2())

	var snaps []swe.Snapshot
	_, err := s.Run(context.Background(), g, x0, Config{Dt: 0.01, Duration: 0.2}, collect(&snaps))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected initial and final snapshots only, got %d", len(snaps))
	}
	if snaps[0].Time != 0 || math.Abs(snaps[1].Time-0.2) > 1e-12 {
		t.Errorf("snapshot times %g, %g", snaps[0].Time, snaps[1].Time)
	}
}

func TestRun_FlatLakeStaysFlat(t *testing.T) {
	g, err := grid.NewUniform(10, 40)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	x0 := swe.NewState(40)
	for i := range x0.H {
		x0.H[i] = 2.0
	}

	s := New(swe.NewFlux(), integrators.NewRK4(), spatial.NewWENO5())
	result, err := s.Run(context.Background(), g, x0, Config{Dt: 0.001, Duration: 0.1, FPS: 20}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i := range result.Final.H {
		if result.Final.H[i] != 2.0 || result.Final.HU[i] != 0.0 {
			t.Fatalf("flat lake disturbed at cell %d: h=%v hu=%v", i, result.Final.H[i], result.Final.HU[i])
		}
	}
}

func TestRun_ValidatesInputs(t *testing.T) {
	g, x0 := humpSetup(t, 50)
	s := New(swe.NewFlux(), integrators.NewEuler(), spatial.NewCentral2())
	ctx := context.Background()

	tests := []struct {
		name string
		grid *grid.Grid
		x0   swe.State
		cfg  Config
		want error
	}{
		{"negative dt", g, x0, Config{Dt: -0.1, Duration: 1}, swe.ErrBadTimeStep},
		{"zero duration", g, x0, Config{Dt: 0.1, Duration: 0}, swe.ErrBadTimeStep},
		{"negative fps", g, x0, Config{Dt: 0.1, Duration: 1, FPS: -1}, swe.ErrBadTimeStep},
		{"state/grid mismatch", g, swe.NewState(10), Config{Dt: 0.1, Duration: 1}, swe.ErrStateMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Run(ctx, tc.grid, tc.x0, tc.cfg, nil)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRun_DriedCellReportsUnstable(t *testing.T) {
	g, x0 := humpSetup(t, 50)
	x0.H[25] = 0
	x0.HU[25] = 1

	s := New(swe.NewFlux(), integrators.NewEuler(), spatial.NewCentral2())
	_, err := s.Run(context.Background(), g, x0, Config{Dt: 0.001, Duration: 1, ValidateState: true}, nil)
	if !errors.Is(err, swe.ErrUnstable) {
		t.Fatalf("got %v, want ErrUnstable", err)
	}
	var stepErr *swe.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("error does not carry step context: %v", err)
	}
	if stepErr.Step != 0 {
		t.Errorf("instability at step %d, expected immediate blow-up", stepErr.Step)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	g, x0 := humpSetup(t, 50)
	s := New(swe.NewFlux(), integrators.NewEuler(), spatial.NewCentral2())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, g, x0, Config{Dt: 0.001, Duration: 1}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestRun_SuggestedDtWhenUnset(t *testing.T) {
	g, x0 := humpSetup(t, 100)
	s := New(swe.NewFlux(), integrators.NewRK3(), spatial.NewWENO5())

	result, err := s.Run(context.Background(), g, x0, Config{Duration: 0.1}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := s.SuggestDt(g, x0, DefaultCourant)
	if want <= 0 {
		t.Fatalf("suggested dt %g", want)
	}
	if result.StepsTaken != int(0.1/want) {
		t.Errorf("steps %d, want %d", result.StepsTaken, int(0.1/want))
	}
}

// The central operator telescopes over a periodic ring, so total water
// volume is conserved to roundoff regardless of the integrator.
func TestRun_ConservesMass(t *testing.T) {
	g, x0 := humpSetup(t, 100)
	s := New(swe.NewFlux(), integrators.NewRK4(), spatial.NewCentral2())

	mass0 := x0.H.Sum() * g.Dx
	result, err := s.Run(context.Background(), g, x0, Config{Dt: 0.001, Duration: 0.5}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mass1 := result.Final.H.Sum() * g.Dx
	if drift := math.Abs(mass1-mass0) / mass0; drift > 1e-8 {
		t.Errorf("relative mass drift %g", drift)
	}
}

type countingMetric struct{ calls int }

func (m *countingMetric) Name() string                  { return "calls" }
func (m *countingMetric) Observe(_ swe.State, _ float64) { m.calls++ }
func (m *countingMetric) Value() float64                { return float64(m.calls) }
func (m *countingMetric) Reset()                        { m.calls = 0 }

func TestRun_MetricsObservedEveryStep(t *testing.T) {
	g, x0 := humpSetup(t, 50)
	s := New(swe.NewFlux(), integrators.NewEuler(), spatial.NewCentral2())
	m := &countingMetric{calls: 99}
	s.AddMetric(m)

	result, err := s.Run(context.Background(), g, x0, Config{Dt: 0.01, Duration: 0.1}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// Reset on entry, one observation per step plus the final state.
	if got := result.Metrics["calls"]; got != 11 {
		t.Errorf("metric observed %v times, want 11", got)
	}
}

// referenceEuler is a direct port of the textbook central+Euler update
// loop with hand-written wraparound, used as an independent check on the
// composed engine.
func referenceEuler(h, q []float64, dx, dt, g float64, steps int) ([]float64, []float64) {
	n := len(h)
	coef := dt / (2 * dx)
	for s := 0; s < steps; s++ {
		nh := make([]float64, n)
		nq := make([]float64, n)
		for i := 0; i < n; i++ {
			ip := (i + 1) % n
			im := (i - 1 + n) % n
			nh[i] = h[i] - coef*(q[ip]-q[im])
			fp := q[ip]*q[ip]/h[ip] + 0.5*g*h[ip]*h[ip]
			fm := q[im]*q[im]/h[im] + 0.5*g*h[im]*h[im]
			nq[i] = q[i] - coef*(fp-fm)
		}
		h, q = nh, nq
	}
	return h, q
}

func TestRun_MatchesReferenceLoop(t *testing.T) {
	if testing.Short() {
		t.Skip("long reference comparison")
	}
	g, x0 := humpSetup(t, 100)
	dt := 0.0001 * g.Dx / math.Sqrt(2*swe.DefaultGravity)
	const T = 0.5

	s := New(swe.NewFlux(), integrators.NewEuler(), spatial.NewCentral2())
	result, err := s.Run(context.Background(), g, x0, Config{Dt: dt, Duration: T}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	h, q := referenceEuler(x0.H.Clone(), x0.HU.Clone(), g.Dx, dt, swe.DefaultGravity, result.StepsTaken)
	for i := 0; i < g.N; i++ {
		if math.Abs(result.Final.H[i]-h[i]) > 1e-9 {
			t.Fatalf("h diverges at cell %d: %v vs %v", i, result.Final.H[i], h[i])
		}
		if math.Abs(result.Final.HU[i]-q[i]) > 1e-9 {
			t.Fatalf("hu diverges at cell %d: %v vs %v", i, result.Final.HU[i], q[i])
		}
	}
}
