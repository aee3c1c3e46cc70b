package swe

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to callers. Configuration errors are reported
// before any stepping begins; ErrUnstable is reported mid-run.
var (
	// ErrGridTooSmall indicates fewer than the 4 cells the widest stencil needs.
	ErrGridTooSmall = errors.New("swe: grid needs at least 4 cells")

	// ErrBadDomain indicates a non-positive domain extent or cell spacing.
	ErrBadDomain = errors.New("swe: domain extent must be positive")

	// ErrUnknownScenario indicates an unrecognized initial condition name.
	ErrUnknownScenario = errors.New("swe: unknown initial condition scenario")

	// ErrBadTimeStep indicates a non-positive dt, duration, or frame rate.
	ErrBadTimeStep = errors.New("swe: time step, duration and fps must be positive")

	// ErrStateMismatch indicates initial state arrays whose length differs
	// from the grid.
	ErrStateMismatch = errors.New("swe: state length does not match grid")

	// ErrUnstable indicates the state picked up NaN or Inf values, typically
	// from a dried cell (h → 0) or a time step violating the CFL bound.
	ErrUnstable = errors.New("swe: simulation unstable (non-finite state)")
)

// StepError records where in the run an error occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
