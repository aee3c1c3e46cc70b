// Package swe provides the core primitives for the one-dimensional
// shallow-water solver.
//
// The package defines the types and interfaces every other layer builds on:
//
//   - [Field]: per-cell scalar quantity on a periodic grid
//   - [State]: the conserved (h, hu) pair advanced in time
//   - [Differencer]: spatial differentiation strategy
//   - [Integrator]: explicit time-integration strategy
//   - [Flux]: the shallow-water right-hand-side evaluator
//
// The governing equations in conservative form are
//
//	h_t  + (hu)_x               = 0
//	hu_t + (hu²/h + ½·g·h²)_x   = 0
//
// with periodic boundary conditions. Space is discretised first and the
// resulting ODE system is handed to a generic time integrator (method of
// lines), so any Differencer composes with any Integrator.
package swe
