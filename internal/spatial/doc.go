// Package spatial implements the interchangeable differentiation schemes.
//
// All three satisfy [swe.Differencer] with identical semantics: result[i]
// approximates the spatial derivative of the field at cell i under periodic
// wraparound. Switching numerical order is purely a configuration change:
//
//   - [Upwind1]: first-order backward difference, cheap and diffusive
//   - [Central2]: second-order central difference, non-dissipative
//   - [WENO5]: fifth-order weighted essentially non-oscillatory
//     reconstruction, suppresses oscillation at discontinuities
package spatial
