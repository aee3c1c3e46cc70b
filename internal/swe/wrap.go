package swe

// Wrap maps cell i offset by k onto [0, n) under periodic boundary
// conditions. Go's % operator truncates toward zero, so the remainder is
// re-shifted to keep the result non-negative for any signed offset.
func Wrap(i, k, n int) int {
	m := (i + k) % n
	if m < 0 {
		m += n
	}
	return m
}
