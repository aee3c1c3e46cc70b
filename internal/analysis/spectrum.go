// Package analysis post-processes recorded runs: spectral content of the
// free surface at a probe cell.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a power-of-two length
// series by radix-2 decimation in time.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}
	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitude of the positive-frequency half of
// the transform, zero-padding the input up to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// ProbeSpectrum extracts the height time series at one grid cell from a
// sequence of snapshot profiles and returns its power spectrum. The mean
// is removed first so the zero-frequency bin does not swamp the plot.
func ProbeSpectrum(profiles [][]float64, cell int) ([]float64, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles to analyze")
	}
	if cell < 0 || cell >= len(profiles[0]) {
		return nil, fmt.Errorf("probe cell %d outside grid of %d", cell, len(profiles[0]))
	}

	series := make([]float64, len(profiles))
	mean := 0.0
	for i, p := range profiles {
		series[i] = p[cell]
		mean += p[cell]
	}
	mean /= float64(len(series))
	for i := range series {
		series[i] -= mean
	}
	return PowerSpectrum(series), nil
}

// DominantFrequency locates the strongest non-DC bin of a spectrum and
// converts it to hertz. samples is the length of the original time series
// spanning `duration` seconds; the transform behind ps is zero-padded to a
// power of two, so the bin spacing is the sample rate over the padded
// length, not 1/duration. Returns 0 for an empty or flat spectrum.
func DominantFrequency(ps []float64, samples int, duration float64) float64 {
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || samples < 2 || duration <= 0 {
		return 0
	}
	sampleRate := float64(samples-1) / duration
	nPadded := 2 * len(ps)
	return float64(maxIdx) * sampleRate / float64(nPadded)
}
