package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// directThreshold is the kernel length at or below which Convolve stays in
// the time domain.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels.
// For longer kernels, use OverlapAdd.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	if m < 4 {
		for i, av := range a {
			for j, bv := range b {
				dst[i+j] += av * bv
			}
		}
		return
	}

	temp := make([]float64, m)
	for i, av := range a {
		vecmath.ScaleBlock(temp, b, av)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

// DirectCircular performs circular convolution of a and b.
// Both inputs must have the same length N, and the result has length N.
func DirectCircular(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}

	n := len(a)
	result := make([]float64, n)
	for i := range n {
		for j := range n {
			result[(i+j)%n] += a[i] * b[j]
		}
	}
	return result, nil
}

// Convolve performs linear convolution with automatic algorithm selection.
// Kernels of up to 64 samples use direct convolution; longer ones use
// overlap-add with the built-in Radix-2 transform.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= directThreshold {
		return Direct(a, b)
	}

	return OverlapAddConvolve(a, b, nil)
}
