package fft

import (
	"errors"
	"math"
)

// Errors returned by transform functions.
var (
	ErrNotPowerOfTwo  = errors.New("fft: length must be a power of two")
	ErrLengthMismatch = errors.New("fft: buffer length does not match plan length")
)

// Forward computes the discrete Fourier transform of x in place.
//
//	X[k] = sum_{n=0}^{N-1} x[n] * exp(+2πi*nk/N)
func Forward(x []Complex) error {
	return transform(x, +1)
}

// Inverse computes the inverse discrete Fourier transform of x in place,
// including the 1/N scaling.
//
//	x[n] = 1/N * sum_{k=0}^{N-1} X[k] * exp(-2πi*nk/N)
func Inverse(x []Complex) error {
	err := transform(x, -1)
	if err != nil {
		return err
	}

	scale := 1.0 / float64(len(x))
	for i := range x {
		x[i] = x[i].Scale(scale)
	}

	return nil
}

// transform runs the unscaled Radix-2 butterfly network. sign selects the
// twiddle direction: +1 forward, -1 inverse.
func transform(x []Complex, sign float64) error {
	n := len(x)
	if !IsPowerOfTwo(n) {
		return ErrNotPowerOfTwo
	}

	bitReverse(x)

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		wStep := Polar(sign * 2 * math.Pi / float64(size))

		for start := 0; start < n; start += size {
			w := Complex{Re: 1}
			for k := range half {
				u := x[start+k]
				v := x[start+k+half].Mul(w)
				x[start+k] = u.Add(v)
				x[start+k+half] = u.Sub(v)
				w = w.Mul(wStep)
			}
		}
	}

	return nil
}

// bitReverse permutes x into bit-reversed index order.
func bitReverse(x []Complex) {
	n := len(x)
	j := 0

	for i := 1; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}

		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// FromReal returns a complex buffer of length n holding x zero-padded (or
// truncated) to n samples.
func FromReal(x []float64, n int) []Complex {
	out := make([]Complex, n)
	for i := 0; i < len(x) && i < n; i++ {
		out[i].Re = x[i]
	}

	return out
}

// RealPart extracts the real component of every element of x.
func RealPart(x []Complex) []float64 {
	out := make([]float64, len(x))
	for i, c := range x {
		out[i] = c.Re
	}

	return out
}
