// Package fft provides a Radix-2 Cooley-Tukey fast Fourier transform over an
// explicit complex value type.
//
// The forward transform uses the kernel exp(+2πi·nk/N); the inverse uses
// exp(-2πi·nk/N) and scales every output sample by 1/N, so that
// Inverse(Forward(x)) reconstructs x within floating-point tolerance.
// This is the conjugate of the textbook convention: a forward transform
// here equals N times a textbook inverse transform. Spectra of real
// signals are still Hermitian, and convolution still maps to bin-wise
// multiplication.
//
// Transform lengths must be powers of two. Callers zero-pad their data with
// [FromReal] or [NextPowerOfTwo] before transforming; any other length is
// reported as [ErrNotPowerOfTwo] rather than silently coerced.
//
// # Usage
//
// In-place transforms on a caller-owned buffer:
//
//	x := fft.FromReal(samples, fft.NextPowerOfTwo(len(samples)))
//	if err := fft.Forward(x); err != nil {
//	    return err
//	}
//	// ... operate on the spectrum ...
//	if err := fft.Inverse(x); err != nil {
//	    return err
//	}
//	out := fft.RealPart(x)
//
// Components that want to swap the transform backend accept a [Planner]:
//
//	plan, err := fft.NewAlgoFFT(n) // or fft.NewRadix2(n)
//	err = plan.Forward(dst, src)
package fft
