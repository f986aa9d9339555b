package fft

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// Transformer is a fixed-length transform backend.
// Forward and Inverse follow the conventions of the package-level functions;
// dst and src may alias.
type Transformer interface {
	Len() int
	Forward(dst, src []Complex) error
	Inverse(dst, src []Complex) error
}

// Planner creates a Transformer for length n.
type Planner func(n int) (Transformer, error)

// Radix2 is the built-in Transformer backed by Forward and Inverse.
type Radix2 struct {
	n int
}

// NewRadix2 returns a Radix-2 Transformer for length n.
func NewRadix2(n int) (Transformer, error) {
	if !IsPowerOfTwo(n) {
		return nil, ErrNotPowerOfTwo
	}

	return &Radix2{n: n}, nil
}

// Len returns the transform length.
func (r *Radix2) Len() int { return r.n }

// Forward writes the forward transform of src into dst.
func (r *Radix2) Forward(dst, src []Complex) error {
	if len(dst) != r.n || len(src) != r.n {
		return ErrLengthMismatch
	}

	copy(dst, src)

	return Forward(dst)
}

// Inverse writes the scaled inverse transform of src into dst.
func (r *Radix2) Inverse(dst, src []Complex) error {
	if len(dst) != r.n || len(src) != r.n {
		return ErrLengthMismatch
	}

	copy(dst, src)

	return Inverse(dst)
}

// AlgoFFT is a Transformer backed by the algo-fft planned transforms.
type AlgoFFT struct {
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

// NewAlgoFFT returns an algo-fft backed Transformer for length n.
// The length is held to the same power-of-two contract as Radix2 so the
// two backends are interchangeable. algo-fft transforms with the textbook
// sign convention, so data is conjugated on the way in and out.
func NewAlgoFFT(n int) (Transformer, error) {
	if !IsPowerOfTwo(n) {
		return nil, ErrNotPowerOfTwo
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create FFT plan: %w", err)
	}

	return &AlgoFFT{
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}, nil
}

// Len returns the transform length.
func (a *AlgoFFT) Len() int { return len(a.in) }

// Forward writes the forward transform of src into dst.
func (a *AlgoFFT) Forward(dst, src []Complex) error {
	if len(dst) != len(a.in) || len(src) != len(a.in) {
		return ErrLengthMismatch
	}

	a.load(src)

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("fft: forward FFT failed: %w", err)
	}

	a.store(dst)

	return nil
}

// Inverse writes the scaled inverse transform of src into dst.
func (a *AlgoFFT) Inverse(dst, src []Complex) error {
	if len(dst) != len(a.in) || len(src) != len(a.in) {
		return ErrLengthMismatch
	}

	a.load(src)

	if err := a.plan.Inverse(a.out, a.in); err != nil {
		return fmt.Errorf("fft: inverse FFT failed: %w", err)
	}

	a.store(dst)

	return nil
}

func (a *AlgoFFT) load(src []Complex) {
	for i, c := range src {
		a.in[i] = c.Conj().Complex128()
	}
}

func (a *AlgoFFT) store(dst []Complex) {
	for i, z := range a.out {
		dst[i] = FromComplex128(z).Conj()
	}
}
