package fft

import (
	"errors"
	"testing"
)

func TestPlannersAgree(t *testing.T) {
	const n = 256
	x := randomComplex(5, n)

	radix, err := NewRadix2(n)
	if err != nil {
		t.Fatal(err)
	}
	lib, err := NewAlgoFFT(n)
	if err != nil {
		t.Fatal(err)
	}

	a := make([]Complex, n)
	b := make([]Complex, n)
	if err := radix.Forward(a, x); err != nil {
		t.Fatal(err)
	}
	if err := lib.Forward(b, x); err != nil {
		t.Fatal(err)
	}
	for k := range a {
		if d := a[k].Sub(b[k]).Abs(); d > 1e-9 {
			t.Fatalf("forward bin %d: radix2 %v, algo-fft %v", k, a[k], b[k])
		}
	}

	if err := lib.Inverse(b, b); err != nil {
		t.Fatal(err)
	}
	for i := range b {
		if d := b[i].Sub(x[i]).Abs(); d > 1e-9 {
			t.Fatalf("inverse sample %d: got %v, want %v", i, b[i], x[i])
		}
	}
}

func TestPlannerLengthChecks(t *testing.T) {
	if _, err := NewRadix2(12); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Errorf("NewRadix2(12) = %v, want ErrNotPowerOfTwo", err)
	}
	if _, err := NewAlgoFFT(12); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Errorf("NewAlgoFFT(12) = %v, want ErrNotPowerOfTwo", err)
	}

	p, err := NewRadix2(8)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 8 {
		t.Errorf("Len = %d, want 8", p.Len())
	}
	if err := p.Forward(make([]Complex, 8), make([]Complex, 4)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Forward with short src = %v, want ErrLengthMismatch", err)
	}
}
