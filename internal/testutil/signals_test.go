package testutil

import (
	"math"
	"testing"
)

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	if len(imp) != 8 {
		t.Fatalf("len = %d, want 8", len(imp))
	}
	for i, v := range imp {
		if i == 3 {
			if v != 1 {
				t.Fatalf("imp[3] = %v, want 1", v)
			}
		} else if v != 0 {
			t.Fatalf("imp[%d] = %v, want 0", i, v)
		}
	}
}

func TestImpulseOutOfBounds(t *testing.T) {
	imp := Impulse(4, 10)
	for i, v := range imp {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestExponentialDecay(t *testing.T) {
	h := ExponentialDecay(1, 1000, 1001)
	if h[0] != 1 {
		t.Fatalf("h[0] = %v, want 1", h[0])
	}
	// 60 dB energy drop is a factor 1e-3 in amplitude.
	if math.Abs(h[1000]-1e-3) > 1e-12 {
		t.Fatalf("h[1000] = %v, want 1e-3", h[1000])
	}
	for i := 1; i < len(h); i++ {
		if h[i] >= h[i-1] {
			t.Fatalf("not decreasing at %d", i)
		}
	}
}

func TestNoisyDecayEnvelope(t *testing.T) {
	a := NoisyDecay(5, 0.5, 8000, 100)
	b := NoisyDecay(5, 0.5, 8000, 100)
	env := ExponentialDecay(0.5, 8000, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("not deterministic at %d", i)
		}
		if env[i] == 0 {
			t.Fatalf("envelope vanished at %d", i)
		}
	}
}
