package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// ExponentialDecay returns an impulse response whose energy falls by 60 dB
// every rt60 seconds: h[i] = exp(-3 ln(10) t / rt60).
func ExponentialDecay(rt60 float64, sampleRate, length int) []float64 {
	out := make([]float64, length)
	k := 3 * math.Ln10 / rt60
	for i := range out {
		out[i] = math.Exp(-k * float64(i) / float64(sampleRate))
	}
	return out
}

// NoisyDecay multiplies ExponentialDecay by seeded Gaussian noise, giving a
// diffuse-field room response with the same energy envelope.
func NoisyDecay(seed int64, rt60 float64, sampleRate, length int) []float64 {
	out := ExponentialDecay(rt60, sampleRate, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] *= rng.NormFloat64()
	}
	return out
}
