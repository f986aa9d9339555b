package signal

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by signal helpers.
var (
	ErrSampleRateMismatch = errors.New("signal: sample rates differ")
	ErrInvalidSampleRate  = errors.New("signal: sample rate must be > 0")
	ErrNotFinite          = errors.New("signal: sample is NaN or Inf")
)

// Signal is a mono sequence of real samples tagged with its sample rate.
// Samples are nominally in [-1, 1].
type Signal struct {
	Samples    []float64
	SampleRate int
}

// New wraps samples and sampleRate into a Signal. The slice is not copied.
func New(samples []float64, sampleRate int) Signal {
	return Signal{Samples: samples, SampleRate: sampleRate}
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Duration returns the playing time of s. Zero for an invalid sample rate.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Validate checks the sample rate and that every sample is finite.
func (s Signal) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, s.SampleRate)
	}
	for i, v := range s.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w at index %d", ErrNotFinite, i)
		}
	}
	return nil
}

// CheckSameRate returns ErrSampleRateMismatch when a and b carry different
// sample rates.
func CheckSameRate(a, b Signal) error {
	if a.SampleRate != b.SampleRate {
		return fmt.Errorf("%w: %d Hz vs %d Hz", ErrSampleRateMismatch, a.SampleRate, b.SampleRate)
	}
	return nil
}

// TruncateToShorter returns a and b cut to the length of the shorter one.
// The underlying arrays are shared with the inputs.
func TruncateToShorter(a, b Signal) (Signal, Signal) {
	n := min(len(a.Samples), len(b.Samples))
	a.Samples = a.Samples[:n]
	b.Samples = b.Samples[:n]
	return a, b
}

// Peak returns the largest absolute sample value in x.
func Peak(x []float64) float64 {
	return vecmath.MaxAbs(x)
}

// Normalize scales data to target peak amplitude and returns a new slice.
// An all-zero input yields an all-zero output.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}

	out := make([]float64, len(data))
	peak := Peak(data)
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/peak)
	return out, nil
}
