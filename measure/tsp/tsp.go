package tsp

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-roomir/dsp/fft"
	"github.com/cwbudde/algo-roomir/dsp/signal"
)

// Errors returned by TSP functions.
var (
	ErrInvalidLength          = errors.New("tsp: length must be a power of two >= 4")
	ErrInvalidEffectiveLength = errors.New("tsp: effective length must be in (0, length]")
	ErrInvalidShift           = errors.New("tsp: shift must be in [0, length)")
	ErrInvalidSampleRate      = errors.New("tsp: sample rate must be positive")
	ErrInvalidPeriods         = errors.New("tsp: periods must be >= 1")
	ErrEmptySignal            = errors.New("tsp: signal is empty")
)

// OutputPeak is the absolute peak that synthesized excitations and
// deconvolved impulse responses are normalized to.
const OutputPeak = 0.9

// Params describes a time-stretched pulse.
type Params struct {
	Length          int // N, transform length (power of two)
	EffectiveLength int // J, controls the sweep duration in samples
	Shift           int // n0, circular shift moving the sweep into the frame
}

// DefaultParams returns N = 2^18, J = N/2 and n0 = N/4.
func DefaultParams() Params {
	const n = 1 << 18
	return ParamsForLength(n)
}

// ParamsForLength returns the default J = N/2 and n0 = N/4 for length n.
func ParamsForLength(n int) Params {
	return Params{Length: n, EffectiveLength: n / 2, Shift: n / 4}
}

// Validate checks that the parameters describe a realizable TSP.
func (p Params) Validate() error {
	if p.Length < 4 || !fft.IsPowerOfTwo(p.Length) {
		return fmt.Errorf("%w: %d", ErrInvalidLength, p.Length)
	}

	if p.EffectiveLength <= 0 || p.EffectiveLength > p.Length {
		return fmt.Errorf("%w: %d", ErrInvalidEffectiveLength, p.EffectiveLength)
	}

	if p.Shift < 0 || p.Shift >= p.Length {
		return fmt.Errorf("%w: %d", ErrInvalidShift, p.Shift)
	}

	return nil
}

// chirpSpectrum fills a length-n Hermitian spectrum with unit magnitude and
// phase sign*2πJ(k/N)² - 2πk·n0/N for 0 <= k <= N/2. The Nyquist bin keeps
// only its real part.
func chirpSpectrum(n, j, shift int, sign float64) fft.Spectrum {
	spec := make(fft.Spectrum, n)
	half := n / 2
	for k := 0; k <= half; k++ {
		f := float64(k) / float64(n)
		theta := sign*2*math.Pi*float64(j)*f*f - 2*math.Pi*float64(k)*float64(shift)/float64(n)
		spec[k] = fft.Polar(theta)
		if k > 0 && k < half {
			spec[n-k] = spec[k].Conj()
		}
	}

	spec[half] = fft.Complex{Re: spec[half].Re}
	return spec
}

// Synthesize builds the up-TSP excitation for p:
//
//	H(k) = exp(i·θ(k)),  θ(k) = -2πJ(k/N)² - 2πk·n0/N
//
// transforms it to the time domain and scales it to a 0.9 peak.
func Synthesize(p Params, sampleRate int) (signal.Signal, error) {
	if err := p.Validate(); err != nil {
		return signal.Signal{}, err
	}

	if sampleRate <= 0 {
		return signal.Signal{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	spec := chirpSpectrum(p.Length, p.EffectiveLength, p.Shift, -1)
	if err := fft.Inverse(spec); err != nil {
		return signal.Signal{}, fmt.Errorf("tsp: inverse FFT failed: %w", err)
	}

	samples, err := signal.Normalize(fft.RealPart(spec), OutputPeak)
	if err != nil {
		return signal.Signal{}, err
	}

	return signal.New(samples, sampleRate), nil
}

// InverseFilter returns the length-n down-TSP spectrum with unit magnitude
// and phase +2πJ(k/N)², the matched filter of an up-TSP with effective
// length J.
func InverseFilter(effectiveLength, n int) (fft.Spectrum, error) {
	if n < 4 || !fft.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	if effectiveLength <= 0 || effectiveLength > n {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEffectiveLength, effectiveLength)
	}

	return chirpSpectrum(n, effectiveLength, 0, +1), nil
}

// Repeat concatenates periods copies of sig, the playback signal for a
// multi-period measurement.
func Repeat(sig signal.Signal, periods int) (signal.Signal, error) {
	if periods < 1 {
		return signal.Signal{}, fmt.Errorf("%w: %d", ErrInvalidPeriods, periods)
	}

	if sig.Len() == 0 {
		return signal.Signal{}, ErrEmptySignal
	}

	out := make([]float64, 0, sig.Len()*periods)
	for range periods {
		out = append(out, sig.Samples...)
	}

	return signal.New(out, sig.SampleRate), nil
}
