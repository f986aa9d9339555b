package tsp

import (
	"fmt"

	"github.com/cwbudde/algo-roomir/dsp/core"
	"github.com/cwbudde/algo-roomir/dsp/fft"
	"github.com/cwbudde/algo-roomir/dsp/signal"
)

// Method selects how the response spectrum is divided by the excitation.
type Method int

const (
	// MethodInverseFilter multiplies the response spectrum by the analytic
	// down-TSP spectrum. Exact for TSP excitations.
	MethodInverseFilter Method = iota

	// MethodSpectralDivision divides the response spectrum by the measured
	// excitation spectrum. Works for any excitation with a non-vanishing
	// spectrum.
	MethodSpectralDivision
)

// String returns the command-line name of the method.
func (m Method) String() string {
	switch m {
	case MethodInverseFilter:
		return "inverse"
	case MethodSpectralDivision:
		return "division"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "inverse" or "division" to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "inverse":
		return MethodInverseFilter, nil
	case "division":
		return MethodSpectralDivision, nil
	default:
		return 0, fmt.Errorf("tsp: unknown deconvolution method %q", s)
	}
}

const defaultEpsilon = 1e-10

type config struct {
	effectiveLength int
	secondPeriod    bool
	periodic        bool
	method          Method
	epsilon         float64
	alignment       int
	peak            float64
	planner         fft.Planner
}

func defaultConfig() config {
	return config{
		secondPeriod: true,
		method:       MethodInverseFilter,
		epsilon:      defaultEpsilon,
		peak:         OutputPeak,
		planner:      fft.NewRadix2,
	}
}

// Option configures Deconvolve.
type Option func(*config)

// WithEffectiveLength sets J for the inverse filter. The default is half
// the excitation length.
func WithEffectiveLength(j int) Option {
	return func(c *config) {
		if j > 0 {
			c.effectiveLength = j
		}
	}
}

// WithSecondPeriod controls whether a response at least twice as long as
// the excitation is analyzed from its second period. Enabled by default.
func WithSecondPeriod(enabled bool) Option {
	return func(c *config) {
		c.secondPeriod = enabled
	}
}

// WithPeriodic analyzes exactly one excitation period with a transform of
// the excitation length. For a power-of-two TSP played at least twice this
// makes the deconvolution an exact circular one. Disabled by default, in
// which case the transform covers the whole response.
func WithPeriodic(enabled bool) Option {
	return func(c *config) {
		c.periodic = enabled
	}
}

// WithMethod selects the spectral deconvolution method.
func WithMethod(m Method) Option {
	return func(c *config) {
		if m == MethodInverseFilter || m == MethodSpectralDivision {
			c.method = m
		}
	}
}

// WithEpsilon sets the excitation magnitude below which bins are zeroed.
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.epsilon = eps
		}
	}
}

// WithAlignment circularly rotates the result left by shift samples. With
// MethodInverseFilter the direct sound of a TSP with shift n0 lands at
// len(excitation) - n0; rotating by that amount moves it to index 0.
func WithAlignment(shift int) Option {
	return func(c *config) {
		c.alignment = shift
	}
}

// WithPeak sets the absolute peak of the normalized impulse response.
func WithPeak(peak float64) Option {
	return func(c *config) {
		if peak > 0 && peak <= 1 {
			c.peak = peak
		}
	}
}

// WithPlanner selects the FFT backend.
func WithPlanner(p fft.Planner) Option {
	return func(c *config) {
		if p != nil {
			c.planner = p
		}
	}
}

// Result is the output of Deconvolve.
type Result struct {
	IR              signal.Signal
	FFTSize         int
	SegmentOffset   int // first response sample that was analyzed
	EffectiveLength int
	ZeroedBins      int // bins dropped because the excitation magnitude did not exceed epsilon
}

// Deconvolve recovers the impulse response of the system that turned
// excitation into response.
//
// The transform length N is the next power of two of the longer of the two
// signals. When the response holds at least two excitation periods, the
// analyzed segment starts at len(excitation), discarding the transient of
// the first period, and runs for at most N samples. Otherwise the whole
// response is used. Both signals are zero-padded to N and transformed.
// Each response bin is multiplied by the down-TSP spectrum
// (MethodInverseFilter) or divided by the excitation bin
// (MethodSpectralDivision); bins are zeroed unless the excitation
// magnitude exceeds epsilon. The real part of the inverse transform,
// optionally rotated and then scaled to the configured peak, is the
// impulse response.
//
// WithPeriodic narrows both the segment and N to one excitation period.
func Deconvolve(excitation, response signal.Signal, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if excitation.Len() == 0 || response.Len() == 0 {
		return Result{}, ErrEmptySignal
	}

	if err := signal.CheckSameRate(excitation, response); err != nil {
		return Result{}, fmt.Errorf("tsp: %w", err)
	}

	offset := 0
	if cfg.secondPeriod && response.Len() >= 2*excitation.Len() {
		offset = excitation.Len()
	}

	n := fft.NextPowerOfTwo(max(excitation.Len(), response.Len(), 4))
	segLen := n
	if cfg.periodic {
		n = fft.NextPowerOfTwo(max(excitation.Len(), 4))
		segLen = excitation.Len()
	}

	segment := response.Samples[offset:min(response.Len(), offset+segLen)]

	j := cfg.effectiveLength
	if j == 0 {
		j = max(excitation.Len()/2, 1)
	}

	tr, err := cfg.planner(n)
	if err != nil {
		return Result{}, fmt.Errorf("tsp: failed to create FFT plan: %w", err)
	}

	x := fft.FromReal(excitation.Samples, n)
	if err := tr.Forward(x, x); err != nil {
		return Result{}, fmt.Errorf("tsp: forward FFT failed: %w", err)
	}

	r := fft.FromReal(segment, n)
	if err := tr.Forward(r, r); err != nil {
		return Result{}, fmt.Errorf("tsp: forward FFT failed: %w", err)
	}

	var inv fft.Spectrum
	if cfg.method == MethodInverseFilter {
		inv, err = InverseFilter(j, n)
		if err != nil {
			return Result{}, err
		}
	}

	zeroed := 0
	for k := range r {
		if x[k].Abs() <= cfg.epsilon {
			r[k] = fft.Complex{}
			zeroed++
			continue
		}

		if cfg.method == MethodInverseFilter {
			r[k] = r[k].Mul(inv[k])
		} else {
			r[k] = r[k].Div(x[k])
		}
	}

	if err := tr.Inverse(r, r); err != nil {
		return Result{}, fmt.Errorf("tsp: inverse FFT failed: %w", err)
	}

	ir := fft.RealPart(r)
	if cfg.alignment != 0 {
		ir = core.RotateLeft(ir, cfg.alignment)
	}

	ir, err = signal.Normalize(ir, cfg.peak)
	if err != nil {
		return Result{}, err
	}

	return Result{
		IR:              signal.New(ir, excitation.SampleRate),
		FFTSize:         n,
		SegmentOffset:   offset,
		EffectiveLength: j,
		ZeroedBins:      zeroed,
	}, nil
}
