package nlms

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-roomir/dsp/core"
)

// Errors returned by the adaptive filter.
var (
	ErrInvalidOrder          = errors.New("nlms: filter order must be > 0")
	ErrInvalidStepSize       = errors.New("nlms: step size must be > 0")
	ErrInvalidRegularization = errors.New("nlms: regularization must be >= 0")
	ErrLengthMismatch        = errors.New("nlms: input and desired signals differ in length")
	ErrEmptySignal           = errors.New("nlms: signal is empty")
)

// minPower is the normalization power at or below which a step is skipped.
const minPower = 1e-10

// Config holds the NLMS parameters.
type Config struct {
	Order          int     // M, number of taps
	StepSize       float64 // μ, stable for 0 < μ < 2
	Regularization float64 // β, added to the input power
}

// DefaultConfig returns M = 48000 (1 s at 48 kHz), μ = 0.1 and β = 1e-6.
func DefaultConfig() Config {
	return Config{
		Order:          48000,
		StepSize:       0.1,
		Regularization: 1e-6,
	}
}

// Validate checks the configuration. A step size of 2 or more is accepted
// even though the filter will diverge.
func (c Config) Validate() error {
	if c.Order <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, c.Order)
	}

	if c.StepSize <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidStepSize, c.StepSize)
	}

	if c.Regularization < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidRegularization, c.Regularization)
	}

	return nil
}

// Filter is an NLMS adaptive FIR filter. The delay line is a mirrored ring
// buffer of length 2M, so the M most recent inputs are always available as
// one contiguous window, newest first.
type Filter struct {
	cfg     Config
	taps    []float64
	delay   []float64
	scratch []float64
	pos     int
}

// New creates a filter with all taps at zero.
func New(cfg Config) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Filter{
		cfg:     cfg,
		taps:    make([]float64, cfg.Order),
		delay:   make([]float64, 2*cfg.Order),
		scratch: make([]float64, cfg.Order),
	}, nil
}

// Update pushes input sample x, predicts the desired sample d from the
// current taps and adapts them:
//
//	e = d - h·x
//	h += μ·e·x / (β + x·x)
//
// The step is skipped when β + x·x <= 1e-10. Returns the a-priori error e.
func (f *Filter) Update(x, d float64) float64 {
	m := f.cfg.Order
	f.pos--
	if f.pos < 0 {
		f.pos = m - 1
	}

	f.delay[f.pos] = x
	f.delay[f.pos+m] = x

	window := f.delay[f.pos : f.pos+m]
	e := d - vecmath.DotProduct(f.taps, window)

	power := f.cfg.Regularization + vecmath.DotProduct(window, window)
	if power > minPower {
		vecmath.ScaleBlock(f.scratch, window, f.cfg.StepSize*e/power)
		vecmath.AddBlockInPlace(f.taps, f.scratch)
	}

	return e
}

// Predict returns the filter output for the current delay line without
// pushing a sample.
func (f *Filter) Predict() float64 {
	m := f.cfg.Order
	return vecmath.DotProduct(f.taps, f.delay[f.pos:f.pos+m])
}

// Reset clears taps and delay line.
func (f *Filter) Reset() {
	core.Zero(f.taps)
	core.Zero(f.delay)
	f.pos = 0
}

// Order returns the number of taps.
func (f *Filter) Order() int {
	return f.cfg.Order
}

// Taps returns a copy of the current tap weights.
func (f *Filter) Taps() []float64 {
	out := make([]float64, len(f.taps))
	copy(out, f.taps)
	return out
}
