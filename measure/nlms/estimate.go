package nlms

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-roomir/dsp/signal"
)

// ProgressFunc receives the number of processed samples and the total.
type ProgressFunc func(done, total int)

type options struct {
	cfg           Config
	progressEvery int
	progress      ProgressFunc
}

// Option configures Estimate and Identify.
type Option func(*options)

// WithOrder sets the number of taps.
func WithOrder(m int) Option {
	return func(o *options) {
		if m > 0 {
			o.cfg.Order = m
		}
	}
}

// WithStepSize sets μ.
func WithStepSize(mu float64) Option {
	return func(o *options) {
		if mu > 0 {
			o.cfg.StepSize = mu
		}
	}
}

// WithRegularization sets β.
func WithRegularization(beta float64) Option {
	return func(o *options) {
		if beta >= 0 {
			o.cfg.Regularization = beta
		}
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithProgress calls fn every `every` samples and once after the last one.
func WithProgress(every int, fn ProgressFunc) Option {
	return func(o *options) {
		if every > 0 && fn != nil {
			o.progressEvery = every
			o.progress = fn
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Result is the output of Identify.
type Result struct {
	Taps        []float64
	Samples     int     // number of samples the filter adapted on
	ResidualRMS float64 // RMS of the a-priori error over the final 10% of samples
}

// Estimate adapts an NLMS filter on input x and desired output y and
// returns the final taps. x and y must have equal length.
func Estimate(x, y []float64, opts ...Option) ([]float64, error) {
	res, err := run(x, y, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	return res.Taps, nil
}

// Identify estimates the impulse response of the system that produced
// output from input. Both signals are cut to the shorter length and must
// share a sample rate.
func Identify(input, output signal.Signal, opts ...Option) (Result, error) {
	if err := signal.CheckSameRate(input, output); err != nil {
		return Result{}, fmt.Errorf("nlms: %w", err)
	}

	input, output = signal.TruncateToShorter(input, output)
	return run(input.Samples, output.Samples, applyOptions(opts))
}

func run(x, y []float64, o options) (Result, error) {
	if len(x) != len(y) {
		return Result{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	if len(x) == 0 {
		return Result{}, ErrEmptySignal
	}

	f, err := New(o.cfg)
	if err != nil {
		return Result{}, err
	}

	total := len(x)
	tailStart := total - max(total/10, 1)
	var tailEnergy float64

	for n := range total {
		e := f.Update(x[n], y[n])
		if n >= tailStart {
			tailEnergy += e * e
		}

		if o.progress != nil && (n+1)%o.progressEvery == 0 && n+1 != total {
			o.progress(n+1, total)
		}
	}

	if o.progress != nil {
		o.progress(total, total)
	}

	return Result{
		Taps:        f.taps,
		Samples:     total,
		ResidualRMS: math.Sqrt(tailEnergy / float64(total-tailStart)),
	}, nil
}
