package signal

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-roomir/dsp/core"
)

// Generator creates deterministic excitation signals from a shared configuration.
type Generator struct {
	cfg  core.MeasurementConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.MeasurementOption) *Generator {
	return &Generator{
		cfg:  core.ApplyMeasurementOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.MeasurementOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator configuration.
func (g *Generator) Config() core.MeasurementConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// WhiteNoise generates deterministic uniform white noise in
// [-amplitude, amplitude] at the configured sample rate.
func (g *Generator) WhiteNoise(amplitude float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 || amplitude > 1 {
		return Signal{}, fmt.Errorf("signal: noise amplitude must be in [0, 1]: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return New(out, g.cfg.SampleRate), nil
}
