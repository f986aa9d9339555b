package core

// MeasurementConfig holds settings shared by the signal generators.
type MeasurementConfig struct {
	SampleRate int
}

// MeasurementOption mutates a MeasurementConfig.
type MeasurementOption func(*MeasurementConfig)

// DefaultMeasurementConfig returns a 48 kHz configuration.
func DefaultMeasurementConfig() MeasurementConfig {
	return MeasurementConfig{
		SampleRate: 48000,
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate int) MeasurementOption {
	return func(cfg *MeasurementConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyMeasurementOptions applies zero or more options to the default config.
func ApplyMeasurementOptions(opts ...MeasurementOption) MeasurementConfig {
	cfg := DefaultMeasurementConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
