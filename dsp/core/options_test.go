package core

import "testing"

func TestApplyMeasurementOptions(t *testing.T) {
	cfg := ApplyMeasurementOptions(WithSampleRate(96000))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyMeasurementOptions(WithSampleRate(0), WithSampleRate(-44100), nil)
	def := DefaultMeasurementConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
