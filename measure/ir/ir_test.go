package ir

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-roomir/internal/testutil"
)

// twoImpulses places equal impulses at t=0 and t=100 ms.
func twoImpulses(sampleRate float64, second float64) []float64 {
	ir := make([]float64, int(sampleRate*0.2))
	ir[0] = 1
	ir[int(0.1*sampleRate)] = second
	return ir
}

func TestAnalyzerAnalyze(t *testing.T) {
	const sampleRate = 48000
	ir := testutil.ExponentialDecay(1.0, sampleRate, 3*sampleRate)

	report, err := NewAnalyzer(sampleRate).Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}

	if report.PeakIndex != 0 {
		t.Errorf("PeakIndex = %d, want 0", report.PeakIndex)
	}

	for name, est := range map[string]DecayEstimate{
		"EDT": report.EDT, "T10": report.T10, "T20": report.T20, "T30": report.T30,
	} {
		if !est.Determined {
			t.Errorf("%s undetermined", name)
			continue
		}
		if math.Abs(est.RT60-1) > 0.01 {
			t.Errorf("%s RT60 = %.4f, want 1.0", name, est.RT60)
		}
	}

	if math.Abs(report.T10.Span-1.0/6) > 0.002 {
		t.Errorf("T10 = %.4f, want %.4f", report.T10.Span, 1.0/6)
	}

	if math.Abs(report.T30.Span-0.5) > 0.005 {
		t.Errorf("T30 = %.4f, want 0.5", report.T30.Span)
	}

	rt60, ok := report.RT60()
	if !ok || math.Abs(rt60-1) > 0.01 {
		t.Errorf("RT60() = %.4f, %v", rt60, ok)
	}

	if report.CenterTime <= 0 || report.CenterTime > 1 {
		t.Errorf("CenterTime = %.3f, expected in (0, 1]", report.CenterTime)
	}

	if report.D50 < 0 || report.D50 > 1 {
		t.Errorf("D50 = %.3f, expected in [0, 1]", report.D50)
	}

	if len(report.Curve) != len(ir) {
		t.Errorf("Curve length = %d, want %d", len(report.Curve), len(ir))
	}
}

func TestAnalyzeWithPeakStart(t *testing.T) {
	const sampleRate = 8000
	decay := testutil.ExponentialDecay(0.5, sampleRate, sampleRate)

	delayed := make([]float64, 400+len(decay))
	copy(delayed[400:], decay)

	a := NewAnalyzer(sampleRate, WithPeakStart(true))
	direct, err := a.Analyze(decay)
	if err != nil {
		t.Fatal(err)
	}
	late, err := a.Analyze(delayed)
	if err != nil {
		t.Fatal(err)
	}

	if late.PeakIndex != 400 || late.Start != 400 {
		t.Fatalf("PeakIndex = %d, Start = %d, want 400", late.PeakIndex, late.Start)
	}

	if len(late.Curve) != len(decay) {
		t.Errorf("Curve length = %d, want %d", len(late.Curve), len(decay))
	}

	if math.Abs(direct.EDT.RT60-late.EDT.RT60) > 1e-9 {
		t.Errorf("EDT with leading delay = %g, without = %g", late.EDT.RT60, direct.EDT.RT60)
	}
}

func TestAnalyzeIntegratesWholeIR(t *testing.T) {
	const sampleRate = 8000
	decay := testutil.ExponentialDecay(0.5, sampleRate, sampleRate)

	// Leading energy before the peak must count toward the decay curve.
	ir := make([]float64, 300+len(decay))
	for i := range 300 {
		ir[i] = 0.7
	}
	copy(ir[300:], decay)

	report, err := NewAnalyzer(sampleRate).Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}

	if report.Start != 0 || report.PeakIndex != 300 {
		t.Fatalf("Start = %d, PeakIndex = %d, want 0 and 300", report.Start, report.PeakIndex)
	}

	if len(report.Curve) != len(ir) {
		t.Fatalf("Curve length = %d, want %d", len(report.Curve), len(ir))
	}

	curve := SchroederCurve(ir)
	for i := range curve {
		if math.Abs(curve[i]-report.Curve[i]) > 1e-12 {
			t.Fatalf("Curve[%d] = %g, want %g", i, report.Curve[i], curve[i])
		}
	}

	want := DecayTime(curve, sampleRate, RangeT10.Start, RangeT10.End)
	if report.T10 != want {
		t.Errorf("T10 = %+v, want %+v", report.T10, want)
	}

	fromPeak, err := NewAnalyzer(sampleRate, WithPeakStart(true)).Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(fromPeak.EDT.RT60-report.EDT.RT60) < 0.05 {
		t.Errorf("EDT from peak = %g, whole IR = %g, want them apart", fromPeak.EDT.RT60, report.EDT.RT60)
	}
}

func TestAnalyzeShortIR(t *testing.T) {
	report, err := NewAnalyzer(48000).Analyze([]float64{1, 0.5})
	if err != nil {
		t.Fatal(err)
	}

	if report.T20.Determined || report.T30.Determined {
		t.Errorf("two-sample IR should not yield T20/T30: %+v %+v", report.T20, report.T30)
	}

	if _, ok := report.RT60(); ok {
		t.Error("RT60() ok for two-sample IR")
	}
}

func TestAnalyzerOptions(t *testing.T) {
	a := NewAnalyzer(48000, WithT10Range(-3, -13), WithT20Range(-10, -30))
	if got := a.T10Range(); got != (Range{Start: -3, End: -13}) {
		t.Errorf("T10Range = %+v", got)
	}
	if got := a.T20Range(); got != (Range{Start: -10, End: -30}) {
		t.Errorf("T20Range = %+v", got)
	}

	ignored := NewAnalyzer(48000, WithT10Range(-15, -5), WithT20Range(-5, -5))
	if ignored.T10Range() != RangeT10 || ignored.T20Range() != RangeT20 {
		t.Errorf("invalid ranges applied: %+v %+v", ignored.T10Range(), ignored.T20Range())
	}

	const sampleRate = 48000
	ir := testutil.ExponentialDecay(1.0, sampleRate, 3*sampleRate)
	report, err := a.Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(report.T20.Span-1.0/3) > 0.004 {
		t.Errorf("T20 over -10/-30 = %.4f, want %.4f", report.T20.Span, 1.0/3)
	}
	if report.T20.StartIndex < int(sampleRate/6)-1 {
		t.Errorf("T20 StartIndex = %d, want >= %d", report.T20.StartIndex, sampleRate/6-1)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	if _, err := NewAnalyzer(48000).Analyze(nil); !errors.Is(err, ErrEmptyIR) {
		t.Errorf("Analyze(nil) = %v, want ErrEmptyIR", err)
	}

	if _, err := NewAnalyzer(0).Analyze([]float64{1}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("Analyze with rate 0 = %v, want ErrInvalidSampleRate", err)
	}
}

func TestDefinition(t *testing.T) {
	const sampleRate = 48000.0
	a := NewAnalyzer(sampleRate)

	t.Run("all_early_energy", func(t *testing.T) {
		ir := make([]float64, int(sampleRate*0.01))
		ir[0] = 1

		d50, err := a.Definition(ir, 50)
		if err != nil {
			t.Fatal(err)
		}
		if d50 != 1 {
			t.Errorf("D50 = %.3f, want 1", d50)
		}
	})

	t.Run("split_energy", func(t *testing.T) {
		d50, err := a.Definition(twoImpulses(sampleRate, 1), 50)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(d50-0.5) > 1e-12 {
			t.Errorf("D50 = %.3f, want 0.5", d50)
		}
	})

	t.Run("validation", func(t *testing.T) {
		if _, err := a.Definition(nil, 50); !errors.Is(err, ErrEmptyIR) {
			t.Errorf("Definition(nil) = %v, want ErrEmptyIR", err)
		}
		if _, err := a.Definition([]float64{1}, 0); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("Definition(t=0) = %v, want ErrInvalidTime", err)
		}
		if _, err := a.Definition([]float64{1}, -10); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("Definition(t=-10) = %v, want ErrInvalidTime", err)
		}
	})
}

func TestClarity(t *testing.T) {
	const sampleRate = 48000.0
	a := NewAnalyzer(sampleRate)

	tests := []struct {
		name   string
		second float64
		want   float64
	}{
		{name: "equal_split", second: 1, want: 0},
		{name: "mostly_early", second: 0.1, want: 20},
		{name: "mostly_late", second: 10, want: -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c80, err := a.Clarity(twoImpulses(sampleRate, tt.second), 80)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(c80-tt.want) > 1e-9 {
				t.Errorf("C80 = %.3f dB, want %.3f", c80, tt.want)
			}
		})
	}

	t.Run("no_late_energy", func(t *testing.T) {
		c50, err := a.Clarity([]float64{1, 0, 0}, 50)
		if err != nil {
			t.Fatal(err)
		}
		if !math.IsInf(c50, 1) {
			t.Errorf("C50 = %v, want +Inf", c50)
		}
	})

	t.Run("validation", func(t *testing.T) {
		if _, err := a.Clarity(nil, 80); !errors.Is(err, ErrEmptyIR) {
			t.Errorf("Clarity(nil) = %v, want ErrEmptyIR", err)
		}
		if _, err := a.Clarity([]float64{1}, 0); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("Clarity(t=0) = %v, want ErrInvalidTime", err)
		}
	})
}

func TestCenterTime(t *testing.T) {
	const sampleRate = 48000.0
	a := NewAnalyzer(sampleRate)

	ct, err := a.CenterTime(testutil.Impulse(1000, 0))
	if err != nil {
		t.Fatal(err)
	}
	if ct != 0 {
		t.Errorf("CenterTime = %g, want 0 for impulse at t=0", ct)
	}

	ct, err = a.CenterTime(twoImpulses(sampleRate, 1))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ct-0.05) > 1e-12 {
		t.Errorf("CenterTime = %.4f, want 0.05", ct)
	}

	if _, err := a.CenterTime(nil); !errors.Is(err, ErrEmptyIR) {
		t.Errorf("CenterTime(nil) = %v, want ErrEmptyIR", err)
	}
}
