package ir

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidTime       = errors.New("ir: time must be positive")
)

// Range is a decay-curve level interval in dB. Start must lie above End.
type Range struct {
	Start float64
	End   float64
}

// Standard evaluation ranges.
var (
	RangeEDT = Range{Start: 0, End: -10}
	RangeT10 = Range{Start: -5, End: -15}
	RangeT20 = Range{Start: -5, End: -25}
	RangeT30 = Range{Start: -5, End: -35}
)

// Report holds impulse response analysis results. Decay estimates carry
// their own extrapolated RT60; Span is the partial decay time itself
// (e.g. Report.T10.Span is T10, Report.T10.RT60 is T10*6).
type Report struct {
	PeakIndex int       // sample index of the absolute maximum
	Start     int       // first analyzed sample: 0, or PeakIndex with WithPeakStart
	Curve     []float64 // Schroeder curve of ir[Start:]

	EDT DecayEstimate
	T10 DecayEstimate
	T20 DecayEstimate
	T30 DecayEstimate

	C50        float64 // clarity at 50 ms in dB
	C80        float64 // clarity at 80 ms in dB
	D50        float64 // definition at 50 ms (ratio 0-1)
	CenterTime float64 // energy centroid in seconds
}

// RT60 returns the most robust determined reverberation time: T30, then
// T20, then T10. ok is false when none of them could be computed.
func (r Report) RT60() (rt60 float64, ok bool) {
	for _, est := range []DecayEstimate{r.T30, r.T20, r.T10} {
		if est.Determined {
			return est.RT60, true
		}
	}

	return 0, false
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithT10Range overrides the levels used for the T10 estimate.
// Ranges with start <= end are ignored.
func WithT10Range(start, end float64) AnalyzerOption {
	return func(a *Analyzer) {
		if start > end {
			a.t10 = Range{Start: start, End: end}
		}
	}
}

// WithPeakStart makes Analyze skip everything before the peak, so that a
// leading delay does not bias the early decay. Off by default.
func WithPeakStart(enabled bool) AnalyzerOption {
	return func(a *Analyzer) { a.peakStart = enabled }
}

// WithT20Range overrides the levels used for the T20 estimate.
// Ranges with start <= end are ignored.
func WithT20Range(start, end float64) AnalyzerOption {
	return func(a *Analyzer) {
		if start > end {
			a.t20 = Range{Start: start, End: end}
		}
	}
}

// Analyzer computes room-acoustic metrics from impulse response data.
type Analyzer struct {
	SampleRate float64

	t10       Range
	t20       Range
	peakStart bool
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		SampleRate: sampleRate,
		t10:        RangeT10,
		t20:        RangeT20,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// T10Range returns the levels used for the T10 estimate.
func (a *Analyzer) T10Range() Range { return a.t10 }

// T20Range returns the levels used for the T20 estimate.
func (a *Analyzer) T20Range() Range { return a.t20 }

// Analyze computes all metrics over the whole of ir, or from its peak
// when the analyzer was built WithPeakStart.
func (a *Analyzer) Analyze(ir []float64) (Report, error) {
	if len(ir) == 0 {
		return Report{}, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return Report{}, ErrInvalidSampleRate
	}

	peak := findPeak(ir)

	start := 0
	if a.peakStart {
		start = peak
	}

	tail := ir[start:]
	curve := SchroederCurve(tail)

	return Report{
		PeakIndex:  peak,
		Start:      start,
		Curve:      curve,
		EDT:        DecayTime(curve, a.SampleRate, RangeEDT.Start, RangeEDT.End),
		T10:        DecayTime(curve, a.SampleRate, a.t10.Start, a.t10.End),
		T20:        DecayTime(curve, a.SampleRate, a.t20.Start, a.t20.End),
		T30:        DecayTime(curve, a.SampleRate, RangeT30.Start, RangeT30.End),
		C50:        a.clarity(tail, 50),
		C80:        a.clarity(tail, 80),
		D50:        a.definition(tail, 50),
		CenterTime: a.centerTime(tail),
	}, nil
}

// Definition computes the early energy fraction at timeMs:
//
//	D(t) = ∫₀ᵗ h²(τ)dτ / ∫₀^∞ h²(τ)dτ
func (a *Analyzer) Definition(ir []float64, timeMs float64) (float64, error) {
	if err := a.check(ir, timeMs); err != nil {
		return 0, err
	}

	return a.definition(ir, timeMs), nil
}

func (a *Analyzer) definition(ir []float64, timeMs float64) float64 {
	b := a.boundary(timeMs)
	if b <= 0 {
		return 0
	}

	if b >= len(ir) {
		return 1
	}

	total := floats.Dot(ir, ir)
	if total <= 0 {
		return 0
	}

	return floats.Dot(ir[:b], ir[:b]) / total
}

// Clarity computes the early-to-late energy ratio at timeMs in dB:
//
//	C(t) = 10*log10( ∫₀ᵗ h²(τ)dτ / ∫ₜ^∞ h²(τ)dτ )
func (a *Analyzer) Clarity(ir []float64, timeMs float64) (float64, error) {
	if err := a.check(ir, timeMs); err != nil {
		return 0, err
	}

	return a.clarity(ir, timeMs), nil
}

func (a *Analyzer) clarity(ir []float64, timeMs float64) float64 {
	b := a.boundary(timeMs)
	if b <= 0 {
		return math.Inf(-1)
	}

	if b >= len(ir) {
		return math.Inf(1)
	}

	early := floats.Dot(ir[:b], ir[:b])
	late := floats.Dot(ir[b:], ir[b:])

	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(early/late)
}

// CenterTime computes the temporal energy centroid in seconds:
//
//	Ts = ∫₀^∞ τ·h²(τ)dτ / ∫₀^∞ h²(τ)dτ
func (a *Analyzer) CenterTime(ir []float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	return a.centerTime(ir), nil
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64
	for i, v := range ir {
		e := v * v
		num += float64(i) / a.SampleRate * e
		den += e
	}

	if den <= 0 {
		return 0
	}

	return num / den
}

func (a *Analyzer) check(ir []float64, timeMs float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if timeMs <= 0 {
		return ErrInvalidTime
	}

	return nil
}

func (a *Analyzer) boundary(timeMs float64) int {
	return int(math.Round(timeMs * 0.001 * a.SampleRate))
}

// findPeak returns the index of the absolute maximum.
func findPeak(ir []float64) int {
	idx := 0
	peak := 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			peak = av
			idx = i
		}
	}

	return idx
}
