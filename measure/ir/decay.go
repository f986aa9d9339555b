package ir

import (
	"math"

	"github.com/cwbudde/algo-roomir/dsp/core"
	"gonum.org/v1/gonum/stat"
)

// FloorDB is the decay-curve level assigned to samples with no remaining
// energy.
const FloorDB = -100.0

// minDenominator bounds the regression denominator n*Σx² - (Σx)² below
// which the fit is treated as degenerate.
const minDenominator = 1e-10

// DecayEstimate is the result of a linear decay fit over one dB range of a
// decay curve. When Determined is false the remaining fields other than the
// indices are zero.
type DecayEstimate struct {
	Determined bool
	// Slope of the fitted line in dB per second (negative for a decay).
	Slope float64
	// RT60 is the time the fitted line takes to fall by 60 dB.
	RT60 float64
	// Span is the time the fitted line takes to fall from the start to the
	// end level of the range (T10 for -5/-15, T20 for -5/-25).
	Span float64
	// StartIndex and EndIndex delimit the fitted interval (inclusive).
	// Either is -1 when the curve never reached the corresponding level.
	StartIndex int
	EndIndex   int
}

// SchroederCurve computes the backward-integrated energy decay curve of ir
// in dB relative to the total energy:
//
//	curve[i] = 10*log10( Σ_{k>=i} ir[k]² / Σ_k ir[k]² )
//
// Indices without remaining energy are set to FloorDB. The result has the
// same length as ir.
func SchroederCurve(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var sum float64
	for i := len(ir) - 1; i >= 0; i-- {
		sum += ir[i] * ir[i]
		curve[i] = sum
	}

	if len(curve) == 0 {
		return curve
	}

	total := curve[0]
	for i, e := range curve {
		if total <= 0 {
			curve[i] = FloorDB
			continue
		}

		curve[i] = core.PowerRatioDB(e/total, FloorDB)
	}

	return curve
}

// DecayTime fits a least-squares line (seconds against dB) to curve over
// the interval that starts at the first sample lying within
// [endDB, startDB] and ends at the first later sample at or below endDB.
//
// The estimate is undetermined when either level is never reached, the
// interval is empty, the regression is degenerate, or the fitted slope does
// not decay.
func DecayTime(curve []float64, sampleRate, startDB, endDB float64) DecayEstimate {
	est := DecayEstimate{StartIndex: -1, EndIndex: -1}
	if sampleRate <= 0 {
		return est
	}

	for i, v := range curve {
		if v <= startDB && v >= endDB {
			est.StartIndex = i
			break
		}
	}

	if est.StartIndex < 0 {
		return est
	}

	for i := est.StartIndex; i < len(curve); i++ {
		if curve[i] <= endDB {
			est.EndIndex = i
			break
		}
	}

	if est.EndIndex <= est.StartIndex {
		return est
	}

	n := est.EndIndex - est.StartIndex + 1
	x := make([]float64, n)
	y := curve[est.StartIndex : est.EndIndex+1]

	var sumX, sumXX float64
	for i := range x {
		x[i] = float64(est.StartIndex+i) / sampleRate
		sumX += x[i]
		sumXX += x[i] * x[i]
	}

	if math.Abs(float64(n)*sumXX-sumX*sumX) < minDenominator {
		return est
	}

	_, slope := stat.LinearRegression(x, y, nil, false)
	if !(slope < 0) {
		return est
	}

	est.Determined = true
	est.Slope = slope
	est.RT60 = -60 / slope
	est.Span = (startDB - endDB) / -slope

	return est
}
