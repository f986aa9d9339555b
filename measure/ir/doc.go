// Package ir analyzes room impulse responses.
//
// The decay analysis follows ISO 3382: the squared impulse response is
// backward integrated (Schroeder integral) into a smooth energy decay curve
// in dB, and a least-squares line fitted over a level range of that curve
// gives the decay rate. Partial ranges are extrapolated to the 60 dB
// reference:
//
//   - EDT: 0 to -10 dB, RT60 = EDT*6
//   - T10: -5 to -15 dB, RT60 = T10*6
//   - T20: -5 to -25 dB, RT60 = T20*3
//   - T30: -5 to -35 dB, RT60 = T30*2
//
// A range the curve never spans, or a fit without decay, yields a
// DecayEstimate with Determined set to false rather than an error.
//
// The Analyzer also reports clarity (C50, C80), definition (D50) and the
// energy centre time. All of them are computed over the whole response
// unless WithPeakStart moves the analysis start to the absolute peak.
//
// # Usage
//
//	report, err := ir.NewAnalyzer(48000).Analyze(impulseResponse)
//	if err != nil {
//		return err
//	}
//	if report.T20.Determined {
//		fmt.Printf("T20 = %.3f s, RT60 = %.2f s\n", report.T20.Span, report.T20.RT60)
//	}
package ir
