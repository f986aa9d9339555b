// Package tsp implements time-stretched pulse (TSP) excitation synthesis and
// frequency-domain deconvolution for impulse response measurement.
//
// An up-TSP has a flat magnitude spectrum and quadratic phase
//
//	θ(k) = -2πJ(k/N)² - 2πk·n0/N
//
// and is brought to the time domain with the inverse transform of package
// fft (kernel exp(-2πi·nk/N)). The sweep runs across the band within roughly
// J samples, placed inside the frame by the circular shift n0. Multiplying
// the spectrum of a recorded response by the matched down-TSP
// exp(+2πiJ(k/N)²) cancels the sweep and leaves the system's impulse
// response with its direct sound at N - n0.
//
// Playing the TSP periodically and analyzing the second period removes the
// start-up transient. By default the transform spans the whole response so
// that a decay tail recorded after the second period is kept; WithPeriodic
// analyzes exactly one period as a circular convolution.
//
// # Usage
//
//	p := tsp.DefaultParams() // N = 2^18, J = N/2, n0 = N/4
//	excitation, _ := tsp.Synthesize(p, 48000)
//	playback, _ := tsp.Repeat(excitation, 2)
//	// ... play playback through the system, record response ...
//	res, _ := tsp.Deconvolve(excitation, response)
//	// res.IR holds the impulse response, peak 0.9
package tsp
