// Package nlms identifies an impulse response with a normalized
// least-mean-squares adaptive FIR filter.
//
// For every sample n the filter predicts the recorded output from the last
// M excitation samples, measures the error and moves the taps along the
// input vector, scaled by the input power:
//
//	ŷ[n] = h · x_n
//	e[n] = y[n] - ŷ[n]
//	h   += μ·e[n]·x_n / (β + |x_n|²)
//
// With a white-noise excitation the taps converge to the system's impulse
// response. The time loop is strictly sequential.
//
// # Usage
//
//	res, err := nlms.Identify(noise, recorded,
//		nlms.WithOrder(48000),
//		nlms.WithStepSize(0.1),
//		nlms.WithProgress(48000*10, func(done, total int) { ... }),
//	)
//	// res.Taps is the impulse response estimate
package nlms
