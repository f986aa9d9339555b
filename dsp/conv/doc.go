// Package conv provides linear and circular convolution.
//
// Measurements are simulated by convolving an excitation with a known
// impulse response, and the estimators are checked against that response:
//
//   - Direct convolution: Simple O(N*M) time-domain convolution, best for very short kernels (<= 64 samples)
//   - Overlap-add (OLA): FFT-based block convolution over any [fft.Planner]
//   - Circular convolution: the periodic model seen by a single TSP period
//
// # Usage
//
//	result, err := conv.Convolve(signal, kernel)  // Auto-selects best algorithm
//	result, err := conv.Direct(signal, kernel)    // Force direct convolution
//
// For repeated convolution with the same kernel, create a reusable convolver:
//
//	c, err := conv.NewOverlapAdd(kernel, blockSize, fft.NewAlgoFFT)
//	result, err := c.Process(signal)
package conv
