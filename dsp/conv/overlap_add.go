package conv

import (
	"fmt"

	"github.com/cwbudde/algo-roomir/dsp/fft"
)

// OverlapAdd implements FFT-based convolution using the overlap-add method.
// This is efficient for convolving long signals with shorter kernels.
//
// The algorithm:
// 1. Divide input signal into non-overlapping blocks
// 2. Zero-pad each block and the kernel to FFT size
// 3. Convolve via FFT multiplication in frequency domain
// 4. Overlap-add the results to form the output
type OverlapAdd struct {
	kernelFFT fft.Spectrum

	kernelLen int
	blockSize int
	fftSize   int

	tr  fft.Transformer
	buf []fft.Complex
}

// NewOverlapAdd creates a new overlap-add convolver for the given kernel.
// blockSize determines how the input signal is segmented; 0 picks a size
// based on the kernel length. A nil planner selects fft.NewRadix2.
func NewOverlapAdd(kernel []float64, blockSize int, planner fft.Planner) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if planner == nil {
		planner = fft.NewRadix2
	}

	kernelLen := len(kernel)
	if blockSize <= 0 {
		blockSize = max(fft.NextPowerOfTwo(kernelLen), 256)
	}

	fftSize := fft.NextPowerOfTwo(blockSize + kernelLen - 1)

	tr, err := planner(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	oa := &OverlapAdd{
		kernelFFT: fft.FromReal(kernel, fftSize),
		kernelLen: kernelLen,
		blockSize: blockSize,
		fftSize:   fftSize,
		tr:        tr,
		buf:       make([]fft.Complex, fftSize),
	}

	if err := tr.Forward(oa.kernelFFT, oa.kernelFFT); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return oa, nil
}

// BlockSize returns the input block size.
func (oa *OverlapAdd) BlockSize() int {
	return oa.blockSize
}

// FFTSize returns the FFT size used internally.
func (oa *OverlapAdd) FFTSize() int {
	return oa.fftSize
}

// KernelLen returns the kernel length.
func (oa *OverlapAdd) KernelLen() int {
	return oa.kernelLen
}

// Process convolves the input signal with the kernel.
// Returns the full linear convolution result.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	outputLen := len(input) + oa.kernelLen - 1
	output := make([]float64, outputLen)

	for start := 0; start < len(input); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))
		blockLen := end - start

		for i := range oa.buf {
			oa.buf[i] = fft.Complex{}
		}
		for i := range blockLen {
			oa.buf[i].Re = input[start+i]
		}

		if err := oa.tr.Forward(oa.buf, oa.buf); err != nil {
			return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		for i := range oa.buf {
			oa.buf[i] = oa.buf[i].Mul(oa.kernelFFT[i])
		}

		if err := oa.tr.Inverse(oa.buf, oa.buf); err != nil {
			return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		resultLen := blockLen + oa.kernelLen - 1
		for i := 0; i < resultLen && start+i < outputLen; i++ {
			output[start+i] += oa.buf[i].Re
		}
	}

	return output, nil
}

// OverlapAddConvolve performs one-shot overlap-add convolution.
// A nil planner selects fft.NewRadix2.
func OverlapAddConvolve(signal, kernel []float64, planner fft.Planner) ([]float64, error) {
	oa, err := NewOverlapAdd(kernel, 0, planner)
	if err != nil {
		return nil, err
	}
	return oa.Process(signal)
}
