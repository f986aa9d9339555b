package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// PadTo returns a copy of x zero-padded or truncated to n samples.
func PadTo(x []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	copy(out, x)
	return out
}

// RotateLeft returns a copy of x circularly shifted so that x[shift] becomes
// the first element. Negative shifts rotate right.
func RotateLeft(x []float64, shift int) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	shift %= n
	if shift < 0 {
		shift += n
	}
	copy(out, x[shift:])
	copy(out[n-shift:], x[:shift])
	return out
}
