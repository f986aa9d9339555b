package fft

import "math"

// Complex is a complex number held as separate real and imaginary parts.
type Complex struct {
	Re float64
	Im float64
}

// Spectrum is a sequence of complex frequency bins 0..N-1.
// Bin N/2 is the Nyquist bin.
type Spectrum []Complex

// Polar returns the unit-magnitude complex number exp(i*theta).
func Polar(theta float64) Complex {
	s, c := math.Sincos(theta)
	return Complex{Re: c, Im: s}
}

// FromComplex128 converts a builtin complex128 value.
func FromComplex128(z complex128) Complex {
	return Complex{Re: real(z), Im: imag(z)}
}

// Complex128 converts c to the builtin complex128 type.
func (c Complex) Complex128() complex128 {
	return complex(c.Re, c.Im)
}

// Add returns c + d.
func (c Complex) Add(d Complex) Complex {
	return Complex{Re: c.Re + d.Re, Im: c.Im + d.Im}
}

// Sub returns c - d.
func (c Complex) Sub(d Complex) Complex {
	return Complex{Re: c.Re - d.Re, Im: c.Im - d.Im}
}

// Mul returns c * d.
func (c Complex) Mul(d Complex) Complex {
	return Complex{
		Re: c.Re*d.Re - c.Im*d.Im,
		Im: c.Re*d.Im + c.Im*d.Re,
	}
}

// Div returns c / d. Division by zero yields Inf/NaN components; callers
// guard near-zero divisors themselves.
func (c Complex) Div(d Complex) Complex {
	den := d.AbsSq()
	return Complex{
		Re: (c.Re*d.Re + c.Im*d.Im) / den,
		Im: (c.Im*d.Re - c.Re*d.Im) / den,
	}
}

// Scale returns c multiplied by the real factor s.
func (c Complex) Scale(s float64) Complex {
	return Complex{Re: c.Re * s, Im: c.Im * s}
}

// Conj returns the complex conjugate of c.
func (c Complex) Conj() Complex {
	return Complex{Re: c.Re, Im: -c.Im}
}

// Abs returns the magnitude |c|.
func (c Complex) Abs() float64 {
	return math.Hypot(c.Re, c.Im)
}

// AbsSq returns |c|².
func (c Complex) AbsSq() float64 {
	return c.Re*c.Re + c.Im*c.Im
}

// Real returns the real part of c.
func (c Complex) Real() float64 { return c.Re }

// Imag returns the imaginary part of c.
func (c Complex) Imag() float64 { return c.Im }
