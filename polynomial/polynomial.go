// Package polynomial implements dense univariate polynomials over the
// Goldilocks field, with both schoolbook and NTT-accelerated arithmetic.
package polynomial

import (
	"errors"

	"github.com/bircni/twenty-first/fft"
	"github.com/bircni/twenty-first/field"
)

// ErrEmptyDomain is returned by operations that require at least one point.
var ErrEmptyDomain = errors.New("polynomial: domain must not be empty")

// ErrLengthMismatch is returned when parallel domain/value slices disagree in length.
var ErrLengthMismatch = errors.New("polynomial: domain and values must have equal length")

// ErrDivideByZero is returned when dividing by the zero polynomial.
var ErrDivideByZero = errors.New("polynomial: cannot divide by the zero polynomial")

// ErrDegreeMismatch is returned by fast division when the divisor has higher
// degree than the dividend.
var ErrDegreeMismatch = errors.New("polynomial: divisor degree exceeds dividend degree")

// Polynomial is a dense coefficient vector in ascending order of degree:
// Coefficients[i] is the coefficient of x^i. A nil or all-zero vector
// represents the zero polynomial, conventionally of degree -1.
type Polynomial struct {
	Coefficients []field.Element
}

// New wraps a coefficient vector, ascending by degree, as a polynomial.
func New(coefficients []field.Element) Polynomial {
	return Polynomial{Coefficients: coefficients}
}

// FromConstant builds the degree-0 polynomial equal to c.
func FromConstant(c field.Element) Polynomial {
	return Polynomial{Coefficients: []field.Element{c}}
}

// Zero is the additive identity, the empty coefficient vector.
func Zero() Polynomial {
	return Polynomial{}
}

// degreeRaw walks back over trailing zero coefficients to find the true degree.
func degreeRaw(coefficients []field.Element) int {
	deg := len(coefficients) - 1
	for deg >= 0 && coefficients[deg].IsZero() {
		deg--
	}
	return deg
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	return degreeRaw(p.Coefficients)
}

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	return p.Degree() == -1
}

// Normalize drops trailing zero coefficients so Coefficients has length
// Degree()+1 (or is empty, for the zero polynomial).
func (p Polynomial) Normalize() Polynomial {
	deg := p.Degree()
	if deg == -1 {
		return Zero()
	}
	out := make([]field.Element, deg+1)
	copy(out, p.Coefficients)
	return Polynomial{Coefficients: out}
}

// LeadingCoefficient returns the coefficient of the highest-degree term.
func (p Polynomial) LeadingCoefficient() (field.Element, bool) {
	deg := p.Degree()
	if deg == -1 {
		return field.Zero, false
	}
	return p.Coefficients[deg], true
}

// Evaluate computes p(x) via Horner's method.
func (p Polynomial) Evaluate(x field.Element) field.Element {
	acc := field.Zero
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		acc = p.Coefficients[i].Add(x.Mul(acc))
	}
	return acc
}

// Scale returns the polynomial P'(x) = P(alpha*x), i.e. evaluating P' at x
// reproduces evaluating P at alpha*x.
func (p Polynomial) Scale(alpha field.Element) Polynomial {
	out := make([]field.Element, len(p.Coefficients))
	acc := field.One
	for i, c := range p.Coefficients {
		out[i] = c.Mul(acc)
		acc = acc.Mul(alpha)
	}
	return Polynomial{Coefficients: out}
}

// Add returns p + q, term by term, with the shorter operand's missing
// high-degree terms treated as zero.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := len(p.Coefficients)
	if len(q.Coefficients) > n {
		n = len(q.Coefficients)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		var a, b field.Element
		if i < len(p.Coefficients) {
			a = p.Coefficients[i]
		}
		if i < len(q.Coefficients) {
			b = q.Coefficients[i]
		}
		out[i] = a.Add(b)
	}
	return Polynomial{Coefficients: out}
}

// Sub returns p - q, term by term.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	n := len(p.Coefficients)
	if len(q.Coefficients) > n {
		n = len(q.Coefficients)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		var a, b field.Element
		if i < len(p.Coefficients) {
			a = p.Coefficients[i]
		}
		if i < len(q.Coefficients) {
			b = q.Coefficients[i]
		}
		out[i] = a.Sub(b)
	}
	return Polynomial{Coefficients: out}
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	out := make([]field.Element, len(p.Coefficients))
	for i, c := range p.Coefficients {
		out[i] = c.Neg()
	}
	return Polynomial{Coefficients: out}
}

// ScalarMul multiplies every coefficient by scalar.
func (p Polynomial) ScalarMul(scalar field.Element) Polynomial {
	out := make([]field.Element, len(p.Coefficients))
	for i, c := range p.Coefficients {
		out[i] = c.Mul(scalar)
	}
	return Polynomial{Coefficients: out}
}

// ShiftCoefficients returns x^power * p, by prepending power zero coefficients.
func (p Polynomial) ShiftCoefficients(power int) Polynomial {
	out := make([]field.Element, power+len(p.Coefficients))
	copy(out[power:], p.Coefficients)
	return Polynomial{Coefficients: out}
}

// Multiply computes p*q by the schoolbook O(n*m) convolution.
func (p Polynomial) Multiply(q Polynomial) Polynomial {
	degLHS, degRHS := p.Degree(), q.Degree()
	if degLHS < 0 || degRHS < 0 {
		return Zero()
	}
	out := make([]field.Element, degLHS+degRHS+1)
	for i := 0; i <= degLHS; i++ {
		for j := 0; j <= degRHS; j++ {
			out[i+j] = out[i+j].Add(p.Coefficients[i].Mul(q.Coefficients[j]))
		}
	}
	return Polynomial{Coefficients: out}
}

// SlowSquare computes p*p without NTT acceleration.
func (p Polynomial) SlowSquare() Polynomial {
	deg := p.Degree()
	if deg == -1 {
		return Zero()
	}
	two := field.New(2)
	out := make([]field.Element, deg*2+1)
	for i := 0; i <= deg; i++ {
		ci := p.Coefficients[i]
		out[2*i] = out[2*i].Add(ci.Mul(ci))
		for j := i + 1; j <= deg; j++ {
			cj := p.Coefficients[j]
			out[i+j] = out[i+j].Add(two.Mul(ci).Mul(cj))
		}
	}
	return Polynomial{Coefficients: out}
}

// squareSwitchover is the squared-coefficient length above which Square
// switches from schoolbook to NTT-based squaring. Any conforming
// implementation may pick a different threshold but must produce the same
// output either way, so the exact value is a performance tuning, not a
// correctness requirement.
const squareSwitchover = 64

// Square computes p*p, choosing schoolbook or NTT-based squaring by degree.
func (p Polynomial) Square() (Polynomial, error) {
	deg := p.Degree()
	if deg == -1 {
		return Zero(), nil
	}
	if deg*2+1 > squareSwitchover {
		return p.FastSquare()
	}
	return p.SlowSquare(), nil
}

// FastSquare computes p*p over an NTT domain large enough to hold the
// result without wraparound.
func (p Polynomial) FastSquare() (Polynomial, error) {
	deg := p.Degree()
	if deg == -1 {
		return Zero(), nil
	}
	if deg == 0 {
		return FromConstant(p.Coefficients[0].Mul(p.Coefficients[0])), nil
	}

	resultDegree := uint64(2 * deg)
	order := roundUpPowerOfTwo(resultDegree + 1)
	root, err := field.PrimitiveRootOfUnity(order)
	if err != nil {
		return Polynomial{}, err
	}

	coefficients := make([]field.Element, order)
	copy(coefficients, p.Coefficients)

	if err := fft.NTT(coefficients, root); err != nil {
		return Polynomial{}, err
	}
	for i := range coefficients {
		coefficients[i] = coefficients[i].Mul(coefficients[i])
	}
	if err := fft.INTT(coefficients, root); err != nil {
		return Polynomial{}, err
	}

	return Polynomial{Coefficients: coefficients[:resultDegree+1]}, nil
}

// ModPow raises p to the given exponent by schoolbook square-and-multiply.
func (p Polynomial) ModPow(exp uint64) Polynomial {
	if exp == 0 {
		return FromConstant(field.One)
	}
	if p.IsZero() {
		return Zero()
	}
	acc := FromConstant(field.One)
	base := p
	for exp > 0 {
		if exp&1 == 1 {
			acc = acc.Multiply(base)
		}
		base = base.SlowSquare()
		exp >>= 1
	}
	return acc
}

// Divide performs polynomial long division, returning (quotient, remainder)
// such that p = quotient*divisor + remainder. Fails if divisor is zero.
func (p Polynomial) Divide(divisor Polynomial) (Polynomial, Polynomial, error) {
	degLHS, degRHS := p.Degree(), divisor.Degree()
	if degRHS < 0 {
		return Polynomial{}, Polynomial{}, ErrDivideByZero
	}
	if p.IsZero() {
		return Zero(), Zero(), nil
	}

	var quotient []field.Element
	if degLHS-degRHS >= 0 {
		quotient = make([]field.Element, 0, degLHS-degRHS+1)
	}

	remainder := p.Normalize()
	dlc, _ := divisor.LeadingCoefficient()
	inv, err := dlc.Inverse()
	if err != nil {
		return Polynomial{}, Polynomial{}, err
	}

	i := 0
	for i+degRHS <= degLHS {
		rlc := remainder.Coefficients[len(remainder.Coefficients)-1]
		q := rlc.Mul(inv)
		quotient = append(quotient, q)
		remainder.Coefficients = remainder.Coefficients[:len(remainder.Coefficients)-1]

		if q.IsZero() {
			i++
			continue
		}

		for j := 0; j < degRHS; j++ {
			remLen := len(remainder.Coefficients)
			remainder.Coefficients[remLen-j-1] = remainder.Coefficients[remLen-j-1].
				Sub(q.Mul(divisor.Coefficients[degRHS-j-1]))
		}
		i++
	}

	reverse(quotient)
	return Polynomial{Coefficients: quotient}, remainder, nil
}

func reverse(xs []field.Element) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// roundUpPowerOfTwo returns the smallest power of two >= n.
func roundUpPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
