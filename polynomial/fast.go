package polynomial

import (
	"github.com/bircni/twenty-first/fft"
	"github.com/bircni/twenty-first/field"
)

// schoolbookSwitchover is the combined degree below which FastMultiply and
// FastCosetDivide fall back to schoolbook arithmetic rather than pay NTT
// setup cost.
const schoolbookSwitchover = 8

func checkRootOrder(root field.Element, order uint64) error {
	if !root.ModPow(order).Equal(field.One) {
		return fft.ErrBadRoot
	}
	if order > 1 && root.ModPow(order/2).Equal(field.One) {
		return fft.ErrBadRoot
	}
	return nil
}

// FastMultiply computes p*q in O(n log n) via NTT, given a primitive
// root of unity of the supplied order. Falls back to schoolbook
// multiplication for small combined degree.
func FastMultiply(p, q Polynomial, root field.Element, order uint64) (Polynomial, error) {
	if err := checkRootOrder(root, order); err != nil {
		return Polynomial{}, err
	}
	if p.IsZero() || q.IsZero() {
		return Zero(), nil
	}

	lhsDeg, rhsDeg := p.Degree(), q.Degree()
	degree := uint64(lhsDeg + rhsDeg)
	if degree < schoolbookSwitchover {
		return p.Multiply(q), nil
	}

	for degree < order/2 {
		root = root.Mul(root)
		order /= 2
	}

	lhsCoeffs := padded(p.Coefficients[:lhsDeg+1], order)
	rhsCoeffs := padded(q.Coefficients[:rhsDeg+1], order)

	if err := fft.NTT(lhsCoeffs, root); err != nil {
		return Polynomial{}, err
	}
	if err := fft.NTT(rhsCoeffs, root); err != nil {
		return Polynomial{}, err
	}

	product := make([]field.Element, order)
	for i := range product {
		product[i] = lhsCoeffs[i].Mul(rhsCoeffs[i])
	}

	if err := fft.INTT(product, root); err != nil {
		return Polynomial{}, err
	}
	return Polynomial{Coefficients: product[:degree+1]}, nil
}

func padded(coefficients []field.Element, length uint64) []field.Element {
	out := make([]field.Element, length)
	copy(out, coefficients)
	return out
}

// FastZerofier computes the zerofier of domain by a divide-and-conquer
// recursion that combines half-sized zerofiers with FastMultiply.
func FastZerofier(domain []field.Element, root field.Element, order uint64) (Polynomial, error) {
	if len(domain) == 0 {
		return Zero(), nil
	}
	if len(domain) == 1 {
		return Polynomial{Coefficients: []field.Element{domain[0].Neg(), field.One}}, nil
	}

	half := len(domain) / 2
	left, err := FastZerofier(domain[:half], root, order)
	if err != nil {
		return Polynomial{}, err
	}
	right, err := FastZerofier(domain[half:], root, order)
	if err != nil {
		return Polynomial{}, err
	}
	return FastMultiply(left, right, root, order)
}

// FastEvaluate evaluates p at every point of domain by recursively reducing
// modulo sub-zerofiers, halving the problem at each level.
func FastEvaluate(p Polynomial, domain []field.Element, root field.Element, order uint64) ([]field.Element, error) {
	if len(domain) == 0 {
		return nil, nil
	}
	if len(domain) == 1 {
		return []field.Element{p.Evaluate(domain[0])}, nil
	}

	half := len(domain) / 2
	leftZerofier, err := FastZerofier(domain[:half], root, order)
	if err != nil {
		return nil, err
	}
	rightZerofier, err := FastZerofier(domain[half:], root, order)
	if err != nil {
		return nil, err
	}

	_, leftRem, err := p.Divide(leftZerofier)
	if err != nil {
		return nil, err
	}
	_, rightRem, err := p.Divide(rightZerofier)
	if err != nil {
		return nil, err
	}

	left, err := FastEvaluate(leftRem, domain[:half], root, order)
	if err != nil {
		return nil, err
	}
	right, err := FastEvaluate(rightRem, domain[half:], root, order)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// FastInterpolate finds the unique polynomial through (domain[i], values[i])
// by divide-and-conquer, combining sub-interpolants weighted by the
// opposite half's zerofier.
func FastInterpolate(domain, values []field.Element, root field.Element, order uint64) (Polynomial, error) {
	if len(domain) != len(values) {
		return Polynomial{}, ErrLengthMismatch
	}
	if len(domain) == 0 {
		return Polynomial{}, ErrEmptyDomain
	}
	if len(domain) == 1 {
		return Polynomial{Coefficients: []field.Element{values[0]}}, nil
	}

	half := len(domain) / 2
	leftZerofier, err := FastZerofier(domain[:half], root, order)
	if err != nil {
		return Polynomial{}, err
	}
	rightZerofier, err := FastZerofier(domain[half:], root, order)
	if err != nil {
		return Polynomial{}, err
	}

	leftOffset, err := FastEvaluate(rightZerofier, domain[:half], root, order)
	if err != nil {
		return Polynomial{}, err
	}
	rightOffset, err := FastEvaluate(leftZerofier, domain[half:], root, order)
	if err != nil {
		return Polynomial{}, err
	}

	leftTargets := make([]field.Element, half)
	for i := range leftTargets {
		leftTargets[i], err = values[i].Div(leftOffset[i])
		if err != nil {
			return Polynomial{}, err
		}
	}
	rightTargets := make([]field.Element, len(domain)-half)
	for i := range rightTargets {
		rightTargets[i], err = values[half+i].Div(rightOffset[i])
		if err != nil {
			return Polynomial{}, err
		}
	}

	leftInterpolant, err := FastInterpolate(domain[:half], leftTargets, root, order)
	if err != nil {
		return Polynomial{}, err
	}
	rightInterpolant, err := FastInterpolate(domain[half:], rightTargets, root, order)
	if err != nil {
		return Polynomial{}, err
	}

	leftTerm, err := FastMultiply(leftInterpolant, rightZerofier, root, order)
	if err != nil {
		return Polynomial{}, err
	}
	rightTerm, err := FastMultiply(rightInterpolant, leftZerofier, root, order)
	if err != nil {
		return Polynomial{}, err
	}
	return leftTerm.Add(rightTerm), nil
}

// FastCosetEvaluate evaluates p on the coset offset * <generator>, a group
// of the given order, by scaling then transforming.
func FastCosetEvaluate(p Polynomial, offset, generator field.Element, order uint64) ([]field.Element, error) {
	coefficients := padded(p.Scale(offset).Coefficients, order)
	if err := fft.NTT(coefficients, generator); err != nil {
		return nil, err
	}
	return coefficients, nil
}

// FastCosetInterpolate is the inverse of FastCosetEvaluate.
func FastCosetInterpolate(offset, generator field.Element, values []field.Element) (Polynomial, error) {
	mutValues := append([]field.Element(nil), values...)
	if err := fft.INTT(mutValues, generator); err != nil {
		return Polynomial{}, err
	}
	offsetInv, err := offset.Inverse()
	if err != nil {
		return Polynomial{}, err
	}
	return Polynomial{Coefficients: mutValues}.Scale(offsetInv), nil
}

// FastCosetDivide computes the exact quotient p/divisor via pointwise
// division on an NTT domain shifted by offset, so that neither polynomial
// needs to vanish anywhere in the evaluation domain. divisor must divide p
// exactly and have degree no greater than p's.
func FastCosetDivide(p, divisor Polynomial, offset, root field.Element, order uint64) (Polynomial, error) {
	if err := checkRootOrder(root, order); err != nil {
		return Polynomial{}, err
	}
	if divisor.IsZero() {
		return Polynomial{}, ErrDivideByZero
	}
	if p.IsZero() {
		return Zero(), nil
	}
	if divisor.Degree() > p.Degree() {
		return Polynomial{}, ErrDegreeMismatch
	}

	degree := uint64(p.Degree())
	if degree < schoolbookSwitchover {
		quotient, _, err := p.Divide(divisor)
		return quotient, err
	}

	for degree < order/2 {
		root = root.Mul(root)
		order /= 2
	}

	scaledLHS := padded(p.Scale(offset).Coefficients, order)
	scaledRHS := padded(divisor.Scale(offset).Coefficients, order)

	if err := fft.NTT(scaledLHS, root); err != nil {
		return Polynomial{}, err
	}
	if err := fft.NTT(scaledRHS, root); err != nil {
		return Polynomial{}, err
	}

	rhsInverses, err := field.BatchInversion(scaledRHS)
	if err != nil {
		return Polynomial{}, err
	}
	quotientCodeword := make([]field.Element, len(scaledLHS))
	for i := range quotientCodeword {
		quotientCodeword[i] = scaledLHS[i].Mul(rhsInverses[i])
	}

	if err := fft.INTT(quotientCodeword, root); err != nil {
		return Polynomial{}, err
	}

	offsetInv, err := offset.Inverse()
	if err != nil {
		return Polynomial{}, err
	}
	return Polynomial{Coefficients: quotientCodeword}.Scale(offsetInv), nil
}
