package polynomial

import (
	"github.com/bircni/twenty-first/field"
)

// Zerofier returns the monic, lowest-degree polynomial vanishing at every
// point of domain: prod_i (x - domain[i]). Computed iteratively, folding one
// root into the coefficient vector at a time.
func Zerofier(domain []field.Element) (Polynomial, error) {
	if len(domain) == 0 {
		return Polynomial{}, ErrEmptyDomain
	}
	coefficients := zerofierCoefficients(domain)
	return Polynomial{Coefficients: coefficients}, nil
}

func zerofierCoefficients(domain []field.Element) []field.Element {
	coefficients := make([]field.Element, len(domain)+1)
	coefficients[0] = field.One
	numCoeffs := 1
	for _, d := range domain {
		for k := numCoeffs; k >= 1; k-- {
			coefficients[k] = coefficients[k-1].Sub(d.Mul(coefficients[k]))
		}
		coefficients[0] = d.Neg().Mul(coefficients[0])
		numCoeffs++
	}
	return coefficients
}

// LagrangeInterpolate finds the unique lowest-degree polynomial passing
// through (domain[i], values[i]) for every i, via Lagrange's formula
// expressed through the zerofier's coefficient vector (no NTT, O(n^2)).
func LagrangeInterpolate(domain, values []field.Element) (Polynomial, error) {
	if len(domain) != len(values) {
		return Polynomial{}, ErrLengthMismatch
	}
	if len(domain) == 0 {
		return Polynomial{}, ErrEmptyDomain
	}

	zerofierArray := zerofierCoefficients(domain)

	lagrangeSum := make([]field.Element, len(domain))
	summand := make([]field.Element, len(domain))
	for i, abscissa := range values {
		leading := zerofierArray[len(domain)]
		supporting := zerofierArray[len(domain)-1]
		for k := len(domain) - 1; k >= 0; k-- {
			summand[k] = leading
			leading = supporting.Add(leading.Mul(domain[i]))
			if k != 0 {
				supporting = zerofierArray[k-1]
			}
		}

		summandEval := field.Zero
		for k := len(summand) - 1; k >= 0; k-- {
			summandEval = summandEval.Mul(domain[i]).Add(summand[k])
		}
		correctedAbscissa, err := abscissa.Div(summandEval)
		if err != nil {
			return Polynomial{}, err
		}

		for j := range lagrangeSum {
			lagrangeSum[j] = lagrangeSum[j].Add(correctedAbscissa.Mul(summand[j]))
		}
	}

	return Polynomial{Coefficients: lagrangeSum}, nil
}

// point is a single (x, y) coordinate used by the colinearity helpers.
type point struct {
	X, Y field.Element
}

// Point builds a point from raw field elements.
func Point(x, y field.Element) point {
	return point{X: x, Y: y}
}

// AreColinear3 reports whether three points with pairwise-distinct
// x-coordinates lie on one line.
func AreColinear3(p0, p1, p2 point) bool {
	if p0.X.Equal(p1.X) || p1.X.Equal(p2.X) || p2.X.Equal(p0.X) {
		return false
	}
	dy := p0.Y.Sub(p1.Y)
	dx := p0.X.Sub(p1.X)
	return dx.Mul(p2.Y.Sub(p0.Y)).Equal(dy.Mul(p2.X.Sub(p0.X)))
}

// GetColinearY returns the y-coordinate at p2x of the line through p0 and p1.
func GetColinearY(p0, p1 point, p2x field.Element) (field.Element, error) {
	dy := p0.Y.Sub(p1.Y)
	dx := p0.X.Sub(p1.X)
	numerator := dy.Mul(p2x.Sub(p0.X)).Add(dx.Mul(p0.Y))
	return numerator.Div(dx)
}

// AreColinear reports whether every point lies on one line through the
// first two; it requires at least three points with distinct x-coordinates.
func AreColinear(points []point) bool {
	if len(points) < 3 {
		return false
	}
	seen := make(map[uint64]struct{}, len(points))
	for _, p := range points {
		if _, dup := seen[p.X.Value()]; dup {
			return false
		}
		seen[p.X.Value()] = struct{}{}
	}

	xDiff := points[0].X.Sub(points[1].X)
	xDiffInv, err := xDiff.Inverse()
	if err != nil {
		return false
	}
	a := points[0].Y.Sub(points[1].Y).Mul(xDiffInv)
	b := points[0].Y.Sub(a.Mul(points[0].X))
	for _, p := range points[2:] {
		if !p.Y.Equal(a.Mul(p.X).Add(b)) {
			return false
		}
	}
	return true
}

// LagrangeInterpolateZipped is LagrangeInterpolate for callers holding
// (x,y) pairs rather than parallel slices.
func LagrangeInterpolateZipped(points []point) (Polynomial, error) {
	if len(points) == 0 {
		return Polynomial{}, ErrEmptyDomain
	}
	xs := make([]field.Element, len(points))
	ys := make([]field.Element, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return LagrangeInterpolate(xs, ys)
}

// GetPolynomialWithRoots builds the monic polynomial with exactly the given
// roots: the same product as Zerofier, but computed recursively from an
// explicit root list rather than requiring a domain/zerofier shape.
func GetPolynomialWithRoots(roots []field.Element) Polynomial {
	if len(roots) == 0 {
		return FromConstant(field.One)
	}
	coefficients := prodHelper(roots)
	reverse(coefficients)
	return Polynomial{Coefficients: coefficients}
}

// prodHelper returns the reversed coefficient vector of prod_i (x - roots[i]).
func prodHelper(roots []field.Element) []field.Element {
	qj := roots[0]
	rest := roots[1:]
	minusQj := qj.Neg()

	if len(rest) == 0 {
		return []field.Element{field.One, minusQj}
	}

	rec := prodHelper(rest)
	rec = append(rec, field.Zero)
	for i := len(rec) - 1; i > 0; i-- {
		rec[i] = rec[i].Sub(qj.Mul(rec[i-1]))
	}
	return rec
}
