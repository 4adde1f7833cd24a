// Package field implements arithmetic over the 64-bit Goldilocks prime
// field used throughout the proving system: p = 2^64 - 2^32 + 1.
package field

import (
	"errors"
	"math/bits"
)

// Modulus is the prime p = 2^64 - 2^32 + 1.
const Modulus uint64 = 18446744069414584321

// epsilon is 2^64 mod p, i.e. 2^32 - 1. Because p = 2^64 - epsilon, wrapping
// arithmetic on the underlying uint64 can be corrected for by adding or
// subtracting epsilon whenever a carry or borrow crosses the 2^64 boundary.
const epsilon uint64 = (1 << 32) - 1

// generator is a fixed multiplicative generator of the field's unit group.
const generator uint64 = 7

// twoAdicity is the largest k such that 2^k divides p-1.
const twoAdicity = 32

// Element is a value of the prime field. It is not always held canonically
// reduced between operations -- arithmetic is allowed to leave the value in
// the redundant range [0, 2^64), matching the field's native machine word.
// Value, Equal, Bytes and String always observe the canonical representative.
type Element uint64

// Zero and One are the additive and multiplicative identities.
var Zero = Element(0)
var One = Element(1)

// ErrZeroInverse is returned when inverting the zero element.
var ErrZeroInverse = errors.New("field: zero has no multiplicative inverse")

// ErrNoPrimitiveRoot is returned when no primitive root of the requested
// order exists in the field's unit group.
var ErrNoPrimitiveRoot = errors.New("field: order does not divide p-1")

// New reduces v into the field.
func New(v uint64) Element {
	return Element(canonical(v))
}

// NewFromInt64 reduces a signed integer into the field.
func NewFromInt64(v int64) Element {
	if v >= 0 {
		return New(uint64(v))
	}
	return Zero.Sub(New(uint64(-v)))
}

func canonical(v uint64) uint64 {
	if v >= Modulus {
		return v - Modulus
	}
	return v
}

// Value returns the canonical, fully-reduced representative in [0, p).
func (a Element) Value() uint64 {
	return canonical(uint64(a))
}

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool {
	return a.Value() == 0
}

// Equal compares two elements by their canonical representative.
func (a Element) Equal(b Element) bool {
	return a.Value() == b.Value()
}

// Add returns a + b.
func (a Element) Add(b Element) Element {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		sum += epsilon
	}
	return Element(sum)
}

// Sub returns a - b.
func (a Element) Sub(b Element) Element {
	diff, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	if borrow != 0 {
		diff -= epsilon
	}
	return Element(diff)
}

// Neg returns -a.
func (a Element) Neg() Element {
	return Zero.Sub(a)
}

// Mul returns a * b, reducing the 128-bit product via the epsilon trick.
func (a Element) Mul(b Element) Element {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return Element(reduce128(hi, lo))
}

// Square returns a * a.
func (a Element) Square() Element {
	return a.Mul(a)
}

// reduce128 folds a 128-bit product (hi:lo) into the redundant [0, 2^64)
// range. It is the single-word analogue of the schoolbook Goldilocks
// reduction: split the high word into its own hi/lo 32-bit halves, since
// 2^64 === epsilon and 2^96 === -epsilon (mod p).
func reduce128(hi, lo uint64) uint64 {
	hiHi := hi >> 32
	hiLo := hi & epsilon

	t0, borrow := bits.Sub64(lo, hiHi, 0)
	if borrow != 0 {
		t0 -= epsilon
	}

	t1 := hiLo * epsilon

	sum, carry := bits.Add64(t0, t1, 0)
	if carry != 0 {
		sum += epsilon
	}
	return sum
}

// ModPow raises a to the given non-negative exponent via square-and-multiply.
func (a Element) ModPow(exp uint64) Element {
	result := One
	base := a
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
		exp >>= 1
	}
	return result
}

// Inverse returns the multiplicative inverse of a via Fermat's little
// theorem (a^(p-2)). It fails on the zero element.
func (a Element) Inverse() (Element, error) {
	if a.IsZero() {
		return Zero, ErrZeroInverse
	}
	return a.ModPow(Modulus - 2), nil
}

// Div returns a / b; fails if b is zero.
func (a Element) Div(b Element) (Element, error) {
	inv, err := b.Inverse()
	if err != nil {
		return Zero, err
	}
	return a.Mul(inv), nil
}

// PrimitiveRootOfUnity returns a generator of the order-n multiplicative
// subgroup, when one exists. n must be a positive divisor of p-1.
func PrimitiveRootOfUnity(n uint64) (Element, error) {
	if n == 0 || (Modulus-1)%n != 0 {
		return Zero, ErrNoPrimitiveRoot
	}
	exp := (Modulus - 1) / n
	return Element(generator).ModPow(exp), nil
}

// BatchInversion inverts every element of as using a single field inversion
// plus O(n) multiplications (Montgomery's trick). Any zero input is an error.
func BatchInversion(as []Element) ([]Element, error) {
	n := len(as)
	if n == 0 {
		return nil, nil
	}

	prefix := make([]Element, n)
	acc := One
	for i, a := range as {
		if a.IsZero() {
			return nil, ErrZeroInverse
		}
		prefix[i] = acc
		acc = acc.Mul(a)
	}

	accInv, err := acc.Inverse()
	if err != nil {
		return nil, err
	}

	result := make([]Element, n)
	for i := n - 1; i >= 0; i-- {
		result[i] = prefix[i].Mul(accInv)
		accInv = accInv.Mul(as[i])
	}
	return result, nil
}

// Bytes serializes the canonical representative as 8 bytes, big-endian.
// This is the byte layout used as the hash preimage for leaves and digests.
func (a Element) Bytes() [8]byte {
	v := a.Value()
	var out [8]byte
	for i := 7; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// FromBytes deserializes 8 big-endian bytes into a field element.
func FromBytes(b [8]byte) Element {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return New(v)
}

// String renders the canonical decimal value.
func (a Element) String() string {
	return uintToString(a.Value())
}

func uintToString(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
