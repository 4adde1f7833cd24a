// Package fft implements the radix-2 number-theoretic transform used by the
// polynomial engine to multiply, evaluate and interpolate in O(n log n).
package fft

import (
	"errors"
	"math/bits"

	"github.com/bircni/twenty-first/field"
)

// ErrNotPowerOfTwo is returned when a buffer's length is not a power of two.
var ErrNotPowerOfTwo = errors.New("fft: buffer length must be a power of two")

// ErrBadRoot is returned when the supplied root does not have the order
// implied by the buffer length.
var ErrBadRoot = errors.New("fft: root is not a primitive root of the required order")

// NTT performs an in-place forward number-theoretic transform of buf using
// omega, a primitive n-th root of unity where n = len(buf). buf is read in
// natural (ascending-degree) order and left in natural (point-value) order;
// internally the transform bit-reverses the input, then runs the butterfly
// network, which leaves the output in natural order.
func NTT(buf []field.Element, omega field.Element) error {
	n := len(buf)
	if n == 0 {
		return nil
	}
	if n&(n-1) != 0 {
		return ErrNotPowerOfTwo
	}
	if !omega.ModPow(uint64(n)).Equal(field.One) {
		return ErrBadRoot
	}
	if n > 1 && omega.ModPow(uint64(n/2)).Equal(field.One) {
		return ErrBadRoot
	}

	bitReversePermute(buf)
	cooleyTukey(buf, omega)
	return nil
}

// INTT performs an in-place inverse number-theoretic transform: the exact
// inverse of NTT for the same omega, including the final scaling by 1/n.
func INTT(buf []field.Element, omega field.Element) error {
	n := len(buf)
	if n == 0 {
		return nil
	}
	omegaInv, err := omega.Inverse()
	if err != nil {
		return err
	}
	if err := NTT(buf, omegaInv); err != nil {
		return err
	}

	nInv, err := field.New(uint64(n)).Inverse()
	if err != nil {
		return err
	}
	for i := range buf {
		buf[i] = buf[i].Mul(nInv)
	}
	return nil
}

// cooleyTukey runs the standard decimation-in-time butterfly network over a
// buffer already in bit-reversed order, producing point values in natural
// order. Twiddles are derived on the fly from repeated squaring of omega.
func cooleyTukey(buf []field.Element, omega field.Element) {
	n := uint(len(buf))
	for blockSize := uint(2); blockSize <= n; blockSize <<= 1 {
		half := blockSize / 2
		step := n / blockSize
		w := omega.ModPow(uint64(step))

		for start := uint(0); start < n; start += blockSize {
			wPow := field.One
			for j := uint(0); j < half; j++ {
				u := buf[start+j]
				v := buf[start+j+half].Mul(wPow)
				buf[start+j] = u.Add(v)
				buf[start+j+half] = u.Sub(v)
				wPow = wPow.Mul(w)
			}
		}
	}
}

// bitReversePermute swaps buf[i] with buf[reverse(i)] for every index,
// where reverse flips the low log2(len(buf)) bits of i.
func bitReversePermute(buf []field.Element) {
	n := uint(len(buf))
	logN := uint(bits.Len(n) - 1)
	for i := uint(0); i < n; i++ {
		j := reverseBits(i, logN)
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
}

func reverseBits(x, logN uint) uint {
	var r uint
	for i := uint(0); i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}
