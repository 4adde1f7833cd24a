// Package tip5 implements the Tip5 sponge permutation and hash: a 16-wide
// state, 7-round cryptographic permutation with a cubing S-box over 16-bit
// limbs and an MDS layer realized as a cyclic convolution.
package tip5

import (
	"github.com/bircni/twenty-first/field"
)

const (
	stateSize = 16
	capacity  = 6
	rate      = 10
	numRounds = 7
	digestLen = 5
	mdsScalar = stateSize

	// DigestLength is the number of field elements in a Tip5 digest.
	DigestLength = digestLen
)

// Digest is the fixed-size output of every Tip5 hash function.
type Digest [digestLen]field.Element

// Bytes serializes a digest as the concatenation of each element's 8-byte
// big-endian encoding.
func (d Digest) Bytes() [digestLen * 8]byte {
	var out [digestLen * 8]byte
	for i, el := range d {
		b := el.Bytes()
		copy(out[i*8:], b[:])
	}
	return out
}

// Equal compares two digests element-wise under canonical reduction.
func (d Digest) Equal(other Digest) bool {
	for i := range d {
		if !d[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// state is the 16-element sponge state: rate elements followed by capacity
// elements.
type state [stateSize]field.Element

// sbox applies the cubing permutation to the whole state in place. The top
// two 16-bit limbs of each element go through the inverted Fermat cube map,
// the bottom two through the plain Fermat cube map.
func sbox(s *state) {
	for i := range s {
		v := s[i].Value()
		a := uint32(v >> 48)
		b := uint32((v >> 32) & 0xffff)
		c := uint32((v >> 16) & 0xffff)
		d := uint32(v & 0xffff)

		a = invertedFermatCubeMap(a)
		b = invertedFermatCubeMap(b)
		c = fermatCubeMap(c)
		d = fermatCubeMap(d)

		s[i] = field.New((uint64(a) << 48) | (uint64(b) << 32) | (uint64(c) << 16) | uint64(d))
	}
}

// fermatCubeMap computes x^3 in GF(65537) on a 16-bit input, represented as
// a value in [0, 65536).
func fermatCubeMap(x uint32) uint32 {
	x2 := x * x
	x2hi := x2 >> 16
	x2lo := x2 & 0xffff
	x2p := x2lo - x2hi
	if x2lo < x2hi {
		x2p += 65537
	}
	x3 := x2p * x
	x3hi := x3 >> 16
	x3lo := x3 & 0xffff
	x3p := x3lo - x3hi
	if x3lo < x3hi {
		x3p += 65537
	}
	return x3p
}

// invertedFermatCubeMap computes the Fermat cube map composed with the
// field's additive-complement involution (65536 - x).
func invertedFermatCubeMap(x uint32) uint32 {
	return 65536 - fermatCubeMap(65535-x)
}

// mds applies the MDS layer as a circulant convolution of the state with
// mdsVector, via schoolbook polynomial multiplication modulo x^16-1,
// followed by the fixed scaling factor. This is one of three equivalent
// formulations (schoolbook, polynomial-mod, NTT-domain); they must all
// agree bit-exactly, and this implementation uses the schoolbook form.
func mds(s *state) {
	var wide [2 * stateSize]field.Element
	for i := 0; i < stateSize; i++ {
		for j := 0; j < stateSize; j++ {
			wide[i+j] = wide[i+j].Add(s[i].Mul(field.New(mdsVector[j])))
		}
	}

	scalar := field.New(uint64(mdsScalar))
	for i := 0; i < stateSize; i++ {
		s[i] = wide[i].Add(wide[stateSize+i]).Mul(scalar)
	}
}

// round applies one round: S-box, MDS, then adding the round's constants.
func round(s *state, roundIndex int) {
	sbox(s)
	mds(s)
	for i := 0; i < stateSize; i++ {
		s[i] = s[i].Add(field.New(roundConstants[roundIndex*stateSize+i]))
	}
}

// permutation applies all numRounds rounds of the Tip5 permutation.
func permutation(s *state) {
	for i := 0; i < numRounds; i++ {
		round(s, i)
	}
}

// Hash10 hashes exactly two digests' worth of input (10 field elements),
// with no padding since the length is fixed by construction.
func Hash10(input [2 * digestLen]field.Element) Digest {
	var s state
	copy(s[:rate], input[:])
	s[rate] = field.One // domain separation for fixed-length input

	permutation(&s)

	var out Digest
	copy(out[:], s[:digestLen])
	return out
}

// HashPair hashes two digests together by concatenating them and calling
// Hash10; this is the internal node function of the Merkle tree.
func HashPair(left, right Digest) Digest {
	var input [2 * digestLen]field.Element
	copy(input[:digestLen], left[:])
	copy(input[digestLen:], right[:])
	return Hash10(input)
}

// HashVarlen hashes an arbitrary-length slice of field elements. The input
// is padded with a single one followed by zeros up to the next multiple of
// rate -- the one is appended even when len(input) is already a multiple
// of rate, so that hash_varlen never mistakes a rate-aligned input for one
// that needed no padding at all.
func HashVarlen(input []field.Element) Digest {
	padded := make([]field.Element, len(input), len(input)+rate)
	copy(padded, input)
	padded = append(padded, field.One)
	for len(padded)%rate != 0 {
		padded = append(padded, field.Zero)
	}

	var s state
	for len(padded) > 0 {
		for i := 0; i < rate; i++ {
			s[i] = s[i].Add(padded[i])
		}
		padded = padded[rate:]
		permutation(&s)
	}

	var out Digest
	copy(out[:], s[:digestLen])
	return out
}
