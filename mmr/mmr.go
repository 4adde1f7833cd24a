// Package mmr implements a Merkle Mountain Range accumulator: a compact
// commitment (peaks, num_leafs) to an append-only log of digests, together
// with membership proofs and successor proofs relating two accumulators.
package mmr

import (
	"errors"
	"math/bits"

	"go.uber.org/zap"

	"github.com/bircni/twenty-first/field"
	"github.com/bircni/twenty-first/internal/obslog"
	"github.com/bircni/twenty-first/tip5"
)

// ErrLeafIndexOutOfRange names the case of a membership proof whose leaf
// index does not exist in the accumulator. VerifyMembership does not return
// it and does not check LeafIndex; it reports only true or false.
var ErrLeafIndexOutOfRange = errors.New("mmr: leaf index out of range")

// Accumulator is the lightweight representation of a Merkle Mountain
// Range: the roots of its constituent perfect binary trees ("peaks"),
// ordered from tallest (oldest) to shortest (newest), plus the total leaf
// count. len(Peaks) always equals popcount(NumLeafs).
type Accumulator struct {
	Peaks    []tip5.Digest
	NumLeafs uint64
}

// Empty returns the accumulator with zero leafs and no peaks.
func Empty() Accumulator {
	return Accumulator{}
}

// New builds an accumulator directly from a known peaks/leaf-count pair,
// trusting the caller that len(peaks) == popcount(numLeafs).
func New(peaks []tip5.Digest, numLeafs uint64) Accumulator {
	return Accumulator{Peaks: peaks, NumLeafs: numLeafs}
}

// heightsFromLeafCount returns the heights of the perfect trees making up
// an MMR of the given leaf count, in descending order -- equivalently, the
// positions of the set bits of n from most to least significant.
func heightsFromLeafCount(n uint64) []int {
	var heights []int
	for b := 63; b >= 0; b-- {
		if n&(uint64(1)<<uint(b)) != 0 {
			heights = append(heights, b)
		}
	}
	return heights
}

// NewFromLeafs builds an accumulator by folding pairs of leafs bottom-up,
// merging equal-height trees as they meet, exactly as repeated Append
// would but without recording intermediate membership proofs.
func NewFromLeafs(leafs []tip5.Digest) Accumulator {
	type node struct {
		digest tip5.Digest
		height int
	}
	var stack []node
	for _, leaf := range leafs {
		stack = append(stack, node{digest: leaf, height: 0})
		for len(stack) >= 2 && stack[len(stack)-1].height == stack[len(stack)-2].height {
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, node{
				digest: tip5.HashPair(left.digest, right.digest),
				height: left.height + 1,
			})
		}
	}

	peaks := make([]tip5.Digest, len(stack))
	for i, n := range stack {
		peaks[i] = n.digest
	}
	return Accumulator{Peaks: peaks, NumLeafs: uint64(len(leafs))}
}

// IsEmpty reports whether the accumulator has no leafs.
func (a Accumulator) IsEmpty() bool {
	return a.NumLeafs == 0
}

// IsConsistent reports whether the peak count matches popcount(NumLeafs),
// the structural invariant every valid accumulator must satisfy.
func (a Accumulator) IsConsistent() bool {
	return len(a.Peaks) == bits.OnesCount64(a.NumLeafs)
}

// BagPeaks folds the accumulator's peaks (and leaf count, to bind the
// commitment to the tree shape and not just the peak multiset) into a
// single digest via HashVarlen.
func (a Accumulator) BagPeaks() tip5.Digest {
	if len(a.Peaks) == 0 {
		return tip5.Digest{}
	}
	input := make([]field.Element, 0, tip5.DigestLength+len(a.Peaks)*tip5.DigestLength)
	input = append(input, field.New(a.NumLeafs))
	for i := 1; i < tip5.DigestLength; i++ {
		input = append(input, field.Zero)
	}
	for _, peak := range a.Peaks {
		input = append(input, peak[:]...)
	}
	return tip5.HashVarlen(input)
}

// MembershipProof proves that a specific leaf belongs to the accumulator
// it was produced from. AuthPath is always applied left-to-right: each
// sibling was the already-settled peak to the leaf's left at the time of
// the merge that created it.
type MembershipProof struct {
	LeafIndex uint64
	AuthPath  []tip5.Digest
}

// Append adds newLeaf to the accumulator in place and returns its
// membership proof. Implements the MMR append algorithm as a sequence of
// equal-height merges, identical in effect to the standard "carry
// propagation" formulation keyed off the leaf count's trailing ones.
func (a *Accumulator) Append(newLeaf tip5.Digest) MembershipProof {
	proof := MembershipProof{LeafIndex: a.NumLeafs}

	peaks := append(append([]tip5.Digest(nil), a.Peaks...), newLeaf)
	numMerges := trailingOnes(a.NumLeafs)
	for i := 0; i < numMerges && len(peaks) >= 2; i++ {
		inProgress := peaks[len(peaks)-1]
		previous := peaks[len(peaks)-2]
		peaks = peaks[:len(peaks)-2]

		proof.AuthPath = append(proof.AuthPath, previous)
		peaks = append(peaks, tip5.HashPair(previous, inProgress))
	}

	a.Peaks = peaks
	a.NumLeafs++

	obslog.Sugar.Debugw("mmr.append",
		zap.Uint64("leaf_index", proof.LeafIndex),
		zap.Int("merges", numMerges),
		zap.Uint64("num_leafs", a.NumLeafs),
	)

	return proof
}

// trailingOnes counts the number of consecutive set bits starting from
// bit 0, i.e. how many carries an append at this leaf count triggers.
func trailingOnes(n uint64) int {
	return bits.TrailingZeros64(^n)
}

// VerifyMembership checks a membership proof against the accumulator's
// current peaks by folding leaf up through AuthPath and testing whether
// the result lands on any peak.
func (a Accumulator) VerifyMembership(leaf tip5.Digest, proof MembershipProof) bool {
	current := leaf
	for _, sibling := range proof.AuthPath {
		current = tip5.HashPair(sibling, current)
	}
	for _, peak := range a.Peaks {
		if current.Equal(peak) {
			return true
		}
	}
	return false
}
