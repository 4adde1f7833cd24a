// Package merkletree implements a binary Merkle tree over Tip5 digests: a
// flat, 1-indexed node array, single-leaf authentication paths, and
// compressed multi-leaf proofs with de-duplicated authentication structure.
package merkletree

import (
	"errors"

	"github.com/bircni/twenty-first/field"
	"github.com/bircni/twenty-first/tip5"
)

// RootIndex is the node index of the root. Index 0 is unused; a node's
// children live at 2*i and 2*i+1.
const RootIndex = 1

// ErrNoLeafs is returned when constructing a tree with zero leafs.
var ErrNoLeafs = errors.New("merkletree: cannot build a tree with zero leafs")

// ErrNotPowerOfTwo is returned when the leaf count is not a power of two.
var ErrNotPowerOfTwo = errors.New("merkletree: number of leafs must be a power of two")

// ErrLeafIndexOutOfRange is returned when a leaf index exceeds the tree's bounds.
var ErrLeafIndexOutOfRange = errors.New("merkletree: leaf index out of range")

// ErrEmptyProof names the case of a proof with no indexed leafs. Verify does
// not return it; it reports such a proof as invalid by returning false.
var ErrEmptyProof = errors.New("merkletree: proof contains no indexed leafs")

// MerkleTree is a complete binary tree of Tip5 digests, stored as a flat
// array: nodes[1] is the root, nodes[numLeafs+i] is leaf i.
type MerkleTree struct {
	nodes    []tip5.Digest
	numLeafs int
}

// LeafDigest hashes a field-element leaf value into the digest domain via
// HashVarlen, the same function used for variable-length sponge input.
func LeafDigest(value []field.Element) tip5.Digest {
	return tip5.HashVarlen(value)
}

// New builds a tree directly from leaf digests. numLeafs must be a
// positive power of two.
func New(leafs []tip5.Digest) (*MerkleTree, error) {
	n := len(leafs)
	if n == 0 {
		return nil, ErrNoLeafs
	}
	if n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}

	nodes := make([]tip5.Digest, 2*n)
	copy(nodes[n:], leafs)

	for remaining := n; remaining > 1; remaining /= 2 {
		for i := 0; i < remaining; i += 2 {
			left := nodes[remaining+i]
			right := nodes[remaining+i+1]
			nodes[remaining/2+i/2] = tip5.HashPair(left, right)
		}
	}

	return &MerkleTree{nodes: nodes, numLeafs: n}, nil
}

// FromValues hashes each value with LeafDigest before building the tree.
func FromValues(values [][]field.Element) (*MerkleTree, error) {
	leafs := make([]tip5.Digest, len(values))
	for i, v := range values {
		leafs[i] = LeafDigest(v)
	}
	return New(leafs)
}

// Root returns the tree's root digest.
func (mt *MerkleTree) Root() tip5.Digest {
	return mt.nodes[RootIndex]
}

// NumLeafs returns the number of leafs in the tree.
func (mt *MerkleTree) NumLeafs() int {
	return mt.numLeafs
}

// Height returns the number of layers above the leafs.
func (mt *MerkleTree) Height() int {
	height := 0
	for n := mt.numLeafs; n > 1; n >>= 1 {
		height++
	}
	return height
}

// Leaf returns the digest stored at the given leaf index.
func (mt *MerkleTree) Leaf(index int) (tip5.Digest, error) {
	if index < 0 || index >= mt.numLeafs {
		return tip5.Digest{}, ErrLeafIndexOutOfRange
	}
	return mt.nodes[mt.numLeafs+index], nil
}

// AuthenticationPath returns the sibling digests needed to recompute the
// root from the leaf at index, ordered from the leaf's sibling upward.
func (mt *MerkleTree) AuthenticationPath(index int) ([]tip5.Digest, error) {
	if index < 0 || index >= mt.numLeafs {
		return nil, ErrLeafIndexOutOfRange
	}

	height := mt.Height()
	path := make([]tip5.Digest, height)
	nodeIndex := mt.numLeafs + index
	for i := 0; i < height; i++ {
		path[i] = mt.nodes[nodeIndex^1]
		nodeIndex /= 2
	}
	return path, nil
}

// VerifyAuthenticationPath recomputes the root from leaf, its index, and
// the path returned by AuthenticationPath, and compares it to root.
func VerifyAuthenticationPath(root tip5.Digest, index int, leaf tip5.Digest, path []tip5.Digest) bool {
	current := leaf
	for _, sibling := range path {
		if index%2 == 0 {
			current = tip5.HashPair(current, sibling)
		} else {
			current = tip5.HashPair(sibling, current)
		}
		index /= 2
	}
	return current.Equal(root)
}

// LeafIndexDigestPair names one of the leafs an inclusion proof is about.
type LeafIndexDigestPair struct {
	Index  int
	Digest tip5.Digest
}

// MultiProof is a compressed inclusion proof for several leafs at once: the
// indexed leaf digests plus a de-duplicated authentication structure
// covering every sibling not already implied by another indexed leaf, an
// already-listed sibling, or an earlier indexed leaf's path to the root.
type MultiProof struct {
	TreeHeight              int
	IndexedLeafs            []LeafIndexDigestPair
	AuthenticationStructure []tip5.Digest
}

// NewMultiProof builds a compressed inclusion proof for the given leaf indices.
func (mt *MerkleTree) NewMultiProof(indices []int) (*MultiProof, error) {
	indexedLeafs := make([]LeafIndexDigestPair, len(indices))
	for i, idx := range indices {
		leaf, err := mt.Leaf(idx)
		if err != nil {
			return nil, err
		}
		indexedLeafs[i] = LeafIndexDigestPair{Index: idx, Digest: leaf}
	}

	return &MultiProof{
		TreeHeight:              mt.Height(),
		IndexedLeafs:            indexedLeafs,
		AuthenticationStructure: mt.buildAuthenticationStructure(indices),
	}, nil
}

// buildAuthenticationStructure walks from every named leaf to the root,
// recording each sibling not already known to the verifier -- because it's
// one of the other indexed leafs, because it was already emitted while
// processing an earlier leaf in this same call, or because it lies on an
// earlier leaf's path to the root and so can be recomputed.
func (mt *MerkleTree) buildAuthenticationStructure(indices []int) []tip5.Digest {
	revealed := make(map[int]bool, 2*len(indices))
	for _, idx := range indices {
		revealed[mt.numLeafs+idx] = true
	}

	height := mt.Height()
	var authNodes []tip5.Digest
	for _, idx := range indices {
		nodeIndex := mt.numLeafs + idx
		for level := 0; level < height; level++ {
			siblingIndex := nodeIndex ^ 1
			if !revealed[siblingIndex] {
				authNodes = append(authNodes, mt.nodes[siblingIndex])
				revealed[siblingIndex] = true
			}
			nodeIndex /= 2
			revealed[nodeIndex] = true
		}
	}
	return authNodes
}

// Verify checks a MultiProof against root by reconstructing every node
// reachable from the indexed leafs and the authentication structure,
// iterating bottom-up until the root is known or no further progress can
// be made.
func (proof *MultiProof) Verify(root tip5.Digest) bool {
	if len(proof.IndexedLeafs) == 0 {
		return false
	}

	numLeafs := uint64(1) << proof.TreeHeight
	nodes := make(map[uint64]tip5.Digest, 2*len(proof.IndexedLeafs)+len(proof.AuthenticationStructure))

	known := make(map[uint64]bool, len(nodes))
	for _, pair := range proof.IndexedLeafs {
		leafIndex := numLeafs + uint64(pair.Index)
		nodes[leafIndex] = pair.Digest
		known[leafIndex] = true
	}

	authIdx := 0
	for _, pair := range proof.IndexedLeafs {
		nodeIndex := numLeafs + uint64(pair.Index)
		for level := 0; level < proof.TreeHeight; level++ {
			siblingIndex := nodeIndex ^ 1
			if !known[siblingIndex] {
				if authIdx >= len(proof.AuthenticationStructure) {
					return false
				}
				nodes[siblingIndex] = proof.AuthenticationStructure[authIdx]
				known[siblingIndex] = true
				authIdx++
			}
			nodeIndex /= 2
			known[nodeIndex] = true
		}
	}

	for level := proof.TreeHeight; level > 0; level-- {
		levelStart := uint64(1) << level
		for nodeIdx := levelStart; nodeIdx < 2*levelStart; nodeIdx += 2 {
			left, hasLeft := nodes[nodeIdx]
			right, hasRight := nodes[nodeIdx+1]
			if hasLeft && hasRight {
				nodes[nodeIdx/2] = tip5.HashPair(left, right)
			}
		}
	}

	computedRoot, ok := nodes[RootIndex]
	return ok && computedRoot.Equal(root)
}
