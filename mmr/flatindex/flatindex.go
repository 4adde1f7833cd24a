// Package flatindex supplements the peaks-and-leafcount accumulator model in
// package mmr with the alternate geometry used by Merkle mountain range
// implementations that number every node -- leaf and internal alike -- in a
// single depth-first, left-to-right sequence and recover height, peak, and
// sibling relationships from that index's bit pattern rather than from an
// explicit tree of height-tagged nodes.
//
// It exists as a cross-check: mmr.heightsFromLeafCount derives peak heights
// from the popcount of the leaf count, and flatindex derives the same
// information from node-index arithmetic. The two must always agree.
package flatindex

import "math/bits"

// BitLength returns the number of bits needed to represent n, i.e. 1 +
// floor(log2(n)), and 0 for n == 0.
func BitLength(n uint64) int {
	return bits.Len64(n)
}

// AllOnes reports whether n's binary representation is all 1s (2^k - 1 for
// some k), which identifies a one-based position sitting at the root of a
// perfect subtree.
func AllOnes(n uint64) bool {
	return (uint64(1)<<bits.OnesCount64(n))-1 == n
}

// jumpLeftPerfect moves from a one-based node position to the matching
// position, at the same height, in the perfect subtree to its left, by
// subtracting the size of the largest perfect subtree preceding it.
func jumpLeftPerfect(pos uint64) uint64 {
	msb := uint64(1) << (BitLength(pos) - 1)
	return pos - (msb - 1)
}

// PosHeight returns the height of a one-based node position by repeatedly
// jumping left at the same height until an all-ones
// position (a perfect peak) is reached.
func PosHeight(pos uint64) uint64 {
	for !AllOnes(pos) {
		pos = jumpLeftPerfect(pos)
	}
	return uint64(BitLength(pos) - 1)
}

// IndexHeight returns the height of a zero-based node index.
func IndexHeight(i uint64) uint64 {
	return PosHeight(i + 1)
}

// jumpRightSibling moves from a one-based position to its right sibling at
// the same height.
func jumpRightSibling(pos uint64) uint64 {
	return pos + (uint64(1) << (PosHeight(pos) + 1)) - 1
}

// leftChild returns the one-based position of pos's left child, and false
// if pos is a leaf (height 0).
func leftChild(pos uint64) (uint64, bool) {
	height := PosHeight(pos)
	if height == 0 {
		return 0, false
	}
	return pos - (uint64(1) << height), true
}

// LeafCountToSize converts a leaf count to the corresponding total node
// count (leaves plus internal nodes) of the mountain range, via the closed
// form size(n) = 2n - popcount(n).
func LeafCountToSize(numLeafs uint64) uint64 {
	return 2*numLeafs - uint64(bits.OnesCount64(numLeafs))
}

// Peaks returns the one-based positions of the mountain range's peaks,
// highest (left-most) first, for a mountain range with the given total node
// count. Returns nil if size is zero or not a valid mountain-range size.
func Peaks(size uint64) []uint64 {
	if size == 0 {
		return nil
	}
	if PosHeight(size+1) > PosHeight(size) {
		return nil
	}

	top := uint64(1)
	for (top - 1) <= size {
		top <<= 1
	}
	top = (top >> 1) - 1
	if top == 0 {
		return nil
	}

	peaks := []uint64{top}
	peak := top
outer:
	for {
		peak = jumpRightSibling(peak)
		for peak > size {
			if p, ok := leftChild(peak); ok {
				peak = p
				continue
			}
			break outer
		}
		peaks = append(peaks, peak)
	}
	return peaks
}

// PeakHeights returns the heights of the peaks returned by Peaks, for a
// mountain range holding numLeafs leaves. This is the value to compare
// against the popcount-based heights used by the accumulator model.
func PeakHeights(numLeafs uint64) []uint64 {
	size := LeafCountToSize(numLeafs)
	positions := Peaks(size)
	heights := make([]uint64, len(positions))
	for i, pos := range positions {
		heights[i] = PosHeight(pos)
	}
	return heights
}
