package flatindex

import (
	"math/bits"
	"testing"
)

// popcountHeights reproduces the accumulator model's derivation of peak
// heights from a leaf count, independently of package mmr, so this test can
// cross-check flatindex's node-index-based geometry against it.
func popcountHeights(n uint64) []uint64 {
	var heights []uint64
	for b := 63; b >= 0; b-- {
		if n&(uint64(1)<<uint(b)) != 0 {
			heights = append(heights, uint64(b))
		}
	}
	return heights
}

func TestPeakHeightsAgreeWithPopcount(t *testing.T) {
	for n := uint64(1); n <= 300; n++ {
		got := PeakHeights(n)
		want := popcountHeights(n)
		if len(got) != len(want) {
			t.Fatalf("n=%d: got %d peaks %v, want %d %v", n, len(got), got, len(want), want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("n=%d: peak %d height = %d, want %d", n, i, got[i], want[i])
			}
		}
	}
}

func TestPeakCountMatchesPopcount(t *testing.T) {
	for n := uint64(0); n <= 300; n++ {
		got := len(PeakHeights(n))
		want := bits.OnesCount64(n)
		if got != want {
			t.Fatalf("n=%d: |peaks| = %d, want popcount = %d", n, got, want)
		}
	}
}

func TestAllOnes(t *testing.T) {
	for _, n := range []uint64{1, 3, 7, 15, 31} {
		if !AllOnes(n) {
			t.Errorf("AllOnes(%d) = false, want true", n)
		}
	}
	for _, n := range []uint64{2, 4, 5, 6, 9} {
		if AllOnes(n) {
			t.Errorf("AllOnes(%d) = true, want false", n)
		}
	}
}

func TestLeafCountToSize(t *testing.T) {
	cases := map[uint64]uint64{1: 1, 2: 3, 3: 4, 4: 7, 7: 11}
	for n, want := range cases {
		if got := LeafCountToSize(n); got != want {
			t.Errorf("LeafCountToSize(%d) = %d, want %d", n, got, want)
		}
	}
}
