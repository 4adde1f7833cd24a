package mmr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bircni/twenty-first/field"
	"github.com/bircni/twenty-first/mmr/flatindex"
	"github.com/bircni/twenty-first/tip5"
)

func leafFor(v uint64) tip5.Digest {
	return tip5.HashVarlen([]field.Element{field.New(v)})
}

func TestAppendMaintainsConsistency(t *testing.T) {
	acc := Empty()
	for i := uint64(0); i < 20; i++ {
		acc.Append(leafFor(i))
		assert.True(t, acc.IsConsistent(), "peak count must equal popcount(num_leafs) after %d appends", i+1)
	}
}

func TestAppendMembershipProofVerifies(t *testing.T) {
	// Each proof is checked against the accumulator its own append produced;
	// later appends may merge that peak further and leave the proof stale.
	acc := Empty()
	for i := uint64(0); i < 20; i++ {
		leaf := leafFor(i)
		proof := acc.Append(leaf)
		assert.True(t, acc.VerifyMembership(leaf, proof), "leaf %d must verify", i)
	}
}

func TestAppendMembershipProofFailsOnWrongLeaf(t *testing.T) {
	acc := Empty()
	var proof MembershipProof
	for i := uint64(0); i < 10; i++ {
		proof = acc.Append(leafFor(i))
	}
	assert.False(t, acc.VerifyMembership(leafFor(999), proof))
}

func TestNewFromLeafsMatchesRepeatedAppend(t *testing.T) {
	var leafs []tip5.Digest
	for i := uint64(0); i < 17; i++ {
		leafs = append(leafs, leafFor(i))
	}

	viaBuild := NewFromLeafs(leafs)

	viaAppend := Empty()
	for _, leaf := range leafs {
		viaAppend.Append(leaf)
	}

	require.Equal(t, viaAppend.NumLeafs, viaBuild.NumLeafs)
	require.Len(t, viaBuild.Peaks, len(viaAppend.Peaks))
	for i := range viaBuild.Peaks {
		assert.True(t, viaBuild.Peaks[i].Equal(viaAppend.Peaks[i]))
	}
}

// TestScenarioS4 matches the spec's worked example: starting empty, append
// 7 fixed digests, the resulting accumulator should have 3 peaks, and a
// successor proof from the empty state to the final state must verify.
// A proof from an empty state carries no paths, so the tamper check below
// does not run here; TestSuccessorProofTamperedSiblingFailsVerification
// covers tampering from a non-empty state.
func TestScenarioS4(t *testing.T) {
	empty := Empty()

	var leafs []tip5.Digest
	for i := uint64(0); i < 7; i++ {
		leafs = append(leafs, leafFor(1000+i))
	}

	proof := NewSuccessorProof(empty, leafs)

	final := empty
	for _, leaf := range leafs {
		final.Append(leaf)
	}

	assert.Equal(t, 3, len(final.Peaks), "7 = 0b111 leafs must produce 3 peaks")
	assert.True(t, proof.Verify(empty, final))

	if len(proof.Paths) > 0 && len(proof.Paths[0]) > 0 {
		tampered := proof
		tampered.Paths = append([]SuccessorPath(nil), proof.Paths...)
		tamperedPath := append([]SuccessorStep(nil), proof.Paths[0]...)
		tamperedPath[0].Sibling[0] = tamperedPath[0].Sibling[0].Add(field.One)
		tampered.Paths[0] = tamperedPath
		assert.False(t, tampered.Verify(empty, final))
	}
}

func TestSuccessorProofBetweenNonEmptyStates(t *testing.T) {
	var initialLeafs []tip5.Digest
	for i := uint64(0); i < 13; i++ {
		initialLeafs = append(initialLeafs, leafFor(i))
	}
	old := NewFromLeafs(initialLeafs)

	var newLeafs []tip5.Digest
	for i := uint64(0); i < 25; i++ {
		newLeafs = append(newLeafs, leafFor(100+i))
	}

	proof := NewSuccessorProof(old, newLeafs)

	updated := old
	for _, leaf := range newLeafs {
		updated.Append(leaf)
	}

	assert.True(t, proof.Verify(old, updated))
}

func TestSuccessorProofRejectsWrongTarget(t *testing.T) {
	old := NewFromLeafs([]tip5.Digest{leafFor(1), leafFor(2), leafFor(3), leafFor(4)})
	newLeafs := []tip5.Digest{leafFor(5), leafFor(6)}
	proof := NewSuccessorProof(old, newLeafs)

	// A target whose first leaf differs from old's does not descend from old.
	wrongTarget := NewFromLeafs([]tip5.Digest{leafFor(9), leafFor(2), leafFor(3), leafFor(4), leafFor(5), leafFor(6)})
	assert.False(t, proof.Verify(old, wrongTarget))
}

func TestSuccessorProofFromEmptyIsTrivial(t *testing.T) {
	proof := NewSuccessorProof(Empty(), nil)
	assert.True(t, proof.Verify(Empty(), NewFromLeafs([]tip5.Digest{leafFor(1)})))
}

func TestBagPeaksChangesWithLeafs(t *testing.T) {
	a := NewFromLeafs([]tip5.Digest{leafFor(1), leafFor(2)})
	b := NewFromLeafs([]tip5.Digest{leafFor(1), leafFor(3)})
	assert.False(t, a.BagPeaks().Equal(b.BagPeaks()))
}

// TestHeightsFromLeafCountAgreesWithFlatindex cross-checks the accumulator's
// popcount-based peak heights against flatindex's independent derivation of
// the same quantity from node-index arithmetic. The two geometries must
// always agree.
func TestHeightsFromLeafCountAgreesWithFlatindex(t *testing.T) {
	for n := uint64(0); n < 300; n++ {
		want := heightsFromLeafCount(n)
		got := flatindex.PeakHeights(n)

		require.Equal(t, len(want), len(got), "leaf count %d: peak count mismatch", n)
		for i := range want {
			assert.Equal(t, uint64(want[i]), got[i], "leaf count %d: peak %d height mismatch", n, i)
		}
	}
}

// TestSuccessorProofTamperedSiblingFailsVerification exercises the
// tamper-and-expect-false half of the successor-proof property against a
// non-empty starting accumulator, where paths actually carry sibling
// digests: flipping one must make the proof fail to verify.
func TestSuccessorProofTamperedSiblingFailsVerification(t *testing.T) {
	var initialLeafs []tip5.Digest
	for i := uint64(0); i < 13; i++ {
		initialLeafs = append(initialLeafs, leafFor(i))
	}
	old := NewFromLeafs(initialLeafs)

	var newLeafs []tip5.Digest
	for i := uint64(0); i < 25; i++ {
		newLeafs = append(newLeafs, leafFor(100+i))
	}

	proof := NewSuccessorProof(old, newLeafs)

	updated := old
	for _, leaf := range newLeafs {
		updated.Append(leaf)
	}
	require.True(t, proof.Verify(old, updated))

	tampered := proof
	tampered.Paths = append([]SuccessorPath(nil), proof.Paths...)

	found := false
	for i, path := range tampered.Paths {
		if len(path) == 0 {
			continue
		}
		tamperedPath := append([]SuccessorStep(nil), path...)
		tamperedPath[0].Sibling[0] = tamperedPath[0].Sibling[0].Add(field.One)
		tampered.Paths[i] = tamperedPath
		found = true
		break
	}
	require.True(t, found, "fixture must produce at least one non-empty successor path")

	assert.False(t, tampered.Verify(old, updated))
}
