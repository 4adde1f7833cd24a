package merkletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bircni/twenty-first/field"
	"github.com/bircni/twenty-first/tip5"
)

func leafFor(v uint64) tip5.Digest {
	return LeafDigest([]field.Element{field.New(v)})
}

// TestScenarioS1 matches the spec's worked example: a tree of [1,2,3,4]
// whose root is produced by the standard hashing recipe, whose proof for
// leaf index 1 (the leaf plus its 2-sibling authentication path) verifies,
// and whose proof breaks under
// either a tampered leaf value or a tampered root.
func TestScenarioS1(t *testing.T) {
	leafs := []tip5.Digest{leafFor(1), leafFor(2), leafFor(3), leafFor(4)}
	tree, err := New(leafs)
	require.NoError(t, err)

	left01 := tip5.HashPair(leafs[0], leafs[1])
	left23 := tip5.HashPair(leafs[2], leafs[3])
	wantRoot := tip5.HashPair(left01, left23)
	assert.True(t, tree.Root().Equal(wantRoot))

	path, err := tree.AuthenticationPath(1)
	require.NoError(t, err)
	require.Len(t, path, 2)

	leaf, err := tree.Leaf(1)
	require.NoError(t, err)
	assert.True(t, leaf.Equal(leafFor(2)))
	assert.True(t, VerifyAuthenticationPath(tree.Root(), 1, leaf, path))

	tamperedLeaf := leafFor(3)
	assert.False(t, VerifyAuthenticationPath(tree.Root(), 1, tamperedLeaf, path))

	tamperedRoot := tree.Root()
	tamperedRoot[0] = tamperedRoot[0].Add(field.One)
	assert.False(t, VerifyAuthenticationPath(tamperedRoot, 1, leaf, path))
}

func TestNewRejectsZeroLeafs(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoLeafs)
}

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	_, err := New([]tip5.Digest{leafFor(1), leafFor(2), leafFor(3)})
	assert.ErrorIs(t, err, ErrNotPowerOfTwo)
}

func TestAuthenticationPathEveryLeaf(t *testing.T) {
	leafs := make([]tip5.Digest, 16)
	for i := range leafs {
		leafs[i] = leafFor(uint64(i))
	}
	tree, err := New(leafs)
	require.NoError(t, err)

	for i := 0; i < len(leafs); i++ {
		path, err := tree.AuthenticationPath(i)
		require.NoError(t, err)
		assert.True(t, VerifyAuthenticationPath(tree.Root(), i, leafs[i], path))
	}
}

func TestMultiProofVerifiesSeveralLeafs(t *testing.T) {
	leafs := make([]tip5.Digest, 32)
	for i := range leafs {
		leafs[i] = leafFor(uint64(i * 3))
	}
	tree, err := New(leafs)
	require.NoError(t, err)

	indices := []int{1, 5, 5, 17, 30}
	proof, err := tree.NewMultiProof(indices)
	require.NoError(t, err)
	assert.True(t, proof.Verify(tree.Root()))
}

func TestMultiProofFailsOnTamperedLeaf(t *testing.T) {
	leafs := make([]tip5.Digest, 8)
	for i := range leafs {
		leafs[i] = leafFor(uint64(i))
	}
	tree, err := New(leafs)
	require.NoError(t, err)

	proof, err := tree.NewMultiProof([]int{2, 6})
	require.NoError(t, err)
	proof.IndexedLeafs[0].Digest = leafFor(99)
	assert.False(t, proof.Verify(tree.Root()))
}

func TestMultiProofRejectsEmpty(t *testing.T) {
	proof := &MultiProof{}
	assert.False(t, proof.Verify(tip5.Digest{}))
}
