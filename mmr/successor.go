package mmr

import (
	"go.uber.org/zap"

	"github.com/bircni/twenty-first/internal/obslog"
	"github.com/bircni/twenty-first/tip5"
)

// SuccessorProof asserts that a new accumulator is the result of appending
// some sequence of leafs to an old one. It consists of one authentication
// path per old peak, each recording how that peak was folded upward (if at
// all) as later peaks merged around it during the appends.
type SuccessorProof struct {
	Paths []SuccessorPath
}

// SuccessorPath is one old peak's climb from its starting height to its
// resting place among the new accumulator's peaks. Each step names the
// sibling digest it was merged with and which side that sibling sat on.
type SuccessorPath []SuccessorStep

// SuccessorStep records a single merge: a peak's running digest is
// combined with Sibling, placed on the right if SiblingOnRight, else on
// the left.
type SuccessorStep struct {
	Sibling        tip5.Digest
	SiblingOnRight bool
}

// watchedNode is a stack entry during batch-append simulation: a digest at
// a given height, annotated with which of the original accumulator's peaks
// (by index) are still waiting to have their path extended through it.
type watchedNode struct {
	digest   tip5.Digest
	height   int
	watchers []int
}

// NewSuccessorProof builds a SuccessorProof witnessing that appending
// newLeafs to old yields the accumulator old would have after
// old.Append(leaf) for each leaf in turn.
func NewSuccessorProof(old Accumulator, newLeafs []tip5.Digest) SuccessorProof {
	paths := make([]SuccessorPath, len(old.Peaks))

	heights := heightsFromLeafCount(old.NumLeafs)
	stack := make([]watchedNode, len(old.Peaks))
	for i, peak := range old.Peaks {
		stack[i] = watchedNode{digest: peak, height: heights[i], watchers: []int{i}}
	}

	for _, leaf := range newLeafs {
		stack = append(stack, watchedNode{digest: leaf, height: 0})
		for len(stack) >= 2 && stack[len(stack)-1].height == stack[len(stack)-2].height {
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			for _, w := range left.watchers {
				paths[w] = append(paths[w], SuccessorStep{Sibling: right.digest, SiblingOnRight: true})
			}
			for _, w := range right.watchers {
				paths[w] = append(paths[w], SuccessorStep{Sibling: left.digest, SiblingOnRight: false})
			}

			merged := watchedNode{
				digest:   tip5.HashPair(left.digest, right.digest),
				height:   left.height + 1,
				watchers: append(left.watchers, right.watchers...),
			}
			stack = append(stack, merged)
		}
	}

	obslog.Sugar.Debugw("mmr.successor_proof.build",
		zap.Uint64("old_num_leafs", old.NumLeafs),
		zap.Int("appended", len(newLeafs)),
		zap.Int("old_peaks", len(old.Peaks)),
	)

	return SuccessorProof{Paths: paths}
}

// Verify checks that applying the appends implied by proof to old's peaks
// produces accumulator new. An empty old accumulator is trivially a
// predecessor of anything.
func (proof SuccessorProof) Verify(old, updated Accumulator) bool {
	if old.NumLeafs == 0 {
		return true
	}

	oldHeights := heightsFromLeafCount(old.NumLeafs)
	if len(oldHeights) != len(proof.Paths) || len(oldHeights) != len(old.Peaks) {
		return false
	}

	newHeights := heightsFromLeafCount(updated.NumLeafs)
	if len(newHeights) != len(updated.Peaks) {
		return false
	}

	for i, oldPeak := range old.Peaks {
		current := oldPeak
		for _, step := range proof.Paths[i] {
			if step.SiblingOnRight {
				current = tip5.HashPair(current, step.Sibling)
			} else {
				current = tip5.HashPair(step.Sibling, current)
			}
		}
		finalHeight := oldHeights[i] + len(proof.Paths[i])

		landed := false
		for j, h := range newHeights {
			if h == finalHeight && updated.Peaks[j].Equal(current) {
				landed = true
				break
			}
		}
		if !landed {
			return false
		}
	}
	return true
}
