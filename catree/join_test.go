package catree

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/catree/gatomic"
)

func TestLowContentionJoinMergesSiblingBases(t *testing.T) {
	c := qt.New(t)
	// Route(10, Base(1,2,3), Base(11,12,13)) -- two leaves, no grandparent.
	tr := FromInitialBases[int](Route(10, Base(1, 2, 3), Base(11, 12, 13)))

	root := tr.loadRoot()
	c.Assert(root.kind, qt.Equals, kindRoute)
	left := root.left

	tr.lowContentionJoin(left)

	merged := tr.loadRoot()
	c.Assert(merged.kind, qt.Equals, kindNormal)
	for _, k := range []int{1, 2, 3, 11, 12, 13} {
		c.Assert(tr.Lookup(k), qt.IsTrue, qt.Commentf("key %d", k))
	}
}

func TestLowContentionJoinRightSibling(t *testing.T) {
	c := qt.New(t)
	tr := FromInitialBases[int](Route(10, Base(1, 2, 3), Base(11, 12, 13)))

	root := tr.loadRoot()
	right := root.right

	tr.lowContentionJoin(right)

	merged := tr.loadRoot()
	c.Assert(merged.kind, qt.Equals, kindNormal)
	for _, k := range []int{1, 2, 3, 11, 12, 13} {
		c.Assert(tr.Lookup(k), qt.IsTrue, qt.Commentf("key %d", k))
	}
}

func TestLowContentionJoinWithGrandparent(t *testing.T) {
	c := qt.New(t)
	tr := FromInitialBases[int](DemoTopology())

	// r3 = Route(60, Base(55,56,57), Base(65,66,67)) under r1 = Route(40, ...).
	// Join the 55-57 base with its right sibling 65-67; r3 is spliced out
	// under r1, leaving r1's right child as the merged base directly.
	r0 := tr.loadRoot()
	r1 := r0.left
	r3 := r1.right
	leftLeaf := r3.left

	tr.lowContentionJoin(leftLeaf)

	for _, k := range []int{55, 56, 57, 65, 66, 67} {
		c.Assert(tr.Lookup(k), qt.IsTrue, qt.Commentf("key %d", k))
	}
	// Everything else in the tree is still reachable.
	for _, k := range []int{35, 36, 37, 75, 76, 77, 85, 86, 87} {
		c.Assert(tr.Lookup(k), qt.IsTrue, qt.Commentf("key %d", k))
	}
}

// TestAbortJoinClearsBothJoinIDs exercises the gparent != nil path of
// abortJoin directly: secureJoinLeft/Right claim both m.parent.joinID (step
// 4) and gparent.joinID (step 5) before attempting the final neigh2 CAS, so
// losing that race must release both, not just gparent's -- otherwise
// m.parent could never host a successful join again.
func TestAbortJoinClearsBothJoinIDs(t *testing.T) {
	c := qt.New(t)
	tr := New[int]()

	gparent := &node[int]{kind: kindRoute}
	parent := &node[int]{kind: kindRoute}
	m := &node[int]{kind: kindJoinMain, parent: parent}

	gatomic.StorePointer(&parent.joinID, m)
	gatomic.StorePointer(&gparent.joinID, m)

	tr.abortJoin(m, gparent)

	c.Assert(gatomic.LoadPointer(&parent.joinID), qt.IsNil)
	c.Assert(gatomic.LoadPointer(&gparent.joinID), qt.IsNil)
}

// TestAbortJoinClearsParentWhenRootGrandparent covers the gparent == nil
// case: only m.parent.joinID was ever claimed, and abortJoin must still
// clear it.
func TestAbortJoinClearsParentWhenRootGrandparent(t *testing.T) {
	c := qt.New(t)
	tr := New[int]()

	parent := &node[int]{kind: kindRoute}
	m := &node[int]{kind: kindJoinMain, parent: parent}
	gatomic.StorePointer(&parent.joinID, m)

	tr.abortJoin(m, nil)

	c.Assert(gatomic.LoadPointer(&parent.joinID), qt.IsNil)
}

func TestLowContentionJoinOnRootIsNoop(t *testing.T) {
	c := qt.New(t)
	tr := New[int]()
	tr.Insert(1)
	root := tr.loadRoot()

	tr.lowContentionJoin(root)

	c.Assert(tr.loadRoot(), qt.Equals, root)
}
