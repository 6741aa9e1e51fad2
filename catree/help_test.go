package catree

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestHelpIfNeededNilIsNoop(t *testing.T) {
	tr := New[int]()
	tr.helpIfNeeded(nil) // must not panic
}

func TestHelpIfNeededCompletesPreparedJoin(t *testing.T) {
	c := qt.New(t)
	tr := FromInitialBases[int](Route(10, Base(1, 2, 3), Base(11, 12, 13)))

	root := tr.loadRoot()
	m := tr.secureJoinLeft(root.left)
	c.Assert(m, qt.IsNotNil)
	c.Assert(m.kind, qt.Equals, kindJoinMain)

	tr.helpIfNeeded(m)

	c.Assert(tr.loadRoot().kind, qt.Equals, kindNormal)
	for _, k := range []int{1, 2, 3, 11, 12, 13} {
		c.Assert(tr.Lookup(k), qt.IsTrue, qt.Commentf("key %d", k))
	}
}

func TestHelpIfNeededUnwindsThroughJoinNeighbor(t *testing.T) {
	c := qt.New(t)
	tr := FromInitialBases[int](Route(10, Base(1, 2, 3), Base(11, 12, 13)))

	root := tr.loadRoot()
	m := tr.secureJoinLeft(root.left)
	c.Assert(m, qt.IsNotNil)

	// m.neigh1 is the JoinNeighbor node standing in for the old right base;
	// helping via it must redirect to m and complete the same join.
	tr.helpIfNeeded(m.neigh1)

	c.Assert(tr.loadRoot().kind, qt.Equals, kindNormal)
}
