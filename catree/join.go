package catree

import (
	"github.com/rogpeppe/catree/catlog"
	"github.com/rogpeppe/catree/gatomic"
	"github.com/rogpeppe/catree/iset"
)

// lowContentionJoin implements spec.md §4.6's dispatcher: a base grown cold
// is merged with its in-order neighbor, whichever side of its parent it
// sits on. A root base has no neighbor and is left alone.
func (t *Tree[K]) lowContentionJoin(b *node[K]) {
	if b.parent == nil {
		return
	}
	if gatomic.LoadPointer(&b.parent.left) == b {
		if m := t.secureJoinLeft(b); m != nil {
			t.completeJoin(m)
		}
	} else if gatomic.LoadPointer(&b.parent.right) == b {
		if m := t.secureJoinRight(b); m != nil {
			t.completeJoin(m)
		}
	}
}

// secureJoinLeft is phase one of a join for a base b that is its parent's
// left child: b's right sibling subtree's leftmost base is its in-order
// neighbor. No other thread can help this phase; any failed step aborts
// without leaving the tree in an inconsistent state.
func (t *Tree[K]) secureJoinLeft(b *node[K]) *node[K] {
	n0 := leftmost(gatomic.LoadPointer(&b.parent.right))
	if !isReplaceable(n0) {
		return nil
	}

	m := deepCopy(b)
	m.kind = kindJoinMain
	prep := preparingNeigh2[K]()
	m.neigh2 = prep

	if !gatomic.CompareAndSwapPointer(&b.parent.left, b, m) {
		return nil
	}

	n1 := deepCopy(n0)
	n1.kind = kindJoinNeighbor
	n1.mainNode = m

	if !tryReplace(t, n0, n1) {
		gatomic.StorePointer(&m.neigh2, abortedNeigh2[K]())
		return nil
	}
	if !gatomic.CompareAndSwapPointer(&m.parent.joinID, nil, m) {
		gatomic.StorePointer(&m.neigh2, abortedNeigh2[K]())
		return nil
	}

	gparent, found := parentOf(t, m.parent)
	if !found || (gparent != nil && !gatomic.CompareAndSwapPointer(&gparent.joinID, nil, m)) {
		gatomic.StorePointer(&m.parent.joinID, nil)
		return nil
	}

	m.gparent = gparent
	m.otherb = gatomic.LoadPointer(&m.parent.right)
	m.neigh1 = n1

	joinedParent := n1.parent
	if m.otherb == n1 {
		joinedParent = gparent
	}
	n2 := deepCopy(n1)
	n2.kind = kindNormal
	n2.parent = joinedParent
	n2.mainNode = m
	n2.data = iset.Join(m.data, n1.data)

	if gatomic.CompareAndSwapPointer(&m.neigh2, prep, committedNeigh2(n2)) {
		return m
	}
	t.abortJoin(m, gparent)
	return nil
}

// secureJoinRight is secureJoinLeft's mirror image for a base that is its
// parent's right child: its in-order neighbor is the rightmost base of the
// left sibling subtree.
func (t *Tree[K]) secureJoinRight(b *node[K]) *node[K] {
	n0 := rightmost(gatomic.LoadPointer(&b.parent.left))
	if !isReplaceable(n0) {
		return nil
	}

	m := deepCopy(b)
	m.kind = kindJoinMain
	prep := preparingNeigh2[K]()
	m.neigh2 = prep

	if !gatomic.CompareAndSwapPointer(&b.parent.right, b, m) {
		return nil
	}

	n1 := deepCopy(n0)
	n1.kind = kindJoinNeighbor
	n1.mainNode = m

	if !tryReplace(t, n0, n1) {
		gatomic.StorePointer(&m.neigh2, abortedNeigh2[K]())
		return nil
	}
	if !gatomic.CompareAndSwapPointer(&m.parent.joinID, nil, m) {
		gatomic.StorePointer(&m.neigh2, abortedNeigh2[K]())
		return nil
	}

	gparent, found := parentOf(t, m.parent)
	if !found || (gparent != nil && !gatomic.CompareAndSwapPointer(&gparent.joinID, nil, m)) {
		gatomic.StorePointer(&m.parent.joinID, nil)
		return nil
	}

	m.gparent = gparent
	m.otherb = gatomic.LoadPointer(&m.parent.left)
	m.neigh1 = n1

	joinedParent := n1.parent
	if m.otherb == n1 {
		joinedParent = gparent
	}
	n2 := deepCopy(n1)
	n2.kind = kindNormal
	n2.parent = joinedParent
	n2.mainNode = m
	n2.data = iset.Join(m.data, n1.data)

	if gatomic.CompareAndSwapPointer(&m.neigh2, prep, committedNeigh2(n2)) {
		return m
	}
	t.abortJoin(m, gparent)
	return nil
}

// abortJoin clears every join id secureJoinLeft/Right had claimed -- both
// m.parent's (claimed at step 4) and gparent's, if any (claimed at step 5)
// -- after losing the race to publish neigh2. Leaving either set would
// permanently block any future join attempt through that route, since
// secureJoinLeft/Right's own join-id CAS expects to find nil.
func (t *Tree[K]) abortJoin(m, gparent *node[K]) {
	gatomic.StorePointer(&m.parent.joinID, nil)
	if gparent != nil {
		gatomic.StorePointer(&gparent.joinID, nil)
	}
}

// completeJoin is phase two: publish the merged node n2 in place of m's
// neighbor, splice m's parent out of the tree in favor of n2 (or, when the
// neighbor lay deeper inside m's sibling subtree, in favor of that subtree,
// which now holds n2), and mark the join done. Idempotent and safely re-run by any thread via
// helpIfNeeded, since a second call observes neigh2 already Done and
// returns immediately.
func (t *Tree[K]) completeJoin(m *node[K]) {
	v := gatomic.LoadPointer(&m.neigh2)
	if v.tag == neigh2Done {
		return
	}
	n2 := v.n2

	tryReplace(t, m.neigh1, n2)
	m.parent.valid.Store(false)

	replacement := n2
	if m.otherb != m.neigh1 {
		replacement = m.otherb
	}

	switch {
	case m.gparent == nil:
		gatomic.CompareAndSwapPointer(&t.root, m.parent, replacement)
	case gatomic.LoadPointer(&m.gparent.left) == m.parent:
		gatomic.CompareAndSwapPointer(&m.gparent.left, m.parent, replacement)
		gatomic.CompareAndSwapPointer(&m.gparent.joinID, m, nil)
	case gatomic.LoadPointer(&m.gparent.right) == m.parent:
		gatomic.CompareAndSwapPointer(&m.gparent.right, m.parent, replacement)
		gatomic.CompareAndSwapPointer(&m.gparent.joinID, m, nil)
	}

	gatomic.StorePointer(&m.neigh2, doneNeigh2[K]())
	t.log.Debug("join", catlog.F("merged_size", n2.data.Len()))
}

