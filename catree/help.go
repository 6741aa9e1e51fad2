package catree

import "github.com/rogpeppe/catree/gatomic"

// helpIfNeeded implements spec.md §4.8: a thread that finds a base node
// mid-protocol, instead of spinning, advances that protocol on the stalled
// thread's behalf. This is what gives the tree its lock-free progress
// guarantee -- no operation can be blocked indefinitely by another
// goroutine being descheduled mid-join or mid-range-query.
func (t *Tree[K]) helpIfNeeded(n *node[K]) {
	if n == nil {
		return
	}
	if n.kind == kindJoinNeighbor {
		n = n.mainNode
	}
	if n.kind == kindJoinMain {
		cur := gatomic.LoadPointer(&n.neigh2)
		switch {
		case cur.tag == neigh2Preparing:
			// The join has not committed yet; abort it rather than wait
			// on its initiator, so the base becomes replaceable again.
			gatomic.CompareAndSwapPointer(&n.neigh2, cur, abortedNeigh2[K]())
		case cur.tag > neigh2Aborted:
			t.completeJoin(n)
		}
		return
	}
	if n.kind == kindRange {
		if _, ok := n.storage.loadResult(); !ok {
			t.allInRange(n.lo, n.hi, n.storage)
		}
	}
}
