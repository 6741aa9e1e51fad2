package catree

import (
	"cmp"

	"github.com/rogpeppe/catree/gatomic"
)

// tryReplace attempts to CAS b for newB in whichever slot currently holds
// b: the tree root if b has no parent, otherwise whichever of the parent's
// left/right children currently equals b. It reports whether the CAS
// succeeded; failure is benign and left to the caller's retry loop.
func tryReplace[K cmp.Ordered](t *Tree[K], b, newB *node[K]) bool {
	if b.parent == nil {
		return gatomic.CompareAndSwapPointer(&t.root, b, newB)
	}
	if gatomic.LoadPointer(&b.parent.left) == b {
		return gatomic.CompareAndSwapPointer(&b.parent.left, b, newB)
	}
	if gatomic.LoadPointer(&b.parent.right) == b {
		return gatomic.CompareAndSwapPointer(&b.parent.right, b, newB)
	}
	return false
}

// isReplaceable reports whether n can safely be swapped out without
// corrupting an in-flight join or range query. Any other state means n is
// the subject of a protocol whose outcome is still pending; callers must
// call helpIfNeeded instead of retrying directly.
func isReplaceable[K cmp.Ordered](n *node[K]) bool {
	if n == nil {
		return false
	}
	switch n.kind {
	case kindNormal:
		return true
	case kindJoinMain:
		return gatomic.LoadPointer(&n.neigh2).tag == neigh2Aborted
	case kindJoinNeighbor:
		v := gatomic.LoadPointer(&n.mainNode.neigh2)
		return v.tag == neigh2Aborted || v.tag == neigh2Done
	case kindRange:
		_, ok := n.storage.loadResult()
		return ok
	default:
		return false
	}
}
