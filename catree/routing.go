package catree

import (
	"cmp"

	"github.com/rogpeppe/catree/gatomic"
)

// pathStack records the route nodes visited on the way to a base, so that a
// range query can resume a depth-first walk from wherever it left off.
type pathStack[K cmp.Ordered] struct {
	nodes []*node[K]
}

func (s *pathStack[K]) reset() {
	s.nodes = s.nodes[:0]
}

func (s *pathStack[K]) push(n *node[K]) {
	s.nodes = append(s.nodes, n)
}

func (s *pathStack[K]) pop() *node[K] {
	if len(s.nodes) == 0 {
		return nil
	}
	n := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return n
}

func (s *pathStack[K]) top() *node[K] {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[len(s.nodes)-1]
}

func (s *pathStack[K]) replaceTop(n *node[K]) {
	s.nodes[len(s.nodes)-1] = n
}

func (s *pathStack[K]) clone() *pathStack[K] {
	return &pathStack[K]{nodes: append([]*node[K](nil), s.nodes...)}
}

// findBaseNode descends from n routing by i, returning the base reached.
// Wait-free.
func findBaseNode[K cmp.Ordered](n *node[K], i K) *node[K] {
	for n.kind == kindRoute {
		if i < n.key {
			n = gatomic.LoadPointer(&n.left)
		} else {
			n = gatomic.LoadPointer(&n.right)
		}
	}
	return n
}

// findBaseStack is findBaseNode, but resets s and pushes every route node
// visited plus the base finally reached.
func findBaseStack[K cmp.Ordered](n *node[K], i K, s *pathStack[K]) *node[K] {
	s.reset()
	for n.kind == kindRoute {
		s.push(n)
		if i < n.key {
			n = gatomic.LoadPointer(&n.left)
		} else {
			n = gatomic.LoadPointer(&n.right)
		}
	}
	s.push(n)
	return n
}

// leftmostAndStack descends leftmost from n, pushing every route node and
// finally the base reached, and returns that base.
func leftmostAndStack[K cmp.Ordered](n *node[K], s *pathStack[K]) *node[K] {
	for n.kind == kindRoute {
		s.push(n)
		n = gatomic.LoadPointer(&n.left)
	}
	s.push(n)
	return n
}

// leftmost walks left through route nodes until a base is reached.
func leftmost[K cmp.Ordered](n *node[K]) *node[K] {
	for n.kind == kindRoute {
		n = gatomic.LoadPointer(&n.left)
	}
	return n
}

// rightmost walks right through route nodes until a base is reached.
func rightmost[K cmp.Ordered](n *node[K]) *node[K] {
	for n.kind == kindRoute {
		n = gatomic.LoadPointer(&n.right)
	}
	return n
}

// findNextBaseStack advances a range-query traversal to the next base in
// ascending key order, given the stack left by a previous findBaseStack or
// findNextBaseStack call. Returns nil when the stack is exhausted. A route
// node with valid == false is skipped, since its subtree has been spliced
// out by a join.
func findNextBaseStack[K cmp.Ordered](s *pathStack[K]) *node[K] {
	base := s.pop()
	t := s.top()
	if t == nil {
		return nil
	}
	if gatomic.LoadPointer(&t.left) == base {
		return leftmostAndStack(gatomic.LoadPointer(&t.right), s)
	}
	beGreaterThan := t.key
	for t != nil {
		if t.valid.Load() && t.key > beGreaterThan {
			return leftmostAndStack(gatomic.LoadPointer(&t.right), s)
		}
		s.pop()
		t = s.top()
	}
	return nil
}

// parentOf walks from the tree root toward n by key, returning the last
// route visited before reaching n, or (nil, true) if n is the root. If the
// walk terminates at a non-route node that isn't n -- the tree changed
// under the caller -- it returns (nil, false), the NOT_FOUND sentinel of
// spec.md §3.
func parentOf[K cmp.Ordered](t *Tree[K], n *node[K]) (parent *node[K], found bool) {
	var prev *node[K]
	curr := gatomic.LoadPointer(&t.root)
	for curr.kind == kindRoute && curr != n {
		prev = curr
		if n.key < curr.key {
			curr = gatomic.LoadPointer(&curr.left)
		} else {
			curr = gatomic.LoadPointer(&curr.right)
		}
	}
	if curr.kind != kindRoute {
		return nil, false
	}
	return prev, true
}
