// Package catree implements a lock-free, contention-adapting ordered set
// keyed by a totally ordered type, after Winblad, Sagonas and Jonsson's
// Contention-Adapting Search Tree (CA-tree). Point operations (Insert,
// Remove, Lookup) and range queries (Query) run concurrently without locks;
// the tree reshapes itself in response to observed contention, splitting hot
// base nodes into finer-grained shards and joining cold ones back together.
//
// The immutable per-base ordered collection is supplied by package iset.
// Memory reclamation is left to the Go garbage collector: a node becomes
// unreachable once the last atomic slot referencing it is overwritten, and
// the collector will not reclaim it while any goroutine still holds a
// reference, which is exactly the guarantee the protocol requires.
package catree

import (
	"cmp"

	"github.com/rogpeppe/catree/gatomic"
	"github.com/rogpeppe/catree/iset"
)

// kind tags the five node variants described by the protocol. All fields
// below are shared by a single struct type rather than modeled as an
// interface, since every mutable slot needs to be addressable for
// gatomic's CAS helpers; an interface value can't be swapped in place.
type kind uint8

const (
	kindRoute kind = iota
	kindNormal
	kindRange
	kindJoinMain
	kindJoinNeighbor
)

func (k kind) String() string {
	switch k {
	case kindRoute:
		return "route"
	case kindNormal:
		return "normal"
	case kindRange:
		return "range"
	case kindJoinMain:
		return "join-main"
	case kindJoinNeighbor:
		return "join-neighbor"
	default:
		return "invalid"
	}
}

// node is the tagged variant over Route, Normal, Range, JoinMain and
// JoinNeighbor. A node is never mutated in place except through the
// handful of fields the protocol names as mutable (left, right, valid and
// joinID on a route; neigh2 on a JoinMain; result and moreThanOneBase on a
// resultStorage). Every other field is set once and read without
// synchronization thereafter. Most are set before the node is published via
// a CAS, relying on the happens-before edge that atomic publication
// provides; a JoinMain's neigh1, gparent and otherb are the exception, set
// by the join's initiator after the node is published and before it
// commits neigh2.
type node[K cmp.Ordered] struct {
	kind kind

	// Route fields.
	key    K
	left   *node[K] // atomic
	right  *node[K] // atomic
	valid  gatomic.Bool
	joinID *node[K] // atomic; nil means unset

	// Normal (base) fields, also present on Range/JoinMain/JoinNeighbor.
	data   iset.Set[K]
	stat   int32
	parent *node[K] // nil iff this is the root

	// Range fields.
	lo, hi  K
	storage *resultStorage[K]

	// JoinMain fields.
	neigh1  *node[K]
	neigh2  *neigh2Value[K] // atomic
	gparent *node[K]        // nil means m.parent is the root
	otherb  *node[K]

	// JoinNeighbor fields.
	mainNode *node[K]
}

// deepCopy allocates a node of the same kind as b with every scalar and
// non-atomic field copied by value. Atomic fields are read once and stored
// into the copy -- can't copy atomics.
func deepCopy[K cmp.Ordered](b *node[K]) *node[K] {
	n := &node[K]{
		kind:     b.kind,
		key:      b.key,
		data:     b.data,
		stat:     b.stat,
		parent:   b.parent,
		lo:       b.lo,
		hi:       b.hi,
		storage:  b.storage,
		neigh1:   b.neigh1,
		gparent:  b.gparent,
		otherb:   b.otherb,
		mainNode: b.mainNode,
	}
	n.left = gatomic.LoadPointer(&b.left)
	n.right = gatomic.LoadPointer(&b.right)
	n.joinID = gatomic.LoadPointer(&b.joinID)
	n.valid.Store(b.valid.Load())
	n.neigh2 = gatomic.LoadPointer(&b.neigh2)
	return n
}
