package catree

import "github.com/rogpeppe/catree/catlog"

// split implements the high-contention adaptation of spec.md §4.5: b is
// replaced by a fresh route node whose key is the median of b's keys, with
// two fresh Normal bases as children holding the left (< key) and right
// (>= key) halves. A base driven this hot with 0 or 1 keys is left alone,
// since there is nothing to partition -- the next adaptIfNeeded call after
// further inserts will retry.
//
// The literal worked example in the protocol's own narrative (splitting
// {1..7} at the median 4 into {1,2,3,4} and {5,6,7}) describes an
// inclusive-left boundary that contradicts the routing invariant used
// everywhere else (left child holds keys < route key, right holds keys >=
// route key): a lookup for 4 after that split would route right and miss.
// This implementation follows the invariant, not the narrative: the
// median key becomes the route key and lands in the right half, matching
// iset.Set.Split's left-exclusive, right-inclusive contract.
func (t *Tree[K]) split(b *node[K]) {
	keys := b.data.Keys()
	if len(keys) < 2 {
		return
	}
	mid := len(keys) / 2
	splitKey := keys[mid]
	left, right := b.data.Split(splitKey)

	route := &node[K]{kind: kindRoute, key: splitKey, parent: b.parent}
	route.valid.Store(true)
	leftBase := &node[K]{kind: kindNormal, data: left, parent: route, stat: 0}
	rightBase := &node[K]{kind: kindNormal, data: right, parent: route, stat: 0}
	route.left = leftBase
	route.right = rightBase

	if tryReplace(t, b, route) {
		t.log.Debug("split",
			catlog.F("left_size", left.Len()),
			catlog.F("right_size", right.Len()),
		)
	}
}
