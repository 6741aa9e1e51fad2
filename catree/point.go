package catree

import (
	"github.com/rogpeppe/catree/gatomic"
	"github.com/rogpeppe/catree/iset"
)

// Insert adds i to the set, returning true once i is a member of the set.
func (t *Tree[K]) Insert(i K) bool {
	return t.doUpdate(i, func(s iset.Set[K], k K) (iset.Set[K], bool) {
		return s.Insert(k)
	})
}

// Remove removes i from the set, returning whether i had been a member.
func (t *Tree[K]) Remove(i K) bool {
	return t.doUpdate(i, func(s iset.Set[K], k K) (iset.Set[K], bool) {
		return s.Remove(k)
	})
}

// Lookup reports whether i is a member of the set, as of the linearization
// point of the single load of the tree's root needed to reach i's base.
// Wait-free.
func (t *Tree[K]) Lookup(i K) bool {
	base := findBaseNode(gatomic.LoadPointer(&t.root), i)
	return base.data.Lookup(i)
}

// doUpdate is the insert/remove protocol of spec.md §4.3: locate the base
// that should hold i, construct its replacement from the current base's
// data, and CAS it in. The successful CAS is the linearization point.
// Losing a CAS or finding the base mid-protocol never blocks progress: the
// loop either helps the other protocol to completion or retries after
// another thread has made progress.
func (t *Tree[K]) doUpdate(i K, op func(iset.Set[K], K) (iset.Set[K], bool)) bool {
	cont := contUncontended
	for {
		base := findBaseNode(gatomic.LoadPointer(&t.root), i)
		if isReplaceable(base) {
			newData, res := op(base.data, i)
			newB := &node[K]{
				kind:   kindNormal,
				data:   newData,
				parent: base.parent,
				stat:   newStat(t.cfg, base, cont),
			}
			if tryReplace(t, base, newB) {
				t.adaptIfNeeded(newB)
				return res
			}
		} else {
			t.helpIfNeeded(base)
		}
		cont = contContended
	}
}
