// Package iset implements an immutable ordered set of keys as a sorted,
// allocate-on-write slice. It is the concrete stand-in for the "immutable
// per-base-node ordered collection" that a contention-adapting search tree
// treats as an external collaborator: insert, remove, lookup, range, min,
// max, size, join and split are all pure functions over a value type, never
// mutating the receiver in place.
//
// Any other immutable ordered container with the same operations could take
// this package's place without changing the tree's concurrency protocol.
package iset

import (
	"cmp"
	"slices"
)

// Set is an immutable, sorted, duplicate-free collection of keys. The zero
// value is an empty set.
type Set[K cmp.Ordered] struct {
	items []K
}

// Of returns a new Set containing the given keys, sorted and deduplicated.
// The input slice is not retained.
func Of[K cmp.Ordered](keys ...K) Set[K] {
	items := slices.Clone(keys)
	slices.Sort(items)
	items = slices.Compact(items)
	return Set[K]{items: items}
}

// Len reports the number of keys in s.
func (s Set[K]) Len() int {
	return len(s.items)
}

// Lookup reports whether k is a member of s.
func (s Set[K]) Lookup(k K) bool {
	_, ok := slices.BinarySearch(s.items, k)
	return ok
}

// Insert returns a copy of s with k added, and always reports true: k is a
// member of the result whether or not it was already present (in which case
// s itself is returned). The contract with callers (spec.md §6) is only
// that k is a member of the result.
func (s Set[K]) Insert(k K) (Set[K], bool) {
	pos, ok := slices.BinarySearch(s.items, k)
	if ok {
		return s, true
	}
	items := make([]K, len(s.items)+1)
	copy(items, s.items[:pos])
	items[pos] = k
	copy(items[pos+1:], s.items[pos:])
	return Set[K]{items: items}, true
}

// Remove returns a copy of s with k removed, and reports whether k had been
// present.
func (s Set[K]) Remove(k K) (Set[K], bool) {
	pos, ok := slices.BinarySearch(s.items, k)
	if !ok {
		return s, false
	}
	items := make([]K, len(s.items)-1)
	copy(items, s.items[:pos])
	copy(items[pos:], s.items[pos+1:])
	return Set[K]{items: items}, true
}

// Min returns the smallest key in s. It panics if s is empty.
func (s Set[K]) Min() K {
	return s.items[0]
}

// Max returns the largest key in s. It panics if s is empty.
func (s Set[K]) Max() K {
	return s.items[len(s.items)-1]
}

// Keys returns the set's members in ascending order. The returned slice
// aliases the set's backing storage and must not be mutated.
func (s Set[K]) Keys() []K {
	return s.items
}

// Range calls f for every key in [lo, hi], in ascending order, stopping
// early if f returns false.
func (s Set[K]) Range(lo, hi K, f func(K) bool) {
	start, _ := slices.BinarySearch(s.items, lo)
	for _, k := range s.items[start:] {
		if k > hi {
			return
		}
		if !f(k) {
			return
		}
	}
}

// Split partitions s at key into a left set holding every key < key and a
// right set holding every key >= key. Used by the high-contention split
// (spec.md §4.5).
func (s Set[K]) Split(key K) (left, right Set[K]) {
	pos, _ := slices.BinarySearch(s.items, key)
	left = Set[K]{items: slices.Clone(s.items[:pos])}
	right = Set[K]{items: slices.Clone(s.items[pos:])}
	return left, right
}

// Join returns the union of a and b. The sets must be disjoint in key
// range (the low-contention join always merges a base with its in-order
// neighbor, so this never has to reconcile overlapping keys).
func Join[K cmp.Ordered](a, b Set[K]) Set[K] {
	switch {
	case a.Len() == 0:
		return b
	case b.Len() == 0:
		return a
	}
	items := make([]K, 0, a.Len()+b.Len())
	items = append(items, a.items...)
	items = append(items, b.items...)
	slices.Sort(items)
	return Set[K]{items: items}
}
