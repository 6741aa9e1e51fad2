package catree

import "cmp"

// neigh2Tag distinguishes the three sentinel states a JoinMain's neigh2
// field can hold (Preparing, Aborted, Done) from the fourth, a committed
// real replacement node. Modeling this as {tag, node} behind a single
// pointer keeps the CAS on neigh2 a single word, per the design notes:
// Committed compares greater than Aborted, so "neigh2 > Aborted" is exactly
// the test for "a real n2 has been published".
type neigh2Tag int8

const (
	neigh2Preparing neigh2Tag = iota
	neigh2Aborted
	neigh2Done
	neigh2Committed
)

type neigh2Value[K cmp.Ordered] struct {
	tag neigh2Tag
	n2  *node[K] // non-nil iff tag == neigh2Committed
}

func preparingNeigh2[K cmp.Ordered]() *neigh2Value[K] {
	return &neigh2Value[K]{tag: neigh2Preparing}
}

func abortedNeigh2[K cmp.Ordered]() *neigh2Value[K] {
	return &neigh2Value[K]{tag: neigh2Aborted}
}

func doneNeigh2[K cmp.Ordered]() *neigh2Value[K] {
	return &neigh2Value[K]{tag: neigh2Done}
}

func committedNeigh2[K cmp.Ordered](n2 *node[K]) *neigh2Value[K] {
	return &neigh2Value[K]{tag: neigh2Committed, n2: n2}
}
