package catree

import (
	"math/rand"

	"github.com/rogpeppe/catree/gatomic"
	"github.com/rogpeppe/catree/iset"
)

// Query calls visit for every key in [lo, hi], in ascending order, as read
// from a single linearizable snapshot taken across every base whose range
// intersects [lo, hi]. Lock-free: a query that stalls mid-snapshot (the
// goroutine driving it is descheduled) is completed by whichever other
// goroutine next touches one of the bases it has tagged, via
// helpIfNeeded.
func (t *Tree[K]) Query(lo, hi K, visit func(K) bool) {
	result := t.allInRange(lo, hi, nil)
	result.Range(lo, hi, visit)
}

// allInRange is the range-query protocol of spec.md §4.7: walk every base
// that may hold a key in [lo, hi] in ascending order, tagging each as a
// Range node sharing helpS (a fresh resultStorage if this call started the
// query, or one supplied by a caller helping someone else's), then publish
// the union of their data as the query's linearized result.
//
// helpS != nil means this call is itself a help: the caller already owns
// a resultStorage and wants allInRange to drive it (or confirm someone
// else already has) rather than allocate a new one.
func (t *Tree[K]) allInRange(lo, hi K, helpS *resultStorage[K]) iset.Set[K] {
retryFromStart:
	var s pathStack[K]
	b := findBaseStack(t.loadRoot(), lo, &s)

	var mySt *resultStorage[K]
	switch {
	case helpS != nil:
		if b.kind != kindRange || b.storage != helpS {
			res, _ := helpS.loadResult()
			return res
		}
		mySt = helpS
	case isReplaceable(b):
		mySt = &resultStorage[K]{}
		n := deepCopy(b)
		n.kind = kindRange
		n.lo, n.hi = lo, hi
		n.storage = mySt
		if !tryReplace(t, b, n) {
			goto retryFromStart
		}
		s.replaceTop(n)
		b = n
	case b.kind == kindRange && b.hi >= hi:
		return t.allInRange(b.lo, b.hi, b.storage)
	default:
		t.helpIfNeeded(b)
		goto retryFromStart
	}

	var done []*node[K]
findBases:
	for {
		done = append(done, b)
		backup := s.clone()

		if b.data.Len() > 0 && b.data.Max() >= hi {
			break
		}

		for {
			next := findNextBaseStack(&s)
			if next == nil {
				break findBases
			}
			if res, ok := mySt.loadResult(); ok {
				return res
			}
			if next.kind == kindRange && next.storage == mySt {
				b = next
				continue findBases
			}
			if isReplaceable(next) {
				n := deepCopy(next)
				n.kind = kindRange
				n.lo, n.hi = lo, hi
				n.storage = mySt
				if tryReplace(t, next, n) {
					s.replaceTop(n)
					b = n
					continue findBases
				}
				s = *backup.clone()
				continue
			}
			t.helpIfNeeded(next)
			s = *backup.clone()
		}
	}

	res := done[0].data
	for _, n := range done[1:] {
		res = iset.Join(res, n.data)
	}

	if gatomic.CompareAndSwapPointer(&mySt.result, nil, &resultValue[K]{set: res}) {
		mySt.moreThanOneBase.Store(len(done) > 1)
	}

	t.adaptIfNeeded(done[rand.Intn(len(done))])

	final, _ := mySt.loadResult()
	return final
}
