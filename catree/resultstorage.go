package catree

import (
	"cmp"

	"github.com/rogpeppe/catree/gatomic"
	"github.com/rogpeppe/catree/iset"
)

// resultValue wraps the merged snapshot a range query publishes, so that a
// nil *resultValue can stand for ResultStorage.result's NOT_SET state and a
// non-nil one is unambiguously a committed result (including the valid
// empty set).
type resultValue[K cmp.Ordered] struct {
	set iset.Set[K]
}

// resultStorage is the ResultStorage of spec.md §3: one per in-flight range
// query, shared by every base node the query tags as Range so that any
// thread can observe and help complete it.
type resultStorage[K cmp.Ordered] struct {
	result          *resultValue[K] // atomic; nil == NOT_SET
	moreThanOneBase gatomic.Bool
}

func (s *resultStorage[K]) loadResult() (iset.Set[K], bool) {
	v := gatomic.LoadPointer(&s.result)
	if v == nil {
		return iset.Set[K]{}, false
	}
	return v.set, true
}
