package catree

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNewStatContendedIncreases(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	n := &node[int]{kind: kindNormal, stat: 0}
	c.Assert(newStat(cfg, n, contContended), qt.Equals, cfg.ContContrib)
}

func TestNewStatUncontendedDecreases(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	n := &node[int]{kind: kindNormal, stat: 0}
	c.Assert(newStat(cfg, n, contUncontended), qt.Equals, -cfg.LowContContrib)
}

func TestNewStatSaturatesAtHighCont(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	n := &node[int]{kind: kindNormal, stat: cfg.HighCont + 1}
	c.Assert(newStat(cfg, n, contContended), qt.Equals, cfg.HighCont+1)
}

func TestNewStatSaturatesAtLowCont(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	n := &node[int]{kind: kindNormal, stat: cfg.LowCont - 1}
	c.Assert(newStat(cfg, n, contUncontended), qt.Equals, cfg.LowCont-1)
}

func TestNewStatRangeNodeSubtractsPenalty(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	st := &resultStorage[int]{}
	st.moreThanOneBase.Store(true)
	n := &node[int]{kind: kindRange, stat: 0, storage: st}
	c.Assert(newStat(cfg, n, contContended), qt.Equals, cfg.ContContrib-cfg.RangeContrib)
}

func TestAdaptIfNeededIgnoresUnreplaceable(t *testing.T) {
	c := qt.New(t)
	tr := New[int](WithHighCont(1))
	n := &node[int]{kind: kindJoinMain, stat: 1000, neigh2: preparingNeigh2[int]()}
	before := tr.loadRoot()
	tr.adaptIfNeeded(n)
	c.Assert(tr.loadRoot(), qt.Equals, before)
}
