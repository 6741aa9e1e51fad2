package catree

import "cmp"

// Config holds the tunable contention-statistics constants of spec.md §4.4
// and §6. Use the With* options at construction time to override any of
// them; DefaultConfig returns the spec's defaults.
type Config struct {
	ContContrib    int32
	LowContContrib int32
	RangeContrib   int32
	HighCont       int32
	LowCont        int32
}

// DefaultConfig returns the constants named in spec.md §6.
func DefaultConfig() Config {
	return Config{
		ContContrib:    250,
		LowContContrib: 1,
		RangeContrib:   100,
		HighCont:       1000,
		LowCont:        -1000,
	}
}

// contInfo is the "contention_info" of the reference implementation: what
// do_update observed about its own CAS attempts, or noInfo when a caller
// (adaptIfNeeded) just wants the current stat without nudging it.
type contInfo int8

const (
	contUncontended contInfo = iota
	contContended
	contNoInfo
)

// newStat is the pure stat-update rule of spec.md §4.4.
func newStat[K cmp.Ordered](cfg Config, n *node[K], info contInfo) int32 {
	var rangeSub int32
	if n.kind == kindRange && n.storage.moreThanOneBase.Load() {
		rangeSub = cfg.RangeContrib
	}
	switch {
	case info == contContended && n.stat <= cfg.HighCont:
		return n.stat + cfg.ContContrib - rangeSub
	case info == contUncontended && n.stat >= cfg.LowCont:
		return n.stat - cfg.LowContContrib - rangeSub
	default:
		return n.stat
	}
}

// adaptIfNeeded triggers a split or join when b's contention statistics
// have crossed a threshold, after a successful replacement or range query.
func (t *Tree[K]) adaptIfNeeded(b *node[K]) {
	if !isReplaceable(b) {
		return
	}
	s := newStat(t.cfg, b, contNoInfo)
	switch {
	case s > t.cfg.HighCont:
		t.split(b)
	case s < t.cfg.LowCont:
		t.lowContentionJoin(b)
	}
}
