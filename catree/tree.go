package catree

import (
	"cmp"

	"github.com/rogpeppe/catree/catlog"
	"github.com/rogpeppe/catree/gatomic"
	"github.com/rogpeppe/catree/iset"
)

// Tree is a lock-free, contention-adapting ordered set of K. The zero value
// is not usable; construct one with New or FromInitialBases.
type Tree[K cmp.Ordered] struct {
	root *node[K] // atomic; never nil
	cfg  Config
	log  catlog.Logger
}

// Option configures a Tree at construction time.
type Option func(*options)

type options struct {
	cfg Config
	log catlog.Logger
}

// WithConfig overrides the contention-statistics constants, replacing
// DefaultConfig entirely.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithHighCont overrides the split threshold.
func WithHighCont(v int32) Option {
	return func(o *options) { o.cfg.HighCont = v }
}

// WithLowCont overrides the join threshold.
func WithLowCont(v int32) Option {
	return func(o *options) { o.cfg.LowCont = v }
}

// WithContContrib overrides the per-contended-CAS stat contribution.
func WithContContrib(v int32) Option {
	return func(o *options) { o.cfg.ContContrib = v }
}

// WithLowContContrib overrides the per-uncontended-CAS stat contribution.
func WithLowContContrib(v int32) Option {
	return func(o *options) { o.cfg.LowContContrib = v }
}

// WithRangeContrib overrides the stat penalty subtracted when updating a
// Range-tagged base whose range query spanned more than one base.
func WithRangeContrib(v int32) Option {
	return func(o *options) { o.cfg.RangeContrib = v }
}

// WithLogger attaches a catlog.Logger; the default discards everything.
func WithLogger(l catlog.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{cfg: DefaultConfig(), log: catlog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns an empty Tree: a single Normal base holding no keys.
func New[K cmp.Ordered](opts ...Option) *Tree[K] {
	o := buildOptions(opts)
	root := &node[K]{kind: kindNormal, data: iset.Of[K]()}
	return &Tree[K]{root: root, cfg: o.cfg, log: o.log}
}

// TopoSpec builds a fixed initial tree topology, for tests and demos that
// want to seed a tree without driving it there through Insert calls. Use
// Base for a leaf and Route for an interior node; pass the result to
// FromInitialBases.
type TopoSpec[K cmp.Ordered] interface {
	build(parent *node[K]) *node[K]
}

type baseSpec[K cmp.Ordered] struct {
	keys []K
}

// Base returns a TopoSpec for a leaf holding exactly keys (order doesn't
// matter; duplicates are collapsed).
func Base[K cmp.Ordered](keys ...K) TopoSpec[K] {
	return baseSpec[K]{keys: keys}
}

func (b baseSpec[K]) build(parent *node[K]) *node[K] {
	return &node[K]{kind: kindNormal, data: iset.Of(b.keys...), parent: parent}
}

type routeSpec[K cmp.Ordered] struct {
	key         K
	left, right TopoSpec[K]
}

// Route returns a TopoSpec for an interior node splitting at key, with left
// holding keys < key and right holding keys >= key.
func Route[K cmp.Ordered](key K, left, right TopoSpec[K]) TopoSpec[K] {
	return routeSpec[K]{key: key, left: left, right: right}
}

func (r routeSpec[K]) build(parent *node[K]) *node[K] {
	n := &node[K]{kind: kindRoute, key: r.key, parent: parent}
	n.valid.Store(true)
	n.left = r.left.build(n)
	n.right = r.right.build(n)
	return n
}

// FromInitialBases constructs a Tree whose shape is exactly spec, rather
// than the single empty base New produces. Grounded on the fixed topology
// lfcas.cpp's test() wires up by hand: a root route at 70 with a left
// subtree routing at 40/60 and a right subtree routing at 80.
func FromInitialBases[K cmp.Ordered](spec TopoSpec[K], opts ...Option) *Tree[K] {
	o := buildOptions(opts)
	root := spec.build(nil)
	return &Tree[K]{root: root, cfg: o.cfg, log: o.log}
}

// DemoTopology reproduces the five-base, four-route fixture the reference
// implementation's test() function wires up: route keys 70/40/80/60 over
// bases {35,36,37} {55,56,57} {65,66,67} {75,76,77} {85,86,87}.
func DemoTopology() TopoSpec[int] {
	return Route(70,
		Route(40,
			Base(35, 36, 37),
			Route(60,
				Base(55, 56, 57),
				Base(65, 66, 67),
			),
		),
		Route(80,
			Base(75, 76, 77),
			Base(85, 86, 87),
		),
	)
}

// loadRoot loads the current root, for callers (tests, range.go) outside this
// file that need direct access without exporting the field.
func (t *Tree[K]) loadRoot() *node[K] {
	return gatomic.LoadPointer(&t.root)
}
