package catree

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/rogpeppe/catree/iset"
)

func demoRoot() *node[int] {
	return DemoTopology().build(nil)
}

func TestFindBaseNode(t *testing.T) {
	c := qt.New(t)
	root := demoRoot()
	c.Assert(findBaseNode(root, 36).data.Lookup(36), qt.IsTrue)
	c.Assert(findBaseNode(root, 76).data.Lookup(76), qt.IsTrue)
	c.Assert(findBaseNode(root, 86).data.Lookup(86), qt.IsTrue)
}

func TestFindBaseStackAndNext(t *testing.T) {
	c := qt.New(t)
	root := demoRoot()
	var s pathStack[int]

	b := findBaseStack(root, 0, &s)
	c.Assert(b.data.Keys(), qt.DeepEquals, []int{35, 36, 37})

	var got [][]int
	for b != nil {
		got = append(got, b.data.Keys())
		b = findNextBaseStack(&s)
	}
	c.Assert(got, qt.DeepEquals, [][]int{
		{35, 36, 37},
		{55, 56, 57},
		{65, 66, 67},
		{75, 76, 77},
		{85, 86, 87},
	})
}

func TestLeftmostRightmost(t *testing.T) {
	c := qt.New(t)
	root := demoRoot()
	c.Assert(leftmost(root).data.Keys(), qt.DeepEquals, []int{35, 36, 37})
	c.Assert(rightmost(root).data.Keys(), qt.DeepEquals, []int{85, 86, 87})
}

func TestParentOf(t *testing.T) {
	c := qt.New(t)
	tr := FromInitialBases[int](DemoTopology())
	root := tr.loadRoot()
	r1 := root.left

	parent, found := parentOf(tr, r1)
	c.Assert(found, qt.IsTrue)
	c.Assert(parent, qt.Equals, root)

	rootParent, found := parentOf(tr, root)
	c.Assert(found, qt.IsTrue)
	c.Assert(rootParent, qt.IsNil)
}

func TestPathStackPushPopTop(t *testing.T) {
	c := qt.New(t)
	var s pathStack[int]
	c.Assert(s.top(), qt.IsNil)
	c.Assert(s.pop(), qt.IsNil)

	a := &node[int]{kind: kindNormal, data: iset.Of(1)}
	b := &node[int]{kind: kindNormal, data: iset.Of(2)}
	s.push(a)
	s.push(b)
	c.Assert(s.top(), qt.Equals, b)
	c.Assert(s.pop(), qt.Equals, b)
	c.Assert(s.pop(), qt.Equals, a)
	c.Assert(s.pop(), qt.IsNil)
}
