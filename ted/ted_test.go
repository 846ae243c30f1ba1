//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ted

import (
	"testing"

	"github.com/stretchr/testify/require"

	"syndiff/tree"
)

// flat builds a depth-1 tree: a root labeled rootLabel over leaf
// children.
func flat(t *tree.Tree, rootLabel string, leaves ...string) *tree.Node {
	root := t.MakeNode()
	root.Label = rootLabel
	for _, l := range leaves {
		n := t.MakeNode()
		n.Label = l
		root.Children = append(root.Children, n)
	}
	t.SetRoot(root)
	return root
}

func TestDistanceFlat(t *testing.T) {
	t1 := tree.New()
	r1 := flat(t1, "r", "a", "b", "c")
	t2 := tree.New()
	r2 := flat(t2, "r", "a", "c", "d")

	cost := Distance(r1, r2)
	require.Equal(t, 2, cost)

	byLabel := func(root *tree.Node, label string) *tree.Node {
		for _, child := range root.Children {
			if child.Label == label {
				return child
			}
		}
		return nil
	}

	require.Equal(t, tree.Deleted, byLabel(r1, "b").State)
	require.Equal(t, tree.Inserted, byLabel(r2, "d").State)
	require.Equal(t, tree.Unchanged, byLabel(r1, "a").State)
	require.Equal(t, tree.Unchanged, byLabel(r1, "c").State)
	require.Equal(t, tree.Unchanged, r1.State)
	require.Equal(t, tree.Unchanged, r2.State)
}

func TestDistanceIdentity(t *testing.T) {
	build := func() (*tree.Tree, *tree.Node) {
		tr := tree.New()
		inner := tr.MakeNode()
		inner.Label = "inner"
		for _, l := range []string{"p", "q"} {
			n := tr.MakeNode()
			n.Label = l
			inner.Children = append(inner.Children, n)
		}
		root := tr.MakeNode()
		root.Label = "root"
		side := tr.MakeNode()
		side.Label = "side"
		root.Children = []*tree.Node{inner, side}
		tr.SetRoot(root)
		return tr, root
	}

	_, r1 := build()
	_, r2 := build()

	require.Equal(t, 0, Distance(r1, r2))
	for _, n := range tree.PostOrder(r1) {
		require.Equal(t, tree.Unchanged, n.State)
	}
}

func TestDistanceSymmetryAndBound(t *testing.T) {
	build1 := func() (*tree.Tree, *tree.Node) {
		tr := tree.New()
		return tr, flat(tr, "r", "a", "b", "c")
	}
	build2 := func() (*tree.Tree, *tree.Node) {
		tr := tree.New()
		return tr, flat(tr, "r", "x", "y")
	}

	_, a1 := build1()
	_, b1 := build2()
	ab := Distance(a1, b1)

	_, a2 := build1()
	_, b2 := build2()
	ba := Distance(b2, a2)

	require.Equal(t, ab, ba, "edit distance must be symmetric")
	require.LessOrEqual(t, ab, 4, "distance must not exceed the larger tree")
}

func TestDistanceRename(t *testing.T) {
	t1 := tree.New()
	r1 := flat(t1, "r", "old")
	t2 := tree.New()
	r2 := flat(t2, "r", "new")

	require.Equal(t, 1, Distance(r1, r2))

	leaf1 := r1.Children[0]
	leaf2 := r2.Children[0]
	require.Equal(t, tree.Updated, leaf1.State)
	require.Equal(t, tree.Updated, leaf2.State)
	require.Same(t, leaf2, leaf1.Buddy)
	require.Same(t, leaf1, leaf2.Buddy)
}

func TestDistanceSkipsSatellites(t *testing.T) {
	build := func(extra bool) (*tree.Tree, *tree.Node) {
		tr := tree.New()
		root := flat(tr, "r", "a", "b")
		if extra {
			sat := tr.MakeNode()
			sat.Label = ";"
			sat.Satellite = true
			root.Children = append(root.Children, sat)
		}
		return tr, root
	}

	_, r1 := build(false)
	_, r2 := build(true)
	require.Equal(t, 0, Distance(r1, r2), "satellites must not contribute to the distance")
}

func TestKeyroots(t *testing.T) {
	tr := tree.New()
	inner := tr.MakeNode()
	inner.Label = "inner"
	for _, l := range []string{"p", "q"} {
		n := tr.MakeNode()
		n.Label = l
		inner.Children = append(inner.Children, n)
	}
	side := tr.MakeNode()
	side.Label = "side"
	root := tr.MakeNode()
	root.Label = "root"
	root.Children = []*tree.Node{inner, side}
	tr.SetRoot(root)

	po := tree.PostOrder(root)
	l := lmld(root, len(po))

	// p:0 q:1 inner:2 side:3 root:4
	require.Equal(t, []int{0, 1, 0, 3, 0}, l)
	// keyroots: q, side, root; p and inner share root's leftmost leaf,
	// which the right-to-left scan sees first at root
	require.Equal(t, []int{1, 3, 4}, makeKr(po, l))
}
