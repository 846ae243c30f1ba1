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

// Package distill implements heuristic matching of two semantic trees in
// the change-distilling style: cheap, highly-confident leaf matches are
// committed first and the net widens over internal nodes in later phases.
// The whole procedure runs twice; the second pass re-sorts leaf candidates
// with a tie-breaker that sees the parent structure established by the
// first pass.
package distill

import (
	"math"
	"sort"

	"syndiff/dice"
	"syndiff/lang"
	"syndiff/tree"
)

// Thresholds of the matching heuristics.
const (
	// _leafSimilarityMin is the minimum label similarity for a leaf
	// candidate pair.
	_leafSimilarityMin = 0.6
	// _smallSubtreeLeaves bounds the subtree size under which the relaxed
	// overlap threshold applies.
	_smallSubtreeLeaves = 4
	// _overlapRelaxed and _overlapStrict are the leaf-overlap thresholds
	// for small and large subtrees.
	_overlapRelaxed = 0.4
	_overlapStrict  = 0.6
	// _labelOrOverlap rejects internal pairs whose label similarity is
	// below _leafSimilarityMin unless their leaf overlap reaches it.
	_labelOrOverlap = 0.8
	// _extraSimilarityMin is the label-similarity floor of the second
	// internal pass.
	_extraSimilarityMin = 0.5
	// _similarityEps is the window within which two similarities count as
	// a tie.
	_similarityEps = 0.01
)

// match is a candidate pairing of two leaves. common caches the
// common-area score lazily.
type match struct {
	x, y       *tree.Node
	similarity float32
	common     int
}

// distiller carries the state of one matching run.
type distiller struct {
	lang lang.Language

	po1, po2     []*tree.Node
	dice1, dice2 []dice.String
	matches      []match
}

// Trees matches the two trees in place: on return every non-satellite
// node carries a state and matched nodes point at each other through
// Relative.
func Trees(l lang.Language, t1, t2 *tree.Tree) {
	r1, r2 := t1.Root(), t2.Root()
	if r1 == nil || r2 == nil {
		return
	}
	Roots(l, r1, r2)
}

// Roots matches two subtrees in place.
func Roots(l lang.Language, root1, root2 *tree.Node) {
	d := &distiller{
		lang: l,
		po1:  tree.PostOrderAndInit(root1),
		po2:  tree.PostOrderAndInit(root2),
	}

	d.dice1 = make([]dice.String, len(d.po1))
	for i, n := range d.po1 {
		d.dice1[i] = dice.NewString(n.Label)
	}
	d.dice2 = make([]dice.String, len(d.po2))
	for i, n := range d.po2 {
		d.dice2[i] = dice.NewString(n.Label)
	}

	d.collectLeafMatches()

	// First pass: ties among leaf candidates are broken by common area
	// alone, as parent matches do not exist yet.
	sort.SliceStable(d.matches, func(i, j int) bool {
		a, b := &d.matches[i], &d.matches[j]
		if math.Abs(float64(a.similarity-b.similarity)) < _similarityEps {
			return d.commonAreaSize(b) < d.commonAreaSize(a)
		}
		return b.similarity < a.similarity
	})

	d.distillLeafs()
	d.distillInternal()
	d.distillInternalExtra()

	// Second pass: re-sort leaf candidates with the enriched tie-breaker
	// that sees the parent structure established by the first pass, then
	// clear everything and distill again. This converges tie-breaking
	// around globally consistent parent structure and is an invariant of
	// the algorithm, not an optimization.
	sort.SliceStable(d.matches, func(i, j int) bool {
		a, b := &d.matches[i], &d.matches[j]
		if math.Abs(float64(a.similarity-b.similarity)) < _similarityEps {
			commonA := d.commonAreaSize(a)
			commonB := d.commonAreaSize(b)
			if commonA == commonB {
				forA := parentsConsistent(a)
				forB := parentsConsistent(b)
				return forA && !forB
			}
			return commonB < commonA
		}
		return b.similarity < a.similarity
	})

	tree.Clear(root1)
	tree.Clear(root2)

	d.distillLeafs()
	d.distillInternal()
	d.distillInternalExtra()

	for _, x := range d.po1 {
		if x.Relative == nil {
			markNode(x, tree.Deleted)
		}
	}
	for _, y := range d.po2 {
		if y.Relative == nil {
			markNode(y, tree.Inserted)
		}
	}
}

// parentsConsistent reports whether the parents of a candidate pair are
// already matched to each other (two roots count as consistent).
func parentsConsistent(m *match) bool {
	var rel *tree.Node
	if m.x.Parent != nil {
		rel = m.x.Parent.Relative
	}
	return rel == m.y.Parent
}

// canMatch decides whether two nodes are allowed to pair up at all: a
// concrete pair with equal labels always can, interchangeability is cut
// off at the NonInterchangeable watermark and virtual nodes additionally
// require the same structural kind.
func canMatch(x, y *tree.Node) bool {
	xType := tree.Canonize(x.Type)
	yType := tree.Canonize(y.Type)

	if xType != tree.Virtual && xType == yType && x.Label == y.Label {
		return true
	}

	if xType >= tree.NonInterchangeable ||
		yType >= tree.NonInterchangeable ||
		xType != yType {
		return false
	}

	if xType == tree.Virtual && x.Stype != y.Stype {
		return false
	}

	return true
}

// collectLeafMatches generates leaf candidate pairs: every allowed pair
// whose label similarity clears the floor, plus every concrete leaf pair
// regardless of similarity.
func (d *distiller) collectLeafMatches() {
	for _, x := range d.po1 {
		if len(x.Children) != 0 {
			continue
		}
		for _, y := range d.po2 {
			if len(y.Children) != 0 {
				continue
			}
			if !canMatch(x, y) {
				continue
			}

			similarity := d.dice1[x.PoID].Compare(d.dice2[y.PoID])
			if similarity >= _leafSimilarityMin ||
				(x.Type != tree.Virtual && y.Type != tree.Virtual) {
				d.matches = append(d.matches, match{x: x, y: y, similarity: similarity, common: -1})
			}
		}
	}
}

// commonAreaSize scores the context around a candidate pair by walking
// outward from its post-order positions while labels keep matching. Only
// the left walk contributes; see DESIGN.md for why the right walk of the
// original is preserved as a no-op.
func (d *distiller) commonAreaSize(m *match) int {
	if m.common >= 0 {
		return m.common
	}

	size := 1
	i := m.x.PoID - 1
	j := m.y.PoID - 1
	for i >= 0 && j >= 0 && d.po1[i].Label == d.po2[j].Label {
		size++
		i--
		j--
	}

	m.common = size
	return size
}

// distillLeafs commits sorted leaf candidates first-come-first-served.
func (d *distiller) distillLeafs() {
	for i := range d.matches {
		m := &d.matches[i]
		if m.x.Relative != nil || m.y.Relative != nil {
			continue
		}

		m.x.Relative = m.y
		m.y.Relative = m.x

		state := tree.Updated
		if m.similarity == 1 && m.x.Label == m.y.Label {
			state = tree.Unchanged
		}
		m.x.State = state
		m.y.State = state
	}
}

// unmatchedInternal reports whether the node is an internal node still
// without a counterpart.
func unmatchedInternal(n *tree.Node) bool {
	return len(n.Children) != 0 && n.Relative == nil
}

// distillInternal matches internal nodes by a leaf-overlap metric
// combined with label similarity. Containers additionally require their
// parents' values to be related, and always-matching roots pair up
// unconditionally.
func (d *distiller) distillInternal() {
	for _, x := range d.po1 {
		if !unmatchedInternal(x) {
			continue
		}

		for _, y := range d.po2 {
			if !unmatchedInternal(y) || !canMatch(x, y) {
				continue
			}

			var state tree.State
			if d.lang.AlwaysMatches(y) {
				state = tree.Unchanged
			} else if required := d.containerCounterpart(x); required != nil {
				if y.Parent == nil || y.Parent.Value() != required {
					continue
				}
				state = tree.Unchanged
			} else {
				ok, s := d.rateInternal(x, y)
				if !ok {
					continue
				}
				state = s
			}

			markNode(x, state)
			markNode(y, state)
			x.State = state
			y.State = state

			x.Relative = y
			y.Relative = x
			break
		}
	}
}

// containerCounterpart implements the container discipline: when x is a
// container and its parent's value already has a counterpart, x may match
// only the container whose parent's value is exactly that counterpart.
// Returns the required value node, or nil when the discipline does not
// constrain x.
func (d *distiller) containerCounterpart(x *tree.Node) *tree.Node {
	if !d.lang.IsContainer(x) || x.Parent == nil {
		return nil
	}
	val := x.Parent.Value()
	if val == nil || val.Relative == nil {
		return nil
	}
	return val.Relative
}

// rateInternal computes the leaf-overlap metric for an internal pair and
// decides acceptance and state.
func (d *distiller) rateInternal(x, y *tree.Node) (bool, tree.State) {
	xFrom := tree.Lml(x)

	common := 0
	yLeaves := 0
	for i := tree.Lml(y); i < y.PoID; i++ {
		if len(d.po2[i].Children) != 0 {
			continue
		}
		yLeaves++

		if d.po2[i].Parent != nil && d.po2[i].Parent.Relative == nil {
			// Skip children of unmatched internal nodes.
			continue
		}
		if d.po2[i].Relative == nil {
			continue
		}
		if d.po2[i].Relative.PoID >= xFrom && d.po2[i].Relative.PoID < x.PoID {
			common++
		}
	}

	xLeaves := 0
	for i := xFrom; i < x.PoID; i++ {
		if len(d.po1[i].Children) == 0 {
			xLeaves++
		}
	}

	xExtra := tree.CountSatelliteNodes(x)
	yExtra := tree.CountSatelliteNodes(y)
	xLeaves += xExtra
	yLeaves += yExtra
	if xExtra < yExtra {
		common += xExtra
	} else {
		common += yExtra
	}

	t := float32(_overlapStrict)
	if min(xLeaves, yLeaves) <= _smallSubtreeLeaves {
		t = _overlapRelaxed
	}

	similarity2 := float32(common) / float32(max(xLeaves, yLeaves))
	if similarity2 < t {
		return false, tree.Unchanged
	}

	similarity1 := d.dice1[x.PoID].Compare(d.dice2[y.PoID])
	if similarity1 < _leafSimilarityMin && similarity2 < _labelOrOverlap {
		return false, tree.Unchanged
	}

	if similarity1 == 1 && x.Label == y.Label && similarity2 == 1 {
		return true, tree.Unchanged
	}
	return true, tree.Updated
}

// distillInternalExtra is the second internal pass: any remaining
// unmatched internal pair with at least one common leaf and mild label
// similarity is collected, sorted by descending commonality and committed
// in order.
func (d *distiller) distillInternalExtra() {
	type extraMatch struct {
		x, y   *tree.Node
		common int
	}

	var matches []extraMatch

	for _, x := range d.po1 {
		if !unmatchedInternal(x) {
			continue
		}

		for _, y := range d.po2 {
			if !unmatchedInternal(y) || !canMatch(x, y) {
				continue
			}

			xFrom := tree.Lml(x)
			common := 0
			for i := tree.Lml(y); i < y.PoID; i++ {
				if len(d.po2[i].Children) != 0 {
					continue
				}
				if d.po2[i].Relative == nil {
					continue
				}
				if d.po2[i].Relative.PoID >= xFrom && d.po2[i].Relative.PoID < x.PoID {
					common++
				}
			}

			similarity := d.dice1[x.PoID].Compare(d.dice2[y.PoID])
			if common > 0 && similarity >= _extraSimilarityMin {
				matches = append(matches, extraMatch{x: x, y: y, common: common})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[j].common < matches[i].common
	})

	for _, m := range matches {
		if m.x.Relative != nil || m.y.Relative != nil {
			continue
		}
		markNode(m.x, tree.Unchanged)
		markNode(m.y, tree.Unchanged)
		m.x.Relative = m.y
		m.y.Relative = m.x
	}
}

// markNode assigns a state to the node and propagates it to satellite
// children: a satellite follows its parent when it is a structureless
// token, when the parent has a value child, or when the satellite has no
// counterpart of its own. An Updated parent leaves satellites Unchanged.
func markNode(node *tree.Node, state tree.State) {
	node.State = state

	leafState := state
	if state == tree.Updated {
		leafState = tree.Unchanged
	}

	for _, child := range node.Children {
		child.Parent = node
		if !child.Satellite {
			continue
		}
		switch {
		case child.Stype == tree.SNone:
			child.State = leafState
		case node.HasValue():
			child.State = leafState
		case child.Relative == nil:
			child.State = leafState
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
