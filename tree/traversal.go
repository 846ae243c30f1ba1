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

package tree

// PostOrderAndInit walks the tree in post order skipping satellites,
// clears Relative, re-threads Parent, assigns PoID in visit order and
// returns the visited nodes. A parent's ID always exceeds the IDs of all
// its non-satellite descendants.
func PostOrderAndInit(root *Node) []*Node {
	var v []*Node
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.Satellite {
			return
		}
		n.Relative = nil
		n.Parent = nil
		for _, child := range n.Children {
			visit(child)
			child.Parent = n
		}
		n.PoID = len(v)
		v = append(v, n)
	}
	visit(root)
	return v
}

// PostOrder walks the tree in post order skipping satellites and assigns
// PoID in visit order without touching any other field.
func PostOrder(root *Node) []*Node {
	var v []*Node
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.Satellite {
			return
		}
		for _, child := range n.Children {
			visit(child)
		}
		n.PoID = len(v)
		v = append(v, n)
	}
	visit(root)
	return v
}

// Clear resets Relative and State on every non-satellite node of the
// subtree, preparing it for another matching pass.
func Clear(node *Node) {
	if node.Satellite {
		return
	}
	node.Relative = nil
	node.State = Unchanged
	for _, child := range node.Children {
		Clear(child)
	}
}

// Lml returns the post-order index of the leftmost non-satellite leaf
// descendant of the node: the node's own PoID for a leaf, otherwise the
// leftmost leaf of its first non-satellite child.
func Lml(node *Node) int {
	if len(node.Children) == 0 {
		return node.PoID
	}
	for _, child := range node.Children {
		if !child.Satellite {
			return Lml(child)
		}
	}
	return node.PoID
}

// CountLeaves counts leaves of the subtree. Separator nodes contribute
// nothing regardless of their shape.
func CountLeaves(node *Node) int {
	if node.Stype == SSeparator {
		return 0
	}
	if len(node.Children) == 0 {
		return 1
	}
	count := 0
	for _, child := range node.Children {
		count += CountLeaves(child)
	}
	return count
}

// CountSatelliteNodes counts leaf mass found under satellite subtrees,
// again treating separators as weightless.
func CountSatelliteNodes(node *Node) int {
	if node.Satellite {
		if node.Stype == SSeparator {
			return 0
		}
		return CountLeaves(node)
	}
	count := 0
	for _, child := range node.Children {
		count += CountSatelliteNodes(child)
	}
	return count
}

// MarkAsMoved sets Moved on every node of the subtree. The printer does
// not read the flag.
func MarkAsMoved(node *Node) {
	node.Moved = true
	for _, child := range node.Children {
		MarkAsMoved(child)
	}
}
