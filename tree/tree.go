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

// Tree is the owning container of nodes. Nodes are created through the
// arena and released only together with it; code outside this package keeps
// weak *Node links and never frees a node individually.
type Tree struct {
	nodes []*Node
	root  *Node
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// MakeNode allocates a fresh node inside the arena. The node starts out
// with no post-order ID and no value child.
func (t *Tree) MakeNode() *Node {
	n := &Node{PoID: -1, ValueChild: -1}
	t.nodes = append(t.nodes, n)
	return n
}

// SetRoot records the root of the tree. The root must have been created
// through MakeNode of this tree.
func (t *Tree) SetRoot(root *Node) {
	t.root = root
}

// Root returns the root of the tree, nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of nodes owned by the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}
