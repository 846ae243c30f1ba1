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

// Package stree promotes the flat parse tree of a language front end into
// the layered semantic tree the matchers operate on. The transformation is
// governed entirely by the language object: splicing dissolves grouping
// nodes that add no value, numbered flattening passes collapse deeper
// levels, satellites and value children get classified, and layer breaks
// bound the text that internal labels aggregate.
package stree

import (
	"errors"
	"strings"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// _maxFlatteningLevel is the deepest flattening level; one pass runs for
// each level from 0 up to and including it, and deeper levels collapse
// more aggressively.
const _maxFlatteningLevel = 3

// ErrParseFailed is returned when the builder reports a failed parse; no
// layering or matching stage runs in that case.
var ErrParseFailed = errors.New("parse failed")

// Build promotes the parse tree owned by the builder into a semantic tree
// shaped by the language. An empty parse yields a tree without a root.
func Build(b *parser.Builder, l lang.Language) (*tree.Tree, error) {
	if b.HasFailed() {
		return nil, ErrParseFailed
	}

	t := tree.New()
	if b.Root() == nil {
		return t, nil
	}

	root := convert(t, b.Root(), l)
	for level := 0; level <= _maxFlatteningLevel; level++ {
		flatten(root, l, level)
	}
	relabel(root, l)
	t.SetRoot(root)
	return t, nil
}

// BuildFine promotes the parse tree without any layering: no splicing, no
// flattening. The result mirrors the grammar exactly and is used by the
// fine-only mode.
func BuildFine(b *parser.Builder, l lang.Language) (*tree.Tree, error) {
	if b.HasFailed() {
		return nil, ErrParseFailed
	}

	t := tree.New()
	if b.Root() == nil {
		return t, nil
	}

	root := convertFine(t, b.Root(), l)
	relabel(root, l)
	t.SetRoot(root)
	return t, nil
}

// convert transforms a parse node into a semantic node, splicing children
// the language considers valueless grouping and classifying satellites and
// value children on the way.
func convert(t *tree.Tree, p *parser.PNode, l lang.Language) *tree.Node {
	n := newNode(t, p, l)

	children := spliceChildren(p, l)
	for _, child := range children {
		cn := convert(t, child, l)
		if l.IsValueNode(cn.Stype) && !n.HasValue() {
			n.ValueChild = len(n.Children)
		}
		n.Children = append(n.Children, cn)
	}
	return n
}

// convertFine transforms a parse node one-to-one.
func convertFine(t *tree.Tree, p *parser.PNode, l lang.Language) *tree.Node {
	n := newNode(t, p, l)
	for _, child := range p.Children {
		cn := convertFine(t, child, l)
		if l.IsValueNode(cn.Stype) && !n.HasValue() {
			n.ValueChild = len(n.Children)
		}
		n.Children = append(n.Children, cn)
	}
	return n
}

// newNode allocates a semantic node mirroring a parse node.
func newNode(t *tree.Tree, p *parser.PNode, l lang.Language) *tree.Node {
	n := t.MakeNode()
	n.Spelling = spellingOf(p)
	n.Label = p.Label
	if l.ShouldDropLeadingWS(p.Stype) {
		n.Label = dropLeadingWS(n.Label)
	}
	n.Line = p.Line
	n.Col = p.Col
	n.Stype = p.Stype
	if len(p.Children) == 0 {
		n.Type = l.MapToken(p.Token)
	} else {
		n.Type = tree.Virtual
	}
	n.Satellite = l.IsSatellite(p.Stype)
	return n
}

// spliceChildren flattens valueless grouping children into their parent,
// repeating until no child asks to be spliced.
func spliceChildren(p *parser.PNode, l lang.Language) []*parser.PNode {
	children := p.Children
	for {
		spliced := false
		var next []*parser.PNode
		for _, child := range children {
			if len(child.Children) > 0 && l.ShouldSplice(p.Stype, child) {
				next = append(next, child.Children...)
				spliced = true
			} else {
				next = append(next, child)
			}
		}
		children = next
		if !spliced {
			return children
		}
	}
}

// flatten runs one numbered flattening pass, dissolving children the
// language allows to collapse on this level. Nodes with fixed structure
// keep their children where the schema puts them.
func flatten(node *tree.Node, l lang.Language, level int) {
	if l.HasFixedStructure(node) {
		for _, child := range node.Children {
			flatten(child, l, level)
		}
		return
	}

	var next []*tree.Node
	changed := false
	for _, child := range node.Children {
		if len(child.Children) > 0 && l.CanBeFlattened(node, child, level) {
			next = append(next, child.Children...)
			changed = true
		} else {
			next = append(next, child)
		}
	}
	if changed {
		node.Children = next
		// a dissolved value child invalidates the recorded index
		node.ValueChild = -1
		for i, child := range node.Children {
			if l.IsValueNode(child.Stype) {
				node.ValueChild = i
				break
			}
		}
	}
	for _, child := range node.Children {
		flatten(child, l, level)
	}
}

// relabel assigns labels to internal nodes by aggregating the leaf text of
// their subtrees. Layer breaks bound the aggregation so that matching of
// an outer layer is not dominated by the text of the layer below.
func relabel(node *tree.Node, l lang.Language) string {
	if len(node.Children) == 0 {
		return node.Label
	}

	for _, child := range node.Children {
		relabel(child, l)
	}

	var parts []string
	for _, child := range node.Children {
		if child.Satellite {
			continue
		}
		if l.IsLayerBreak(child.Stype) {
			continue
		}
		if child.Label != "" {
			parts = append(parts, child.Label)
		}
	}
	if node.Label == "" {
		node.Label = strings.Join(parts, " ")
	}
	return node.Label
}

// spellingOf returns the spelling of a parse node, defaulting to its
// label.
func spellingOf(p *parser.PNode) string {
	if p.Spelling != "" {
		return p.Spelling
	}
	return p.Label
}

// dropLeadingWS trims leading whitespace of every line of a label.
func dropLeadingWS(label string) string {
	lines := strings.Split(label, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, " \t")
	}
	return strings.Join(lines, "\n")
}
