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

// Package lang declares the capability set every language front end
// exposes to the layering and matching stages, and a registry that picks a
// front end for a file name. Concrete languages live in sub-packages, one
// per parser library.
package lang

import (
	"fmt"
	"path/filepath"
	"strings"

	"syndiff/parser"
	"syndiff/tree"
)

// Language is the capability set queried by S-tree layering, distillation
// and printing. Implementations are stateless; a single value serves any
// number of parses.
type Language interface {
	// Name returns the name of the language.
	Name() string
	// Extensions returns the file suffixes (with leading dot, or full
	// base names) this language claims.
	Extensions() []string
	// Parse parses source text into a parse tree. A syntax error is
	// reported either through the returned error or through a failed
	// builder; both stop the pipeline.
	Parse(contents []byte, fileName string) (*parser.Builder, error)

	// MapToken maps a language-specific token identifier to a token
	// category.
	MapToken(token int) tree.Type
	// IsTravellingNode reports whether the node has no fixed position
	// within the tree and may be reassociated between internal nodes as
	// long as the post-order of leaves is preserved.
	IsTravellingNode(n *tree.Node) bool
	// HasFixedStructure reports whether children positions of the node
	// form a schema that must not be reordered.
	HasFixedStructure(n *tree.Node) bool
	// CanBeFlattened reports whether the child can be dissolved into its
	// parent on the given flattening level.
	CanBeFlattened(parent, child *tree.Node, level int) bool
	// IsUnmovable reports whether the node must not be considered for a
	// move.
	IsUnmovable(n *tree.Node) bool
	// IsContainer reports whether the node groups siblings on behalf of
	// its parent.
	IsContainer(n *tree.Node) bool
	// IsDiffable reports whether spelling of the node can be diffed
	// word by word.
	IsDiffable(n *tree.Node) bool
	// AlwaysMatches reports whether the node matches any node of the
	// same structural kind unconditionally (e.g. the file root).
	AlwaysMatches(n *tree.Node) bool
	// ShouldSplice reports whether the child should be replaced in its
	// parent by the child's own children.
	ShouldSplice(parent tree.SType, child *parser.PNode) bool
	// IsValueNode reports whether nodes of this kind carry the identity
	// of their parent (e.g. the identifier of a declarator).
	IsValueNode(stype tree.SType) bool
	// IsLayerBreak reports whether the subtree of nodes of this kind
	// belongs one level deeper.
	IsLayerBreak(stype tree.SType) bool
	// ShouldDropLeadingWS reports whether leading whitespace of the
	// label should be dropped for comparison.
	ShouldDropLeadingWS(stype tree.SType) bool
	// IsSatellite reports whether nodes of this kind are decorative and
	// secondary for comparison.
	IsSatellite(stype tree.SType) bool
	// StypeToString stringifies a structural kind for dumps.
	StypeToString(stype tree.SType) string
}

// registry holds all registered languages in registration order.
var _registry []Language

// Register adds a language to the registry. Languages register themselves
// from init functions of their packages.
func Register(l Language) {
	_registry = append(_registry, l)
}

// Languages returns all registered languages.
func Languages() []Language {
	return _registry
}

// ForFile picks the language claiming the file name, trying full base
// names first and extensions second.
func ForFile(fileName string) (Language, error) {
	base := filepath.Base(fileName)
	ext := filepath.Ext(fileName)
	for _, l := range _registry {
		for _, e := range l.Extensions() {
			if e == base {
				return l, nil
			}
		}
	}
	for _, l := range _registry {
		for _, e := range l.Extensions() {
			if strings.HasPrefix(e, ".") && e == ext {
				return l, nil
			}
		}
	}
	return nil, fmt.Errorf("no language registered for %q", fileName)
}

// ByName returns the language with the given name.
func ByName(name string) (Language, error) {
	for _, l := range _registry {
		if l.Name() == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("unknown language %q", name)
}
