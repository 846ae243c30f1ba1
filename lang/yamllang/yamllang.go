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

// Package yamllang is the YAML language front end. The yaml.v3 node tree
// already carries line and column per node, which maps directly onto the
// parse-tree contract: mappings become declaration pairs keyed by their
// value child, sequences become initializer lists.
package yamllang

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// Token identifiers of the YAML token set.
const (
	_tokenNone = iota
	_tokenScalar
	_tokenKey
	_tokenAnchor
)

// Language is the YAML front end.
type Language struct {
	lang.Base
}

func init() {
	lang.Register(Language{})
}

// Name returns the name of the language.
func (Language) Name() string {
	return "yaml"
}

// Extensions returns the file suffixes this language claims.
func (Language) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// MapToken maps a YAML token identifier to a token category.
func (Language) MapToken(token int) tree.Type {
	switch token {
	case _tokenScalar:
		return tree.StrConstant
	case _tokenKey:
		return tree.Identifier
	case _tokenAnchor:
		return tree.Identifier
	}
	return tree.Virtual
}

// IsValueNode recognizes mapping keys as carrying the identity of their
// pair.
func (Language) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

// Parse parses YAML contents into a parse tree; multi-document streams
// become siblings under the root.
func (Language) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	dec := yaml.NewDecoder(bytes.NewReader(contents))

	b := parser.NewBuilder()
	var docs []*parser.PNode
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q: %v", fileName, err)
		}
		docs = append(docs, transform(b, &doc))
	}

	b.SetRoot(b.AddNode(docs, tree.STranslationUnit))
	return b, nil
}

// transform turns one yaml node into a parse node.
func transform(b *parser.Builder, n *yaml.Node) *parser.PNode {
	switch n.Kind {
	case yaml.DocumentNode:
		var children []*parser.PNode
		for _, c := range n.Content {
			children = append(children, transform(b, c))
		}
		return b.AddNode(children, tree.SStatements)
	case yaml.MappingNode:
		var pairs []*parser.PNode
		for i := 0; i+1 < len(n.Content); i += 2 {
			pairs = append(pairs, pairNode(b, n.Content[i], n.Content[i+1]))
		}
		return b.AddNode(pairs, tree.SInitializerList)
	case yaml.SequenceNode:
		var elems []*parser.PNode
		for _, c := range n.Content {
			elem := b.AddNode([]*parser.PNode{transform(b, c)}, tree.SInitializerElement)
			elems = append(elems, elem)
		}
		return b.AddNode(elems, tree.SInitializerList)
	case yaml.AliasNode:
		return b.AddLeaf("*"+n.Value, n.Line, n.Column, _tokenAnchor, tree.SNone)
	default: // scalars
		return b.AddLeaf(n.Value, n.Line, n.Column, _tokenScalar, tree.SNone)
	}
}

// pairNode groups a mapping key and its value into a declaration whose
// key is the declarator.
func pairNode(b *parser.Builder, key, value *yaml.Node) *parser.PNode {
	k := b.AddLeaf(key.Value, key.Line, key.Column, _tokenKey, tree.SDeclarator)
	v := transform(b, value)
	return b.AddNode([]*parser.PNode{k, v}, tree.SDeclaration)
}
