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

package stree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"syndiff/lang"
	"syndiff/parser"
	"syndiff/tree"
)

// layerLang exercises the layering hooks: expressions flatten away on
// level one, declarators are value nodes, comments keep no leading
// whitespace.
type layerLang struct {
	lang.Base
}

func (layerLang) Name() string { return "layer" }

func (layerLang) Extensions() []string { return nil }

func (layerLang) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	return nil, errors.New("layer language does not parse")
}

func (layerLang) MapToken(token int) tree.Type {
	if token == 1 {
		return tree.Identifier
	}
	return tree.Virtual
}

func (layerLang) IsValueNode(stype tree.SType) bool {
	return stype == tree.SDeclarator
}

func (layerLang) CanBeFlattened(parent, child *tree.Node, level int) bool {
	return level > 0 && child.Stype == tree.SExpression
}

func (layerLang) ShouldDropLeadingWS(stype tree.SType) bool {
	return stype == tree.SComment
}

func TestBuildSplicesTemporaryContainers(t *testing.T) {
	b := parser.NewBuilder()
	inner1 := b.AddLeaf("one", 1, 1, 1, tree.SNone)
	inner2 := b.AddLeaf("two", 1, 5, 1, tree.SNone)
	container := b.AddNode([]*parser.PNode{inner1, inner2}, tree.STemporaryContainer)
	b.SetRoot(b.AddNode([]*parser.PNode{container}, tree.STranslationUnit))

	tr, err := Build(b, layerLang{})
	require.NoError(t, err)

	root := tr.Root()
	require.NotNil(t, root)
	// the container dissolved; its children moved into the root
	require.Len(t, root.Children, 2)
	require.Equal(t, "one", root.Children[0].Label)
	require.Equal(t, "two", root.Children[1].Label)
}

func TestBuildFlattensByLevel(t *testing.T) {
	b := parser.NewBuilder()
	leaf := b.AddLeaf("deep", 1, 1, 1, tree.SNone)
	expr := b.AddNode([]*parser.PNode{leaf}, tree.SExpression)
	stmt := b.AddNode([]*parser.PNode{expr}, tree.SExprStatement)
	b.SetRoot(b.AddNode([]*parser.PNode{stmt}, tree.STranslationUnit))

	tr, err := Build(b, layerLang{})
	require.NoError(t, err)

	stmtNode := tr.Root().Children[0]
	require.Equal(t, tree.SExprStatement, stmtNode.Stype)
	// the expression wrapper flattened away on a later level
	require.Len(t, stmtNode.Children, 1)
	require.Equal(t, "deep", stmtNode.Children[0].Label)
}

func TestBuildFineKeepsShape(t *testing.T) {
	b := parser.NewBuilder()
	leaf := b.AddLeaf("deep", 1, 1, 1, tree.SNone)
	expr := b.AddNode([]*parser.PNode{leaf}, tree.SExpression)
	b.SetRoot(b.AddNode([]*parser.PNode{expr}, tree.STranslationUnit))

	tr, err := BuildFine(b, layerLang{})
	require.NoError(t, err)

	require.Len(t, tr.Root().Children, 1)
	require.Equal(t, tree.SExpression, tr.Root().Children[0].Stype)
}

func TestBuildClassifiesSatellitesAndValues(t *testing.T) {
	b := parser.NewBuilder()
	name := b.AddLeaf("x", 1, 5, 1, tree.SDeclarator)
	semi := b.AddLeaf(";", 1, 6, 0, tree.SSeparator)
	decl := b.AddNode([]*parser.PNode{name, semi}, tree.SDeclaration)
	b.SetRoot(b.AddNode([]*parser.PNode{decl}, tree.STranslationUnit))

	tr, err := Build(b, layerLang{})
	require.NoError(t, err)

	declNode := tr.Root().Children[0]
	require.True(t, declNode.HasValue())
	require.Equal(t, "x", declNode.Value().Label)
	require.True(t, declNode.Children[1].Satellite)
	require.Equal(t, tree.Identifier, declNode.Children[0].Type)
	require.Equal(t, tree.Virtual, declNode.Type)
}

func TestBuildAggregatesInternalLabels(t *testing.T) {
	b := parser.NewBuilder()
	one := b.AddLeaf("alpha", 1, 1, 1, tree.SNone)
	two := b.AddLeaf("beta", 1, 7, 1, tree.SNone)
	semi := b.AddLeaf(";", 1, 11, 0, tree.SSeparator)
	decl := b.AddNode([]*parser.PNode{one, two, semi}, tree.SDeclaration)
	b.SetRoot(b.AddNode([]*parser.PNode{decl}, tree.STranslationUnit))

	tr, err := Build(b, layerLang{})
	require.NoError(t, err)

	// satellites do not contribute to the aggregated label
	require.Equal(t, "alpha beta", tr.Root().Children[0].Label)
}

func TestBuildDropsLeadingWS(t *testing.T) {
	b := parser.NewBuilder()
	comment := b.AddLeaf("  // note\n  // more", 1, 1, 0, tree.SComment)
	b.SetRoot(b.AddNode([]*parser.PNode{comment}, tree.STranslationUnit))

	tr, err := Build(b, layerLang{})
	require.NoError(t, err)

	require.Equal(t, "// note\n// more", tr.Root().Children[0].Label)
}

func TestBuildFailedParse(t *testing.T) {
	b := parser.NewBuilder()
	b.Fail()

	_, err := Build(b, layerLang{})
	require.ErrorIs(t, err, ErrParseFailed)

	_, err = BuildFine(b, layerLang{})
	require.ErrorIs(t, err, ErrParseFailed)
}

func TestBuildEmpty(t *testing.T) {
	tr, err := Build(parser.NewBuilder(), layerLang{})
	require.NoError(t, err)
	require.Nil(t, tr.Root())
}
