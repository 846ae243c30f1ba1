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

package starlark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"syndiff/tree"
)

const _sampleStar = `def greet(name):
    return "hello " + name

value = greet("world")
`

func TestParse(t *testing.T) {
	l := Language{}

	b, err := l.Parse([]byte(_sampleStar), "sample.star")
	require.NoError(t, err)

	root := b.Root()
	require.NotNil(t, root)
	require.Equal(t, tree.STranslationUnit, root.Stype)
	require.Len(t, root.Children, 2)

	def := root.Children[0]
	require.Equal(t, tree.SFunctionDefinition, def.Stype)
	require.Equal(t, "def", def.Children[0].Label)
	require.Equal(t, "greet", def.Children[1].Label)
	require.Equal(t, tree.SDeclarator, def.Children[1].Stype)
	require.Equal(t, tree.SParameterList, def.Children[2].Stype)
	require.Equal(t, tree.SCompoundStatement, def.Children[3].Stype)

	ret := def.Children[3].Children[0]
	require.Equal(t, tree.SReturnValueStmt, ret.Stype)
	require.Equal(t, "return", ret.Children[0].Label)
	require.Equal(t, 2, ret.Children[0].Line)

	assign := root.Children[1]
	require.Equal(t, tree.SAssignmentExpr, assign.Stype)
	require.Equal(t, "value", assign.Children[0].Label)
	require.Equal(t, "=", assign.Children[1].Label)
}

func TestParseError(t *testing.T) {
	l := Language{}
	_, err := l.Parse([]byte("def broken(:\n"), "bad.star")
	require.Error(t, err)
}

func TestBinaryClassification(t *testing.T) {
	require.Equal(t, tree.SComparisonExpr, binaryStype("=="))
	require.Equal(t, tree.SAdditiveExpr, binaryStype("+"))
	require.Equal(t, tree.SExpression, binaryStype("*"))
	require.Equal(t, _tokenComparison, opToken("<"))
	require.Equal(t, _tokenLogical, opToken("and"))
	require.Equal(t, _tokenOperator, opToken("%"))
}
