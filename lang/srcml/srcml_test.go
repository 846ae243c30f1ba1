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

package srcml

import (
	"testing"

	"github.com/stretchr/testify/require"

	"syndiff/parser"
	"syndiff/tree"
)

// _sampleSrcml is srcml output for "int x ;" followed by a call on the
// next line.
const _sampleSrcml = `<unit><decl_stmt><decl><type><name>int</name></type> <name>x</name></decl> ;</decl_stmt>
<expr_stmt><expr><call><name>f</name> ( )</call></expr> ;</expr_stmt></unit>`

func TestParse(t *testing.T) {
	l := Language{}

	b, err := l.Parse([]byte(_sampleSrcml), "sample.xml")
	require.NoError(t, err)

	root := b.Root()
	require.NotNil(t, root)
	require.Equal(t, tree.STranslationUnit, root.Stype)

	var leaves []*parser.PNode
	var collect func(n *parser.PNode)
	collect = func(n *parser.PNode) {
		if len(n.Children) == 0 {
			leaves = append(leaves, n)
			return
		}
		for _, child := range n.Children {
			collect(child)
		}
	}
	collect(root)

	labels := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		labels = append(labels, leaf.Label)
	}
	require.Equal(t, []string{"int", "x", ";", "f", "(", ")", ";"}, labels)

	// cursor positions recover the original layout
	require.Equal(t, 1, leaves[0].Line)
	require.Equal(t, 1, leaves[0].Col)
	require.Equal(t, 1, leaves[1].Line)
	require.Equal(t, 5, leaves[1].Col)
	require.Equal(t, 2, leaves[3].Line, "the call starts on the second line")

	require.Equal(t, tree.SSeparator, leaves[2].Stype)
	require.Equal(t, tree.SPunctuation, leaves[4].Stype)
}

func TestDetermineToken(t *testing.T) {
	testCases := []struct {
		word     string
		tag      string
		expected int
	}{
		{word: "int", tag: "name", expected: _tokenCoreType},
		{word: "while", tag: "name", expected: _tokenKeyword},
		{word: "(", tag: "call", expected: _tokenLeftBracket},
		{word: "]", tag: "expr", expected: _tokenRightBracket},
		{word: "==", tag: "expr", expected: _tokenComparison},
		{word: "&&", tag: "expr", expected: _tokenLogical},
		{word: "+=", tag: "expr", expected: _tokenAssignment},
		{word: "+", tag: "expr", expected: _tokenOperator},
		{word: "\"str\"", tag: "expr", expected: _tokenString},
		{word: "'c'", tag: "expr", expected: _tokenChar},
		{word: "42", tag: "expr", expected: _tokenNumber},
		{word: "size_t", tag: "type", expected: _tokenUserType},
		{word: "f", tag: "call", expected: _tokenFunction},
		{word: "x", tag: "expr", expected: _tokenIdent},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.word, func(t *testing.T) {
			require.Equal(t, tc.expected, determineToken(tc.word, tc.tag))
		})
	}
}

func TestParseComment(t *testing.T) {
	l := Language{}
	b, err := l.Parse([]byte(`<unit><comment type="line">// note</comment></unit>`), "c.xml")
	require.NoError(t, err)

	root := b.Root()
	require.Len(t, root.Children, 1)
	comment := root.Children[0]
	require.Equal(t, tree.SComment, comment.Stype)
	require.Empty(t, comment.Children)
	require.Equal(t, "// note", comment.Label)
}
