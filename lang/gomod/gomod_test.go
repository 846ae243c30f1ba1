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

package gomod

import (
	"testing"

	"github.com/stretchr/testify/require"

	"syndiff/tree"
)

const _sampleGoMod = `module example.com/sample

go 1.20

require (
	example.com/dep v1.0.0
	example.com/other v0.2.1
)
`

func TestParse(t *testing.T) {
	l := Language{}

	b, err := l.Parse([]byte(_sampleGoMod), "go.mod")
	require.NoError(t, err)
	require.False(t, b.HasFailed())

	root := b.Root()
	require.NotNil(t, root)
	require.Equal(t, tree.STranslationUnit, root.Stype)
	// module, go and require statements
	require.Len(t, root.Children, 3)

	module := root.Children[0]
	require.Equal(t, tree.SDeclaration, module.Stype)
	require.Equal(t, "module", module.Children[0].Label)
	require.Equal(t, "example.com/sample", module.Children[1].Label)
	require.Equal(t, tree.SDeclarator, module.Children[1].Stype)
	require.Equal(t, 1, module.Children[0].Line)

	block := root.Children[2]
	require.Equal(t, "require", block.Children[0].Label)
}

func TestParseError(t *testing.T) {
	l := Language{}
	_, err := l.Parse([]byte("module \n\trequire ("), "go.mod")
	require.Error(t, err)
}

func TestMapToken(t *testing.T) {
	l := Language{}
	require.Equal(t, tree.Keyword, l.MapToken(_tokenVerb))
	require.Equal(t, tree.Identifier, l.MapToken(_tokenIdent))
	require.Equal(t, tree.StrConstant, l.MapToken(_tokenString))
	require.Equal(t, tree.Comment, l.MapToken(_tokenComment))
	require.Equal(t, tree.Virtual, l.MapToken(_tokenNone))
}

func TestExtensions(t *testing.T) {
	require.Equal(t, []string{"go.mod"}, Language{}.Extensions())
}
