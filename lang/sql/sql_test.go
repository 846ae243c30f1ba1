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

package sql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"syndiff/tree"
)

func TestParseSelect(t *testing.T) {
	l := Language{}

	b, err := l.Parse([]byte("select id, name from users where id = 1"), "q.sql")
	require.NoError(t, err)

	root := b.Root()
	require.NotNil(t, root)
	require.Equal(t, tree.STranslationUnit, root.Stype)
	require.Len(t, root.Children, 1)

	stmt := root.Children[0]
	require.Equal(t, tree.SExprStatement, stmt.Stype)
	require.Equal(t, "select", stmt.Children[0].Label)
	require.Equal(t, 1, stmt.Children[0].Line)
	require.Equal(t, 1, stmt.Children[0].Col)

	exprs := stmt.Children[1]
	require.Equal(t, tree.SArgumentList, exprs.Stype)
	require.Len(t, exprs.Children, 2)
	require.Equal(t, "id", exprs.Children[0].Label)

	require.Equal(t, "from", stmt.Children[2].Label)
	tables := stmt.Children[3]
	require.Equal(t, tree.SDeclarator, tables.Children[0].Stype)
	require.Equal(t, "users", tables.Children[0].Label)
}

func TestParseMultipleStatements(t *testing.T) {
	l := Language{}

	b, err := l.Parse([]byte("select a from t; delete from t where a = 2;"), "q.sql")
	require.NoError(t, err)
	require.Len(t, b.Root().Children, 2)

	// each statement lands on its own canonical line
	first := b.Root().Children[0].Children[0]
	second := b.Root().Children[1].Children[0]
	require.Equal(t, 1, first.Line)
	require.Equal(t, 2, second.Line)
	require.Equal(t, "delete from", second.Label)
}

func TestParseError(t *testing.T) {
	l := Language{}
	_, err := l.Parse([]byte("selec t borken"), "q.sql")
	require.Error(t, err)
}
