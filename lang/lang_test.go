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

package lang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"syndiff/parser"
	"syndiff/tree"
)

// fakeLang is a registry fixture claiming a base name and an extension.
type fakeLang struct {
	Base
}

func (fakeLang) Name() string { return "fake" }

func (fakeLang) Extensions() []string { return []string{"Fakefile", ".fake"} }

func (fakeLang) Parse(contents []byte, fileName string) (*parser.Builder, error) {
	return nil, errors.New("fake language does not parse")
}

func TestRegistry(t *testing.T) {
	Register(fakeLang{})

	testCases := []struct {
		name     string
		fileName string
		found    bool
	}{
		{name: "by base name", fileName: "dir/Fakefile", found: true},
		{name: "by extension", fileName: "dir/data.fake", found: true},
		{name: "unknown", fileName: "dir/data.bin", found: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			l, err := ForFile(tc.fileName)
			if tc.found {
				require.NoError(t, err)
				require.Equal(t, "fake", l.Name())
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestByName(t *testing.T) {
	Register(fakeLang{})

	l, err := ByName("fake")
	require.NoError(t, err)
	require.Equal(t, "fake", l.Name())

	_, err = ByName("nonexistent")
	require.Error(t, err)
}

func TestBaseDefaults(t *testing.T) {
	var b Base

	sep := &tree.Node{Stype: tree.SSeparator, ValueChild: -1}
	unit := &tree.Node{Stype: tree.STranslationUnit, ValueChild: -1}
	stmts := &tree.Node{Stype: tree.SStatements, ValueChild: -1}

	require.True(t, b.IsSatellite(tree.SSeparator))
	require.True(t, b.IsSatellite(tree.SPunctuation))
	require.False(t, b.IsSatellite(tree.SDeclaration))
	require.True(t, b.AlwaysMatches(unit))
	require.True(t, b.IsUnmovable(unit))
	require.True(t, b.IsContainer(stmts))
	require.False(t, b.IsContainer(sep))
	require.False(t, b.IsValueNode(tree.SDeclarator))
	require.True(t, b.ShouldSplice(tree.SStatements, &parser.PNode{Stype: tree.STemporaryContainer}))
	require.Equal(t, tree.Virtual, b.MapToken(42))
}
