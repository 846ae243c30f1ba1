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

package differ

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	_ "syndiff/lang/gomod"
	_ "syndiff/lang/yamllang"
)

// writeFile creates a file inside the test directory.
func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDiffFilesEqual(t *testing.T) {
	dir := t.TempDir()
	contents := "name: sample\nvalue: 1\n"
	a := writeFile(t, dir, "a/config.yaml", contents)
	b := writeFile(t, dir, "b/config.yaml", contents)

	var sb strings.Builder
	res, err := DiffFiles(a, b, &sb, Options{})
	require.NoError(t, err)
	require.True(t, res.Equal)
	require.Contains(t, sb.String(), " || ")
	require.NotContains(t, sb.String(), " <> ")
}

func TestDiffFilesDifferent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a/go.mod", "module example.com/one\n\ngo 1.20\n")
	b := writeFile(t, dir, "b/go.mod", "module example.com/two\n\ngo 1.20\n")

	var sb strings.Builder
	res, err := DiffFiles(a, b, &sb, Options{})
	require.NoError(t, err)
	require.False(t, res.Equal)
	require.Contains(t, sb.String(), " <> ")
}

func TestDiffFilesTED(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a/config.yaml", "count: 1\n")
	b := writeFile(t, dir, "b/config.yaml", "count: 2\n")

	var sb strings.Builder
	res, err := DiffFiles(a, b, &sb, Options{UseTED: true})
	require.NoError(t, err)
	require.False(t, res.Equal)
	require.Greater(t, res.Cost, 0)

	var same strings.Builder
	res, err = DiffFiles(a, a, &same, Options{UseTED: true})
	require.NoError(t, err)
	require.True(t, res.Equal)
	require.Equal(t, 0, res.Cost)
}

func TestDiffFilesUnknownLanguage(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a/readme.unknown", "text")
	b := writeFile(t, dir, "b/readme.unknown", "text")

	_, err := DiffFiles(a, b, &strings.Builder{}, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no language registered")
}

func TestDiffFilesAggregatesErrors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "missing-a.yaml")
	b := filepath.Join(dir, "missing-b.yaml")

	_, err := DiffFiles(a, b, &strings.Builder{}, Options{})
	require.Error(t, err)
	// both failures surface, not just the first
	require.Contains(t, err.Error(), "missing-a.yaml")
	require.Contains(t, err.Error(), "missing-b.yaml")
}

func TestBuildTreeFromFileForcedLang(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.txt", "key: value\n")

	_, _, err := BuildTreeFromFile(path, Options{})
	require.Error(t, err)

	tr, l, err := BuildTreeFromFile(path, Options{Lang: "yaml"})
	require.NoError(t, err)
	require.Equal(t, "yaml", l.Name())
	require.NotNil(t, tr.Root())
}
