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

package printer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"syndiff/tree"
)

// linesTree builds a tree with one leaf per line.
func linesTree(t *tree.Tree, lines ...string) *tree.Node {
	root := t.MakeNode()
	for i, l := range lines {
		n := t.MakeNode()
		n.Label = l
		n.Line = i + 1
		n.Col = 1
		root.Children = append(root.Children, n)
	}
	t.SetRoot(root)
	return root
}

func TestPrintIdentical(t *testing.T) {
	t1 := tree.New()
	r1 := linesTree(t1, "alpha", "beta", "gamma")
	t2 := tree.New()
	r2 := linesTree(t2, "alpha", "beta", "gamma")

	var sb strings.Builder
	New(r1, r2, &sb, false).Print()

	out := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, out, 3)
	for i, line := range out {
		require.Contains(t, line, " || ", "line %d must carry the identical marker", i)
	}
}

func TestPrintFold(t *testing.T) {
	mid := make([]string, 0, 22)
	mid = append(mid, "left only")
	for i := 0; i < 20; i++ {
		mid = append(mid, fmt.Sprintf("line %02d", i))
	}
	mid = append(mid, "left tail")

	other := make([]string, 0, 22)
	other = append(other, "right only")
	other = append(other, mid[1:21]...)
	other = append(other, "right tail")

	t1 := tree.New()
	r1 := linesTree(t1, mid...)
	t2 := tree.New()
	r2 := linesTree(t2, other...)

	var sb strings.Builder
	New(r1, r2, &sb, false).Print()
	out := sb.String()

	require.Contains(t, out, "@@ folded 16 identical lines @@")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// 1 different + 2 context + fold + 2 context + 1 different
	require.Len(t, lines, 7)
	require.Contains(t, lines[0], " <> ")
	require.Contains(t, lines[1], " || ")
	require.Contains(t, lines[2], " || ")
	require.Contains(t, lines[3], "@@ folded 16 identical lines @@")
	require.Contains(t, lines[4], " || ")
	require.Contains(t, lines[5], " || ")
	require.Contains(t, lines[6], " <> ")
}

func TestPrintLeftRight(t *testing.T) {
	t1 := tree.New()
	r1 := linesTree(t1, "shared", "gone")
	t2 := tree.New()
	r2 := linesTree(t2, "shared", "fresh", "added")

	var sb strings.Builder
	New(r1, r2, &sb, false).Print()
	out := sb.String()

	require.Contains(t, out, "shared")
	require.Contains(t, out, " >> added")
}

func TestPrintEmpty(t *testing.T) {
	var sb strings.Builder
	New(nil, nil, &sb, false).Print()
	require.Empty(t, sb.String())
}

func TestPrintDecoration(t *testing.T) {
	t1 := tree.New()
	r1 := linesTree(t1, "removed")
	r1.Children[0].State = tree.Deleted
	t2 := tree.New()
	r2 := linesTree(t2)

	var sb strings.Builder
	New(r1, r2, &sb, true).Print()
	out := sb.String()

	require.Contains(t, out, "\033[31;7;40;1m")
	require.Contains(t, out, "\033[0m")
	require.Contains(t, out, "removed")
}

func TestCompareSequences(t *testing.T) {
	testCases := []struct {
		name     string
		l, r     []string
		expected []diffLine
	}{
		{
			name:     "identical",
			l:        []string{"a", "b"},
			r:        []string{"a", "b"},
			expected: []diffLine{{kind: diffIdentical}, {kind: diffIdentical}},
		},
		{
			name:     "replacement",
			l:        []string{"a"},
			r:        []string{"b"},
			expected: []diffLine{{kind: diffDifferent}},
		},
		{
			name:     "left only",
			l:        []string{"a", "b"},
			r:        []string{"a"},
			expected: []diffLine{{kind: diffIdentical}, {kind: diffLeft}},
		},
		{
			name:     "right only",
			l:        []string{"a"},
			r:        []string{"a", "b"},
			expected: []diffLine{{kind: diffIdentical}, {kind: diffRight}},
		},
		{
			name:     "empty sides",
			l:        nil,
			r:        nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := compare(tc.l, tc.r)
			if diff := cmp.Diff(tc.expected, got, cmp.AllowUnexported(diffLine{})); diff != "" {
				t.Errorf("unexpected diff sequence (-want +got):\n%s", diff)
			}
		})
	}
}

// TestFoldCompleteness checks that no line is lost to folding: the sum
// of line counts over all diff entries equals the number of input lines
// on each side.
func TestFoldCompleteness(t *testing.T) {
	var l, r []string
	for i := 0; i < 30; i++ {
		l = append(l, fmt.Sprintf("common %d", i))
		r = append(r, fmt.Sprintf("common %d", i))
	}
	l = append(l, "only left")
	r = append(r, "only right", "another right")
	for i := 0; i < 10; i++ {
		l = append(l, fmt.Sprintf("tail %d", i))
		r = append(r, fmt.Sprintf("tail %d", i))
	}

	seq := compare(l, r)

	leftCount, rightCount := 0, 0
	for _, d := range seq {
		switch d.kind {
		case diffLeft:
			leftCount++
		case diffRight:
			rightCount++
		case diffIdentical, diffDifferent:
			leftCount++
			rightCount++
		case diffFold:
			leftCount += d.data
			rightCount += d.data
		}
	}
	require.Equal(t, len(l), leftCount)
	require.Equal(t, len(r), rightCount)
}

func TestMeasureWidth(t *testing.T) {
	require.Equal(t, 5, measureWidth("plain"))
	require.Equal(t, 5, measureWidth("\033[31;7;40;1mplain\033[0m"))
	require.Equal(t, 0, measureWidth(""))
}
