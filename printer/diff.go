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

// diffKind tags an entry of the line-level diff sequence.
type diffKind uint8

const (
	// diffLeft is a line present only on the left.
	diffLeft diffKind = iota
	// diffRight is a line present only on the right.
	diffRight
	// diffIdentical is a pair of equal lines.
	diffIdentical
	// diffDifferent is a pair of changed lines.
	diffDifferent
	// diffFold replaces a long run of identical pairs; data carries the
	// number of folded lines.
	diffFold
)

// diffLine is one entry of the line diff sequence.
type diffLine struct {
	kind diffKind
	data int
}

// Folding constants: runs of identical entries longer than _minFold plus
// the surrounding context collapse into a single fold entry keeping
// _ctxSize lines of context on each side.
const (
	_minFold = 3
	_ctxSize = 2
)

// compare aligns two line slices: it strips the identical prefix and
// suffix, runs Levenshtein alignment with unit costs over the remaining
// window, reattaches the stripped runs and folds long identical runs.
func compare(l, r []string) []diffLine {
	// Narrow the portion of lines that has to be aligned by throwing
	// away matching leading and trailing lines.
	ol, nl, ou, nu := 0, 0, len(l), len(r)
	for ol < ou && nl < nu && l[ol] == r[nl] {
		ol++
		nl++
	}
	for ou > ol && nu > nl && l[ou-1] == r[nu-1] {
		ou--
		nu--
	}

	d := make([][]int, ou-ol+1)
	for i := range d {
		d[i] = make([]int, nu-nl+1)
	}
	for i := 0; i <= ou-ol; i++ {
		for j := 0; j <= nu-nl; j++ {
			switch {
			case i == 0:
				d[i][j] = j
			case j == 0:
				d[i][j] = i
			default:
				cost := 1
				if l[ol+i-1] == r[nl+j-1] {
					cost = 0
				}
				d[i][j] = min3(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			}
		}
	}

	// The sequence is assembled in reverse file order (walking from the
	// last line to the first) and reversed at the end; folding operates
	// on the tail, which holds the identical run assembled last.
	var seq []diffLine
	identical := 0

	foldIdentical := func(last bool) {
		startCtx := _ctxSize
		if last {
			startCtx = 0
		}
		endCtx := _ctxSize
		if identical == len(seq) {
			endCtx = 0
		}
		context := startCtx + endCtx

		if identical >= context && identical-context > _minFold {
			folded := identical - context
			cut0 := len(seq) - identical + endCtx
			cut1 := len(seq) - startCtx
			head := append([]diffLine{}, seq[cut1:]...)
			seq = append(seq[:cut0], diffLine{kind: diffFold, data: folded})
			seq = append(seq, head...)
		}
		identical = 0
	}

	handleSameLines := func(i, j int) {
		if l[i] == r[j] {
			identical++
			seq = append(seq, diffLine{kind: diffIdentical})
		} else {
			foldIdentical(false)
			seq = append(seq, diffLine{kind: diffDifferent})
		}
	}

	// Tail, middle and then head parts of the files.
	for k, m := len(l), len(r); k > ou; k, m = k-1, m-1 {
		handleSameLines(k-1, m-1)
	}

	i, j := ou-ol, nu-nl
	for i != 0 || j != 0 {
		switch {
		case i == 0:
			j--
			foldIdentical(false)
			seq = append(seq, diffLine{kind: diffRight})
		case j == 0:
			i--
			foldIdentical(false)
			seq = append(seq, diffLine{kind: diffLeft})
		case d[i][j] == d[i][j-1]+1:
			j--
			foldIdentical(false)
			seq = append(seq, diffLine{kind: diffRight})
		case d[i][j] == d[i-1][j]+1:
			i--
			foldIdentical(false)
			seq = append(seq, diffLine{kind: diffLeft})
		default:
			i--
			j--
			handleSameLines(ol+i, nl+j)
		}
	}

	for i := ol; i != 0; i-- {
		handleSameLines(i-1, i-1)
	}

	foldIdentical(true)

	for a, b := 0, len(seq)-1; a < b; a, b = a+1, b-1 {
		seq[a], seq[b] = seq[b], seq[a]
	}
	return seq
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
